package skeleton

import (
	"errors"
	"fmt"
)

// Load errors.
var (
	ErrEmptyTrack       = errors.New("animation track has no keys")
	ErrDuplicateChannel = errors.New("node has more than one animation channel")
)

// Clip is a keyframed animation with at most one channel per node.
// Times are in ticks.
type Clip struct {
	Name           string
	TicksPerSecond float32
	Duration       float32
	Channels       []Channel

	byNode map[string]int
}

// NewClip validates channels and indexes them by node name.
// A non-positive tick rate becomes DefaultTicksPerSecond.
func NewClip(name string, ticksPerSecond, duration float32, channels []Channel) (*Clip, error) {
	if ticksPerSecond <= 0 {
		ticksPerSecond = DefaultTicksPerSecond
	}
	c := &Clip{
		Name:           name,
		TicksPerSecond: ticksPerSecond,
		Duration:       duration,
		Channels:       channels,
		byNode:         make(map[string]int, len(channels)),
	}
	for i := range channels {
		ch := &channels[i]
		if err := ch.Validate(); err != nil {
			return nil, fmt.Errorf("clip %q: %w", name, err)
		}
		if _, dup := c.byNode[ch.Node]; dup {
			return nil, fmt.Errorf("clip %q: %w: %q", name, ErrDuplicateChannel, ch.Node)
		}
		c.byNode[ch.Node] = i
	}
	return c, nil
}

// Channel returns the channel animating node, or nil.
func (c *Clip) Channel(node string) *Channel {
	if c == nil {
		return nil
	}
	i, ok := c.byNode[node]
	if !ok {
		return nil
	}
	return &c.Channels[i]
}

// TimeAt converts elapsed seconds to looping clip ticks.
func (c *Clip) TimeAt(elapsedSeconds float32) float32 {
	return Wrap(elapsedSeconds, c.TicksPerSecond, c.Duration)
}

// DurationSeconds returns one loop's length in seconds.
func (c *Clip) DurationSeconds() float32 {
	return c.Duration / c.TicksPerSecond
}
