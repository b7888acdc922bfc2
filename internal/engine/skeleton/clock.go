package skeleton

import (
	"time"

	"github.com/chewxy/math32"
)

// DefaultTicksPerSecond is assumed when a clip leaves its tick rate unset.
const DefaultTicksPerSecond float32 = 25

// Wrap converts elapsed seconds into a looping time in [0, durationTicks).
// A non-positive tick rate is treated as DefaultTicksPerSecond. A non-positive
// or non-finite duration is a malformed clip and yields 0 rather than NaN.
func Wrap(elapsedSeconds, ticksPerSecond, durationTicks float32) float32 {
	if ticksPerSecond <= 0 {
		ticksPerSecond = DefaultTicksPerSecond
	}
	if !(durationTicks > 0) || math32.IsInf(durationTicks, 1) {
		return 0
	}

	t := math32.Mod(elapsedSeconds*ticksPerSecond, durationTicks)
	if t < 0 {
		t += durationTicks
	}
	if t >= durationTicks || math32.IsNaN(t) {
		t = 0
	}
	return t
}

// Clock measures playback time for one model. The time source is injectable
// so tests can drive it deterministically.
type Clock struct {
	// Speed scales elapsed time; 1 is real time.
	Speed float32

	now     func() time.Time
	start   time.Time
	accum   time.Duration
	running bool
}

// NewClock starts a clock. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{Speed: 1, now: now, start: now(), running: true}
}

// Elapsed returns scaled playback seconds since start, excluding paused spans.
func (c *Clock) Elapsed() float32 {
	d := c.accum
	if c.running {
		d += c.now().Sub(c.start)
	}
	return float32(d.Seconds()) * c.Speed
}

// Reset restarts playback from zero, keeping the paused state.
func (c *Clock) Reset() {
	c.accum = 0
	c.start = c.now()
}

// Seek sets Elapsed to the given scaled seconds at the current Speed.
func (c *Clock) Seek(elapsedSeconds float32) {
	c.accum = 0
	if c.Speed > 0 {
		c.accum = time.Duration(float64(elapsedSeconds/c.Speed) * float64(time.Second))
	}
	c.start = c.now()
}

// Pause freezes Elapsed.
func (c *Clock) Pause() {
	if !c.running {
		return
	}
	c.accum += c.now().Sub(c.start)
	c.running = false
}

// Resume continues after Pause.
func (c *Clock) Resume() {
	if c.running {
		return
	}
	c.start = c.now()
	c.running = true
}

// Running reports whether the clock is advancing.
func (c *Clock) Running() bool { return c.running }
