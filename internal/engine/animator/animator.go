// Package animator evaluates a model on its own goroutine and hands poses to
// the render thread through a palette.
package animator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rig/internal/engine/skeleton"
	"github.com/Faultbox/midgard-rig/internal/logger"
)

// Command changes playback from the render thread.
type Command int

const (
	CmdTogglePause Command = iota
	CmdRestart
	CmdFaster
	CmdSlower
)

// Speed limits for CmdFaster and CmdSlower.
const (
	MinSpeed = 0.125
	MaxSpeed = 8
)

// Animator owns a model on its own goroutine, evaluating it at a fixed rate
// and publishing final transforms to a palette for the render thread.
type Animator struct {
	model    *skeleton.Model
	palette  *skeleton.Palette
	interval time.Duration
	cmds     chan Command
	log      *zap.Logger
}

// NewAnimator creates an animator that evaluates m rate times per second.
func NewAnimator(m *skeleton.Model, p *skeleton.Palette, rate int) *Animator {
	if rate <= 0 {
		rate = 60
	}
	return &Animator{
		model:    m,
		palette:  p,
		interval: time.Second / time.Duration(rate),
		cmds:     make(chan Command, 8),
		log:      logger.Named("animator"),
	}
}

// Send queues a command. Commands are dropped while the queue is full.
func (a *Animator) Send(c Command) {
	select {
	case a.cmds <- c:
	default:
		a.log.Debug("command dropped", zap.Int("command", int(c)))
	}
}

// Step evaluates the current pose and publishes it.
func (a *Animator) Step() float32 {
	tick := a.model.Update()
	a.palette.Publish(a.model.BoneTransforms())
	return tick
}

// Run evaluates until ctx is done.
func (a *Animator) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.Step()
	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-a.cmds:
			a.apply(c)
			a.Step()
		case <-ticker.C:
			a.Step()
		}
	}
}

func (a *Animator) apply(c Command) {
	clock := a.model.Clock
	switch c {
	case CmdTogglePause:
		if clock.Running() {
			clock.Pause()
		} else {
			clock.Resume()
		}
	case CmdRestart:
		clock.Reset()
	case CmdFaster, CmdSlower:
		// Rebase so the pose does not jump when the multiplier changes.
		elapsed := clock.Elapsed()
		if c == CmdFaster {
			clock.Speed = min(clock.Speed*2, MaxSpeed)
		} else {
			clock.Speed = max(clock.Speed/2, MinSpeed)
		}
		clock.Seek(elapsed)
	}
	a.log.Debug("playback",
		zap.Bool("running", clock.Running()),
		zap.Float32("speed", clock.Speed),
	)
}
