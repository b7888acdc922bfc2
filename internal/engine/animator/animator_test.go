package animator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-rig/internal/engine/skeleton"
	"github.com/Faultbox/midgard-rig/pkg/formats"
)

type fakeTime struct{ t time.Time }

func (f *fakeTime) now() time.Time { return f.t }

func newAnimator(t *testing.T) (*Animator, *skeleton.Palette, *fakeTime) {
	t.Helper()
	ft := &fakeTime{t: time.Unix(1700000000, 0)}
	m, err := skeleton.Load(formats.NewTubeRig(formats.DefaultTubeRigOptions()), skeleton.LoadOptions{Now: ft.now})
	require.NoError(t, err)
	p := &skeleton.Palette{}
	return NewAnimator(m, p, 120), p, ft
}

func TestAnimator_StepPublishes(t *testing.T) {
	a, p, ft := newAnimator(t)

	ft.t = ft.t.Add(500 * time.Millisecond)
	assert.InDelta(t, 12, a.Step(), 1e-4)

	finals, frame := p.Snapshot(nil)
	assert.Equal(t, uint64(1), frame)
	assert.Equal(t, a.model.BoneTransforms(), finals)
}

func TestAnimator_Commands(t *testing.T) {
	a, _, ft := newAnimator(t)
	clock := a.model.Clock

	a.apply(CmdTogglePause)
	assert.False(t, clock.Running())
	a.apply(CmdTogglePause)
	assert.True(t, clock.Running())

	ft.t = ft.t.Add(time.Second)
	a.apply(CmdFaster)
	assert.Equal(t, float32(2), clock.Speed)
	assert.InDelta(t, 1, clock.Elapsed(), 1e-5, "speed change keeps the current time")

	for i := 0; i < 10; i++ {
		a.apply(CmdFaster)
	}
	assert.Equal(t, float32(MaxSpeed), clock.Speed)
	for i := 0; i < 10; i++ {
		a.apply(CmdSlower)
	}
	assert.Equal(t, float32(MinSpeed), clock.Speed)

	a.apply(CmdRestart)
	assert.Equal(t, float32(0), clock.Elapsed())
}

func TestAnimator_Run(t *testing.T) {
	a, p, _ := newAnimator(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	a.Send(CmdTogglePause)
	require.Eventually(t, func() bool {
		_, frame := p.Snapshot(nil)
		return frame >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
