package skeleton

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestWrap_Periodic(t *testing.T) {
	tests := []struct {
		tps, duration float32
	}{
		{25, 10},
		{24, 48},
		{30, 7.5},
		{1, 3},
	}
	for _, tt := range tests {
		period := tt.duration / tt.tps
		for _, elapsed := range []float32{0.013, 0.31, 1.7, 12.9} {
			a := Wrap(elapsed, tt.tps, tt.duration)
			b := Wrap(elapsed+period, tt.tps, tt.duration)
			// Values close to the loop point may land on either side of it.
			if a < 0.01 || a > tt.duration-0.01 {
				continue
			}
			assert.InDelta(t, a, b, 1e-3, "tps=%v duration=%v elapsed=%v", tt.tps, tt.duration, elapsed)
		}
	}
}

func TestWrap_Range(t *testing.T) {
	for elapsed := float32(0); elapsed < 20; elapsed += 0.037 {
		got := Wrap(elapsed, 25, 10)
		assert.GreaterOrEqual(t, got, float32(0))
		assert.Less(t, got, float32(10))
	}
	assert.InDelta(t, 8.0, Wrap(-0.08, 25, 10), 1e-4, "negative time wraps backwards")
}

func TestWrap_Defaults(t *testing.T) {
	assert.Equal(t, Wrap(1, 25, 100), Wrap(1, 0, 100), "zero tick rate uses the default")
	assert.Equal(t, Wrap(1, 25, 100), Wrap(1, -3, 100))
	assert.InDelta(t, 25, Wrap(1, 0, 100), 1e-5)

	assert.Equal(t, float32(0), Wrap(3, 25, 0), "zero duration")
	assert.Equal(t, float32(0), Wrap(3, 25, -1))
	assert.Equal(t, float32(0), Wrap(3, 25, math32.NaN()))
	assert.Equal(t, float32(0), Wrap(3, 25, math32.Inf(1)))
	assert.Equal(t, float32(0), Wrap(math32.Inf(1), 25, 10))
}

type fakeTime struct{ t time.Time }

func newFakeTime() *fakeTime { return &fakeTime{t: time.Unix(1700000000, 0)} }

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClock(t *testing.T) {
	ft := newFakeTime()
	c := NewClock(ft.now)
	assert.True(t, c.Running())
	assert.Equal(t, float32(0), c.Elapsed())

	ft.advance(1500 * time.Millisecond)
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-6)

	c.Pause()
	ft.advance(10 * time.Second)
	assert.False(t, c.Running())
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-6, "paused time does not count")

	c.Resume()
	ft.advance(time.Second)
	assert.InDelta(t, 2.5, c.Elapsed(), 1e-6)

	c.Speed = 2
	assert.InDelta(t, 5.0, c.Elapsed(), 1e-6)

	c.Reset()
	assert.Equal(t, float32(0), c.Elapsed())
	ft.advance(time.Second)
	assert.InDelta(t, 2.0, c.Elapsed(), 1e-6)
}

func TestClock_PauseResumeIdempotent(t *testing.T) {
	ft := newFakeTime()
	c := NewClock(ft.now)
	c.Resume()
	ft.advance(time.Second)
	c.Pause()
	c.Pause()
	ft.advance(time.Second)
	assert.InDelta(t, 1.0, c.Elapsed(), 1e-6)
}

func TestClock_Seek(t *testing.T) {
	ft := newFakeTime()
	c := NewClock(ft.now)
	ft.advance(3 * time.Second)

	c.Speed = 2
	c.Seek(3)
	assert.InDelta(t, 3.0, c.Elapsed(), 1e-5)
	ft.advance(time.Second)
	assert.InDelta(t, 5.0, c.Elapsed(), 1e-5)

	c.Pause()
	c.Seek(1)
	assert.InDelta(t, 1.0, c.Elapsed(), 1e-5, "seek while paused")
	assert.False(t, c.Running())
}
