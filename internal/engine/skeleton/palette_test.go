package skeleton

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

func TestPalette(t *testing.T) {
	var p Palette
	got, frame := p.Snapshot(nil)
	assert.Empty(t, got)
	assert.Equal(t, uint64(0), frame)

	finals := []math.Mat4{math.Identity(), math.Translate(math.V3(1, 0, 0))}
	p.Publish(finals)

	finals[1] = math.Identity()
	got, frame = p.Snapshot(got)
	assert.Equal(t, uint64(1), frame)
	require.Len(t, got, 2)
	assert.Equal(t, math.V3(1, 0, 0), got[1].Translation(), "publish copies its input")
}

func TestPalette_ConcurrentReaders(t *testing.T) {
	var p Palette
	const bones = 8

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf []math.Mat4
			for i := 0; i < 200; i++ {
				var frame uint64
				buf, frame = p.Snapshot(buf)
				if frame == 0 {
					continue
				}
				// Every matrix of a frame carries the same value.
				x := buf[0].Translation().X
				for _, m := range buf {
					assert.Equal(t, x, m.Translation().X)
				}
			}
		}()
	}

	finals := make([]math.Mat4, bones)
	for f := 1; f <= 200; f++ {
		for i := range finals {
			finals[i] = math.Translate(math.V3(float32(f), 0, 0))
		}
		p.Publish(finals)
	}
	wg.Wait()

	_, frame := p.Snapshot(nil)
	assert.Equal(t, uint64(200), frame)
}
