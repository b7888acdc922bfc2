package skeleton

import (
	"sync"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

// Palette double-buffers bone transforms between one writer (the evaluator)
// and readers on other goroutines. Publish and Snapshot never expose a
// partially written frame.
type Palette struct {
	mu    sync.Mutex
	front []math.Mat4
	back  []math.Mat4
	frame uint64
}

// Publish copies finals into the back buffer and swaps it to the front.
// Only one goroutine may publish.
func (p *Palette) Publish(finals []math.Mat4) {
	if cap(p.back) < len(finals) {
		p.back = make([]math.Mat4, len(finals))
	}
	p.back = p.back[:len(finals)]
	copy(p.back, finals)

	p.mu.Lock()
	p.front, p.back = p.back, p.front
	p.frame++
	p.mu.Unlock()
}

// Snapshot copies the latest published frame into dst and returns it with
// its frame number. Frame 0 means nothing has been published yet.
func (p *Palette) Snapshot(dst []math.Mat4) ([]math.Mat4, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cap(dst) < len(p.front) {
		dst = make([]math.Mat4, len(p.front))
	}
	dst = dst[:len(p.front)]
	copy(dst, p.front)
	return dst, p.frame
}
