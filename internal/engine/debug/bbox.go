package debug

import "github.com/Faultbox/midgard-rig/pkg/math"

// BoxLines returns the 12 edges of the axis-aligned box lo..hi as 24 line
// endpoints, grown by padding on every side.
func BoxLines(lo, hi math.Vec3, padding float32) []math.Vec3 {
	if lo.X > hi.X {
		lo.X, hi.X = hi.X, lo.X
	}
	if lo.Y > hi.Y {
		lo.Y, hi.Y = hi.Y, lo.Y
	}
	if lo.Z > hi.Z {
		lo.Z, hi.Z = hi.Z, lo.Z
	}
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	lo = lo.Sub(pad)
	hi = hi.Add(pad)

	corner := func(x, y, z bool) math.Vec3 {
		c := lo
		if x {
			c.X = hi.X
		}
		if y {
			c.Y = hi.Y
		}
		if z {
			c.Z = hi.Z
		}
		return c
	}

	lines := make([]math.Vec3, 0, 24)
	for _, y := range []bool{false, true} {
		// Bottom and top faces
		lines = append(lines,
			corner(false, y, false), corner(true, y, false),
			corner(true, y, false), corner(true, y, true),
			corner(true, y, true), corner(false, y, true),
			corner(false, y, true), corner(false, y, false),
		)
	}
	// Vertical edges
	for _, xz := range [][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		lines = append(lines, corner(xz[0], false, xz[1]), corner(xz[0], true, xz[1]))
	}
	return lines
}
