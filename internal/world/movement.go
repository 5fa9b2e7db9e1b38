package world

import (
	stdmath "math"

	"github.com/Faultbox/ascii3d/pkg/math"
)

// Slide moves pos by delta one axis at a time. The X component is applied
// in full only when every cell it crosses (with Y unchanged), destination
// included, is walkable; then the Y component is checked the same way
// against the possibly updated X. A blocked axis keeps its coordinate while
// the other axis still moves, which lets the camera slide along walls.
func (g *Grid) Slide(pos, delta math.Vec2) math.Vec2 {
	next := pos

	if delta.X != 0 {
		row := int(stdmath.Floor(pos.Y))
		if g.clearRun(pos.X, pos.X+delta.X, func(c int) bool { return g.IsWalkable(c, row) }) {
			next.X += delta.X
		}
	}

	if delta.Y != 0 {
		col := int(stdmath.Floor(next.X))
		if g.clearRun(pos.Y, pos.Y+delta.Y, func(c int) bool { return g.IsWalkable(col, c) }) {
			next.Y += delta.Y
		}
	}

	return next
}

// clearRun reports whether walkable holds for every cell index after
// floor(from) up to and including floor(to). Bounds checks in walkable end
// the walk at the grid edge.
func (g *Grid) clearRun(from, to float64, walkable func(c int) bool) bool {
	if stdmath.IsNaN(to) || stdmath.IsInf(to, 0) {
		return false
	}
	c, end := int(stdmath.Floor(from)), int(stdmath.Floor(to))
	step := 1
	if end < c {
		step = -1
	}
	for c != end {
		c += step
		if !walkable(c) {
			return false
		}
	}
	return true
}

// Step moves pos along heading by distance, forward when sign is positive
// and backward when negative.
func (g *Grid) Step(pos, heading math.Vec2, sign, distance float64) math.Vec2 {
	return g.Slide(pos, heading.Scale(sign*distance))
}
