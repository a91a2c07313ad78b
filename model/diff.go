package model

import "iter"

// Change is a cell whose alive flag differs between two consecutive generations
type Change struct {
	X, Y  int
	Alive bool
}

// Diff yields every cell inside the border ring whose flag in plane current
// differs from plane previous. Each call to the returned sequence rescans the
// planes; nothing is written.
func Diff(g *Grid, current, previous int) iter.Seq[Change] {
	return func(yield func(Change) bool) {
		var (
			next = g.planes[current]
			prev = g.planes[previous]
		)
		for y := 1; y < g.height-1; y++ {
			for x := 1; x < g.width-1; x++ {
				if next[y][x] == prev[y][x] {
					continue
				}
				if !yield(Change{X: x, Y: y, Alive: next[y][x]}) {
					return
				}
			}
		}
	}
}

// Changes reports the cells that changed in the latest generation. At
// generation 0 this is the seed itself, compared against the empty plane 1.
func (e *Engine) Changes() iter.Seq[Change] {
	return Diff(e.grid, CurrentPlane(e.generation), PreviousPlane(e.generation))
}
