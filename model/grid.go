package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// MinGridSize is the smallest width or height Seed accepts: the seeding
// window [size/4, 3*size/4) is empty below it.
const MinGridSize = 4

// Grid represents the game board as two planes of alive flags.
// Plane CurrentPlane(g) holds generation g, plane PreviousPlane(g) holds g-1.
type Grid struct {
	width  int
	height int
	planes [2][][]bool
}

// NewGrid creates a new grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Reset(width, height)
	return g
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Reset resizes both planes and clears every cell
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height

	for p := range g.planes {
		if len(g.planes[p]) != height {
			g.planes[p] = make([][]bool, height)
		}
		for y := range g.planes[p] {
			if len(g.planes[p][y]) != width {
				g.planes[p][y] = make([]bool, width)
				continue
			}
			clear(g.planes[p][y])
		}
	}
}

// Get returns the alive flag of a cell in the given plane.
// Coordinates are not clipped; callers must stay inside the grid.
func (g *Grid) Get(x, y, parity int) bool {
	return g.planes[parity][y][x]
}

// Set writes the alive flag of a cell in the given plane
func (g *Grid) Set(x, y, parity int, alive bool) {
	g.planes[parity][y][x] = alive
}

// CountNeighbors counts living neighbors in the given plane. Offsets that
// fall outside the grid are skipped, there is no wraparound.
func (g *Grid) CountNeighbors(x, y, parity int) int {
	var (
		count = 0
		cells = g.planes[parity]
		minX  = max(0, x-1)
		maxX  = min(g.width-1, x+1)
		minY  = max(0, y-1)
		maxY  = min(g.height-1, y+1)
	)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			if cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

// CountLivingCells returns the number of living cells inside the border
// ring of a plane, the area the renderer shows
func (g *Grid) CountLivingCells(parity int) (count int) {
	for _, row := range g.interior(parity) {
		for _, alive := range row[1 : g.width-1] {
			if alive {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 digest of the area inside the border ring of a plane,
// used for stagnation detection
func (g *Grid) Hash(parity int) string {
	h := md5.New()
	row := make([]byte, max(g.width-2, 0))
	for _, cells := range g.interior(parity) {
		for x, alive := range cells[1 : g.width-1] {
			row[x] = 0
			if alive {
				row[x] = 1
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// interior returns the rows of a plane between the top and bottom border
func (g *Grid) interior(parity int) [][]bool {
	if g.width < 2 || g.height < 2 {
		return nil
	}
	return g.planes[parity][1 : g.height-1]
}

// SeedBounds returns the half-open window [lo, hi) seeding draws from along
// an axis of the given size.
func SeedBounds(size int) (lo, hi int) {
	quarter := size / 4
	return quarter, 3 * quarter
}

// Seed marks aliveCount cells alive in plane 0 at coordinates drawn from the
// central half of each axis. Coordinates may repeat, so aliveCount is an
// upper bound on the resulting population.
func (g *Grid) Seed(aliveCount int, rng *rand.Rand) error {
	if aliveCount < 0 {
		return errors.Errorf("[Seed] alive count must not be negative: %d", aliveCount)
	}
	if g.width < MinGridSize || g.height < MinGridSize {
		return errors.Errorf("[Seed] grid %dx%d is smaller than %dx%d",
			g.width, g.height, MinGridSize, MinGridSize)
	}

	var (
		xLo, xHi = SeedBounds(g.width)
		yLo, yHi = SeedBounds(g.height)
	)
	for range aliveCount {
		x := xLo + rng.IntN(xHi-xLo)
		y := yLo + rng.IntN(yHi-yLo)
		g.planes[0][y][x] = true
	}
	return nil
}
