package model

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-term/rules"
)

// CurrentPlane returns the plane that holds generation gen
func CurrentPlane(gen int) int {
	return gen % 2
}

// PreviousPlane returns the plane that holds generation gen-1
func PreviousPlane(gen int) int {
	return (gen + 1) % 2
}

// Engine advances a Grid one generation at a time. Generation 0 is the seed
// stored in plane 0.
type Engine struct {
	grid       *Grid
	generation int
	workers    int
}

// NewEngine creates an engine over grid. workers <= 0 means one worker per
// CPU; workers == 1 computes generations on the calling goroutine.
func NewEngine(grid *Grid, workers int) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{grid: grid, workers: workers}
}

// Grid returns the grid the engine mutates
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Generation returns the number of the most recently computed generation
func (e *Engine) Generation() int {
	return e.generation
}

// Advance computes the next generation into the stale plane, reading only
// the plane of the generation before it.
func (e *Engine) Advance() {
	e.generation++
	var (
		current  = CurrentPlane(e.generation)
		previous = PreviousPlane(e.generation)
	)

	if e.workers == 1 {
		e.advanceRows(0, e.grid.height, current, previous)
		return
	}
	e.advanceParallel(current, previous)
}

// advanceParallel splits the rows into static, disjoint bands so workers
// never write the same cell.
func (e *Engine) advanceParallel(current, previous int) {
	var (
		eg            errgroup.Group
		height        = e.grid.height
		rowsPerWorker = (height + e.workers - 1) / e.workers // Ceiling division
	)

	for i := range e.workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
		)
		if startRow >= height {
			break
		}

		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("[Advance] rows %d-%d: %v", startRow, endRow, r)
				}
			}()
			e.advanceRows(startRow, endRow, current, previous)
			return nil
		})
	}

	// Re-raise on the caller so deferred cleanup up the stack still runs.
	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func (e *Engine) advanceRows(startRow, endRow, current, previous int) {
	var (
		g    = e.grid
		next = g.planes[current]
		prev = g.planes[previous]
	)
	for y := startRow; y < endRow; y++ {
		for x := range g.width {
			next[y][x] = rules.ApplyConwayRules(g.CountNeighbors(x, y, previous), prev[y][x])
		}
	}
}
