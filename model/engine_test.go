package model

import (
	"math/rand/v2"
	"strings"
	"testing"
)

// aliveSet returns the living cells of a plane keyed by coordinate
func aliveSet(g *Grid, parity int) map[[2]int]bool {
	alive := make(map[[2]int]bool)
	for y := range g.GetHeight() {
		for x := range g.GetWidth() {
			if g.Get(x, y, parity) {
				alive[[2]int{x, y}] = true
			}
		}
	}
	return alive
}

func expectAlive(t *testing.T, g *Grid, parity int, expected [][2]int) {
	t.Helper()
	got := aliveSet(g, parity)
	if len(got) != len(expected) {
		t.Fatalf("Expected %d living cells, got %d: %v", len(expected), len(got), got)
	}
	for _, c := range expected {
		if !got[c] {
			t.Fatalf("Expected (%d,%d) alive, living cells: %v", c[0], c[1], got)
		}
	}
}

func TestParity(t *testing.T) {
	for gen := range 10 {
		cur, prev := CurrentPlane(gen), PreviousPlane(gen)
		if cur == prev {
			t.Fatalf("Expected distinct planes at generation %d", gen)
		}
		if gen > 0 && prev != CurrentPlane(gen-1) {
			t.Errorf("Expected previous plane of %d to be current plane of %d", gen, gen-1)
		}
	}
}

func TestBlockStillLife(t *testing.T) {
	for _, workers := range []int{1, 3} {
		g := NewGrid(10, 10)
		addBlock(g, 4, 4, 0)
		e := NewEngine(g, workers)

		block := [][2]int{{4, 4}, {5, 4}, {4, 5}, {5, 5}}
		for range 7 {
			e.Advance()
			expectAlive(t, g, CurrentPlane(e.Generation()), block)
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	for _, workers := range []int{1, 4} {
		g := NewGrid(12, 10)
		addOscillator(g, 4, 5, 0)
		e := NewEngine(g, workers)

		horizontal := [][2]int{{4, 5}, {5, 5}, {6, 5}}
		vertical := [][2]int{{5, 4}, {5, 5}, {5, 6}}

		e.Advance()
		expectAlive(t, g, CurrentPlane(e.Generation()), vertical)

		e.Advance()
		expectAlive(t, g, CurrentPlane(e.Generation()), horizontal)

		if e.Generation() != 2 {
			t.Errorf("Expected generation 2, got %d", e.Generation())
		}
	}
}

func TestEdgeClippingNotWraparound(t *testing.T) {
	const w, h = 8, 6

	t.Run("Top-left does not feed bottom-right", func(t *testing.T) {
		g := NewGrid(w, h)
		g.Set(0, 0, 0, true)
		g.Set(w-2, h-1, 0, true)
		g.Set(w-1, h-2, 0, true)

		if n := g.CountNeighbors(w-1, h-1, 0); n != 2 {
			t.Fatalf("Expected 2 neighbors at the far corner, got %d", n)
		}

		e := NewEngine(g, 1)
		e.Advance()
		if g.Get(w-1, h-1, CurrentPlane(1)) {
			t.Errorf("Expected (%d,%d) to stay dead", w-1, h-1)
		}
	})

	t.Run("Bottom-right does not feed top-left", func(t *testing.T) {
		g := NewGrid(w, h)
		g.Set(w-1, h-1, 0, true)
		g.Set(1, 0, 0, true)
		g.Set(0, 1, 0, true)

		if n := g.CountNeighbors(0, 0, 0); n != 2 {
			t.Fatalf("Expected 2 neighbors at the origin, got %d", n)
		}

		e := NewEngine(g, 1)
		e.Advance()
		if g.Get(0, 0, CurrentPlane(1)) {
			t.Errorf("Expected (0,0) to stay dead")
		}
	})

	t.Run("Lone corner cell dies", func(t *testing.T) {
		g := NewGrid(w, h)
		g.Set(0, 0, 0, true)

		e := NewEngine(g, 2)
		e.Advance()
		if n := len(aliveSet(g, CurrentPlane(1))); n != 0 {
			t.Errorf("Expected empty grid, got %d living cells", n)
		}
	})
}

func TestAdvanceIgnoresStalePlane(t *testing.T) {
	clean := NewGrid(30, 20)
	dirty := NewGrid(30, 20)
	if err := clean.Seed(200, rand.New(rand.NewPCG(3, 4))); err != nil {
		t.Fatal(err)
	}
	if err := dirty.Seed(200, rand.New(rand.NewPCG(3, 4))); err != nil {
		t.Fatal(err)
	}

	// Plane 1 is overwritten by generation 1; garbage there must not matter.
	fillAll(dirty, 1)

	a, b := NewEngine(clean, 1), NewEngine(dirty, 1)
	a.Advance()
	b.Advance()

	if !samePlane(clean, dirty, 1) {
		t.Errorf("Expected generation 1 to be independent of the stale plane")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	for _, workers := range []int{2, 3, 7, 64} {
		seq := NewGrid(41, 23)
		par := NewGrid(41, 23)
		if err := seq.Seed(600, rand.New(rand.NewPCG(9, uint64(workers)))); err != nil {
			t.Fatal(err)
		}
		if err := par.Seed(600, rand.New(rand.NewPCG(9, uint64(workers)))); err != nil {
			t.Fatal(err)
		}

		a, b := NewEngine(seq, 1), NewEngine(par, workers)
		for range 25 {
			a.Advance()
			b.Advance()
			plane := CurrentPlane(a.Generation())
			if !samePlane(seq, par, plane) {
				t.Fatalf("Expected %d workers to match sequential at generation %d", workers, a.Generation())
			}
		}
	}
}

func TestNewEngineDefaultsWorkers(t *testing.T) {
	e := NewEngine(NewGrid(4, 4), 0)
	if e.workers < 1 {
		t.Errorf("Expected at least one worker, got %d", e.workers)
	}
	if e.Generation() != 0 {
		t.Errorf("Expected generation 0 before advancing, got %d", e.Generation())
	}
}

func TestWorkerPanicReachesCaller(t *testing.T) {
	tests := []struct {
		name       string
		workers    int
		wantPrefix string
	}{
		{"Sequential", 1, ""},
		{"Parallel", 3, "[Advance] rows "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(10, 10)
			addBlock(g, 4, 4, 0)
			// One column past the planes forces an out-of-range read.
			g.width = 11
			e := NewEngine(g, tt.workers)

			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("Expected Advance to panic on the calling goroutine")
				}
				if tt.wantPrefix == "" {
					return
				}
				err, ok := r.(error)
				if !ok {
					t.Fatalf("Expected an error panic value, got %T: %v", r, r)
				}
				if !strings.HasPrefix(err.Error(), tt.wantPrefix) {
					t.Errorf("Expected panic %q to start with %q", err.Error(), tt.wantPrefix)
				}
				if !strings.Contains(err.Error(), "index out of range") {
					t.Errorf("Expected the worker's runtime error in %q", err.Error())
				}
			}()
			e.Advance()
		})
	}
}
