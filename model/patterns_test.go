package model

// addBlock adds a 2x2 still life with its top-left corner at the position
func addBlock(g *Grid, startX, startY, parity int) {
	for y := range 2 {
		for x := range 2 {
			g.Set(startX+x, startY+y, parity, true)
		}
	}
}

// addOscillator adds a horizontal blinker oscillator pattern
func addOscillator(g *Grid, startX, startY, parity int) {
	g.Set(startX, startY, parity, true)
	g.Set(startX+1, startY, parity, true)
	g.Set(startX+2, startY, parity, true)
}

// addGlider adds a glider pattern at the specified position
func addGlider(g *Grid, startX, startY, parity int) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for y, row := range pattern {
		for x, cell := range row {
			g.Set(startX+x, startY+y, parity, cell)
		}
	}
}

func fillAll(g *Grid, parity int) {
	for y := range g.GetHeight() {
		for x := range g.GetWidth() {
			g.Set(x, y, parity, true)
		}
	}
}

// samePlane reports whether plane parity holds the same cells in a and b,
// border ring included
func samePlane(a, b *Grid, parity int) bool {
	for y := range a.GetHeight() {
		for x := range a.GetWidth() {
			if a.Get(x, y, parity) != b.Get(x, y, parity) {
				return false
			}
		}
	}
	return true
}
