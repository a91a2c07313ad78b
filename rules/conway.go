package rules

import "fmt"

// MaxNeighbors is the largest neighbor count a cell can have.
const MaxNeighbors = 8

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

	alive: 0-1 neighbors dies, 2-3 survives, 4-8 dies
	dead:  exactly 3 neighbors is born, otherwise stays dead

A neighbor count outside [0, MaxNeighbors] can only come from a counting bug,
so it panics instead of being clamped.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if neighbors < 0 || neighbors > MaxNeighbors {
		panic(fmt.Sprintf("rules: phantom neighbors: %d", neighbors))
	}

	if alive {
		switch neighbors {
		case 2, 3:
			return true
		default:
			return false
		}
	}
	return neighbors == 3
}
