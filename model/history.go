package model

// historyDepth is how many past hashes a cycle is checked against; it
// catches still lifes and oscillators of period up to 3.
const historyDepth = 3

// History stores recent grid hashes for cycle detection
type History struct {
	hashes []string
	size   int
}

// NewHistory keeps at most size hashes (never fewer than the cycle depth)
func NewHistory(size int) *History {
	return &History{size: max(size, historyDepth)}
}

// Record adds a hash and reports whether it repeats one of the last few
// recorded states.
func (h *History) Record(hash string) (stagnant bool) {
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-historyDepth; i-- {
		if h.hashes[i] == hash {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
	return stagnant
}

// Len returns the number of recorded hashes
func (h *History) Len() int {
	return len(h.hashes)
}
