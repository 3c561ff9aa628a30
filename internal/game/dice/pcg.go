package dice

import randv2 "math/rand/v2"

// pcgSource implements Source using a PCG generator from math/rand/v2.
// A billion-trial run draws tens of billions of values, which rules out the
// crypto source for the hot path.
type pcgSource struct {
	rng *randv2.Rand
}

// NewPCGSource returns a Source backed by a PCG stream with the given 128-bit
// seed. It is NOT safe for concurrent use; each simulation worker must own
// its own instance.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewPCGSource(seed1, seed2 uint64) Source {
	return &pcgSource{rng: randv2.New(randv2.NewPCG(seed1, seed2))}
}

// Intn returns a uniformly distributed int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
func (p *pcgSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return p.rng.IntN(n)
}
