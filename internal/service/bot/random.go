package bot

import "math/rand/v2"

// Random is the source of every non-deterministic choice the bot makes.
// *rand.Rand satisfies it; tests inject seeded or scripted sources.
type Random interface {
	IntN(n int) int
	Float64() float64
}

// NewRandom returns a PCG-backed source. A zero seed draws one from the
// runtime generator so separate sessions do not play identical games.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// pickRandom returns a uniformly chosen column, or -1 for an empty list.
func pickRandom(rng Random, columns []int) int {
	if len(columns) == 0 {
		return -1
	}
	return columns[rng.IntN(len(columns))]
}
