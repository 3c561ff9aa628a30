// Package dice provides the randomness abstraction used by the orchard
// simulator. All game-facing code draws through the Source interface so that
// tests can substitute deterministic rolls and the estimator can own one fast
// generator per worker.
package dice

// Source is the randomness provider for die rolls.
//
// Implementations are not required to be safe for concurrent use unless their
// constructor says so.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
