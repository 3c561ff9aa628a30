package sim

// Tally holds aggregated outcome counts for a batch of trials.
//
// Add is commutative and associative, so partial tallies from concurrent
// workers merge into the same total regardless of scheduling order.
type Tally struct {
	Won  uint64
	Lost uint64
}

// Add returns the element-wise sum of t and other.
//
// Postcondition: result.Won == t.Won + other.Won and likewise for Lost.
func (t Tally) Add(other Tally) Tally {
	return Tally{
		Won:  t.Won + other.Won,
		Lost: t.Lost + other.Lost,
	}
}

// Total returns the number of trials the tally covers.
func (t Tally) Total() uint64 {
	return t.Won + t.Lost
}

// WinRatePercent returns 100 * won / (won + lost).
//
// Precondition: Total() > 0. Panics with "sim: WinRatePercent on empty tally"
// otherwise; callers reach this only through estimates that rejected zero
// trials up front.
func (t Tally) WinRatePercent() float64 {
	total := t.Total()
	if total == 0 {
		panic("sim: WinRatePercent on empty tally")
	}
	return 100 * float64(t.Won) / float64(total)
}
