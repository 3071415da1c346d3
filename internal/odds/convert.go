package odds

// ImpliedProbability converts decimal odds to implied probability.
// Defined for price > 1; returns 0 for anything else so corrupt values
// can never produce a probability outside (0, 1).
func ImpliedProbability(price float64) float64 {
	if price <= 1.0 {
		return 0
	}
	return 1.0 / price
}

// FairPrice inverts a probability back to decimal odds.
// Defined only for p in (0, 1); returns 0 otherwise.
func FairPrice(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return 1.0 / p
}
