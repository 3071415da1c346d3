package odds

import "odds-arb-scanner/internal/market"

// SideConsensus is the margin-free consensus for one side of a group.
type SideConsensus struct {
	Prob      float64 // mean implied probability across all books
	FairPrice float64 // 1 / Prob
	BookCount int     // quotes that entered the mean
}

// Consensus computes a fair price per side by averaging the implied
// probabilities of every quote for that side and inverting the mean.
// Using the mean of all books, not just the best, keeps the benchmark
// robust to a single outlier price.
//
// Returns ok=false for incomplete groups and for groups where any side's
// mean probability degenerates outside (0, 1); such groups are excluded
// from fair-price output entirely.
func Consensus(g *market.Group) (map[market.Side]SideConsensus, bool) {
	if !g.Complete() {
		return nil, false
	}

	out := make(map[market.Side]SideConsensus)
	for _, side := range g.Key.Market.RequiredSides() {
		var sum float64
		var n int
		for _, q := range g.QuotesFor(side) {
			p := ImpliedProbability(q.Price)
			if p <= 0 {
				continue
			}
			sum += p
			n++
		}
		if n == 0 {
			return nil, false
		}

		mean := sum / float64(n)
		if mean <= 0 || mean >= 1 {
			return nil, false
		}

		out[side] = SideConsensus{
			Prob:      mean,
			FairPrice: FairPrice(mean),
			BookCount: n,
		}
	}

	return out, true
}

// EdgePct quantifies value of a best price against its consensus fair
// price: (best/fair - 1) * 100. Returns 0 when fair is unusable.
func EdgePct(best, fair float64) float64 {
	if fair <= 0 {
		return 0
	}
	return (best/fair - 1.0) * 100.0
}
