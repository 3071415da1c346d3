package odds

import "odds-arb-scanner/internal/market"

// dcPairs maps each derived double-chance side to its two constituent
// 3-way sides, in the order used to break equal-price ties.
var dcPairs = []struct {
	side  market.Side
	first market.Side
	other market.Side
}{
	{market.SideHomeOrDraw, market.SideHome, market.SideDraw},
	{market.SideHomeOrAway, market.SideHome, market.SideAway},
	{market.SideDrawOrAway, market.SideDraw, market.SideAway},
}

// DeriveDoubleChance builds synthetic double-chance prices from the best
// prices of a complete 3-way match-result group. Holding either
// constituent bet covers the double-chance outcome, so each derived price
// is the better of the two constituent best prices.
//
// Returns ok=false unless best prices exist for all three 3-way sides:
// the derivation is meaningless on a partial group.
func DeriveDoubleChance(best map[market.Side]BestPrice) (map[market.Side]BestPrice, bool) {
	for _, s := range []market.Side{market.SideHome, market.SideDraw, market.SideAway} {
		if _, ok := best[s]; !ok {
			return nil, false
		}
	}

	out := make(map[market.Side]BestPrice, len(dcPairs))
	for _, pair := range dcPairs {
		pick := best[pair.first]
		if best[pair.other].Price > pick.Price {
			pick = best[pair.other]
		}
		out[pair.side] = BestPrice{Side: pair.side, Price: pick.Price, Bookmaker: pick.Bookmaker}
	}

	return out, true
}
