package arb

import (
	"fmt"

	"odds-arb-scanner/internal/market"
	"odds-arb-scanner/internal/odds"
)

// Leg is one side of an arbitrage: the price to take, where to take it,
// and (once allocated) the stake and its payout.
type Leg struct {
	Side      market.Side
	Price     float64
	Bookmaker string
	Stake     float64
	Payout    float64
}

// Opportunity is a cross-bookmaker price set that locks in profit.
// Exists only when SumImplied < 1.0 strictly.
type Opportunity struct {
	Key        market.GroupKey
	HomeTeam   string
	AwayTeam   string
	Legs       []Leg
	SumImplied float64
	ROIPct     float64
}

// Config holds detection policy. MinROIPct filters reported
// opportunities; it is not part of the detection invariant.
type Config struct {
	MinROIPct float64
}

// Detect runs the sum-of-implied-probabilities check over a group's best
// prices. The same formula covers 2-way and 3-way shapes; only the side
// count varies. Line-grouped markets (totals, spreads) arrive here one
// group per line, so no extra handling is needed.
//
// Returns nil when the group is incomplete, when no arbitrage exists
// (sum >= 1.0 is a normal outcome, not an error), or when ROI falls
// below the configured floor.
func Detect(g *market.Group, best map[market.Side]odds.BestPrice, cfg Config) *Opportunity {
	required := g.Key.Market.RequiredSides()
	if len(required) == 0 || !g.Complete() {
		return nil
	}

	legs := make([]Leg, 0, len(required))
	for _, side := range required {
		bp, ok := best[side]
		if !ok {
			return nil
		}
		legs = append(legs, Leg{Side: side, Price: bp.Price, Bookmaker: bp.Bookmaker})
	}

	return build(g.Key, g.HomeTeam, g.AwayTeam, legs, cfg)
}

// DetectDoubleChance evaluates the three derived double-chance prices
// pairwise. Any two of the derived sides jointly cover all three match
// outcomes, so each pair is an independent 2-outcome market for the same
// sum-implied formula.
func DetectDoubleChance(g *market.Group, dc map[market.Side]odds.BestPrice, cfg Config) []Opportunity {
	pairs := [][2]market.Side{
		{market.SideHomeOrDraw, market.SideDrawOrAway},
		{market.SideHomeOrDraw, market.SideHomeOrAway},
		{market.SideHomeOrAway, market.SideDrawOrAway},
	}

	var out []Opportunity
	for _, pair := range pairs {
		a, okA := dc[pair[0]]
		b, okB := dc[pair[1]]
		if !okA || !okB {
			continue
		}
		legs := []Leg{
			{Side: a.Side, Price: a.Price, Bookmaker: a.Bookmaker},
			{Side: b.Side, Price: b.Price, Bookmaker: b.Bookmaker},
		}
		key := market.GroupKey{EventID: g.Key.EventID, Market: market.DoubleChance}
		if opp := build(key, g.HomeTeam, g.AwayTeam, legs, cfg); opp != nil {
			out = append(out, *opp)
		}
	}
	return out
}

func build(key market.GroupKey, home, away string, legs []Leg, cfg Config) *Opportunity {
	var sumImplied float64
	for _, l := range legs {
		p := odds.ImpliedProbability(l.Price)
		if p <= 0 {
			return nil
		}
		sumImplied += p
	}

	if sumImplied >= 1.0 {
		return nil
	}

	roi := (1.0 - sumImplied) * 100.0
	if roi < cfg.MinROIPct {
		return nil
	}

	return &Opportunity{
		Key:        key,
		HomeTeam:   home,
		AwayTeam:   away,
		Legs:       legs,
		SumImplied: sumImplied,
		ROIPct:     roi,
	}
}

// Describe renders a one-line summary for logs.
func (o *Opportunity) Describe() string {
	s := fmt.Sprintf("%s vs %s [%s", o.HomeTeam, o.AwayTeam, o.Key.Market)
	if o.Key.Market.HasLine() {
		s += fmt.Sprintf(" %+.1f", o.Key.Line)
	}
	s += "]"
	for _, l := range o.Legs {
		s += fmt.Sprintf(" %s %.2f@%s", l.Side, l.Price, l.Bookmaker)
	}
	return fmt.Sprintf("%s roi=%.2f%%", s, o.ROIPct)
}
