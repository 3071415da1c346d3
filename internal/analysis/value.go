package analysis

import (
	"odds-arb-scanner/internal/market"
	"odds-arb-scanner/internal/odds"
)

// Config holds value screening policy.
type Config struct {
	MinEdgePct   float64 // minimum edge over consensus to flag (e.g. 1.0 = 1%)
	MinBookCount int     // minimum books per side for a trustworthy consensus
}

// DefaultConfig returns the screening defaults.
func DefaultConfig() Config {
	return Config{
		MinEdgePct:   1.0,
		MinBookCount: 2,
	}
}

// ValueBet flags a side whose best available price beats the market
// consensus fair price by at least the configured edge.
type ValueBet struct {
	Key           market.GroupKey
	HomeTeam      string
	AwayTeam      string
	Side          market.Side
	BestPrice     float64
	Bookmaker     string
	FairPrice     float64
	ConsensusProb float64
	EdgePct       float64
	BookCount     int
}

// FindValueBets screens one priced group for value against consensus.
// The group must already have consensus prices; incomplete groups never
// reach here because Consensus refuses them.
func FindValueBets(
	g *market.Group,
	best map[market.Side]odds.BestPrice,
	cons map[market.Side]odds.SideConsensus,
	cfg Config,
) []ValueBet {
	var out []ValueBet

	for _, side := range g.Key.Market.RequiredSides() {
		bp, okBest := best[side]
		sc, okCons := cons[side]
		if !okBest || !okCons {
			continue
		}
		if sc.BookCount < cfg.MinBookCount {
			continue
		}

		edge := odds.EdgePct(bp.Price, sc.FairPrice)
		if edge < cfg.MinEdgePct {
			continue
		}

		out = append(out, ValueBet{
			Key:           g.Key,
			HomeTeam:      g.HomeTeam,
			AwayTeam:      g.AwayTeam,
			Side:          side,
			BestPrice:     bp.Price,
			Bookmaker:     bp.Bookmaker,
			FairPrice:     sc.FairPrice,
			ConsensusProb: sc.Prob,
			EdgePct:       edge,
			BookCount:     sc.BookCount,
		})
	}

	return out
}
