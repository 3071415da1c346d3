package engine

import (
	"time"

	"odds-arb-scanner/internal/analysis"
	"odds-arb-scanner/internal/arb"
	"odds-arb-scanner/internal/market"
)

// BestRow is one line of the best-price/fair-price table: the best
// available price for one side of one MarketGroup, with consensus
// context when the group was complete.
type BestRow struct {
	Key       market.GroupKey
	HomeTeam  string
	AwayTeam  string
	Side      market.Side
	Price     float64
	Bookmaker string

	// Consensus context; zero values when the group had no usable
	// consensus (incomplete or degenerate).
	FairPrice float64
	EdgePct   float64
	BookCount int
}

// Report holds everything one scan derived from one snapshot. A new
// snapshot produces an entirely new Report; nothing is updated in place.
type Report struct {
	GeneratedAt time.Time
	Events      int
	Groups      int

	Best  []BestRow
	Arbs  []arb.Opportunity
	Value []analysis.ValueBet
}
