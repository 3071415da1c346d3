package market

import "time"

// MarketType is the canonical market shape a quote belongs to.
type MarketType string

const (
	MatchResult3Way MarketType = "match_result_3way"
	Moneyline2Way   MarketType = "moneyline_2way"
	Totals          MarketType = "totals"
	Spreads         MarketType = "spreads"
	BothTeamsScore  MarketType = "both_teams_score"

	// DoubleChance is never produced by classification. Its prices are
	// derived from a complete 3-way group; the constant exists so derived
	// output and detected opportunities can be labeled.
	DoubleChance MarketType = "double_chance"
)

// Side is a canonical outcome within a market.
type Side string

const (
	SideHome  Side = "home"
	SideAway  Side = "away"
	SideDraw  Side = "draw"
	SideOver  Side = "over"
	SideUnder Side = "under"
	SideYes   Side = "yes"
	SideNo    Side = "no"

	// Derived double-chance sides.
	SideHomeOrDraw Side = "home_or_draw"
	SideHomeOrAway Side = "home_or_away"
	SideDrawOrAway Side = "draw_or_away"
)

// RequiredSides returns the full side set a group of this market type must
// cover to be complete. Returns nil for derived market types.
func (m MarketType) RequiredSides() []Side {
	switch m {
	case MatchResult3Way:
		return []Side{SideHome, SideDraw, SideAway}
	case Moneyline2Way:
		return []Side{SideHome, SideAway}
	case Totals:
		return []Side{SideOver, SideUnder}
	case Spreads:
		return []Side{SideHome, SideAway}
	case BothTeamsScore:
		return []Side{SideYes, SideNo}
	}
	return nil
}

// HasLine reports whether groups of this market type carry a point line.
func (m MarketType) HasLine() bool {
	return m == Totals || m == Spreads
}

// Quote is one bookmaker's decimal price for one canonical outcome.
// Price is always > 1.0 once a Quote exists; ingestion filters the rest.
type Quote struct {
	EventID    string
	HomeTeam   string
	AwayTeam   string
	Market     MarketType
	Side       Side
	Line       float64 // meaningful only when Market.HasLine()
	Bookmaker  string
	Price      float64
	ObservedAt time.Time // zero when the feed carried no timestamp
}

// GroupKey identifies a MarketGroup: all quotes for one event, one market
// type and, for lined markets, one exact line. Quotes at different lines
// never share a group.
type GroupKey struct {
	EventID string
	Market  MarketType
	Line    float64
}

// Group is the unit of comparison: every surviving Quote sharing a
// GroupKey, in snapshot order.
type Group struct {
	Key      GroupKey
	HomeTeam string
	AwayTeam string
	Quotes   []Quote
}

// SidesPresent returns the set of sides that have at least one quote.
func (g *Group) SidesPresent() map[Side]bool {
	present := make(map[Side]bool, len(g.Quotes))
	for _, q := range g.Quotes {
		present[q.Side] = true
	}
	return present
}

// Complete reports whether every side required by the group's market shape
// has at least one quote. Incomplete groups still feed best-price output
// but are excluded from consensus and arbitrage.
func (g *Group) Complete() bool {
	present := g.SidesPresent()
	required := g.Key.Market.RequiredSides()
	if len(required) == 0 {
		return false
	}
	for _, s := range required {
		if !present[s] {
			return false
		}
	}
	return true
}

// QuotesFor returns the quotes for one side, preserving snapshot order.
func (g *Group) QuotesFor(side Side) []Quote {
	var out []Quote
	for _, q := range g.Quotes {
		if q.Side == side {
			out = append(out, q)
		}
	}
	return out
}
