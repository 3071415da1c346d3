package odds

import (
	"strings"

	"odds-arb-scanner/internal/market"
)

// BestPrice is the single best quote for one side of a group.
type BestPrice struct {
	Side      market.Side
	Price     float64
	Bookmaker string
}

// Priority ranks bookmakers for best-price tie-breaking. Lower rank wins.
// Bookmakers absent from the configured list all share the worst rank, so
// ties among them fall through to snapshot order.
type Priority struct {
	rank map[string]int
	size int
}

// NewPriority builds a Priority from an ordered bookmaker list. Names are
// compared case-insensitively; the original sources mix title spellings.
func NewPriority(books []string) Priority {
	rank := make(map[string]int, len(books))
	for i, b := range books {
		key := strings.ToLower(strings.TrimSpace(b))
		if key == "" {
			continue
		}
		if _, ok := rank[key]; !ok {
			rank[key] = i
		}
	}
	return Priority{rank: rank, size: len(books)}
}

// Rank returns the priority rank for a bookmaker. Unlisted books rank
// after every listed one.
func (p Priority) Rank(book string) int {
	if r, ok := p.rank[strings.ToLower(strings.TrimSpace(book))]; ok {
		return r
	}
	return p.size
}

// SelectBest picks the best quote per side present in the group.
// Within a side: highest price wins; price ties go to the lower priority
// rank; rank ties go to whichever quote appeared first in the snapshot.
// Re-running on the same input always yields the same bookmaker.
func SelectBest(g *market.Group, pri Priority) map[market.Side]BestPrice {
	best := make(map[market.Side]BestPrice)
	bestRank := make(map[market.Side]int)

	for _, q := range g.Quotes {
		rank := pri.Rank(q.Bookmaker)
		cur, ok := best[q.Side]
		if !ok || q.Price > cur.Price || (q.Price == cur.Price && rank < bestRank[q.Side]) {
			best[q.Side] = BestPrice{Side: q.Side, Price: q.Price, Bookmaker: q.Bookmaker}
			bestRank[q.Side] = rank
		}
	}

	return best
}
