package market

import (
	"math"
	"strings"
	"time"

	"odds-arb-scanner/internal/feed"
)

// IngestConfig holds the ingestion-time filters. All of it is policy
// supplied by the caller; none of it changes classification semantics.
type IngestConfig struct {
	// MinPrice and MaxPrice bound acceptable decimal odds. MinPrice must
	// exceed 1.0; quotes outside the range are filtered, not errors.
	MinPrice float64
	MaxPrice float64

	// StaleAfter drops quotes whose timestamp is older than the cutoff.
	// Zero disables the filter. Quotes with no parseable timestamp are
	// kept: provider timestamps are best-effort.
	StaleAfter time.Duration

	// SpreadLines, when non-empty, restricts spreads to these lines.
	// Quotes at other lines are treated as not present.
	SpreadLines []float64

	// Now anchors staleness checks; zero means time.Now().
	Now time.Time
}

// DefaultIngestConfig returns the sanity bounds the pipeline normally
// runs with: odds in [1.01, 1000], no staleness or spread-line filter.
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		MinPrice: 1.01,
		MaxPrice: 1000.0,
	}
}

// BuildGroups flattens raw snapshot events into canonical quotes and
// collects them into MarketGroups. Unclassifiable outcomes, invalid
// prices and stale quotes are dropped silently; group order follows
// first appearance in the snapshot, quote order within a group follows
// snapshot order. That determinism is what the best-price tie-break
// leans on.
func BuildGroups(events []feed.Event, cfg IngestConfig) []*Group {
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}

	groups := make(map[GroupKey]*Group)
	var order []GroupKey

	add := func(q Quote) {
		key := GroupKey{EventID: q.EventID, Market: q.Market}
		if q.Market.HasLine() {
			key.Line = q.Line
		}
		g, ok := groups[key]
		if !ok {
			g = &Group{Key: key, HomeTeam: q.HomeTeam, AwayTeam: q.AwayTeam}
			groups[key] = g
			order = append(order, key)
		}
		g.Quotes = append(g.Quotes, q)
	}

	for _, ev := range events {
		if ev.ID == "" || ev.HomeTeam == "" || ev.AwayTeam == "" {
			continue
		}

		// h2h quotes are held back: the group is 3-way only when a draw
		// outcome actually belongs to this event's h2h market.
		var h2h []Quote

		for _, bm := range ev.Bookmakers {
			if bm.Title == "" && bm.Key == "" {
				continue
			}
			book := bm.Title
			if book == "" {
				book = bm.Key
			}

			for _, m := range bm.Markets {
				observed := parseObserved(m.LastUpdate, bm.LastUpdate)
				if stale(observed, now, cfg.StaleAfter) {
					continue
				}

				for _, o := range m.Outcomes {
					if o.Name == "" || !validPrice(o.Price, cfg) {
						continue
					}

					q := Quote{
						EventID:    ev.ID,
						HomeTeam:   ev.HomeTeam,
						AwayTeam:   ev.AwayTeam,
						Bookmaker:  book,
						Price:      o.Price,
						ObservedAt: observed,
					}

					switch m.Key {
					case RawKeyH2H:
						side, ok := ClassifyH2H(o.Name, ev.HomeTeam, ev.AwayTeam)
						if !ok {
							continue
						}
						q.Side = side
						h2h = append(h2h, q)

					case RawKeyTotals:
						side, ok := ClassifyTotals(o.Name)
						if !ok || o.Point == nil {
							continue
						}
						q.Market = Totals
						q.Side = side
						q.Line = *o.Point
						add(q)

					case RawKeySpreads:
						side, ok := ClassifySpreads(o.Name, ev.HomeTeam, ev.AwayTeam)
						if !ok || o.Point == nil {
							continue
						}
						if !lineAllowed(*o.Point, cfg.SpreadLines) {
							continue
						}
						q.Market = Spreads
						q.Side = side
						q.Line = *o.Point
						add(q)

					case RawKeyBTTS:
						side, ok := ClassifyBTTS(o.Name)
						if !ok {
							continue
						}
						q.Market = BothTeamsScore
						q.Side = side
						add(q)
					}
				}
			}
		}

		// Resolve the h2h shape for this event and emit.
		shape := Moneyline2Way
		for _, q := range h2h {
			if q.Side == SideDraw {
				shape = MatchResult3Way
				break
			}
		}
		for _, q := range h2h {
			q.Market = shape
			add(q)
		}
	}

	out := make([]*Group, 0, len(order))
	for _, key := range order {
		out = append(out, groups[key])
	}
	return out
}

func validPrice(price float64, cfg IngestConfig) bool {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return false
	}
	if price <= 1.0 {
		return false
	}
	if cfg.MinPrice > 0 && price < cfg.MinPrice {
		return false
	}
	if cfg.MaxPrice > 0 && price > cfg.MaxPrice {
		return false
	}
	return true
}

func lineAllowed(line float64, allowed []float64) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, l := range allowed {
		if l == line {
			return true
		}
	}
	return false
}

// parseObserved resolves a quote timestamp from the market-level value,
// falling back to the bookmaker-level one. Returns zero when neither
// parses; callers treat zero as "no timestamp".
func parseObserved(marketTS, bookTS string) time.Time {
	for _, raw := range []string{marketTS, bookTS} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func stale(observed, now time.Time, cutoff time.Duration) bool {
	if cutoff <= 0 || observed.IsZero() {
		return false
	}
	return now.Sub(observed) > cutoff
}
