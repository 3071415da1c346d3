package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"odds-arb-scanner/internal/alerts"
	"odds-arb-scanner/internal/analysis"
	"odds-arb-scanner/internal/arb"
	"odds-arb-scanner/internal/config"
	"odds-arb-scanner/internal/feed"
	"odds-arb-scanner/internal/market"
	"odds-arb-scanner/internal/mathutil"
	"odds-arb-scanner/internal/odds"
	"odds-arb-scanner/internal/snapshots"
)

// Engine is the orchestrator: it pulls a snapshot, builds MarketGroups,
// prices them, detects arbitrage, and reports the derived artifacts.
type Engine struct {
	source   feed.Source
	notifier *alerts.Notifier
	store    *snapshots.Store // nil disables persistence
	cfg      config.Config

	pri       odds.Priority
	ingestCfg market.IngestConfig
	arbCfg    arb.Config
	valueCfg  analysis.Config
}

// New creates an Engine with all dependencies. store may be nil.
func New(source feed.Source, notifier *alerts.Notifier, store *snapshots.Store, cfg config.Config) *Engine {
	return &Engine{
		source:   source,
		notifier: notifier,
		store:    store,
		cfg:      cfg,
		pri:      odds.NewPriority(cfg.BookPriority),
		ingestCfg: market.IngestConfig{
			MinPrice:    cfg.MinPrice,
			MaxPrice:    cfg.MaxPrice,
			StaleAfter:  cfg.StaleAfter,
			SpreadLines: cfg.SpreadLines,
		},
		arbCfg:   arb.Config{MinROIPct: cfg.MinROIPct},
		valueCfg: analysis.Config{MinEdgePct: cfg.MinEdgePct, MinBookCount: cfg.MinBookCount},
	}
}

// Run starts the polling loop. It blocks until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(10 * time.Minute)
	defer cleanupTicker.Stop()

	slog.Info("Starting polling loop", "interval", e.cfg.PollInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scanner stopped gracefully")
			return

		case <-cleanupTicker.C:
			e.notifier.CleanupOldAlerts()

		case <-ticker.C:
			report, err := e.Scan(ctx)
			if err != nil {
				e.notifier.LogError("scan", err)
				continue
			}
			e.notifier.LogScan(report.Events, report.Groups, len(report.Arbs), len(report.Value))
		}
	}
}

// Scan performs one full pipeline cycle over the current snapshot and
// returns the derived report. Alerting and persistence happen here;
// all group-level work is pure and fans out across workers.
func (e *Engine) Scan(ctx context.Context) (*Report, error) {
	events, err := e.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}

	groups := market.BuildGroups(events, e.ingestCfg)

	report := &Report{
		GeneratedAt: time.Now().UTC(),
		Events:      len(events),
		Groups:      len(groups),
	}

	// Every group is independent of every other, so the per-group work
	// is spread over a bounded worker pool with no coordination.
	results := make([]groupResult, len(groups))
	jobs := make(chan int)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(groups) {
		workers = len(groups)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.processGroup(groups[i])
			}
		}()
	}
	for i := range groups {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Reassemble in snapshot order so output is reproducible.
	for _, res := range results {
		report.Best = append(report.Best, res.best...)
		report.Arbs = append(report.Arbs, res.arbs...)
		report.Value = append(report.Value, res.value...)
	}

	for _, opp := range report.Arbs {
		e.notifier.AlertArb(opp)
	}
	for _, vb := range report.Value {
		e.notifier.AlertValue(vb)
	}

	if e.store != nil {
		if _, err := e.persist(report); err != nil {
			e.notifier.LogError("persisting run", err)
		}
	}

	return report, nil
}

type groupResult struct {
	best  []BestRow
	arbs  []arb.Opportunity
	value []analysis.ValueBet
}

func (e *Engine) processGroup(g *market.Group) groupResult {
	var res groupResult

	best := odds.SelectBest(g, e.pri)
	cons, hasCons := odds.Consensus(g)

	// Best prices are reported for every side present, complete group or
	// not; fair price and edge attach only when consensus exists.
	for _, side := range g.Key.Market.RequiredSides() {
		bp, ok := best[side]
		if !ok {
			continue
		}
		row := BestRow{
			Key:       g.Key,
			HomeTeam:  g.HomeTeam,
			AwayTeam:  g.AwayTeam,
			Side:      side,
			Price:     bp.Price,
			Bookmaker: bp.Bookmaker,
		}
		if hasCons {
			sc := cons[side]
			row.FairPrice = sc.FairPrice
			row.EdgePct = odds.EdgePct(bp.Price, sc.FairPrice)
			row.BookCount = sc.BookCount
		}
		res.best = append(res.best, row)
	}

	if hasCons {
		res.value = analysis.FindValueBets(g, best, cons, e.valueCfg)
	}

	if opp := arb.Detect(g, best, e.arbCfg); opp != nil {
		res.arbs = append(res.arbs, *opp)
	}

	if g.Key.Market == market.MatchResult3Way {
		if dc, ok := odds.DeriveDoubleChance(best); ok {
			res.arbs = append(res.arbs, arb.DetectDoubleChance(g, dc, e.arbCfg)...)
		}
	}

	for i := range res.arbs {
		if err := arb.Allocate(&res.arbs[i], e.cfg.Bankroll); err != nil {
			// Validate rejects non-positive bankrolls before the engine
			// runs; reaching this means broken wiring, not bad data.
			slog.Error("stake allocation failed", "err", err)
		}
	}

	return res
}

func (e *Engine) persist(report *Report) (string, error) {
	run := snapshots.Run{
		GeneratedAt: report.GeneratedAt,
		Events:      report.Events,
		Groups:      report.Groups,
	}

	best := make([]snapshots.BestPriceRecord, 0, len(report.Best))
	for _, row := range report.Best {
		best = append(best, snapshots.BestPriceRecord{
			EventID:   row.Key.EventID,
			HomeTeam:  row.HomeTeam,
			AwayTeam:  row.AwayTeam,
			Market:    string(row.Key.Market),
			Line:      row.Key.Line,
			Side:      string(row.Side),
			Price:     row.Price,
			Bookmaker: row.Bookmaker,
			FairPrice: row.FairPrice,
			EdgePct:   row.EdgePct,
		})
	}

	arbs := make([]snapshots.ArbRecord, 0, len(report.Arbs))
	for _, opp := range report.Arbs {
		rec := snapshots.ArbRecord{
			EventID:    opp.Key.EventID,
			HomeTeam:   opp.HomeTeam,
			AwayTeam:   opp.AwayTeam,
			Market:     string(opp.Key.Market),
			Line:       opp.Key.Line,
			SumImplied: opp.SumImplied,
			ROIPct:     opp.ROIPct,
		}
		// Stored stakes and payouts are money amounts for a renderer;
		// round to cents, keeping the raw floats in the report.
		for _, l := range opp.Legs {
			rec.Legs = append(rec.Legs, snapshots.LegRecord{
				Side:      string(l.Side),
				Price:     l.Price,
				Bookmaker: l.Bookmaker,
				Stake:     mathutil.RoundTo(l.Stake, 2),
				Payout:    mathutil.RoundTo(l.Payout, 2),
			})
		}
		arbs = append(arbs, rec)
	}

	return e.store.ReplaceLatest(run, best, arbs)
}
