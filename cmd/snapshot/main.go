// One-shot pipeline run over a snapshot file: prints the best-price and
// fair-price table, arbitrage scans, and a stake plan per opportunity.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"odds-arb-scanner/internal/alerts"
	"odds-arb-scanner/internal/config"
	"odds-arb-scanner/internal/engine"
	"odds-arb-scanner/internal/feed"
)

func main() {
	cfg := config.Load()

	snapshotPath := flag.String("snapshot", cfg.SnapshotPath, "path to snapshot JSON file")
	bank := flag.Float64("bank", cfg.Bankroll, "bankroll for arbitrage stake splits")
	minROI := flag.Float64("min-roi", cfg.MinROIPct, "minimum ROI percent to report")
	flag.Parse()

	cfg.SnapshotPath = *snapshotPath
	cfg.Bankroll = *bank
	cfg.MinROIPct = *minROI

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	source := feed.NewFileSource(cfg.SnapshotPath)
	notifier := alerts.NewNotifier(time.Nanosecond) // one-shot: no dedupe
	eng := engine.New(source, notifier, nil, cfg)

	report, err := eng.Scan(context.Background())
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	printBest(report)
	printArbs(report, cfg.Bankroll)
	printValue(report)
}

func printBest(report *engine.Report) {
	fmt.Printf("Best prices (%d events, %d groups):\n", report.Events, report.Groups)
	if len(report.Best) == 0 {
		fmt.Println("(no data)")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "fixture\tmarket\tline\tside\tbest\tbook\tfair\tedge%")
	for _, row := range report.Best {
		line := "-"
		if row.Key.Market.HasLine() {
			line = fmt.Sprintf("%+.1f", row.Key.Line)
		}
		fair, edge := "-", "-"
		if row.FairPrice > 0 {
			fair = fmt.Sprintf("%.2f", row.FairPrice)
			edge = fmt.Sprintf("%.2f", row.EdgePct)
		}
		fmt.Fprintf(w, "%s vs %s\t%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			row.HomeTeam, row.AwayTeam, row.Key.Market, line, row.Side,
			row.Price, row.Bookmaker, fair, edge)
	}
	w.Flush()
}

func printArbs(report *engine.Report, bank float64) {
	fmt.Println("\nArbitrage scans:")
	if len(report.Arbs) == 0 {
		fmt.Println("(none)")
		return
	}

	for _, opp := range report.Arbs {
		fmt.Printf("\n%s\n", opp.Describe())
		fmt.Printf("stake plan (bank=%.2f):\n", bank)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "side\tprice\tbook\tstake\tpayout")
		for _, leg := range opp.Legs {
			fmt.Fprintf(w, "%s\t%.2f\t%s\t%.2f\t%.2f\n",
				leg.Side, leg.Price, leg.Bookmaker, leg.Stake, leg.Payout)
		}
		w.Flush()
	}
}

func printValue(report *engine.Report) {
	fmt.Println("\nTop value spots:")
	if len(report.Value) == 0 {
		fmt.Println("(none)")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "fixture\tmarket\tside\tbest\tbook\tfair\tedge%\tbooks")
	for _, vb := range report.Value {
		fmt.Fprintf(w, "%s vs %s\t%s\t%s\t%.2f\t%s\t%.2f\t%.2f\t%d\n",
			vb.HomeTeam, vb.AwayTeam, vb.Key.Market, vb.Side,
			vb.BestPrice, vb.Bookmaker, vb.FairPrice, vb.EdgePct, vb.BookCount)
	}
	w.Flush()
}
