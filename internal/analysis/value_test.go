package analysis

import (
	"math"
	"testing"

	"odds-arb-scanner/internal/market"
	"odds-arb-scanner/internal/odds"
)

func TestFindValueBets(t *testing.T) {
	g := &market.Group{
		Key:      market.GroupKey{EventID: "ev1", Market: market.Moneyline2Way},
		HomeTeam: "Chiefs",
		AwayTeam: "Bills",
	}

	best := map[market.Side]odds.BestPrice{
		market.SideHome: {Side: market.SideHome, Price: 2.10, Bookmaker: "BookA"},
		market.SideAway: {Side: market.SideAway, Price: 1.90, Bookmaker: "BookB"},
	}
	// Home fair price 2.0: the 2.10 best is a 5% edge. Away fair 2.0:
	// the 1.90 best trails consensus.
	cons := map[market.Side]odds.SideConsensus{
		market.SideHome: {Prob: 0.5, FairPrice: 2.0, BookCount: 3},
		market.SideAway: {Prob: 0.5, FairPrice: 2.0, BookCount: 3},
	}

	t.Run("edge above floor flagged", func(t *testing.T) {
		bets := FindValueBets(g, best, cons, Config{MinEdgePct: 1.0, MinBookCount: 2})
		if len(bets) != 1 {
			t.Fatalf("Got %d bets, want 1", len(bets))
		}
		vb := bets[0]
		if vb.Side != market.SideHome {
			t.Errorf("Side = %s, want home", vb.Side)
		}
		if math.Abs(vb.EdgePct-5.0) > 1e-9 {
			t.Errorf("Edge = %.4f, want 5.0", vb.EdgePct)
		}
		if vb.Bookmaker != "BookA" || vb.BestPrice != 2.10 {
			t.Errorf("Best = %.2f@%s, want 2.10@BookA", vb.BestPrice, vb.Bookmaker)
		}
	})

	t.Run("edge floor filters", func(t *testing.T) {
		bets := FindValueBets(g, best, cons, Config{MinEdgePct: 6.0, MinBookCount: 2})
		if len(bets) != 0 {
			t.Errorf("Got %d bets, want 0 above a 6%% floor", len(bets))
		}
	})

	t.Run("thin book count filters", func(t *testing.T) {
		bets := FindValueBets(g, best, cons, Config{MinEdgePct: 1.0, MinBookCount: 4})
		if len(bets) != 0 {
			t.Errorf("Got %d bets, want 0 when consensus is too thin", len(bets))
		}
	})

	t.Run("missing consensus side skipped", func(t *testing.T) {
		partial := map[market.Side]odds.SideConsensus{
			market.SideAway: cons[market.SideAway],
		}
		bets := FindValueBets(g, best, partial, DefaultConfig())
		if len(bets) != 0 {
			t.Errorf("Got %d bets, want 0", len(bets))
		}
	})
}
