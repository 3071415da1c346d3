package arb

import (
	"testing"

	"odds-arb-scanner/internal/market"
	"odds-arb-scanner/internal/mathutil"
)

func TestAllocateEqualPayouts(t *testing.T) {
	opp := &Opportunity{
		Key: market.GroupKey{EventID: "ev1", Market: market.MatchResult3Way},
		Legs: []Leg{
			{Side: market.SideHome, Price: 2.40, Bookmaker: "BookA"},
			{Side: market.SideDraw, Price: 3.60, Bookmaker: "BookB"},
			{Side: market.SideAway, Price: 4.50, Bookmaker: "BookC"},
		},
		SumImplied: 1.0/2.40 + 1.0/3.60 + 1.0/4.50,
	}

	if err := Allocate(opp, 100.0); err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	stakes := make([]float64, 0, len(opp.Legs))
	for _, l := range opp.Legs {
		stakes = append(stakes, l.Stake)
	}
	if sum := mathutil.SumFloat64(stakes); !mathutil.EqualWithin(sum, 100.0, 1e-6) {
		t.Errorf("Stakes sum to %.8f, want 100", sum)
	}

	first := opp.Legs[0].Payout
	for _, l := range opp.Legs {
		if !mathutil.EqualWithin(l.Payout, first, 1e-6) {
			t.Errorf("Payout for %s = %.8f, differs from %.8f", l.Side, l.Payout, first)
		}
	}

	// stake = (100 / price) / 0.91667: home 45.45, draw 30.30, away 24.24,
	// each paying about 109.09.
	wantStakes := []float64{45.4545, 30.3030, 24.2424}
	for i, want := range wantStakes {
		if !mathutil.EqualWithin(opp.Legs[i].Stake, want, 1e-3) {
			t.Errorf("Stake[%d] = %.4f, want %.4f", i, opp.Legs[i].Stake, want)
		}
	}
	if !mathutil.EqualWithin(first, 109.0909, 1e-3) {
		t.Errorf("Payout = %.4f, want 109.0909", first)
	}
}

func TestAllocateInvalidBankroll(t *testing.T) {
	opp := &Opportunity{
		Legs: []Leg{
			{Side: market.SideHome, Price: 2.10},
			{Side: market.SideAway, Price: 2.05},
		},
		SumImplied: 1.0/2.10 + 1.0/2.05,
	}

	for _, bankroll := range []float64{0, -50} {
		if err := Allocate(opp, bankroll); err == nil {
			t.Errorf("Allocate(%v) should error", bankroll)
		}
	}
	for _, l := range opp.Legs {
		if l.Stake != 0 || l.Payout != 0 {
			t.Errorf("Failed allocation must not touch legs: %+v", l)
		}
	}
}
