package alerts

import (
	"testing"
	"time"

	"odds-arb-scanner/internal/arb"
	"odds-arb-scanner/internal/market"
)

func TestShouldFireCooldown(t *testing.T) {
	n := NewNotifier(time.Hour)

	if !n.shouldFire("arb-ev1-totals-2.50") {
		t.Error("First alert should fire")
	}
	if n.shouldFire("arb-ev1-totals-2.50") {
		t.Error("Repeat alert inside cooldown should not fire")
	}
	if !n.shouldFire("arb-ev2-totals-2.50") {
		t.Error("Different key should fire independently")
	}
}

func TestAlertArbDistinctDoubleChancePairs(t *testing.T) {
	n := NewNotifier(time.Hour)

	dcOpp := func(sides ...market.Side) arb.Opportunity {
		opp := arb.Opportunity{
			Key:      market.GroupKey{EventID: "ev1", Market: market.DoubleChance},
			HomeTeam: "Arsenal",
			AwayTeam: "Chelsea",
		}
		for _, s := range sides {
			opp.Legs = append(opp.Legs, arb.Leg{Side: s, Price: 2.2, Bookmaker: "BookA"})
		}
		return opp
	}

	// Two pairs for the same event share market and line; each must get
	// its own dedupe record.
	n.AlertArb(dcOpp(market.SideHomeOrDraw, market.SideDrawOrAway))
	n.AlertArb(dcOpp(market.SideHomeOrDraw, market.SideHomeOrAway))

	if got := len(n.lastAlerts); got != 2 {
		t.Fatalf("Recorded %d dedupe keys, want 2 (one per leg pair)", got)
	}

	// The same pair again stays deduped.
	n.AlertArb(dcOpp(market.SideHomeOrDraw, market.SideDrawOrAway))
	if got := len(n.lastAlerts); got != 2 {
		t.Errorf("Repeat of a pair added a key, got %d", got)
	}
}

func TestCleanupOldAlerts(t *testing.T) {
	n := NewNotifier(time.Minute)
	n.lastAlerts["stale"] = time.Now().Add(-2 * time.Hour)
	n.lastAlerts["fresh"] = time.Now()

	n.CleanupOldAlerts()

	if _, ok := n.lastAlerts["stale"]; ok {
		t.Error("Stale alert record should be removed")
	}
	if _, ok := n.lastAlerts["fresh"]; !ok {
		t.Error("Fresh alert record should survive cleanup")
	}
}
