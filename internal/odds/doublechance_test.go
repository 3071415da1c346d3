package odds

import (
	"testing"

	"odds-arb-scanner/internal/market"
)

func TestDeriveDoubleChance(t *testing.T) {
	best := map[market.Side]BestPrice{
		market.SideHome: {Side: market.SideHome, Price: 2.10, Bookmaker: "BookA"},
		market.SideDraw: {Side: market.SideDraw, Price: 3.40, Bookmaker: "BookB"},
		market.SideAway: {Side: market.SideAway, Price: 4.20, Bookmaker: "BookC"},
	}

	dc, ok := DeriveDoubleChance(best)
	if !ok {
		t.Fatal("Expected derivation from a full 3-way best set")
	}

	tests := []struct {
		side     market.Side
		price    float64
		book     string
	}{
		{market.SideHomeOrDraw, 3.40, "BookB"},
		{market.SideHomeOrAway, 4.20, "BookC"},
		{market.SideDrawOrAway, 4.20, "BookC"},
	}
	for _, tt := range tests {
		got := dc[tt.side]
		if got.Price != tt.price || got.Bookmaker != tt.book {
			t.Errorf("%s = %.2f@%s, want %.2f@%s", tt.side, got.Price, got.Bookmaker, tt.price, tt.book)
		}
		if got.Side != tt.side {
			t.Errorf("%s carries side %s", tt.side, got.Side)
		}
	}
}

func TestDeriveDoubleChanceEqualPrices(t *testing.T) {
	// Equal constituent prices keep the first side's bookmaker.
	best := map[market.Side]BestPrice{
		market.SideHome: {Side: market.SideHome, Price: 3.0, Bookmaker: "BookA"},
		market.SideDraw: {Side: market.SideDraw, Price: 3.0, Bookmaker: "BookB"},
		market.SideAway: {Side: market.SideAway, Price: 3.0, Bookmaker: "BookC"},
	}

	dc, ok := DeriveDoubleChance(best)
	if !ok {
		t.Fatal("Expected derivation")
	}
	if dc[market.SideHomeOrDraw].Bookmaker != "BookA" {
		t.Errorf("home_or_draw book = %s, want BookA", dc[market.SideHomeOrDraw].Bookmaker)
	}
}

func TestDeriveDoubleChanceRequiresAllSides(t *testing.T) {
	best := map[market.Side]BestPrice{
		market.SideHome: {Side: market.SideHome, Price: 2.10, Bookmaker: "BookA"},
		market.SideAway: {Side: market.SideAway, Price: 4.20, Bookmaker: "BookC"},
	}

	if _, ok := DeriveDoubleChance(best); ok {
		t.Error("Derivation must refuse a partial 3-way set")
	}
}
