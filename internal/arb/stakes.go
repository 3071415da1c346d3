package arb

import "fmt"

// Allocate splits a bankroll across an opportunity's legs so that the
// payout is identical no matter which side wins:
//
//	stake(side) = (bankroll / price(side)) / sumImplied
//
// The stakes sum to the bankroll (within floating-point tolerance) and
// the constant payout is what makes the opportunity risk-free. The legs
// are updated in place.
//
// A non-positive bankroll is invalid configuration, the one hard error
// this package surfaces.
func Allocate(o *Opportunity, bankroll float64) error {
	if bankroll <= 0 {
		return fmt.Errorf("bankroll must be positive, got %v", bankroll)
	}
	if o.SumImplied <= 0 {
		return fmt.Errorf("opportunity has invalid implied sum %v", o.SumImplied)
	}

	for i := range o.Legs {
		stake := (bankroll / o.Legs[i].Price) / o.SumImplied
		o.Legs[i].Stake = stake
		o.Legs[i].Payout = stake * o.Legs[i].Price
	}
	return nil
}
