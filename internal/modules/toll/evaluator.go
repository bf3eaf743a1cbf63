// README: Toll evaluator scans booths around one vehicle position and charges them.
package toll

import (
	"tollsim/internal/modules/location"
	"tollsim/internal/modules/payment"
	"tollsim/internal/types"
)

// Quoter supplies the amount a triggered booth charges.
type Quoter interface {
	Quote() types.Money
}

type Evaluator struct {
	radiusKm float64
	pricing  Quoter
	gateway  payment.Gateway
}

func NewEvaluator(radiusKm float64, pricing Quoter, gateway payment.Gateway) *Evaluator {
	return &Evaluator{radiusKm: radiusKm, pricing: pricing, gateway: gateway}
}

// Evaluate charges every booth closer than the radius, in registry order.
// The first denied or delayed payment ends the scan; charges made before it
// are kept and the interrupting booth is not charged.
func (e *Evaluator) Evaluate(vehicleID int, pos types.Point, booths *Registry) Outcome {
	out := Outcome{Charges: map[string]types.Money{}, Status: StatusConfirmed}
	for _, b := range booths.Booths() {
		dist := location.DistanceKm(pos, b.Location)
		if dist >= e.radiusKm {
			continue
		}
		amount := e.pricing.Quote()
		result := e.gateway.Process(vehicleID, b.Name, amount)
		out.Attempts = append(out.Attempts, Attempt{Booth: b.Name, DistanceKm: dist, Amount: amount, Result: result})

		switch result {
		case payment.ResultDenied:
			out.Status = StatusDenied
			return out
		case payment.ResultDelayed:
			out.Status = StatusDelayed
			return out
		default:
			out.charge(b.Name, amount)
		}
	}
	return out
}
