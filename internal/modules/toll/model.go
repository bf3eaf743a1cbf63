// README: Toll booths, evaluation outcomes and payment attempts.
package toll

import (
	"fmt"

	"tollsim/internal/modules/payment"
	"tollsim/internal/types"
)

type Booth struct {
	Name     string      `json:"name"`
	Location types.Point `json:"location"`
}

// DefaultBooths is the registry a fresh simulation starts from.
func DefaultBooths() []Booth {
	return []Booth{
		{Name: "Booth1", Location: types.Point{Lat: 28.7041, Lng: 77.1025}},
		{Name: "Booth2", Location: types.Point{Lat: 19.0760, Lng: 72.8777}},
		{Name: "Booth3", Location: types.Point{Lat: 13.0827, Lng: 80.2707}},
	}
}

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusDenied    Status = "denied"
	StatusDelayed   Status = "delayed"
)

// Attempt is one payment tried at a triggered booth.
type Attempt struct {
	Booth      string         `json:"booth"`
	DistanceKm float64        `json:"distance_km"`
	Amount     types.Money    `json:"amount"`
	Result     payment.Result `json:"result"`
}

// Message renders the attempt the way an operator notification reads.
func (a Attempt) Message(vehicleID int) string {
	switch a.Result {
	case payment.ResultDenied:
		return fmt.Sprintf("Payment failed for Vehicle %d at %s booth.", vehicleID, a.Booth)
	case payment.ResultDelayed:
		return fmt.Sprintf("Payment for Vehicle %d at %s booth is being processed. Please wait.", vehicleID, a.Booth)
	default:
		return fmt.Sprintf("Payment of %s succeeded for Vehicle %d at %s booth.", a.Amount, vehicleID, a.Booth)
	}
}

// Outcome is the result of evaluating one vehicle position against every
// booth. Total always equals the sum of Charges.
type Outcome struct {
	Charges  map[string]types.Money `json:"charges"`
	Total    types.Money            `json:"total"`
	Status   Status                 `json:"status"`
	Attempts []Attempt              `json:"attempts,omitempty"`
}

func (o *Outcome) charge(booth string, amount types.Money) {
	o.Charges[booth] = amount
	o.Total += amount
}
