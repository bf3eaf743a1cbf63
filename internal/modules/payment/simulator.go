// README: Mock contactless payment gateway with stochastic outcomes.
package payment

import (
	"errors"
	"fmt"
	"log/slog"

	"tollsim/internal/types"
)

var ErrInvalidProbability = errors.New("probability must be within [0, 1]")

// Source is the randomness the simulator draws from. *rand.Rand from
// math/rand/v2 satisfies it; tests substitute scripted draws.
type Source interface {
	Float64() float64
}

type Simulator struct {
	rng       Source
	denyProb  float64
	delayProb float64
}

func NewSimulator(rng Source, denyProb, delayProb float64) (*Simulator, error) {
	if !validProb(denyProb) {
		return nil, fmt.Errorf("deny probability %v: %w", denyProb, ErrInvalidProbability)
	}
	if !validProb(delayProb) {
		return nil, fmt.Errorf("delay probability %v: %w", delayProb, ErrInvalidProbability)
	}
	return &Simulator{rng: rng, denyProb: denyProb, delayProb: delayProb}, nil
}

// Process decides the payment with two independent draws: the first against
// the deny probability, the second against the delay probability. The delay
// draw happens only when the payment was not denied.
func (s *Simulator) Process(vehicleID int, booth string, amount types.Money) Result {
	result := ResultApproved
	if s.rng.Float64() < s.denyProb {
		result = ResultDenied
	} else if s.rng.Float64() < s.delayProb {
		result = ResultDelayed
	}
	slog.Debug("payment processed", "vehicle", vehicleID, "booth", booth, "amount", amount.String(), "result", string(result))
	return result
}

func validProb(p float64) bool {
	return p >= 0 && p <= 1
}
