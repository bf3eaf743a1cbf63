// README: Tick controller advancing every vehicle by one step.
package tracking

import (
	"log/slog"

	"tollsim/internal/modules/toll"
	"tollsim/internal/types"
)

type TollEvaluator interface {
	Evaluate(vehicleID int, pos types.Point, booths *toll.Registry) toll.Outcome
}

// Tick evaluates each vehicle's current waypoint once, in vehicle order, and
// applies the outcome:
//   - confirmed: the toll is added and the vehicle moves to its next waypoint
//   - delayed: nothing changes, the same waypoint is retried next tick
//   - denied: tracking is cleared and the remaining vehicles are skipped
//
// Arrived vehicles are reported as no-ops. Tick does nothing while tracking
// is off.
func Tick(s *State, ev TollEvaluator) []TickResult {
	if !s.Tracking {
		return nil
	}
	s.Ticks++

	results := make([]TickResult, 0, len(s.Vehicles))
	for _, v := range s.Vehicles {
		if v.Arrived() {
			results = append(results, arrivedResult(v))
			continue
		}

		prev := v.Phase()
		pos := v.Path[v.Index]
		out := ev.Evaluate(v.ID, pos, s.Booths)
		r := TickResult{VehicleID: v.ID, Index: v.Index, Position: pos, Outcome: &out}

		switch out.Status {
		case toll.StatusDenied:
			s.Tracking = false
			r.TotalToll = v.TotalToll
			r.Phase = PhaseHalted
			r.Halted = true
			checkTransition(v.ID, prev, r.Phase)
			return append(results, r)
		case toll.StatusDelayed:
		default:
			v.TotalToll += out.Total
			v.Index++
		}

		r.TotalToll = v.TotalToll
		r.Phase = v.Phase()
		r.Arrived = v.Arrived()
		checkTransition(v.ID, prev, r.Phase)
		results = append(results, r)
	}
	return results
}

func arrivedResult(v *Vehicle) TickResult {
	r := TickResult{
		VehicleID: v.ID,
		Index:     v.Index,
		TotalToll: v.TotalToll,
		Phase:     PhaseArrived,
		Arrived:   true,
	}
	if len(v.Path) > 0 {
		r.Position = v.Path[len(v.Path)-1]
	}
	return r
}

func checkTransition(vehicleID int, from, to Phase) {
	if !CanTransition(from, to) {
		slog.Error("unexpected vehicle transition", "vehicle", vehicleID, "from", string(from), "to", string(to))
	}
}
