// README: Vehicle, simulation state and per-tick result definitions.
package tracking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tollsim/internal/modules/toll"
	"tollsim/internal/types"
)

type Phase string

const (
	PhasePending Phase = "pending"
	PhaseArrived Phase = "arrived"
	PhaseHalted  Phase = "halted"
)

// AllowedTransitions is the per-vehicle flow. Pending loops on itself while
// advancing or retrying a delayed payment; a denial halts everything.
var AllowedTransitions = map[Phase][]Phase{
	PhasePending: {PhasePending, PhaseArrived, PhaseHalted},
	PhaseArrived: {PhaseArrived, PhaseHalted},
}

func CanTransition(from, to Phase) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, p := range next {
		if p == to {
			return true
		}
	}
	return false
}

// Vehicle follows a fixed path. Index points at the next waypoint to be
// evaluated; Index == len(Path) means the vehicle has arrived.
type Vehicle struct {
	ID        int
	Path      []types.Point
	Index     int
	TotalToll types.Money
}

func (v *Vehicle) Arrived() bool {
	return v.Index >= len(v.Path)
}

func (v *Vehicle) Phase() Phase {
	if v.Arrived() {
		return PhaseArrived
	}
	return PhasePending
}

// State is everything one simulation run owns.
type State struct {
	RunID    uuid.UUID
	Booths   *toll.Registry
	Vehicles []*Vehicle
	Tracking bool
	Ticks    int
}

// AllArrived reports whether every vehicle reached the end of its path.
func (s *State) AllArrived() bool {
	for _, v := range s.Vehicles {
		if !v.Arrived() {
			return false
		}
	}
	return true
}

// TickResult describes what one tick did to one vehicle. Outcome is nil for
// vehicles that had already arrived.
type TickResult struct {
	VehicleID int           `json:"vehicle_id"`
	Index     int           `json:"index"`
	Position  types.Point   `json:"position"`
	Outcome   *toll.Outcome `json:"outcome,omitempty"`
	TotalToll types.Money   `json:"total_toll"`
	Phase     Phase         `json:"phase"`
	Arrived   bool          `json:"arrived"`
	Halted    bool          `json:"halted"`
}

// Lines renders the result as operator log lines.
func (r TickResult) Lines() []string {
	if r.Outcome == nil {
		return nil
	}
	switch r.Outcome.Status {
	case toll.StatusDenied:
		return []string{fmt.Sprintf("Payment denied for Vehicle %d. Stopping tracking.", r.VehicleID)}
	case toll.StatusDelayed:
		return []string{fmt.Sprintf("Vehicle %d at %s | Payment delayed.", r.VehicleID, r.Position)}
	}
	lines := []string{fmt.Sprintf("Vehicle %d at %s | Tolls: %v | Total Toll: %s",
		r.VehicleID, r.Position, r.Outcome.Charges, r.TotalToll)}
	if r.Arrived {
		lines = append(lines, fmt.Sprintf("Vehicle %d has reached the destination.", r.VehicleID))
	}
	return lines
}

// Batch is the result of one tick across all vehicles.
type Batch struct {
	RunID    uuid.UUID    `json:"run_id"`
	Tick     int          `json:"tick"`
	Tracking bool         `json:"tracking"`
	Results  []TickResult `json:"results"`
	Log      []string     `json:"log"`
	At       time.Time    `json:"at"`
}

// Halted reports whether this tick cleared tracking because of a denial.
func (b Batch) Halted() bool {
	for _, r := range b.Results {
		if r.Halted {
			return true
		}
	}
	return false
}

type VehicleView struct {
	ID        int           `json:"id"`
	Index     int           `json:"index"`
	PathLen   int           `json:"path_len"`
	Position  *types.Point  `json:"position,omitempty"`
	TotalToll types.Money   `json:"total_toll"`
	Arrived   bool          `json:"arrived"`
	Path      []types.Point `json:"path"`
	Route     string        `json:"route"`
}

type Snapshot struct {
	RunID    uuid.UUID     `json:"run_id"`
	Tracking bool          `json:"tracking"`
	Ticks    int           `json:"ticks"`
	Booths   []toll.Booth  `json:"booths"`
	Vehicles []VehicleView `json:"vehicles"`
}
