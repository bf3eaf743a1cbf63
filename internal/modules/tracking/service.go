// README: Tracking service owns the simulation state and serialises ticks with user actions.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tollsim/internal/modules/location"
	"tollsim/internal/modules/toll"
	"tollsim/internal/types"
)

var (
	ErrInvalidVehicleCount = errors.New("vehicle count must be a positive integer")
	ErrNoBooths            = errors.New("at least one toll booth is required")
)

const DefaultVehicleCount = 3

// Source picks route endpoints. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// BoothStore persists booths added at runtime.
type BoothStore interface {
	List(ctx context.Context) ([]toll.Booth, error)
	Upsert(ctx context.Context, b toll.Booth) error
}

// Notifier receives every tick batch after the state has been updated.
type Notifier interface {
	Notify(ctx context.Context, b Batch) error
}

type Options struct {
	Vehicles  int
	NumPoints int
	Interval  time.Duration
}

type Deps struct {
	Evaluator TollEvaluator
	Booths    *toll.Registry
	Rand      Source
	Store     BoothStore
	Notifiers []Notifier
}

type Service struct {
	mu        sync.Mutex
	state     *State
	evaluator TollEvaluator
	rng       Source
	store     BoothStore
	notifiers []Notifier
	opts      Options
	wake      chan struct{}
}

func NewService(deps Deps, opts Options) (*Service, error) {
	if opts.Vehicles < 1 {
		return nil, fmt.Errorf("%d vehicles: %w", opts.Vehicles, ErrInvalidVehicleCount)
	}
	if deps.Booths == nil || deps.Booths.Len() == 0 {
		return nil, ErrNoBooths
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	s := &Service{
		evaluator: deps.Evaluator,
		rng:       deps.Rand,
		store:     deps.Store,
		notifiers: deps.Notifiers,
		opts:      opts,
		wake:      make(chan struct{}, 1),
	}
	vehicles, err := s.newVehicles(deps.Booths)
	if err != nil {
		return nil, err
	}
	s.state = &State{RunID: uuid.New(), Booths: deps.Booths, Vehicles: vehicles}
	return s, nil
}

// LoadBooths merges booths persisted by earlier runs into the registry.
// Vehicle routes are not regenerated until the next reset.
func (s *Service) LoadBooths(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	booths, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load booths: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range booths {
		if err := s.state.Booths.Add(b); err != nil {
			slog.Warn("skipping stored booth", "booth", b.Name, "err", err)
		}
	}
	return nil
}

// Start turns tracking on and wakes the scheduler, which ticks immediately.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	already := s.state.Tracking
	s.state.Tracking = true
	s.mu.Unlock()

	if !already {
		slog.Info("tracking started")
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// Stop turns tracking off. A tick already running completes first.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Tracking {
		slog.Info("tracking stopped")
	}
	s.state.Tracking = false
	return nil
}

// Reset stops tracking and starts a new run: fresh routes, zero tolls.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vehicles, err := s.newVehicles(s.state.Booths)
	if err != nil {
		return err
	}
	s.state = &State{RunID: uuid.New(), Booths: s.state.Booths, Vehicles: vehicles}
	slog.Info("simulation reset", "run", s.state.RunID.String(), "vehicles", len(vehicles))
	return nil
}

// AddBooth validates raw user input and registers the booth. The registry is
// left unchanged when validation or persistence fails.
func (s *Service) AddBooth(ctx context.Context, name, lat, lng string) (toll.Booth, error) {
	b, err := toll.ParseBooth(name, lat, lng)
	if err != nil {
		return toll.Booth{}, err
	}
	if s.store != nil {
		if err := s.store.Upsert(ctx, b); err != nil {
			return toll.Booth{}, fmt.Errorf("persist booth %q: %w", b.Name, err)
		}
	}

	s.mu.Lock()
	err = s.state.Booths.Add(b)
	s.mu.Unlock()
	if err != nil {
		return toll.Booth{}, err
	}
	slog.Info(fmt.Sprintf("Toll booth '%s' added at %s.", b.Name, b.Location))
	return b, nil
}

func (s *Service) Booths(ctx context.Context) []toll.Booth {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Booths.Booths()
}

func (s *Service) Tracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Tracking
}

// Tick runs one step of the simulation and hands the batch to notifiers.
// Nothing happens while tracking is off.
func (s *Service) Tick(ctx context.Context) Batch {
	s.mu.Lock()
	results := Tick(s.state, s.evaluator)
	batch := Batch{
		RunID:    s.state.RunID,
		Tick:     s.state.Ticks,
		Tracking: s.state.Tracking,
		Results:  results,
		At:       time.Now(),
	}
	s.mu.Unlock()

	if len(results) == 0 {
		return batch
	}
	for _, r := range results {
		batch.Log = append(batch.Log, r.Lines()...)
	}
	for _, line := range batch.Log {
		slog.Info(line, "run", batch.RunID.String(), "tick", batch.Tick)
	}
	s.notify(ctx, batch)
	return batch
}

func (s *Service) notify(ctx context.Context, b Batch) {
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, b); err != nil {
			slog.Warn("tick notification failed", "tick", b.Tick, "err", err)
		}
	}
}

func (s *Service) Snapshot(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		RunID:    s.state.RunID,
		Tracking: s.state.Tracking,
		Ticks:    s.state.Ticks,
		Booths:   s.state.Booths.Booths(),
		Vehicles: make([]VehicleView, len(s.state.Vehicles)),
	}
	for i, v := range s.state.Vehicles {
		view := VehicleView{
			ID:        v.ID,
			Index:     v.Index,
			PathLen:   len(v.Path),
			TotalToll: v.TotalToll,
			Arrived:   v.Arrived(),
			Path:      append([]types.Point(nil), v.Path...),
			Route:     location.EncodePolyline(v.Path),
		}
		if !v.Arrived() {
			pos := v.Path[v.Index]
			view.Position = &pos
		}
		snap.Vehicles[i] = view
	}
	return snap
}

// newVehicles routes each vehicle between two booths picked uniformly, with
// replacement, from the registry.
func (s *Service) newVehicles(booths *toll.Registry) ([]*Vehicle, error) {
	all := booths.Booths()
	if len(all) == 0 {
		return nil, ErrNoBooths
	}
	vehicles := make([]*Vehicle, s.opts.Vehicles)
	for i := range vehicles {
		start := all[s.rng.IntN(len(all))].Location
		end := all[s.rng.IntN(len(all))].Location
		path, err := location.GeneratePath(start, end, s.opts.NumPoints)
		if err != nil {
			return nil, err
		}
		vehicles[i] = &Vehicle{ID: i + 1, Path: path}
	}
	return vehicles, nil
}
