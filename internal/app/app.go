// README: Builds the tracking service and its collaborators from configuration.
package app

import (
	"math/rand/v2"
	"time"

	"tollsim/internal/config"
	"tollsim/internal/modules/payment"
	"tollsim/internal/modules/pricing"
	"tollsim/internal/modules/toll"
	"tollsim/internal/modules/tracking"
)

// NewRand returns the simulation's random source. A zero seed derives one
// from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTrackingService wires pricing, payment and toll evaluation into a
// tracking service. store may be nil.
func NewTrackingService(cfg config.Config, store tracking.BoothStore, notifiers ...tracking.Notifier) (*tracking.Service, error) {
	rng := NewRand(cfg.Tracking.Seed)

	quotes, err := pricing.NewService(cfg.Toll.Tariff, rng)
	if err != nil {
		return nil, err
	}
	gateway, err := payment.NewSimulator(rng, cfg.Payment.DenyProbability, cfg.Payment.DelayProbability)
	if err != nil {
		return nil, err
	}
	booths, err := toll.NewRegistry(cfg.Booths...)
	if err != nil {
		return nil, err
	}

	return tracking.NewService(tracking.Deps{
		Evaluator: toll.NewEvaluator(cfg.Toll.RadiusKm, quotes, gateway),
		Booths:    booths,
		Rand:      rng,
		Store:     store,
		Notifiers: notifiers,
	}, tracking.Options{
		Vehicles:  cfg.Tracking.Vehicles,
		NumPoints: cfg.Tracking.NumPoints,
		Interval:  cfg.Tracking.Interval,
	})
}
