// README: Headless run of the simulation printing the operator log to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"tollsim/internal/app"
	"tollsim/internal/config"
	"tollsim/internal/infra"
	"tollsim/internal/modules/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	vehicles := flag.Int("vehicles", cfg.Tracking.Vehicles, "Number of vehicles to track")
	maxTicks := flag.Int("max-ticks", 100, "Stop after this many ticks")
	seed := flag.Uint64("seed", cfg.Tracking.Seed, "Random seed (0 = clock based)")
	interval := flag.Duration("interval", 0, "Pause between ticks")
	flag.Parse()

	if *vehicles < 1 {
		log.Fatalf("vehicles must be a positive integer, got %d", *vehicles)
	}
	cfg.Tracking.Vehicles = *vehicles
	cfg.Tracking.Seed = *seed
	slog.SetDefault(infra.NewLogger(os.Stderr, slog.LevelWarn))

	svc, err := app.NewTrackingService(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	for _, b := range svc.Booths(ctx) {
		fmt.Printf("Toll booth %s at %s\n", b.Name, b.Location)
	}
	if err := svc.Start(ctx); err != nil {
		log.Fatal(err)
	}

	for i := 0; i < *maxTicks; i++ {
		batch := svc.Tick(ctx)
		for _, r := range batch.Results {
			if r.Outcome == nil {
				continue
			}
			for _, a := range r.Outcome.Attempts {
				fmt.Println("  " + a.Message(r.VehicleID))
			}
		}
		for _, line := range batch.Log {
			fmt.Println(line)
		}
		if !batch.Tracking {
			fmt.Println("Tracking stopped.")
			break
		}
		if allArrived(svc.Snapshot(ctx).Vehicles) {
			fmt.Println("All vehicles reached their destination.")
			break
		}
		time.Sleep(*interval)
	}

	for _, v := range svc.Snapshot(ctx).Vehicles {
		fmt.Printf("Vehicle %d Total Toll: $%d\n", v.ID, v.TotalToll)
	}
}

func allArrived(vehicles []tracking.VehicleView) bool {
	for _, v := range vehicles {
		if !v.Arrived {
			return false
		}
	}
	return true
}
