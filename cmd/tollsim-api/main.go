// README: Entry point; loads config, wires services, runs the HTTP API and the tick scheduler.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"tollsim/internal/app"
	"tollsim/internal/config"
	httptransport "tollsim/internal/http"
	"tollsim/internal/infra"
	"tollsim/internal/modules/toll"
	"tollsim/internal/modules/tracking"
	"tollsim/internal/realtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(infra.NewLogger(os.Stderr, cfg.LogLevel))
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub()
	notifiers := []tracking.Notifier{hub}

	var store tracking.BoothStore
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		store = toll.NewStore(dbPool)
	}
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer redisClient.Close()
		notifiers = append(notifiers, tracking.NewRedisPublisher(redisClient))
	}

	trackingSvc, err := app.NewTrackingService(cfg, store, notifiers...)
	if err != nil {
		log.Fatal(err)
	}
	if err := trackingSvc.LoadBooths(ctx); err != nil {
		log.Fatal(err)
	}

	server := httptransport.NewServer(httptransport.ServerDeps{
		Tracking: trackingSvc,
		Feed:     hub,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx, cfg.HTTP.Addr)
	})
	g.Go(func() error {
		trackingSvc.RunScheduler(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
