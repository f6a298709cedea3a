package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"revpulse.io/internal/httpapi"
	"revpulse.io/internal/obs"
	"revpulse.io/internal/revenue"
	"revpulse.io/internal/stream"
)

var version = "0.3.1"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("REVPULSE_COMMIT"))

	cfg := revenue.DefaultConfig()
	if raw := os.Getenv("REVPULSE_SEED_TOTAL"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("REVPULSE_SEED_TOTAL: %v", err)
		}
		cfg.SeedTotal = seed
	}

	var simSeed int64
	if raw := os.Getenv("REVPULSE_SIM_SEED"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("REVPULSE_SIM_SEED: %v", err)
		}
		simSeed = v
	}

	events := stream.New()
	sim, err := revenue.NewController(cfg, nil, revenue.NewGenerator(simSeed),
		func(tx revenue.Transaction, total int64) {
			events.Publish(stream.Event{
				Transaction:  tx,
				RunningTotal: total,
				Timestamp:    time.Now().UTC(),
			})
		})
	if err != nil {
		log.Fatalf("simulation: %v", err)
	}
	sim.Start()
	obs.LogSim("start", map[string]any{"seed_total": cfg.SeedTotal})

	addr := os.Getenv("REVPULSE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	api := httpapi.New(version, sim, events)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		// No write timeout: /v1/stream holds SSE connections open.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting revpulse-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	sim.Close()
	obs.LogSim("shutdown", nil)
	log.Println("Stopped")
}
