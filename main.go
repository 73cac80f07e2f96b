package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goldrates/internal/aggregator"
	"goldrates/internal/config"
	"goldrates/internal/fetcher"
	"goldrates/internal/provider"
	"goldrates/internal/resolver"
	"goldrates/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// Shared transport for both resolvers
	client := fetcher.New(cfg.FetchTimeout, cfg.FetchRetries, cfg.BackoffBase)

	// The gold leg accepts any finite positive spot price; the rate leg
	// additionally enforces the configured plausibility band.
	goldResolver := resolver.New(
		"gold",
		provider.GoldSpecs(cfg),
		resolver.Positive(),
		cfg.FallbackGoldUSD,
		"USD/oz",
		client,
	)
	rateResolver := resolver.New(
		"rate",
		provider.ForexSpecs(cfg),
		resolver.InRange(cfg.ValidMinRate, cfg.ValidMaxRate),
		cfg.FallbackRate,
		cfg.TargetCurrency,
		client,
	)

	agg := aggregator.New(goldResolver, rateResolver)
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(agg, cfg.FetchTimeout*2).Handler(),
	}

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("serving gold prices",
			"addr", cfg.ListenAddr,
			"pair", cfg.BaseCurrency+"/"+cfg.TargetCurrency)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case <-sigChan:
		fmt.Println("\nReceived interrupt signal, shutting down...")
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Shutdown failed: %v", err)
	}
}
