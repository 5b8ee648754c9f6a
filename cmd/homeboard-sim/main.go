// Homeboard simulator - in-memory development backend
//
// Serves the full REST contract the dashboard core talks to, seeded with a
// demo home, so the client can be developed and tested without real
// hardware.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sideduran/homeboard/internal/infrastructure/config"
	"github.com/sideduran/homeboard/internal/infrastructure/logging"
	"github.com/sideduran/homeboard/internal/sim"
)

var version = "dev"

const defaultConfigPath = "configs/config.yaml"

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log := logging.Default()

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log = logging.New(cfg.Logging, version).With("component", "sim")

	state := sim.NewState()
	state.Seed()

	addr := net.JoinHostPort(cfg.Sim.Host, strconv.Itoa(cfg.Sim.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      sim.Handler(state),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("simulator listening", "addr", addr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info("simulator stopped")
	return nil
}

func getConfigPath() string {
	if path := os.Getenv("HOMEBOARD_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
