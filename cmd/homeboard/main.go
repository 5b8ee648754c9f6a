// Homeboard - smart home dashboard core
//
// This is the main entry point for the Homeboard client core. It wires the
// local store, the REST gateway, the optimistic controller, the snapshot
// cache and the optional MQTT state feed together, then refreshes on a
// timer until shutdown.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sideduran/homeboard/internal/gateway"
	"github.com/sideduran/homeboard/internal/infrastructure/config"
	"github.com/sideduran/homeboard/internal/infrastructure/database"
	"github.com/sideduran/homeboard/internal/infrastructure/logging"
	"github.com/sideduran/homeboard/internal/infrastructure/mqtt"
	"github.com/sideduran/homeboard/internal/optimistic"
	"github.com/sideduran/homeboard/internal/snapshot"
	"github.com/sideduran/homeboard/internal/statefeed"
	"github.com/sideduran/homeboard/internal/store"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// snapshotSaveTimeout bounds the final cache write during shutdown.
const snapshotSaveTimeout = 5 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting Homeboard", "version", version, "commit", commit)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)

	st := store.New()

	// Snapshot cache: seed the store with last-known state before the
	// first refresh, and save on shutdown.
	var cache *snapshot.Cache
	if cfg.Snapshot.Enabled {
		cache, err = snapshot.Open(database.Config{
			Path:        cfg.Snapshot.Path,
			WALMode:     cfg.Snapshot.WALMode,
			BusyTimeout: cfg.Snapshot.BusyTimeout,
		})
		if err != nil {
			return fmt.Errorf("opening snapshot cache: %w", err)
		}
		defer func() {
			log.Info("closing snapshot cache")
			if closeErr := cache.Close(); closeErr != nil {
				log.Error("error closing snapshot cache", "error", closeErr)
			}
		}()

		snap, ok, loadErr := cache.Load(ctx)
		if loadErr != nil {
			log.Warn("snapshot cache unreadable, starting cold", "error", loadErr)
		} else if ok {
			st.Restore(snap)
			log.Info("store seeded from snapshot cache",
				"devices", len(snap.Devices),
				"scenes", len(snap.Scenes),
			)
		}
	} else {
		log.Info("snapshot cache disabled")
	}

	gw := gateway.New(cfg.Gateway.BaseURL, cfg.GatewayTimeout())
	notifier := optimistic.NotifierFunc(func(n optimistic.Notification) {
		switch n.Level {
		case optimistic.LevelError:
			log.Warn("notification", "message", n.Message, "entity", n.EntityID)
		default:
			log.Info("notification", "message", n.Message, "entity", n.EntityID)
		}
	})
	ctrl := optimistic.New(st, gw, notifier, log)

	// Optional MQTT state feed for live updates between refreshes.
	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT connected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		feed := statefeed.New(st, cfg.MQTT.TopicPrefix, byte(cfg.MQTT.QoS), log)
		if attachErr := feed.Attach(mqttClient); attachErr != nil {
			return fmt.Errorf("attaching state feed: %w", attachErr)
		}
		log.Info("state feed attached",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"prefix", cfg.MQTT.TopicPrefix,
		)
	} else {
		log.Info("MQTT state feed disabled")
	}

	// Initial load. A failure here is not fatal: the snapshot seed (if
	// any) keeps the dashboard usable and the refresh loop keeps retrying.
	if refreshErr := ctrl.RefreshAll(ctx); refreshErr != nil {
		log.Warn("initial refresh incomplete", "error", refreshErr)
	} else {
		log.Info("initial refresh complete",
			"devices", len(st.Devices()),
			"rooms", len(st.Rooms()),
		)
	}

	log.Info("initialisation complete, refreshing on interval",
		"interval", cfg.RefreshInterval(),
	)

	ticker := time.NewTicker(cfg.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if refreshErr := ctrl.RefreshAll(ctx); refreshErr != nil {
				log.Warn("refresh incomplete", "error", refreshErr)
			}
		case <-ctx.Done():
			log.Info("shutdown signal received, cleaning up")

			// Drain in-flight optimistic dispatches before persisting.
			ctrl.Wait()

			if cache != nil {
				saveCtx, cancel := context.WithTimeout(context.Background(), snapshotSaveTimeout)
				if saveErr := cache.Save(saveCtx, st.Snapshot()); saveErr != nil {
					log.Error("error saving snapshot", "error", saveErr)
				} else {
					log.Info("snapshot saved")
				}
				cancel()
			}

			log.Info("Homeboard stopped")
			return nil
		}
	}
}

// getConfigPath returns the configuration file path.
// Uses HOMEBOARD_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HOMEBOARD_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
