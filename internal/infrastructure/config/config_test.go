package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
gateway:
  base_url: "http://hub.local:9090"
  timeout: 15
refresh:
  interval: 60
snapshot:
  enabled: true
  path: "/tmp/homeboard.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  enabled: true
  broker:
    host: "mqtt.local"
    port: 1883
    client_id: "homeboard-test"
  qos: 1
  topic_prefix: "home"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gateway.BaseURL != "http://hub.local:9090" {
		t.Errorf("Gateway.BaseURL = %q, want http://hub.local:9090", cfg.Gateway.BaseURL)
	}
	if cfg.GatewayTimeout() != 15*time.Second {
		t.Errorf("GatewayTimeout() = %v, want 15s", cfg.GatewayTimeout())
	}
	if cfg.RefreshInterval() != time.Minute {
		t.Errorf("RefreshInterval() = %v, want 1m", cfg.RefreshInterval())
	}
	if cfg.Snapshot.Path != "/tmp/homeboard.db" {
		t.Errorf("Snapshot.Path = %q, want /tmp/homeboard.db", cfg.Snapshot.Path)
	}
	if cfg.MQTT.TopicPrefix != "home" {
		t.Errorf("MQTT.TopicPrefix = %q, want home", cfg.MQTT.TopicPrefix)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "gateway: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing gateway url",
			mutate:  func(c *Config) { c.Gateway.BaseURL = "" },
			wantErr: "gateway.base_url",
		},
		{
			name:    "relative gateway url",
			mutate:  func(c *Config) { c.Gateway.BaseURL = "localhost:8080" },
			wantErr: "absolute URL",
		},
		{
			name:    "zero refresh interval",
			mutate:  func(c *Config) { c.Refresh.Interval = 0 },
			wantErr: "refresh.interval",
		},
		{
			name: "snapshot enabled without path",
			mutate: func(c *Config) {
				c.Snapshot.Enabled = true
				c.Snapshot.Path = ""
			},
			wantErr: "snapshot.path",
		},
		{
			name:    "invalid qos",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: "mqtt.qos",
		},
		{
			name: "mqtt enabled without host",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Broker.Host = ""
			},
			wantErr: "mqtt.broker.host",
		},
		{
			name:    "invalid sim port",
			mutate:  func(c *Config) { c.Sim.Port = 0 },
			wantErr: "sim.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("HOMEBOARD_GATEWAY_URL", "http://override:9999")
	t.Setenv("HOMEBOARD_SNAPSHOT_PATH", "/custom/cache.db")
	t.Setenv("HOMEBOARD_MQTT_HOST", "mqtt.example.com")
	t.Setenv("HOMEBOARD_MQTT_USERNAME", "testuser")
	t.Setenv("HOMEBOARD_MQTT_PASSWORD", "testpass")
	t.Setenv("HOMEBOARD_LOG_LEVEL", "debug")

	cfg := defaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Gateway.BaseURL != "http://override:9999" {
		t.Errorf("Gateway.BaseURL = %q, want override", cfg.Gateway.BaseURL)
	}
	if cfg.Snapshot.Path != "/custom/cache.db" {
		t.Errorf("Snapshot.Path = %q, want /custom/cache.db", cfg.Snapshot.Path)
	}
	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want mqtt.example.com", cfg.MQTT.Broker.Host)
	}
	if cfg.MQTT.Auth.Username != "testuser" || cfg.MQTT.Auth.Password != "testpass" {
		t.Error("MQTT credentials should be overridden")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
	if !cfg.Snapshot.WALMode {
		t.Error("snapshot cache should default to WAL mode")
	}
	if cfg.MQTT.Enabled {
		t.Error("mqtt should default to disabled")
	}
}
