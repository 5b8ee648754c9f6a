package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Homeboard.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Gateway  GatewayConfig  `yaml:"gateway"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Sim      SimConfig      `yaml:"sim"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GatewayConfig contains backend REST gateway settings.
type GatewayConfig struct {
	// BaseURL is the scheme and host of the backend, e.g. "http://localhost:8080".
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout in seconds. 0 applies the client default.
	Timeout int `yaml:"timeout"`
}

// RefreshConfig controls the periodic full-state reload from the gateway.
type RefreshConfig struct {
	// Interval between full refreshes, in seconds.
	Interval int `yaml:"interval"`
}

// SnapshotConfig contains the local last-known-state cache settings.
type SnapshotConfig struct {
	// Enabled toggles the SQLite snapshot cache.
	Enabled bool `yaml:"enabled"`

	// Path is the filesystem path to the SQLite cache file.
	Path string `yaml:"path"`

	// WALMode enables Write-Ahead Logging.
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the maximum time to wait for a database lock (seconds).
	BusyTimeout int `yaml:"busy_timeout"`
}

// MQTTConfig contains the optional state-feed broker settings. When enabled,
// retained state messages from the backend invalidate the local cache
// between refreshes.
type MQTTConfig struct {
	Enabled     bool                `yaml:"enabled"`
	Broker      MQTTBrokerConfig    `yaml:"broker"`
	Auth        MQTTAuthConfig      `yaml:"auth"`
	QoS         int                 `yaml:"qos"`
	TopicPrefix string              `yaml:"topic_prefix"`
	Reconnect   MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// SimConfig contains the development backend simulator's listen settings.
type SimConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum level to emit: debug, info, warn, error.
	Level string `yaml:"level"`

	// Format selects the handler: json or text.
	Format string `yaml:"format"`

	// Output selects the destination: stdout or stderr.
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: HOMEBOARD_SECTION_KEY
// For example: HOMEBOARD_GATEWAY_URL, HOMEBOARD_SNAPSHOT_PATH
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Gateway: GatewayConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10,
		},
		Refresh: RefreshConfig{
			Interval: 30,
		},
		Snapshot: SnapshotConfig{
			Enabled:     true,
			Path:        "./data/homeboard.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Enabled: false,
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "homeboard",
			},
			QoS:         1,
			TopicPrefix: "homeboard",
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		Sim: SimConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: HOMEBOARD_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HOMEBOARD_GATEWAY_URL"); v != "" {
		cfg.Gateway.BaseURL = v
	}
	if v := os.Getenv("HOMEBOARD_SNAPSHOT_PATH"); v != "" {
		cfg.Snapshot.Path = v
	}
	if v := os.Getenv("HOMEBOARD_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("HOMEBOARD_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("HOMEBOARD_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
	if v := os.Getenv("HOMEBOARD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Gateway.BaseURL == "" {
		errs = append(errs, "gateway.base_url is required")
	} else if u, err := url.Parse(c.Gateway.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "gateway.base_url must be an absolute URL")
	}
	if c.Gateway.Timeout < 0 {
		errs = append(errs, "gateway.timeout must not be negative")
	}

	if c.Refresh.Interval < 1 {
		errs = append(errs, "refresh.interval must be at least 1 second")
	}

	if c.Snapshot.Enabled && c.Snapshot.Path == "" {
		errs = append(errs, "snapshot.path is required when the snapshot cache is enabled")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
	}

	if c.Sim.Port < 1 || c.Sim.Port > 65535 {
		errs = append(errs, "sim.port must be between 1 and 65535")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// GatewayTimeout returns the gateway request timeout as a Duration.
func (c *Config) GatewayTimeout() time.Duration {
	return time.Duration(c.Gateway.Timeout) * time.Second
}

// RefreshInterval returns the periodic refresh interval as a Duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Refresh.Interval) * time.Second
}
