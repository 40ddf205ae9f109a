package config

import "time"

// Config holds runtime settings for the Ishara CLI.
//
// Durations are time.Duration values; flags take them in the units noted in
// flags.go.
type Config struct {
	DataDir     string
	SlotBackend string
	RedisAddr   string

	AuthLatency time.Duration
	AuthTimeout time.Duration
	AuthRetries int

	HealthEndpointAddr  string
	OnlineCheckInterval time.Duration

	LogLevel    string
	MetricsFile string
}

const (
	SlotBackendSQLite = "sqlite"
	SlotBackendRedis  = "redis"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.SlotBackend = SlotBackendSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.AuthLatency = time.Second
	c.AuthTimeout = 5 * time.Second
	c.AuthRetries = 2
	c.HealthEndpointAddr = ""
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
	c.MetricsFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
