package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "ISHARA_"

// parseEnv overlays cfg with ISHARA_* variables. A .env file in the working
// directory is loaded first when present; real environment variables win
// over its entries. Malformed values panic, like malformed flags.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.SlotBackend = getEnv("SLOT_BACKEND", cfg.SlotBackend)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.AuthLatency = getEnvDuration("AUTH_LATENCY", cfg.AuthLatency)
	cfg.AuthTimeout = getEnvDuration("AUTH_TIMEOUT", cfg.AuthTimeout)
	cfg.AuthRetries = getEnvInt("AUTH_RETRIES", cfg.AuthRetries)
	cfg.HealthEndpointAddr = getEnv("HEALTH_ADDR", cfg.HealthEndpointAddr)
	cfg.OnlineCheckInterval = getEnvDuration("ONLINE_CHECK_INTERVAL", cfg.OnlineCheckInterval)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.MetricsFile = getEnv("METRICS_FILE", cfg.MetricsFile)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("%s%s: %w", envPrefix, key, err))
	}
	return n
}

// getEnvDuration accepts "3s"-style strings.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s%s: %w", envPrefix, key, err))
	}
	return d
}
