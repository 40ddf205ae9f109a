package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/ishara/internal/flagx"
	"github.com/dmitrijs2005/ishara/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Only keys
// present in the file override earlier values; pointer fields keep an
// explicit zero apart from a missing key.
type JsonConfig struct {
	DataDir             string          `json:"data_dir"`
	SlotBackend         string          `json:"slot_backend"`
	RedisAddr           string          `json:"redis_addr"`
	AuthLatency         *timex.Duration `json:"auth_latency"`
	AuthTimeout         *timex.Duration `json:"auth_timeout"`
	AuthRetries         *int            `json:"auth_retries"`
	HealthEndpointAddr  *string         `json:"health_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogLevel            string          `json:"log_level"`
	MetricsFile         *string         `json:"metrics_file"`
}

// parseJson overlays cfg with the file named by -c or -config. Without either
// flag it does nothing. Read and unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.SlotBackend != "" {
		cfg.SlotBackend = jc.SlotBackend
	}
	if jc.RedisAddr != "" {
		cfg.RedisAddr = jc.RedisAddr
	}
	if jc.AuthLatency != nil {
		cfg.AuthLatency = jc.AuthLatency.Duration
	}
	if jc.AuthTimeout != nil {
		cfg.AuthTimeout = jc.AuthTimeout.Duration
	}
	if jc.AuthRetries != nil {
		cfg.AuthRetries = *jc.AuthRetries
	}
	if jc.HealthEndpointAddr != nil {
		cfg.HealthEndpointAddr = *jc.HealthEndpointAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.MetricsFile != nil {
		cfg.MetricsFile = *jc.MetricsFile
	}
}
