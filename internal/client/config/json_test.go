package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"data_dir":              "/srv/ishara",
		"slot_backend":          "redis",
		"auth_latency":          "1500ms",
		"auth_timeout":          2000000000,
		"auth_retries":          0,
		"health_endpoint_addr":  "www.example:9000",
		"online_check_interval": "10s",
		"metrics_file":          "",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := defaults()
		cfg.MetricsFile = "old.prom"
		parseJson(cfg)

		assert.Equal(t, "/srv/ishara", cfg.DataDir)
		assert.Equal(t, SlotBackendRedis, cfg.SlotBackend)
		assert.Equal(t, 1500*time.Millisecond, cfg.AuthLatency)
		assert.Equal(t, 2*time.Second, cfg.AuthTimeout)
		assert.Equal(t, 0, cfg.AuthRetries)
		assert.Equal(t, "www.example:9000", cfg.HealthEndpointAddr)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Empty(t, cfg.MetricsFile)

		assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := defaults()
		parseJson(cfg)
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "absent.json")}
		require.Panics(t, func() { parseJson(defaults()) })
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}
		require.Panics(t, func() { parseJson(defaults()) })
	})

	t.Run("invalid duration → panics", func(t *testing.T) {
		p := writeTempJSON(t, dir, "dur.json", map[string]any{"auth_timeout": "soonish"})
		os.Args = []string{"testbin", "-c", p}
		require.Panics(t, func() { parseJson(defaults()) })
	})
}
