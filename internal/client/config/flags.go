package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/ishara/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-d string   data directory for the SQLite slot
//	-b string   slot backend: sqlite or redis
//	-r string   redis address
//	-l int      mock auth latency (milliseconds)
//	-t int      per-attempt auth timeout (seconds)
//	-n int      auth retries after the first attempt
//	-a string   gRPC health endpoint; empty disables the probe
//	-i int      online check interval (seconds)
//	-v string   log level
//	-m string   metrics textfile written on exit
//
// os.Args is filtered with flagx.FilterArgs so -c/-config and unknown flags
// do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-d", "-b", "-r", "-l", "-t", "-n", "-a", "-i", "-v", "-m",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.SlotBackend, "b", cfg.SlotBackend, "session slot backend (sqlite|redis)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	authLatency := fs.Int("l", int(cfg.AuthLatency.Milliseconds()), "mock auth latency (in milliseconds)")
	authTimeout := fs.Int("t", int(cfg.AuthTimeout.Seconds()), "auth attempt timeout (in seconds)")
	fs.IntVar(&cfg.AuthRetries, "n", cfg.AuthRetries, "auth retries")
	fs.StringVar(&cfg.HealthEndpointAddr, "a", cfg.HealthEndpointAddr, "address and port of the gRPC health endpoint")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug|info|warn|error)")
	fs.StringVar(&cfg.MetricsFile, "m", cfg.MetricsFile, "metrics textfile path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Integer duration flags are coarser than env and JSON values, so they
	// only replace them when given explicitly.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "l":
			cfg.AuthLatency = time.Duration(*authLatency) * time.Millisecond
		case "t":
			cfg.AuthTimeout = time.Duration(*authTimeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}
