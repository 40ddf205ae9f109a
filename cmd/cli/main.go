package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/ishara/internal/buildinfo"
	"github.com/dmitrijs2005/ishara/internal/client/cli"
	"github.com/dmitrijs2005/ishara/internal/client/config"
	"github.com/dmitrijs2005/ishara/internal/logging"
)

// start prints build info to stdout and builds the app from the process
// configuration, logging to stderr.
func start(ctx context.Context, stdout, stderr io.Writer) (*cli.App, error) {
	buildinfo.PrintBuildData(stdout)

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, stderr)

	return cli.NewApp(ctx, cfg, logger)
}

func main() {
	ctx := context.Background()

	app, err := start(ctx, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
