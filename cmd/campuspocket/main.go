// CampusPocket - offline cache for the campus portal.
//
// Mirrors the portal's curriculum fields and community posts into a local
// SQLite database, with images stored as blobs for offline viewing.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/campuspocket/campuspocket/internal/cli"
	"github.com/campuspocket/campuspocket/internal/config"
	"github.com/campuspocket/campuspocket/internal/db"
	"github.com/campuspocket/campuspocket/internal/log"
	"github.com/campuspocket/campuspocket/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)
	if err := log.Init(paths.Logs); err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Close() }()

	// Open the database once for the persistent tracking ID; commands open
	// their own handles.
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		log.Errorf("initialize database: %v", err)
		os.Exit(1)
	}

	telemetryClient := telemetry.New(database)
	defer telemetryClient.Close()

	_ = database.Close()

	if err := cli.Execute(ctx, telemetryClient); err != nil {
		os.Exit(1)
	}
}
