// raycaster renders the tile map from the viewer's eye in the current
// terminal.
//
// Usage:
//
//	raycaster [-config raycaster.yaml] [-workers 4] [-print-config]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"tile-raycaster/internal/game"
	"tile-raycaster/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "JSON or YAML simulation config")
	workers := flag.Int("workers", 0, "Goroutines per frame (0 keeps the config value)")
	printConfig := flag.Bool("print-config", false, "Print the effective config as YAML and exit")
	logFile := flag.String("log", "", "Write diagnostics to this file instead of discarding them")
	flag.Parse()

	cfg, err := sim.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *printConfig {
		data, err := cfg.YAML()
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(data) //nolint:errcheck
		return
	}

	// The screen owns the terminal, so diagnostics go to a file or nowhere.
	logger := slog.New(slog.DiscardHandler)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, nil))
	}

	g, err := game.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := g.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
