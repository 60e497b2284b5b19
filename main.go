package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"deckgen/internal/cli"
)

var version = "0.1.0"

func main() {
	var showVersion bool
	var verbose bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	if showVersion {
		fmt.Printf("deckgen version %s\n", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	app, err := cli.NewCLI(logger, verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.ExecuteCommand(context.Background(), flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
