package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Scribz/internal/cli/commands"
	"Scribz/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	if cfg.Version {
		printVersion()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("Scribz CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
