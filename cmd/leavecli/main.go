package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"leavedesk/internal/app/console"
	"leavedesk/internal/domain/leave"
	"leavedesk/internal/platform/config"
	"leavedesk/internal/platform/seed"
)

func main() {
	mode := flag.String("mode", "", "demo or interactive; prompts when empty")
	verbose := flag.Bool("v", false, "log registry events to stderr")
	flag.Parse()

	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	cfg := config.Load()
	reg := leave.NewRegistry(
		leave.WithSequence(leave.NewSequence(cfg.RequestIDPrefix, cfg.RequestIDSeed)),
		leave.WithLogger(logger),
	)
	if _, err := seed.Seed(reg); err != nil {
		slog.Error("seed failed", "err", err)
		os.Exit(1)
	}

	c := console.New(reg, os.Stdin, os.Stdout)
	switch *mode {
	case "demo":
		c.Demo()
	case "interactive":
		c.Interactive()
	default:
		c.Start()
	}
}
