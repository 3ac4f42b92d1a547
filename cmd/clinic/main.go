package main

import (
	"fmt"
	"os"

	"github.com/hackgods/clinic-records/internal/clinic"
	"github.com/hackgods/clinic-records/internal/config"
	"github.com/hackgods/clinic-records/internal/logging"
	"github.com/hackgods/clinic-records/internal/menu"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	// The menu owns stdout, so diagnostics go to stderr and only when asked for.
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "error"
	}
	log, err := logging.New(cfg.Env, level, "stderr")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	c := clinic.New(clinic.WithLogger(log))
	if err := menu.New(c, os.Stdin, os.Stdout).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
}
