package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"framediff/internal/config"
	"framediff/internal/daemon"
	"framediff/internal/logging"
	"framediff/internal/query"
)

// loadEnvFiles reads a .env file from the working directory when present so
// FRAMEDIFF_ARCHIVE_ROOT can be set without exporting it.
func loadEnvFiles(files ...string) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "framediffd: ignoring env file: %v\n", err)
	}
}

func bootstrap(configPath string) (*daemon.Daemon, *slog.Logger, error) {
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, nil, fmt.Errorf("ensure directories: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	svc := query.NewFromConfig(cfg, logger)
	d, err := daemon.New(cfg, svc, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create daemon: %w", err)
	}
	return d, logger, nil
}
