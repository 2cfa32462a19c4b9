package main

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"

	"github.com/jsamuelsen/quotebook/internal/adapters/storage"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

// loadConfig resolves the profile, loads every configuration layer, applies
// flag overrides and validates the result.
func loadConfig(f *flags) (*config.Config, error) {
	profile := cmp.Or(f.profile, os.Getenv("APP_ENVIRONMENT"), "local")

	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	return logger
}

func openStore(cfg *config.StorageConfig, logger *slog.Logger) (*storage.Store, error) {
	store, err := storage.Open(storage.Options{
		Driver: cfg.Driver,
		Path:   cfg.Path,
		DSN:    cfg.DSN,
		Limits: storage.Limits{
			Users:    cfg.MaxRecordBytes.Users,
			Quotes:   cfg.MaxRecordBytes.Quotes,
			Comments: cfg.MaxRecordBytes.Comments,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Driver, err)
	}

	return store, nil
}
