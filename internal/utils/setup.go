package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/FlagBrew/local-dex/internal/gui"
	"github.com/FlagBrew/local-dex/internal/models"
	"github.com/apex/log"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	ConfigFile = "config.json"
	EnvPrefix  = "LOCALDEX_"
)

// ErrNoConfig is returned by LoadConfig when there is nothing to load.
var ErrNoConfig = errors.New("no configuration found")

func Setup(ctx context.Context, mode string) *models.Config {
	logger := log.FromContext(ctx)
	docker := mode == "docker"

	cfg, err := LoadConfig(ConfigFile, docker)
	if err == nil {
		return cfg
	}
	if !errors.Is(err, ErrNoConfig) {
		logger.WithError(err).Fatal("invalid configuration")
	}

	if docker {
		logger.Fatal("running in docker mode without a config.json or LOCALDEX_ environment variables, interactive set-up is not available for docker")
	}

	cfg = &models.Config{}
	if err := gui.New(cfg).Start(); err != nil {
		logger.WithError(err).Fatal("failed to start interactive wizard")
	}

	SetConfig(ctx, cfg)
	return cfg
}

// LoadConfig reads path (skipped in docker mode), applies LOCALDEX_ prefixed
// environment overrides and defaults, then validates the result. ErrNoConfig
// is returned when neither the file nor the database settings exist.
func LoadConfig(path string, docker bool) (*models.Config, error) {
	cfg := &models.Config{}
	found := false

	if !docker {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			found = true
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if !found && cfg.Database.DBType == "" && cfg.Database.ConnectionString == "" {
		return nil, ErrNoConfig
	}

	cfg.ApplyDefaults()

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func SetConfig(ctx context.Context, cfg *models.Config) {
	logger := log.FromContext(ctx)
	f, err := os.OpenFile(ConfigFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		logger.WithError(err).Error("error opening config.json")
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		logger.WithError(err).Error("error encoding config.json")
	}
}
