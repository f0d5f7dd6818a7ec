package main

import (
	"fmt"
	"os"

	"github.com/fieldfence/fieldfence/internal/config"
	"github.com/fieldfence/fieldfence/pkg/engine"
)

// LoadProjectConfig loads config from:
// 1. DATABASE_URL environment variable (priority)
// 2. .fieldfence.yml in the current directory
// 3. defaults
func LoadProjectConfig() (engine.ConnectorConfig, *config.Config, error) {
	// 1. DATABASE_URL env var (Heroku, Railway, etc.)
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		cc, err := engine.ParseConnectionString(databaseURL)
		if err != nil {
			return engine.ConnectorConfig{}, nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		if verbose {
			printInfo("using DATABASE_URL from environment")
		}
		return cc, nil, nil
	}

	// 2. .fieldfence.yml
	workDir, err := os.Getwd()
	if err != nil {
		return engine.ConnectorConfig{}, nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	loader := config.NewLoader(workDir)
	if loader.Exists() {
		cfg, err := loader.Load()
		if err != nil {
			return engine.ConnectorConfig{}, nil, err
		}
		cc, err := connectorConfigFrom(cfg)
		if err != nil {
			return engine.ConnectorConfig{}, nil, err
		}
		if verbose {
			printInfo("using %s", config.FileName)
		}
		return cc, cfg, nil
	}

	// 3. Defaults
	if verbose {
		printInfo("using default configuration (localhost:5432)")
	}
	return engine.DefaultConfig(), nil, nil
}

func connectorConfigFrom(cfg *config.Config) (engine.ConnectorConfig, error) {
	if cfg.Database.ConnectionString != "" {
		return engine.ParseConnectionString(cfg.Database.ConnectionString)
	}

	cc := engine.DefaultConfig()
	if cfg.Database.Host != "" {
		cc.Host = cfg.Database.Host
	}
	if cfg.Database.Port != 0 {
		cc.Port = cfg.Database.Port
	}
	if cfg.Database.Database != "" {
		cc.Database = cfg.Database.Database
	}
	if cfg.Database.User != "" {
		cc.User = cfg.Database.User
	}
	if cfg.Database.Password != "" {
		cc.Password = cfg.Database.Password
	}
	if cfg.Database.MaxConns != 0 {
		cc.MaxConns = cfg.Database.MaxConns
	}
	if cfg.Database.MinConns != 0 {
		cc.MinConns = cfg.Database.MinConns
	}
	return cc, nil
}
