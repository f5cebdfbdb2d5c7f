// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/GlossaForge/pkg/logging"
	"github.com/AleutianAI/GlossaForge/services/conlang/cache"
)

// CLIConfig is the glossa config file schema.
type CLIConfig struct {
	// Namespace prefixes every cache key. One namespace per deployment.
	Namespace string `yaml:"namespace" validate:"required"`

	// Cache selects the result cache backend. An empty path means the
	// in-process map (no persistence across runs).
	Cache cache.Config `yaml:"cache"`

	Log struct {
		Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
		Dir   string `yaml:"dir"`
		JSON  bool   `yaml:"json"`
	} `yaml:"log"`
}

// defaultConfig is used when no --config flag is given.
func defaultConfig() *CLIConfig {
	cfg := &CLIConfig{Namespace: "glossa"}
	cfg.Log.Level = "info"
	return cfg
}

// loadConfig reads and validates the config file, or returns defaults when
// path is empty.
func loadConfig(path string) (*CLIConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from config.
func newLogger(cfg *CLIConfig) *logging.Logger {
	level := logging.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	return logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Log.Dir,
		Service: "glossa",
		JSON:    cfg.Log.JSON,
	})
}
