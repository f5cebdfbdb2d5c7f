// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cache

import "log/slog"

// Config selects the cache backend.
type Config struct {
	// Path is the Badger directory. Empty selects the in-process map.
	Path string `yaml:"path" json:"path"`

	// SyncWrites forwards to the Badger backend.
	SyncWrites bool `yaml:"sync_writes" json:"sync_writes"`
}

// New builds the configured backend.
//
// Description:
//
//	With a path configured, the Badger backend is opened; if that fails
//	(bad path, directory locked by another process) the in-process map
//	is used instead so the pipeline keeps working without persistence.
//	The fallback is logged as a warning, never an error.
func New(cfg Config, logger *slog.Logger) Cache {
	if cfg.Path == "" {
		logger.Debug("cache: using in-process backend")
		return NewMemory()
	}
	backend, err := OpenBadger(BadgerConfig{
		Path:       cfg.Path,
		SyncWrites: cfg.SyncWrites,
		Logger:     logger,
	})
	if err != nil {
		logger.Warn("cache: badger unavailable, falling back to in-process backend",
			"path", cfg.Path, "error", err)
		return NewMemory()
	}
	logger.Info("cache: using badger backend", "path", cfg.Path)
	return backend
}
