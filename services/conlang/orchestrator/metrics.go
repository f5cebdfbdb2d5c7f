// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package orchestrator

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter for orchestrated runs.
var (
	tracer = otel.Tracer("glossaforge.orchestrator")
	meter  = otel.Meter("glossaforge.orchestrator")
)

var (
	attemptsTotal    metric.Int64Counter
	cacheLookups     metric.Int64Counter
	retriesExhausted metric.Int64Counter
	runDuration      metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		attemptsTotal, err = meter.Int64Counter(
			"orchestrator_attempts_total",
			metric.WithDescription("Generation attempts, by operation and outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheLookups, err = meter.Int64Counter(
			"orchestrator_cache_lookups_total",
			metric.WithDescription("Cache lookups, by operation and hit/miss"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		retriesExhausted, err = meter.Int64Counter(
			"orchestrator_retries_exhausted_total",
			metric.WithDescription("Runs that spent every attempt without a valid result"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runDuration, err = meter.Float64Histogram(
			"orchestrator_run_duration_seconds",
			metric.WithDescription("Orchestrated run duration, by operation"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordAttempt(ctx context.Context, operation, outcome string) {
	if initMetrics() != nil {
		return
	}
	attemptsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func recordCacheLookup(ctx context.Context, operation string, hit bool) {
	if initMetrics() != nil {
		return
	}
	cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("hit", hit),
	))
}

func recordExhausted(ctx context.Context, operation string) {
	if initMetrics() != nil {
		return
	}
	retriesExhausted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

func recordRun(ctx context.Context, operation string, elapsed time.Duration, succeeded bool) {
	if initMetrics() != nil {
		return
	}
	runDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", succeeded),
	))
}
