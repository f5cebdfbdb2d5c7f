// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package validation

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter for validation operations.
var (
	tracer = otel.Tracer("glossaforge.validation")
	meter  = otel.Meter("glossaforge.validation")
)

var (
	passesTotal      metric.Int64Counter
	issuesTotal      metric.Int64Counter
	validateDuration metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		passesTotal, err = meter.Int64Counter(
			"validation_passes_total",
			metric.WithDescription("Module passes run, by module"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		issuesTotal, err = meter.Int64Counter(
			"validation_issues_total",
			metric.WithDescription("Issues found, by module, severity, and rule"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		validateDuration, err = meter.Float64Histogram(
			"validation_duration_seconds",
			metric.WithDescription("Full document validation duration"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordPass records one completed module pass and its issues.
func recordPass(ctx context.Context, module Module, issues []Issue) {
	if initMetrics() != nil {
		return
	}
	passesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("module", string(module)),
	))
	for _, issue := range issues {
		issuesTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("module", string(module)),
			attribute.String("severity", string(issue.Severity)),
			attribute.String("rule", issue.RuleID),
		))
	}
}

// recordValidate records one full validation run.
func recordValidate(ctx context.Context, valid bool, elapsed time.Duration) {
	if initMetrics() != nil {
		return
	}
	validateDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.Bool("valid", valid),
	))
}
