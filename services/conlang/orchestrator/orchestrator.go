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
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/GlossaForge/services/conlang/cache"
	"github.com/AleutianAI/GlossaForge/services/conlang/document"
	"github.com/AleutianAI/GlossaForge/services/conlang/generator"
	"github.com/AleutianAI/GlossaForge/services/conlang/pruner"
	"github.com/AleutianAI/GlossaForge/services/conlang/validation"
)

// MaxAttempts is the fixed attempt budget of one orchestrated run. Retries
// are validation-gated, not blind: each retry carries the previous
// attempt's errors, so a small budget converges or fails fast.
const MaxAttempts = 3

// Validator is the verdict callback injected into the runner. Matched by
// *validation.Engine.
type Validator interface {
	Validate(ctx context.Context, doc *document.Document) (*validation.Result, error)
}

// RunResult is the successful outcome of one orchestrated run.
type RunResult struct {
	// Document is the accepted candidate, built by applying the validated
	// response to a clone of the input document.
	Document *document.Document

	// Response is the generator response that passed validation.
	Response *generator.Response

	// Validation is the accepting verdict; it may carry warnings.
	Validation *validation.Result

	// Attempt is the 1-based attempt index that succeeded. 0 on a cache
	// hit, which consumed no generator call.
	Attempt int

	// Cached is true when the response was served from the cache.
	Cached bool

	// RawResponses logs every generator response of the run, in order.
	RawResponses []json.RawMessage

	Duration time.Duration
}

// attemptContext is the transient state of one run. It exists for the
// duration of a single Run call and is discarded afterwards.
type attemptContext struct {
	runID          string
	operation      string
	request        *generator.Request
	previousErrors []string
	retryReasons   [][]string
	rawResponses   []json.RawMessage
	validationRan  bool
	lastFailure    string
}

// Runner drives operations through the validation gate. All collaborators
// are injected; Runner holds no ambient state.
//
// Thread Safety: Safe for concurrent use. Concurrent identical requests
// may both miss the cache and both generate; the cache absorbs the
// duplicate write.
type Runner struct {
	registry  *Registry
	generator generator.Generator
	validator Validator
	cache     cache.Cache
	namespace string
	logger    *slog.Logger
}

// NewRunner wires a runner from its collaborators.
//
// Inputs:
//
//	registry - Known operations. Must not be nil.
//	gen - Generation backend.
//	validator - Acceptance gate, typically *validation.Engine.
//	store - Result cache. Use cache.NewMemory() when persistence is not needed.
//	namespace - Cache key namespace, e.g. "glossa".
//	logger - Structured logger. Must not be nil.
func NewRunner(registry *Registry, gen generator.Generator, validator Validator, store cache.Cache, namespace string, logger *slog.Logger) *Runner {
	return &Runner{
		registry:  registry,
		generator: gen,
		validator: validator,
		cache:     store,
		namespace: namespace,
		logger:    logger,
	}
}

// Run executes one operation against a document.
//
// Description:
//
//	Prunes the document for the operation, consults the cache, and on a
//	miss drives up to MaxAttempts generate→apply→validate cycles. Every
//	failed attempt's errors are fed into the next generator call. The
//	first accepted candidate is cached under the request fingerprint and
//	returned; warnings never block acceptance.
//
// Inputs:
//
//	ctx - Cancellation is honored at attempt boundaries.
//	operationID - One of the registry's operation ids.
//	doc - The base document. Never mutated.
//	params - Operation parameters, hashed into the fingerprint.
//
// Outputs:
//
//	*RunResult - The accepted result. Nil when err is non-nil.
//	error - *OperationError when every attempt failed; a plain error for
//	caller mistakes (unknown operation, nil document).
func (r *Runner) Run(ctx context.Context, operationID string, doc *document.Document, params map[string]any) (*RunResult, error) {
	ctx, span := tracer.Start(ctx, "orchestrator.Run")
	defer span.End()

	op, ok := r.registry.Get(operationID)
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", operationID)
	}
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	start := time.Now()
	pruned := pruner.Prune(doc, operationID)
	request := &generator.Request{Operation: operationID, Document: pruned, Params: params}

	attempt := &attemptContext{
		runID:     uuid.NewString(),
		operation: operationID,
		request:   request,
	}
	logger := r.logger.With("run_id", attempt.runID, "operation", operationID, "document_id", doc.ID)

	key, keyErr := r.cacheKey(doc.ID, operationID, request)
	if keyErr == nil {
		if result := r.tryCache(ctx, key, op, doc, logger); result != nil {
			result.Duration = time.Since(start)
			recordRun(ctx, operationID, result.Duration, true)
			return result, nil
		}
	} else {
		logger.Warn("fingerprint failed, bypassing cache", "error", keyErr)
	}

	for n := 1; n <= MaxAttempts; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, ok := r.attempt(ctx, n, op, doc, attempt, logger)
		if !ok {
			continue
		}

		if keyErr == nil {
			r.store(ctx, key, op, result.Response, logger)
		}
		result.Attempt = n
		result.RawResponses = attempt.rawResponses
		result.Duration = time.Since(start)
		recordRun(ctx, operationID, result.Duration, true)
		logger.Info("operation succeeded", "attempt", n, "warnings", len(result.Validation.Warnings))
		return result, nil
	}

	recordExhausted(ctx, operationID)
	elapsed := time.Since(start)
	recordRun(ctx, operationID, elapsed, false)

	finalError := attempt.lastFailure
	if !attempt.validationRan && finalError == "" {
		finalError = "exhausted without any valid response"
	}
	logger.Error("operation failed", "attempts", MaxAttempts, "final_error", finalError)
	return nil, &OperationError{
		Operation:    operationID,
		Attempt:      MaxAttempts,
		FinalError:   finalError,
		RetryReasons: attempt.retryReasons,
		Duration:     elapsed,
	}
}

// attempt runs one generate→apply→validate cycle. It returns ok=false when
// the attempt failed, after recording the failure in the attempt context.
func (r *Runner) attempt(ctx context.Context, n int, op Operation, doc *document.Document, attempt *attemptContext, logger *slog.Logger) (*RunResult, bool) {
	resp, err := r.generator.Generate(ctx, attempt.request, attempt.previousErrors)
	if err != nil {
		// Transport and parse failures are apply-step failures: one
		// synthetic error line, one consumed attempt.
		r.failAttempt(ctx, n, attempt, fmt.Sprintf("generation failed: %v", err), logger)
		return nil, false
	}
	if raw, marshalErr := json.Marshal(resp); marshalErr == nil {
		attempt.rawResponses = append(attempt.rawResponses, raw)
	}

	candidate, err := op.Apply(resp, doc)
	if err != nil {
		applyErr := &ApplyError{Operation: op.ID, Err: err}
		r.failAttempt(ctx, n, attempt, applyErr.Error(), logger)
		return nil, false
	}

	verdict, err := r.validator.Validate(ctx, candidate)
	if err != nil {
		// A structural error after apply means the response produced an
		// unusable document; spend the attempt, don't abort the run.
		r.failAttempt(ctx, n, attempt, fmt.Sprintf("candidate rejected: %v", err), logger)
		return nil, false
	}

	attempt.validationRan = true
	if !verdict.Valid {
		messages := verdict.ErrorMessages()
		attempt.previousErrors = messages
		attempt.retryReasons = append(attempt.retryReasons, messages)
		attempt.lastFailure = fmt.Sprintf("validation failed with %d errors", len(verdict.Errors))
		recordAttempt(ctx, op.ID, "invalid")
		logger.Warn("attempt failed validation", "attempt", n, "errors", len(verdict.Errors))
		return nil, false
	}

	recordAttempt(ctx, op.ID, "valid")
	return &RunResult{
		Document:   candidate,
		Response:   resp,
		Validation: verdict,
	}, true
}

// failAttempt records a synthetic one-line failure for an attempt that
// never reached validation.
func (r *Runner) failAttempt(ctx context.Context, n int, attempt *attemptContext, message string, logger *slog.Logger) {
	attempt.previousErrors = []string{message}
	attempt.retryReasons = append(attempt.retryReasons, []string{message})
	attempt.lastFailure = message
	recordAttempt(ctx, attempt.operation, "apply_failed")
	logger.Warn("attempt failed before validation", "attempt", n, "error", message)
}

// tryCache returns a completed result when the cache holds a response that
// still validates against the current document. Cache errors are misses.
func (r *Runner) tryCache(ctx context.Context, key string, op Operation, doc *document.Document, logger *slog.Logger) *RunResult {
	raw, hit, err := r.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache get failed, treating as miss", "error", err)
	}
	recordCacheLookup(ctx, op.ID, hit)
	if !hit {
		return nil
	}

	var resp generator.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		logger.Warn("cache entry is not a response, dropping it", "error", err)
		_ = r.cache.Del(ctx, key)
		return nil
	}
	candidate, err := op.Apply(&resp, doc)
	if err != nil {
		logger.Warn("cached response no longer applies, dropping it", "error", err)
		_ = r.cache.Del(ctx, key)
		return nil
	}
	verdict, err := r.validator.Validate(ctx, candidate)
	if err != nil || !verdict.Valid {
		logger.Warn("cached response no longer validates, dropping it")
		_ = r.cache.Del(ctx, key)
		return nil
	}

	logger.Debug("cache hit")
	return &RunResult{
		Document:   candidate,
		Response:   &resp,
		Validation: verdict,
		Cached:     true,
	}
}

// store writes a validated response under the request fingerprint. A cache
// write failure is logged and swallowed: memoization is best-effort.
func (r *Runner) store(ctx context.Context, key string, op Operation, resp *generator.Response, logger *slog.Logger) {
	raw, err := json.Marshal(resp)
	if err != nil {
		logger.Warn("cache encode failed", "error", err)
		return
	}
	if err := r.cache.Set(ctx, key, raw, op.TTL); err != nil {
		logger.Warn("cache set failed", "error", err)
	}
}

func (r *Runner) cacheKey(documentID, operationID string, request *generator.Request) (string, error) {
	fingerprint, err := cache.Fingerprint(request)
	if err != nil {
		return "", err
	}
	return cache.Key(r.namespace, documentID, operationID, fingerprint), nil
}

// InvalidateDocument removes every cached result for a document. Callers
// invoke this whenever the document's version counter increments.
func (r *Runner) InvalidateDocument(ctx context.Context, documentID string) (int, error) {
	return r.cache.DelByPrefix(ctx, cache.DocumentPrefix(r.namespace, documentID))
}
