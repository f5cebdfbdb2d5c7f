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
	"fmt"
	"time"
)

// ApplyError wraps a response that could not be merged into a document.
// It consumes one attempt but never aborts the run by itself.
type ApplyError struct {
	Operation string
	Err       error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply %s: %v", e.Operation, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// OperationError is the terminal failure of one orchestrated run: every
// attempt was spent without a validated result.
type OperationError struct {
	// Operation is the operation id that was attempted.
	Operation string

	// Attempt is the number of attempts consumed (always MaxAttempts).
	Attempt int

	// FinalError summarizes the last attempt's failure.
	FinalError string

	// RetryReasons holds one formatted error batch per failed attempt,
	// in attempt order.
	RetryReasons [][]string

	// Duration is the wall time of the whole run.
	Duration time.Duration
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %s failed after %d attempts: %s", e.Operation, e.Attempt, e.FinalError)
}
