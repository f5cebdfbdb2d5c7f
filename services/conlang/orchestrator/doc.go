// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package orchestrator drives generation operations through the validation
// gate with bounded, error-guided retries.
//
// One Run is a closed feedback loop: prune the document, consult the
// cache, call the generator, apply the response to a scratch copy, and
// validate. A failed validation seeds the next generator call with the
// formatted error list; after MaxAttempts the run terminates with an
// OperationError carrying the full per-attempt history. Nothing is written
// to the cache unless validation accepted the candidate.
//
// Attempts within one run are strictly sequential — each prompt depends on
// the previous verdict — but independent runs share nothing except the
// cache, which tolerates concurrent use.
package orchestrator
