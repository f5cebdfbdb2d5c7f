// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package document defines the structured language definition that the
// GlossaForge pipeline reads, validates, and extends.
//
// A Document is the root aggregate: phonology, morphology, syntax, lexicon,
// and corpus, plus bookkeeping (version counter, validation state). It is
// pure data owned by the caller. The pipeline never mutates a Document in
// place: every transform (pruning, applying a generation response) operates
// on a Clone and returns the copy. That copy-on-write contract is what makes
// retries and cache fingerprints safe, so it is enforced here structurally
// rather than by convention — Clone performs a full structural copy of every
// map and slice.
//
// Serialization is YAML for files on disk and JSON for generation payloads;
// both sets of tags are carried on each type. Struct-shape requirements
// (the fields a caller must populate before handing a Document to the
// validation engine) are expressed as go-playground/validator tags and
// checked by CheckStructure.
package document
