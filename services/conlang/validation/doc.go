// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation decides whether a language definition is internally
// consistent. It is the acceptance gate for generated content: nothing a
// generator produces reaches a document unless this package signs off.
//
// The engine is organized as independent module passes over the document's
// sub-configs:
//
//   - phonology: inventory sanity, orthography bijection, word-form
//     syllabification of every lexical entry
//   - morphology: root slot presence, orphan affix phonemes, derivational
//     rule shape, paradigm-cell phonotactics
//   - syntax: enum membership, clause types, phrase-structure slot
//     resolution
//   - corpus: heuristic word-order agreement of interlinear glosses
//   - cross: agreement between sub-configs (alignment-implied case
//     paradigms)
//
// Each pass is a pure function producing typed Issues; Engine.Validate
// composes them into a single Result. A Result is valid iff it carries zero
// error-severity issues; warnings never block acceptance.
//
// Failure semantics: malformed-but-present content becomes error issues.
// Absent required structure (a nil paradigm mapping, a missing document ID)
// is a caller contract violation and is returned as a StructuralError from
// Validate, never as a finding.
//
// All passes are deterministic, side-effect-free, and safe for concurrent
// use.
package validation
