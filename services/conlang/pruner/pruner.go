// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package pruner shrinks a document to the payload each generation
// operation actually needs. Policies are a static table keyed by operation
// id; pruning is deterministic, idempotent, and never mutates its input.
package pruner

import (
	"strings"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

// TruncationMarker is appended to any free-text field cut to budget, so
// the generator can tell the text is incomplete.
const TruncationMarker = " …[truncated]"

// keepAll leaves a section untouched.
const keepAll = -1

// Policy declares how one operation's payload is reduced. The zero policy
// keeps everything.
type Policy struct {
	// MaxLexicon bounds the lexicon entry count. keepAll keeps every
	// entry; 0 removes the lexicon entirely.
	MaxLexicon int

	// MaxCorpus bounds the corpus sample count, same convention.
	MaxCorpus int

	// DropParadigms removes morphology paradigm tables (category and
	// order declarations always survive).
	DropParadigms bool

	// StubSyntax replaces the syntax config with an operation-agnostic
	// default when syntax is irrelevant to the operation.
	StubSyntax bool

	// WorldDescLimit is the character budget for meta.world_description.
	// keepAll keeps it whole; 0 removes it.
	WorldDescLimit int
}

// policies is the static per-operation table. Sections an operation
// declares as required are, by construction, never zeroed by its policy.
var policies = map[string]Policy{
	"phonology.suggest": {
		MaxLexicon:     0,
		MaxCorpus:      0,
		DropParadigms:  true,
		StubSyntax:     true,
		WorldDescLimit: 1200,
	},
	"morphology.suggest": {
		MaxLexicon:     12,
		MaxCorpus:      0,
		DropParadigms:  false,
		StubSyntax:     false,
		WorldDescLimit: 600,
	},
	"lexicon.generate": {
		MaxLexicon:     40,
		MaxCorpus:      5,
		DropParadigms:  true,
		StubSyntax:     true,
		WorldDescLimit: 1200,
	},
	"paradigm.fill": {
		MaxLexicon:     20,
		MaxCorpus:      0,
		DropParadigms:  false,
		StubSyntax:     false,
		WorldDescLimit: 0,
	},
	"corpus.translate": {
		MaxLexicon:     60,
		MaxCorpus:      10,
		DropParadigms:  false,
		StubSyntax:     false,
		WorldDescLimit: 400,
	},
}

// defaultPolicy applies to operations without a table entry: keep every
// section, bound only the free text.
var defaultPolicy = Policy{
	MaxLexicon:     keepAll,
	MaxCorpus:      keepAll,
	WorldDescLimit: 2000,
}

// PolicyFor returns the policy for an operation id.
func PolicyFor(operationID string) Policy {
	if p, ok := policies[operationID]; ok {
		return p
	}
	return defaultPolicy
}

// Prune returns a reduced copy of doc sized for the named operation.
//
// Description:
//
//	Applies the operation's policy to a clone of the document. The input
//	is never mutated, and Prune(Prune(d, op), op) equals Prune(d, op):
//	truncation detects its own marker and section bounds are stable.
func Prune(doc *document.Document, operationID string) *document.Document {
	policy := PolicyFor(operationID)
	out := doc.Clone()

	out.Meta.WorldDescription = truncate(out.Meta.WorldDescription, policy.WorldDescLimit)

	switch {
	case policy.MaxLexicon == 0:
		out.Lexicon = nil
	case policy.MaxLexicon > 0 && len(out.Lexicon) > policy.MaxLexicon:
		out.Lexicon = out.Lexicon[:policy.MaxLexicon]
	}

	switch {
	case policy.MaxCorpus == 0:
		out.Corpus = nil
	case policy.MaxCorpus > 0 && len(out.Corpus) > policy.MaxCorpus:
		out.Corpus = out.Corpus[:policy.MaxCorpus]
	}

	if policy.DropParadigms {
		out.Morphology.Paradigms = map[string]document.Paradigm{}
	}

	if policy.StubSyntax {
		out.Syntax = stubSyntax()
	}

	// Stale verdicts never travel to the generator.
	out.ValidationState = nil

	return out
}

// stubSyntax is the operation-agnostic syntax placeholder used when the
// operation does not reason about syntax at all.
func stubSyntax() document.SyntaxConfig {
	return document.SyntaxConfig{
		WordOrder:      document.OrderSVO,
		Alignment:      document.AlignNominativeAccusative,
		AdpositionType: document.AdpositionPre,
		Headedness:     document.HeadInitial,
		ClauseTypes:    []string{"declarative"},
	}
}

// truncate cuts text to limit characters plus the marker. Re-truncating
// already-truncated text is a no-op, which is what makes Prune idempotent.
func truncate(text string, limit int) string {
	switch {
	case limit == keepAll:
		return text
	case limit == 0:
		return ""
	}
	runes := []rune(text)
	markerLen := len([]rune(TruncationMarker))
	if strings.HasSuffix(text, TruncationMarker) && len(runes) <= limit+markerLen {
		return text
	}
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + TruncationMarker
}
