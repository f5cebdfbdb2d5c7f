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
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
	"github.com/AleutianAI/GlossaForge/services/conlang/generator"
)

// ApplyFunc merges one operation response into a scratch copy of the base
// document. Implementations never mutate base; they clone it. A
// structurally incompatible response must produce a descriptive error.
type ApplyFunc func(resp *generator.Response, base *document.Document) (*document.Document, error)

// Operation binds an operation id to its cache TTL and apply function.
// The pruning policy for the id lives in the pruner's static table.
type Operation struct {
	ID    string
	TTL   time.Duration
	Apply ApplyFunc
}

// Registry is the injected set of known operations.
//
// Thread Safety: Read-only after construction; safe for concurrent use.
type Registry struct {
	ops map[string]Operation
}

// NewRegistry builds a registry containing the given operations.
func NewRegistry(ops ...Operation) *Registry {
	r := &Registry{ops: make(map[string]Operation, len(ops))}
	for _, op := range ops {
		r.ops[op.ID] = op
	}
	return r
}

// Get looks up one operation by id.
func (r *Registry) Get(id string) (Operation, bool) {
	op, ok := r.ops[id]
	return op, ok
}

// DefaultOperations returns the built-in operation set. TTLs are
// operation-specific: config suggestions stay useful for a day, while
// lexicon and corpus material is cheap to regenerate and expires sooner.
func DefaultOperations() []Operation {
	return []Operation{
		{ID: "phonology.suggest", TTL: 24 * time.Hour, Apply: applyPhonology},
		{ID: "morphology.suggest", TTL: 24 * time.Hour, Apply: applyMorphology},
		{ID: "lexicon.generate", TTL: 6 * time.Hour, Apply: applyLexicon},
		{ID: "paradigm.fill", TTL: 12 * time.Hour, Apply: applyParadigms},
		{ID: "corpus.translate", TTL: 6 * time.Hour, Apply: applyCorpus},
	}
}

// decodePayload unmarshals the response payload after checking that the
// response belongs to the expected operation.
func decodePayload(resp *generator.Response, operation string, into any) error {
	if resp == nil {
		return fmt.Errorf("nil response")
	}
	if resp.Operation != "" && resp.Operation != operation {
		return fmt.Errorf("response is for operation %q, want %q", resp.Operation, operation)
	}
	if len(resp.Payload) == 0 {
		return fmt.Errorf("response has an empty payload")
	}
	if err := json.Unmarshal(resp.Payload, into); err != nil {
		return fmt.Errorf("payload does not match the %s shape: %w", operation, err)
	}
	return nil
}

func applyPhonology(resp *generator.Response, base *document.Document) (*document.Document, error) {
	var cfg document.PhonologyConfig
	if err := decodePayload(resp, "phonology.suggest", &cfg); err != nil {
		return nil, err
	}
	if cfg.Orthography == nil {
		cfg.Orthography = map[document.Phoneme]document.Grapheme{}
	}
	out := base.Clone()
	out.Phonology = cfg
	return out, nil
}

func applyMorphology(resp *generator.Response, base *document.Document) (*document.Document, error) {
	var cfg document.MorphologyConfig
	if err := decodePayload(resp, "morphology.suggest", &cfg); err != nil {
		return nil, err
	}
	if cfg.Paradigms == nil {
		cfg.Paradigms = map[string]document.Paradigm{}
	}
	out := base.Clone()
	out.Morphology = cfg
	return out, nil
}

func applyLexicon(resp *generator.Response, base *document.Document) (*document.Document, error) {
	var payload struct {
		Entries []document.LexicalEntry `json:"entries"`
	}
	if err := decodePayload(resp, "lexicon.generate", &payload); err != nil {
		return nil, err
	}
	if len(payload.Entries) == 0 {
		return nil, fmt.Errorf("lexicon.generate returned no entries")
	}
	out := base.Clone()
	now := time.Now().UTC()
	for _, entry := range payload.Entries {
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		out.Lexicon = append(out.Lexicon, entry)
	}
	return out, nil
}

func applyParadigms(resp *generator.Response, base *document.Document) (*document.Document, error) {
	var payload struct {
		Paradigms map[string]document.Paradigm `json:"paradigms"`
	}
	if err := decodePayload(resp, "paradigm.fill", &payload); err != nil {
		return nil, err
	}
	if len(payload.Paradigms) == 0 {
		return nil, fmt.Errorf("paradigm.fill returned no paradigms")
	}
	out := base.Clone()
	for key, paradigm := range payload.Paradigms {
		merged, ok := out.Morphology.Paradigms[key]
		if !ok {
			merged = document.Paradigm{}
		}
		for fv, affix := range paradigm {
			merged[fv] = affix
		}
		out.Morphology.Paradigms[key] = merged
	}
	return out, nil
}

func applyCorpus(resp *generator.Response, base *document.Document) (*document.Document, error) {
	var payload struct {
		Samples []document.CorpusSample `json:"samples"`
	}
	if err := decodePayload(resp, "corpus.translate", &payload); err != nil {
		return nil, err
	}
	if len(payload.Samples) == 0 {
		return nil, fmt.Errorf("corpus.translate returned no samples")
	}
	out := base.Clone()
	now := time.Now().UTC()
	for _, sample := range payload.Samples {
		if sample.ID == "" {
			sample.ID = uuid.NewString()
		}
		if sample.CreatedAt.IsZero() {
			sample.CreatedAt = now
		}
		out.Corpus = append(out.Corpus, sample)
	}
	return out, nil
}
