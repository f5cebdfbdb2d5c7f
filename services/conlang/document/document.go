// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package document

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Document is the root aggregate for one constructed language.
//
// Version increments whenever an accepted change lands. Callers that bump
// Version are responsible for invalidating cache entries prefixed by ID
// (see services/conlang/cache).
type Document struct {
	// ID identifies this language across versions. Stable for the lifetime
	// of the language; used as the cache key prefix.
	ID string `json:"id" yaml:"id" validate:"required"`

	// Version is a monotonically increasing change counter.
	Version int `json:"version" yaml:"version" validate:"min=0"`

	Meta       Meta             `json:"meta" yaml:"meta"`
	Phonology  PhonologyConfig  `json:"phonology" yaml:"phonology" validate:"required"`
	Morphology MorphologyConfig `json:"morphology" yaml:"morphology"`
	Syntax     SyntaxConfig     `json:"syntax" yaml:"syntax"`
	Lexicon    []LexicalEntry   `json:"lexicon" yaml:"lexicon"`
	Corpus     []CorpusSample   `json:"corpus" yaml:"corpus"`

	// ValidationState records the outcome of the last full validation run.
	// Nil until the document has been validated at least once.
	ValidationState *ValidationState `json:"validation_state,omitempty" yaml:"validation_state,omitempty"`
}

// Meta holds descriptive, non-linguistic fields.
type Meta struct {
	Name string `json:"name" yaml:"name"`

	// WorldDescription is free text supplied by the author. It can be large;
	// the context pruner truncates it per operation.
	WorldDescription string `json:"world_description,omitempty" yaml:"world_description,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// ValidationState summarizes the last validation verdict for display and
// staleness checks. It is advisory: acceptance decisions always re-run the
// engine rather than trusting this snapshot.
type ValidationState struct {
	Valid          bool      `json:"valid" yaml:"valid"`
	CheckedVersion int       `json:"checked_version" yaml:"checked_version"`
	CheckedAt      time.Time `json:"checked_at" yaml:"checked_at"`
	ErrorCount     int       `json:"error_count" yaml:"error_count"`
	WarningCount   int       `json:"warning_count" yaml:"warning_count"`
}

// New creates an empty Document with a fresh ID and version 0.
func New(name string) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:      uuid.NewString(),
		Version: 0,
		Meta: Meta{
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Phonology: PhonologyConfig{
			Orthography: map[Phoneme]Grapheme{},
		},
		Morphology: MorphologyConfig{
			Categories: map[PartOfSpeech][]GrammaticalCategory{},
			Paradigms:  map[string]Paradigm{},
		},
		Syntax: SyntaxConfig{
			PhraseStructure: map[string][]SyntaxSlot{},
		},
	}
}

// Clone returns a deep structural copy of the document.
//
// Description:
//
//	Every map and slice is copied; no memory is shared with the receiver.
//	This is the only sanctioned way to obtain a scratch document for
//	pruning or for applying a generation response.
//
// Outputs:
//
//	*Document - An independent copy. Mutating it never affects the receiver.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		ID:         d.ID,
		Version:    d.Version,
		Meta:       d.Meta,
		Phonology:  d.Phonology.Clone(),
		Morphology: d.Morphology.Clone(),
		Syntax:     d.Syntax.Clone(),
	}
	if d.Lexicon != nil {
		out.Lexicon = make([]LexicalEntry, len(d.Lexicon))
		for i, e := range d.Lexicon {
			out.Lexicon[i] = e.Clone()
		}
	}
	if d.Corpus != nil {
		out.Corpus = make([]CorpusSample, len(d.Corpus))
		for i, s := range d.Corpus {
			out.Corpus[i] = s.Clone()
		}
	}
	if d.ValidationState != nil {
		vs := *d.ValidationState
		out.ValidationState = &vs
	}
	return out
}

// CheckStructure verifies that required top-level structure is present.
//
// Description:
//
//	Runs the validate struct tags over the document. A failure here is a
//	caller contract violation (e.g. missing ID, nil paradigm map where one
//	is required), not a linguistic finding — the validation engine refuses
//	malformed documents instead of reporting issues against them.
//
// Inputs:
//
//	v - A shared validator instance. Must not be nil.
//
// Outputs:
//
//	error - Non-nil if the document shape violates the struct contract.
func (d *Document) CheckStructure(v *validator.Validate) error {
	if err := v.Struct(d); err != nil {
		return fmt.Errorf("document structure: %w", err)
	}
	if d.Morphology.Paradigms == nil {
		return fmt.Errorf("document structure: morphology.paradigms must be a mapping")
	}
	if d.Phonology.Orthography == nil {
		return fmt.Errorf("document structure: phonology.orthography must be a mapping")
	}
	return nil
}

// Load reads a Document from a YAML file.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	if doc.Morphology.Paradigms == nil {
		doc.Morphology.Paradigms = map[string]Paradigm{}
	}
	if doc.Phonology.Orthography == nil {
		doc.Phonology.Orthography = map[Phoneme]Grapheme{}
	}
	return &doc, nil
}

// Save writes the Document to a YAML file with 0644 permissions.
func (d *Document) Save(path string) error {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}
