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

import "time"

// LexicalEntry is one dictionary lemma. Entries are immutable once created:
// an edit produces a new entry with a fresh ID so that cache fingerprints
// derived from older revisions stay stable.
type LexicalEntry struct {
	ID string `json:"id" yaml:"id"`

	// Lemma is the orthographic citation form.
	Lemma string `json:"lemma" yaml:"lemma"`

	// IPA is the phonemic form with slash delimiters, e.g. "/tana/".
	IPA string `json:"ipa" yaml:"ipa"`

	POS     PartOfSpeech `json:"pos" yaml:"pos"`
	Glosses []string     `json:"glosses" yaml:"glosses"`

	// Etymology and usage notes are free text, never validated.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Clone returns a copy of the entry with no shared slices.
func (e LexicalEntry) Clone() LexicalEntry {
	out := e
	out.Glosses = append([]string(nil), e.Glosses...)
	return out
}

// GlossToken is one word of an interlinear gloss line: the surface form,
// its gloss, and the part of speech assigned to it.
type GlossToken struct {
	Surface string       `json:"surface" yaml:"surface"`
	Gloss   string       `json:"gloss" yaml:"gloss"`
	POS     PartOfSpeech `json:"pos" yaml:"pos"`
}

// CorpusSample is one example sentence with its translation and an optional
// interlinear gloss. Like lexical entries, samples are immutable once
// produced.
type CorpusSample struct {
	ID          string       `json:"id" yaml:"id"`
	Text        string       `json:"text" yaml:"text"`
	Translation string       `json:"translation" yaml:"translation"`
	Gloss       []GlossToken `json:"gloss,omitempty" yaml:"gloss,omitempty"`
	CreatedAt   time.Time    `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Clone returns a copy of the sample with no shared slices.
func (s CorpusSample) Clone() CorpusSample {
	out := s
	out.Gloss = append([]GlossToken(nil), s.Gloss...)
	return out
}
