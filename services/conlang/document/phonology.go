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

// Phoneme is a single phonemic segment, written in IPA without delimiters
// (e.g. "t", "a", "tʃ"). Multi-rune phonemes are allowed.
type Phoneme string

// Grapheme is the orthographic rendering of one phoneme.
type Grapheme string

// Inventory declares the sound system: which segments exist at all.
// Every phoneme referenced anywhere downstream (affixes, lexicon forms)
// must be a member of this inventory.
type Inventory struct {
	Consonants []Phoneme `json:"consonants" yaml:"consonants"`
	Vowels     []Phoneme `json:"vowels" yaml:"vowels"`
	Tones      []Phoneme `json:"tones,omitempty" yaml:"tones,omitempty"`
}

// Contains reports whether p appears in any inventory set.
func (inv Inventory) Contains(p Phoneme) bool {
	for _, c := range inv.Consonants {
		if c == p {
			return true
		}
	}
	for _, v := range inv.Vowels {
		if v == p {
			return true
		}
	}
	for _, t := range inv.Tones {
		if t == p {
			return true
		}
	}
	return false
}

// IsVowel reports whether p is declared as a vowel.
func (inv Inventory) IsVowel(p Phoneme) bool {
	for _, v := range inv.Vowels {
		if v == p {
			return true
		}
	}
	return false
}

// IsConsonant reports whether p is declared as a consonant.
func (inv Inventory) IsConsonant(p Phoneme) bool {
	for _, c := range inv.Consonants {
		if c == p {
			return true
		}
	}
	return false
}

// AllophonyRule describes a context-dependent surface realization.
type AllophonyRule struct {
	ID          string `json:"id" yaml:"id"`
	Phoneme     string `json:"phoneme" yaml:"phoneme"`
	Realization string `json:"realization" yaml:"realization"`
	// Environment uses the conventional A → B / X_Y notation, stored as the
	// X_Y part (e.g. "V_V" for intervocalic).
	Environment string `json:"environment" yaml:"environment"`
}

// Phonotactics declares which sequences of inventory phonemes form legal
// words. SyllableTemplates use the class alphabet C (consonant), V (vowel),
// G (glide), N (nasal), S (sibilant); parentheses mark an optional slot,
// e.g. "(C)V(N)". Clusters are written as plain phoneme concatenations.
type Phonotactics struct {
	SyllableTemplates []string        `json:"syllable_templates" yaml:"syllable_templates"`
	OnsetClusters     []string        `json:"onset_clusters,omitempty" yaml:"onset_clusters,omitempty"`
	CodaClusters      []string        `json:"coda_clusters,omitempty" yaml:"coda_clusters,omitempty"`
	AllophonyRules    []AllophonyRule `json:"allophony_rules,omitempty" yaml:"allophony_rules,omitempty"`
}

// PhonologyConfig bundles the full sound-system declaration.
type PhonologyConfig struct {
	Inventory    Inventory    `json:"inventory" yaml:"inventory"`
	Phonotactics Phonotactics `json:"phonotactics" yaml:"phonotactics"`

	// Orthography maps each inventory phoneme to its written form. The
	// validation engine requires this mapping to be a bijection.
	Orthography map[Phoneme]Grapheme `json:"orthography" yaml:"orthography"`

	// Suprasegmentals lists prosodic features in use (e.g. "stress:initial",
	// "tone:register"). Free-form, not validated beyond presence.
	Suprasegmentals []string `json:"suprasegmentals,omitempty" yaml:"suprasegmentals,omitempty"`
}

// Clone returns a deep copy of the phonology config.
func (p PhonologyConfig) Clone() PhonologyConfig {
	out := p
	out.Inventory.Consonants = append([]Phoneme(nil), p.Inventory.Consonants...)
	out.Inventory.Vowels = append([]Phoneme(nil), p.Inventory.Vowels...)
	out.Inventory.Tones = append([]Phoneme(nil), p.Inventory.Tones...)
	out.Phonotactics.SyllableTemplates = append([]string(nil), p.Phonotactics.SyllableTemplates...)
	out.Phonotactics.OnsetClusters = append([]string(nil), p.Phonotactics.OnsetClusters...)
	out.Phonotactics.CodaClusters = append([]string(nil), p.Phonotactics.CodaClusters...)
	out.Phonotactics.AllophonyRules = append([]AllophonyRule(nil), p.Phonotactics.AllophonyRules...)
	out.Suprasegmentals = append([]string(nil), p.Suprasegmentals...)
	if p.Orthography != nil {
		out.Orthography = make(map[Phoneme]Grapheme, len(p.Orthography))
		for k, v := range p.Orthography {
			out.Orthography[k] = v
		}
	}
	return out
}
