// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package validation

import (
	"strings"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

// PhonemeClassifier answers class-membership questions about phonemes.
//
// The built-in implementation is a fixed-table heuristic over common IPA
// symbols. It sits behind this interface so a real feature-table (place,
// manner, voicing) implementation can replace it without touching any pass
// or the orchestration logic.
type PhonemeClassifier interface {
	// Recognized reports whether the symbol belongs to the known
	// IPA-derived alphabet. Unrecognized symbols are flagged as warnings,
	// not errors: authors may legitimately extend the alphabet.
	Recognized(p document.Phoneme) bool

	// Glide reports membership in the glide class (template letter G).
	Glide(p document.Phoneme) bool

	// Nasal reports membership in the nasal class (template letter N).
	Nasal(p document.Phoneme) bool

	// Sibilant reports membership in the sibilant class (template letter S).
	Sibilant(p document.Phoneme) bool
}

// ipaTable is the default heuristic classifier.
type ipaTable struct{}

// NewIPAClassifier returns the fixed-table IPA classifier.
func NewIPAClassifier() PhonemeClassifier {
	return ipaTable{}
}

const (
	ipaConsonants = "pbtdʈɖcɟkɡgqɢʔmɱnɳɲŋɴʙrʀⱱɾɽɸβfvθðszʃʒʂʐçʝxɣχʁħʕhɦɬɮʋɹɻjɰlɭʎʟwʍɥɕʑɺɧ"
	ipaVowels     = "iyɨʉɯuɪʏʊeøɘɵɤoəɛœɜɞʌɔæɐaɶɑɒ"
	ipaModifiers  = "ːˑ̃ʰʷʲˠˤ̥̬̪̺̻˞̤̰̝̞̘̙̈̽̚ ͡ ͜"
	ipaTones      = "˥˦˧˨˩́̀̂̌̄"
)

var (
	ipaGlides    = map[string]bool{"j": true, "w": true, "ɥ": true, "ɰ": true, "ʋ": true}
	ipaNasals    = map[string]bool{"m": true, "ɱ": true, "n": true, "ɳ": true, "ɲ": true, "ŋ": true, "ɴ": true}
	ipaSibilants = map[string]bool{"s": true, "z": true, "ʃ": true, "ʒ": true, "ʂ": true, "ʐ": true, "ɕ": true, "ʑ": true, "ts": true, "dz": true, "tʃ": true, "dʒ": true}
)

func (ipaTable) Recognized(p document.Phoneme) bool {
	if p == "" {
		return false
	}
	alphabet := ipaConsonants + ipaVowels + ipaModifiers + ipaTones
	for _, r := range string(p) {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}

func (ipaTable) Glide(p document.Phoneme) bool {
	return ipaGlides[baseSymbol(p)]
}

func (ipaTable) Nasal(p document.Phoneme) bool {
	return ipaNasals[baseSymbol(p)]
}

func (ipaTable) Sibilant(p document.Phoneme) bool {
	if ipaSibilants[string(p)] {
		return true
	}
	return ipaSibilants[baseSymbol(p)]
}

// baseSymbol strips length and secondary-articulation modifiers so that
// e.g. "nʲ" still classifies as a nasal.
func baseSymbol(p document.Phoneme) string {
	var b strings.Builder
	for _, r := range string(p) {
		if strings.ContainsRune(ipaModifiers+ipaTones, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
