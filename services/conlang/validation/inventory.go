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
	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

// ValidateInventory checks the phoneme inventory in isolation.
//
// Findings:
//   - empty consonant or vowel set: error (a language cannot build
//     syllables without both)
//   - the same phoneme declared twice, within or across sets: error
//   - a symbol outside the recognized IPA-derived alphabet: warning
func ValidateInventory(inv document.Inventory, classifier PhonemeClassifier) []Issue {
	var issues []Issue

	if len(inv.Consonants) == 0 {
		issues = append(issues, Errorf(ModulePhonology, RuleInventoryEmptyConsonants,
			"inventory declares no consonants"))
	}
	if len(inv.Vowels) == 0 {
		issues = append(issues, Errorf(ModulePhonology, RuleInventoryEmptyVowels,
			"inventory declares no vowels"))
	}

	seen := map[document.Phoneme]string{}
	check := func(set string, phonemes []document.Phoneme) {
		for _, p := range phonemes {
			if prev, dup := seen[p]; dup {
				msg := Errorf(ModulePhonology, RuleInventoryDuplicate,
					"phoneme /%s/ declared in both %s and %s", p, prev, set)
				if prev == set {
					msg = Errorf(ModulePhonology, RuleInventoryDuplicate,
						"phoneme /%s/ declared twice in %s", p, set)
				}
				issues = append(issues, msg.WithRef(string(p)))
				continue
			}
			seen[p] = set
			if !classifier.Recognized(p) {
				issues = append(issues, Warnf(ModulePhonology, RuleInventoryUnknownSymbol,
					"symbol /%s/ is outside the recognized IPA alphabet", p).WithRef(string(p)))
			}
		}
	}
	check("consonants", inv.Consonants)
	check("vowels", inv.Vowels)
	check("tones", inv.Tones)

	return issues
}
