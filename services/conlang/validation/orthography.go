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
	"sort"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

// OrthographyReport is the outcome of the orthography bijection check.
type OrthographyReport struct {
	// Bijective is true when every inventory phoneme maps to exactly one
	// grapheme and every grapheme maps back to exactly one inventory
	// phoneme.
	Bijective bool

	// MissingPhonemes lists inventory phonemes with no orthography entry.
	MissingPhonemes []document.Phoneme

	// UnusedGraphemes lists graphemes that do not map back to an inventory
	// phoneme (their mapping's phoneme is outside the inventory).
	UnusedGraphemes []document.Grapheme

	Issues []Issue
}

// ValidateOrthography checks that the orthography is a bijection between
// the inventory and the grapheme set.
//
// Description:
//
//	Three failure classes, all errors: an inventory phoneme without a
//	grapheme, two phonemes sharing one grapheme, and a mapping whose
//	phoneme is not in the inventory at all (an orphan entry, typically
//	left behind after an inventory edit).
func ValidateOrthography(inv document.Inventory, orthography map[document.Phoneme]document.Grapheme) OrthographyReport {
	report := OrthographyReport{Bijective: true}

	all := make([]document.Phoneme, 0, len(inv.Consonants)+len(inv.Vowels))
	all = append(all, inv.Consonants...)
	all = append(all, inv.Vowels...)

	for _, p := range all {
		if _, ok := orthography[p]; !ok {
			report.Bijective = false
			report.MissingPhonemes = append(report.MissingPhonemes, p)
			report.Issues = append(report.Issues, Errorf(ModulePhonology, RuleOrthographyMissing,
				"phoneme /%s/ has no grapheme", p).WithRef(string(p)))
		}
	}

	byGrapheme := map[document.Grapheme][]document.Phoneme{}
	for p, g := range orthography {
		if !inv.Contains(p) {
			report.Bijective = false
			report.UnusedGraphemes = append(report.UnusedGraphemes, g)
			report.Issues = append(report.Issues, Errorf(ModulePhonology, RuleOrthographyOrphan,
				"orthography maps /%s/ which is not in the inventory", p).WithRef(string(p)))
			continue
		}
		byGrapheme[g] = append(byGrapheme[g], p)
	}

	graphemes := make([]document.Grapheme, 0, len(byGrapheme))
	for g := range byGrapheme {
		graphemes = append(graphemes, g)
	}
	sort.Slice(graphemes, func(i, j int) bool { return graphemes[i] < graphemes[j] })

	for _, g := range graphemes {
		phonemes := byGrapheme[g]
		if len(phonemes) > 1 {
			report.Bijective = false
			report.Issues = append(report.Issues, Errorf(ModulePhonology, RuleOrthographyDupGrapheme,
				"grapheme <%s> is shared by %d phonemes", g, len(phonemes)).WithRef(string(g)))
		}
	}

	return report
}
