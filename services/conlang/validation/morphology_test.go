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
	"testing"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

func TestValidateMorphologyConfig(t *testing.T) {
	phonology := document.PhonologyConfig{
		Inventory: document.Inventory{
			Consonants: []document.Phoneme{"t", "k", "n"},
			Vowels:     []document.Phoneme{"a", "u"},
		},
	}

	t.Run("clean config has no issues", func(t *testing.T) {
		cfg := document.MorphologyConfig{
			Typology:      document.TypologyAgglutinative,
			MorphemeOrder: []string{document.RootSlot, "number"},
			Paradigms: map[string]document.Paradigm{
				"noun:number": {"pl": {Form: "na", Type: document.AffixSuffix}},
			},
		}
		issues := ValidateMorphologyConfig(cfg, phonology)
		if len(issues) != 0 {
			t.Fatalf("issues = %v, want none", issues)
		}
	})

	t.Run("missing root slot is exactly one error", func(t *testing.T) {
		cfg := document.MorphologyConfig{
			Typology:      document.TypologyAgglutinative,
			MorphemeOrder: []string{"number", "case"},
		}
		issues := ValidateMorphologyConfig(cfg, phonology)
		if len(issues) != 1 {
			t.Fatalf("issues = %v, want exactly one", issues)
		}
		if issues[0].RuleID != RuleMorphRootMissing || issues[0].Severity != SeverityError {
			t.Errorf("issue = %+v, want %s error", issues[0], RuleMorphRootMissing)
		}
	})

	t.Run("unknown typology", func(t *testing.T) {
		cfg := document.MorphologyConfig{
			Typology:      "oligosynthetic",
			MorphemeOrder: []string{document.RootSlot},
		}
		issues := ValidateMorphologyConfig(cfg, phonology)
		if len(issues) != 1 || issues[0].RuleID != RuleMorphTypology {
			t.Fatalf("issues = %v, want one %s", issues, RuleMorphTypology)
		}
	})

	t.Run("empty typology is allowed", func(t *testing.T) {
		cfg := document.MorphologyConfig{MorphemeOrder: []string{document.RootSlot}}
		if issues := ValidateMorphologyConfig(cfg, phonology); len(issues) != 0 {
			t.Fatalf("issues = %v, want none", issues)
		}
	})

	t.Run("affix with orphan phoneme", func(t *testing.T) {
		cfg := document.MorphologyConfig{
			Typology:      document.TypologyFusional,
			MorphemeOrder: []string{document.RootSlot, "number"},
			Paradigms: map[string]document.Paradigm{
				"noun:number": {"pl": {Form: "zo", Type: document.AffixSuffix}},
			},
		}
		issues := ValidateMorphologyConfig(cfg, phonology)
		// "z" and "o" are both outside the inventory.
		if len(issues) != 2 {
			t.Fatalf("issues = %v, want two orphan phonemes", issues)
		}
		for _, issue := range issues {
			if issue.RuleID != RuleMorphOrphanPhoneme {
				t.Errorf("RuleID = %s, want %s", issue.RuleID, RuleMorphOrphanPhoneme)
			}
			if issue.EntityRef != "noun:number.pl" {
				t.Errorf("EntityRef = %q, want noun:number.pl", issue.EntityRef)
			}
		}
	})

	t.Run("circumfix tail is checked too", func(t *testing.T) {
		cfg := document.MorphologyConfig{
			MorphemeOrder: []string{document.RootSlot, "aspect"},
			Paradigms: map[string]document.Paradigm{
				"verb:aspect": {"perf": {Form: "ka", Tail: "zi", Type: document.AffixCircumfix}},
			},
		}
		issues := ValidateMorphologyConfig(cfg, phonology)
		// "z" and "i" in the tail are orphans; the leading part is clean.
		if len(issues) != 2 {
			t.Fatalf("issues = %v, want two", issues)
		}
	})

	t.Run("derivational rule shape", func(t *testing.T) {
		cfg := document.MorphologyConfig{
			MorphemeOrder: []string{document.RootSlot},
			DerivationalRules: []document.DerivationalRule{
				{From: document.POSVerb, To: document.POSNoun, Affix: document.Affix{Form: "ta", Type: "interfix"}},
			},
		}
		issues := ValidateMorphologyConfig(cfg, phonology)
		// Missing id plus unknown affix type.
		if len(issues) != 2 {
			t.Fatalf("issues = %v, want two", issues)
		}
		for _, issue := range issues {
			if issue.RuleID != RuleMorphDerivShape {
				t.Errorf("RuleID = %s, want %s", issue.RuleID, RuleMorphDerivShape)
			}
		}
	})
}
