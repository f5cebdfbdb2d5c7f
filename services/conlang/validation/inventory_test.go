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

func countBySeverity(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}

func TestValidateInventory(t *testing.T) {
	classifier := NewIPAClassifier()

	t.Run("clean inventory has no issues", func(t *testing.T) {
		inv := document.Inventory{
			Consonants: []document.Phoneme{"t", "k", "n", "s"},
			Vowels:     []document.Phoneme{"a", "i", "u"},
		}
		issues := ValidateInventory(inv, classifier)
		if len(issues) != 0 {
			t.Fatalf("issues = %v, want none", issues)
		}
	})

	t.Run("empty sets are errors", func(t *testing.T) {
		issues := ValidateInventory(document.Inventory{}, classifier)
		errCount, _ := countBySeverity(issues)
		if errCount != 2 {
			t.Fatalf("errors = %d, want 2 (no consonants, no vowels)", errCount)
		}
	})

	t.Run("cross-set duplicate", func(t *testing.T) {
		inv := document.Inventory{
			Consonants: []document.Phoneme{"t", "a"},
			Vowels:     []document.Phoneme{"a"},
		}
		issues := ValidateInventory(inv, classifier)
		if len(issues) != 1 {
			t.Fatalf("issues = %v, want exactly one", issues)
		}
		if issues[0].RuleID != RuleInventoryDuplicate || issues[0].EntityRef != "a" {
			t.Errorf("issue = %+v, want %s on /a/", issues[0], RuleInventoryDuplicate)
		}
	})

	t.Run("same-set duplicate", func(t *testing.T) {
		inv := document.Inventory{
			Consonants: []document.Phoneme{"t", "t"},
			Vowels:     []document.Phoneme{"a"},
		}
		issues := ValidateInventory(inv, classifier)
		if len(issues) != 1 {
			t.Fatalf("issues = %v, want exactly one", issues)
		}
		if issues[0].Severity != SeverityError {
			t.Errorf("Severity = %s, want error", issues[0].Severity)
		}
	})

	t.Run("unrecognized symbol is a warning only", func(t *testing.T) {
		inv := document.Inventory{
			Consonants: []document.Phoneme{"t", "q7"},
			Vowels:     []document.Phoneme{"a"},
		}
		issues := ValidateInventory(inv, classifier)
		errCount, warnCount := countBySeverity(issues)
		if errCount != 0 || warnCount != 1 {
			t.Fatalf("errors = %d warnings = %d, want 0 and 1; issues: %v", errCount, warnCount, issues)
		}
		if issues[0].RuleID != RuleInventoryUnknownSymbol {
			t.Errorf("RuleID = %s, want %s", issues[0].RuleID, RuleInventoryUnknownSymbol)
		}
	})
}

func TestIPAClassifier(t *testing.T) {
	c := NewIPAClassifier()

	if !c.Recognized("tʃ") || !c.Recognized("a") || c.Recognized("x7") || c.Recognized("") {
		t.Error("Recognized misclassifies basic symbols")
	}
	if !c.Glide("j") || !c.Glide("w") || c.Glide("t") {
		t.Error("Glide misclassifies")
	}
	if !c.Nasal("n") || !c.Nasal("ŋ") || c.Nasal("s") {
		t.Error("Nasal misclassifies")
	}
	if !c.Sibilant("s") || !c.Sibilant("tʃ") || c.Sibilant("m") {
		t.Error("Sibilant misclassifies")
	}
	// Modifiers are stripped before class lookup.
	if !c.Nasal("nʲ") {
		t.Error("Nasal(nʲ) = false, want true")
	}
}
