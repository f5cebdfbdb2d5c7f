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

func testPhonology() document.PhonologyConfig {
	return document.PhonologyConfig{
		Inventory: document.Inventory{
			Consonants: []document.Phoneme{"t", "k", "n", "m"},
			Vowels:     []document.Phoneme{"a", "i", "u"},
		},
		Phonotactics: document.Phonotactics{
			SyllableTemplates: []string{"CV(N)", "V"},
		},
		Orthography: map[document.Phoneme]document.Grapheme{
			"t": "t", "k": "k", "n": "n", "m": "m", "a": "a", "i": "i", "u": "u",
		},
	}
}

func cellByLabel(t *testing.T, table *ParadigmTable, label string) ParadigmCell {
	t.Helper()
	for _, cell := range table.Cells {
		if cell.Label == label {
			return cell
		}
	}
	t.Fatalf("no cell labeled %q in %v", label, table.Cells)
	return ParadigmCell{}
}

func TestGenerateParadigmTable(t *testing.T) {
	entry := document.LexicalEntry{
		ID:    "lex-tana",
		Lemma: "tana",
		IPA:   "/tana/",
		POS:   document.POSNoun,
	}

	t.Run("suffix composition over the cartesian product", func(t *testing.T) {
		cfg := document.MorphologyConfig{
			Typology:      document.TypologyAgglutinative,
			MorphemeOrder: []string{document.RootSlot, "number"},
			Categories: map[document.PartOfSpeech][]document.GrammaticalCategory{
				document.POSNoun: {{Name: "number", Values: []string{"sg", "pl"}}},
			},
			Paradigms: map[string]document.Paradigm{
				"noun:number": {
					"sg": {Form: "", Type: document.AffixSuffix},
					"pl": {Form: "na", Type: document.AffixSuffix},
				},
			},
		}
		table := GenerateParadigmTable(entry, cfg, testPhonology())
		if len(table.Cells) != 2 {
			t.Fatalf("cells = %d, want 2", len(table.Cells))
		}
		if got := cellByLabel(t, table, "sg"); got.IPA != "tana" || got.Form != "tana" {
			t.Errorf("sg cell = %+v, want bare root", got)
		}
		if got := cellByLabel(t, table, "pl"); got.IPA != "tanana" {
			t.Errorf("pl IPA = %q, want tanana", got.IPA)
		}
	})

	t.Run("combined key overrides per-slot composition", func(t *testing.T) {
		cfg := document.MorphologyConfig{
			Typology:      document.TypologyFusional,
			MorphemeOrder: []string{document.RootSlot, "person", "number"},
			Categories: map[document.PartOfSpeech][]document.GrammaticalCategory{
				document.POSNoun: {
					{Name: "person", Values: []string{"1", "2"}},
					{Name: "number", Values: []string{"sg"}},
				},
			},
			Paradigms: map[string]document.Paradigm{
				"noun:person": {
					"1":   {Form: "mi", Type: document.AffixPrefix},
					"2":   {Form: "ki", Type: document.AffixPrefix},
					"1SG": {Form: "ku", Type: document.AffixSuffix},
				},
				"noun:number": {
					"sg": {Form: "n", Type: document.AffixSuffix},
				},
			},
		}
		table := GenerateParadigmTable(entry, cfg, testPhonology())
		if len(table.Cells) != 2 {
			t.Fatalf("cells = %d, want 2", len(table.Cells))
		}
		// "1"+"sg" matches the combined "1SG" key case-insensitively: one
		// fused suffix, no per-slot prefix.
		if got := cellByLabel(t, table, "1.sg"); got.IPA != "tanaku" {
			t.Errorf("1.sg IPA = %q, want tanaku", got.IPA)
		}
		// "2"+"sg" has no combined key and composes slot by slot.
		if got := cellByLabel(t, table, "2.sg"); got.IPA != "kitanan" {
			t.Errorf("2.sg IPA = %q, want kitanan", got.IPA)
		}
	})

	t.Run("infix lands after the first vowel", func(t *testing.T) {
		cfg := document.MorphologyConfig{
			MorphemeOrder: []string{document.RootSlot, "aspect"},
			Categories: map[document.PartOfSpeech][]document.GrammaticalCategory{
				document.POSNoun: {{Name: "aspect", Values: []string{"prog"}}},
			},
			Paradigms: map[string]document.Paradigm{
				"noun:aspect": {"prog": {Form: "n", Type: document.AffixInfix}},
			},
		}
		table := GenerateParadigmTable(entry, cfg, testPhonology())
		if got := cellByLabel(t, table, "prog"); got.IPA != "tanna" {
			t.Errorf("prog IPA = %q, want tanna", got.IPA)
		}
	})

	t.Run("infix appends when the root has no vowel", func(t *testing.T) {
		consonantal := entry
		consonantal.IPA = "/tk/"
		consonantal.Lemma = "tk"
		cfg := document.MorphologyConfig{
			MorphemeOrder: []string{document.RootSlot, "aspect"},
			Categories: map[document.PartOfSpeech][]document.GrammaticalCategory{
				document.POSNoun: {{Name: "aspect", Values: []string{"prog"}}},
			},
			Paradigms: map[string]document.Paradigm{
				"noun:aspect": {"prog": {Form: "na", Type: document.AffixInfix}},
			},
		}
		table := GenerateParadigmTable(consonantal, cfg, testPhonology())
		if got := cellByLabel(t, table, "prog"); got.IPA != "tkna" {
			t.Errorf("prog IPA = %q, want tkna", got.IPA)
		}
	})

	t.Run("no categories means no cells", func(t *testing.T) {
		table := GenerateParadigmTable(entry, document.MorphologyConfig{}, testPhonology())
		if len(table.Cells) != 0 {
			t.Fatalf("cells = %v, want none", table.Cells)
		}
		if table.LexemeID != entry.ID {
			t.Errorf("LexemeID = %q, want %q", table.LexemeID, entry.ID)
		}
	})
}

func TestValidateParadigmPhonology(t *testing.T) {
	phonology := testPhonology()
	wfv := NewWordFormValidator(NewIPAClassifier())

	entry := document.LexicalEntry{
		ID:    "lex-tana",
		Lemma: "tana",
		IPA:   "/tana/",
		POS:   document.POSNoun,
	}
	cfg := document.MorphologyConfig{
		MorphemeOrder: []string{document.RootSlot, "number"},
		Categories: map[document.PartOfSpeech][]document.GrammaticalCategory{
			document.POSNoun: {{Name: "number", Values: []string{"sg", "pl"}}},
		},
		Paradigms: map[string]document.Paradigm{
			"noun:number": {
				"sg": {Form: "", Type: document.AffixSuffix},
				// "tanat" ends in a non-nasal coda, which no template allows.
				"pl": {Form: "t", Type: document.AffixSuffix},
			},
		},
	}

	table := GenerateParadigmTable(entry, cfg, phonology)
	issues := ValidateParadigmPhonology(table, phonology, wfv)
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want exactly one (the pl cell)", issues)
	}
	if issues[0].RuleID != RuleMorphParadigmCell {
		t.Errorf("RuleID = %s, want %s", issues[0].RuleID, RuleMorphParadigmCell)
	}
	if issues[0].EntityRef != "lex-tana:pl" {
		t.Errorf("EntityRef = %q, want lex-tana:pl", issues[0].EntityRef)
	}
}
