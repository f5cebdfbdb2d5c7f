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
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func sampleDocument() *Document {
	doc := New("Testlang")
	doc.Phonology.Inventory = Inventory{
		Consonants: []Phoneme{"t", "n"},
		Vowels:     []Phoneme{"a"},
	}
	doc.Phonology.Phonotactics.SyllableTemplates = []string{"CV"}
	doc.Phonology.Orthography = map[Phoneme]Grapheme{"t": "t", "n": "n", "a": "a"}
	doc.Morphology.Typology = TypologyAgglutinative
	doc.Morphology.MorphemeOrder = []string{RootSlot, "number"}
	doc.Morphology.Paradigms["noun:number"] = Paradigm{
		"pl": {Form: "na", Type: AffixSuffix},
	}
	doc.Syntax.WordOrder = OrderSOV
	doc.Syntax.ClauseTypes = []string{"declarative"}
	doc.Lexicon = []LexicalEntry{
		{ID: "lex-1", Lemma: "tana", IPA: "/tana/", POS: POSNoun, Glosses: []string{"water"}},
	}
	doc.Corpus = []CorpusSample{
		{ID: "s-1", Text: "tana", Translation: "water", Gloss: []GlossToken{{Surface: "tana", Gloss: "water", POS: POSNoun}}},
	}
	return doc
}

func TestNew(t *testing.T) {
	doc := New("Testlang")
	if doc.ID == "" {
		t.Error("ID is empty")
	}
	if doc.Version != 0 {
		t.Errorf("Version = %d, want 0", doc.Version)
	}
	// The maps the structural contract requires are never nil on a fresh
	// document.
	if doc.Phonology.Orthography == nil || doc.Morphology.Paradigms == nil {
		t.Error("required maps are nil")
	}
	if err := doc.CheckStructure(validator.New()); err != nil {
		t.Errorf("CheckStructure: %v", err)
	}
}

func TestDocument_Clone(t *testing.T) {
	original := sampleDocument()
	original.ValidationState = &ValidationState{Valid: true, CheckedVersion: 3}

	clone := original.Clone()
	if !reflect.DeepEqual(original, clone) {
		t.Fatal("clone differs from original before mutation")
	}

	// Mutating every shared-looking structure in the clone must leave the
	// original untouched.
	clone.Phonology.Inventory.Consonants[0] = "k"
	clone.Phonology.Orthography["t"] = "th"
	clone.Morphology.Paradigms["noun:number"]["pl"] = Affix{Form: "ki", Type: AffixPrefix}
	clone.Morphology.MorphemeOrder[0] = "number"
	clone.Syntax.ClauseTypes[0] = "interrogative"
	clone.Lexicon[0].Glosses[0] = "fire"
	clone.Corpus[0].Gloss[0].Gloss = "fire"
	clone.ValidationState.Valid = false

	if original.Phonology.Inventory.Consonants[0] != "t" {
		t.Error("inventory leaked into the original")
	}
	if original.Phonology.Orthography["t"] != "t" {
		t.Error("orthography leaked into the original")
	}
	if original.Morphology.Paradigms["noun:number"]["pl"].Form != "na" {
		t.Error("paradigms leaked into the original")
	}
	if original.Morphology.MorphemeOrder[0] != RootSlot {
		t.Error("morpheme order leaked into the original")
	}
	if original.Syntax.ClauseTypes[0] != "declarative" {
		t.Error("clause types leaked into the original")
	}
	if original.Lexicon[0].Glosses[0] != "water" {
		t.Error("lexicon glosses leaked into the original")
	}
	if original.Corpus[0].Gloss[0].Gloss != "water" {
		t.Error("corpus glosses leaked into the original")
	}
	if !original.ValidationState.Valid {
		t.Error("validation state leaked into the original")
	}
}

func TestDocument_CheckStructure(t *testing.T) {
	v := validator.New()

	t.Run("missing id", func(t *testing.T) {
		doc := sampleDocument()
		doc.ID = ""
		if err := doc.CheckStructure(v); err == nil {
			t.Error("CheckStructure = nil, want error")
		}
	})

	t.Run("nil paradigm map", func(t *testing.T) {
		doc := sampleDocument()
		doc.Morphology.Paradigms = nil
		if err := doc.CheckStructure(v); err == nil {
			t.Error("CheckStructure = nil, want error")
		}
	})

	t.Run("nil orthography map", func(t *testing.T) {
		doc := sampleDocument()
		doc.Phonology.Orthography = nil
		if err := doc.CheckStructure(v); err == nil {
			t.Error("CheckStructure = nil, want error")
		}
	})
}

func TestDocument_SaveLoad(t *testing.T) {
	doc := sampleDocument()
	doc.Meta.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc.Meta.UpdatedAt = doc.Meta.CreatedAt

	path := filepath.Join(t.TempDir(), "lang.yaml")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(doc, loaded) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", doc, loaded)
	}
}

func TestLoad_InitializesRequiredMaps(t *testing.T) {
	// A minimal file with no morphology or orthography sections must still
	// load with usable maps.
	path := filepath.Join(t.TempDir(), "bare.yaml")
	doc := &Document{ID: "bare"}
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Morphology.Paradigms == nil || loaded.Phonology.Orthography == nil {
		t.Error("required maps are nil after load")
	}
}

func TestParadigmKey(t *testing.T) {
	if got := ParadigmKey(POSNoun, "Case"); got != "noun:case" {
		t.Errorf("ParadigmKey = %q, want noun:case", got)
	}
}

func TestTypology(t *testing.T) {
	for _, typ := range []Typology{TypologyAnalytic, TypologyAgglutinative,
		TypologyFusional, TypologyPolysynthetic, TypologyMixed} {
		if !typ.Known() {
			t.Errorf("%s.Known() = false", typ)
		}
	}
	if Typology("oligosynthetic").Known() {
		t.Error("unknown typology reported as known")
	}
	if !TypologyAnalytic.AffixPolicy().ExpectsIsolation {
		t.Error("analytic policy does not expect isolation")
	}
	if !TypologyFusional.AffixPolicy().FusesFeatures {
		t.Error("fusional policy does not fuse features")
	}
}

func TestWordOrder(t *testing.T) {
	if !OrderSOV.VerbFinal() || OrderSOV.VerbInitial() {
		t.Error("SOV misclassified")
	}
	if !OrderVSO.VerbInitial() || OrderVSO.VerbFinal() {
		t.Error("VSO misclassified")
	}
	if OrderFree.VerbInitial() || OrderFree.VerbFinal() {
		t.Error("free order misclassified")
	}
	if WordOrder("VVS").Known() {
		t.Error("unknown order reported as known")
	}
}

func TestAlignmentCoreCases(t *testing.T) {
	cases := AlignErgativeAbsolutive.CoreCases()
	if len(cases) != 2 || cases[0] != "ergative" || cases[1] != "absolutive" {
		t.Errorf("CoreCases = %v", cases)
	}
	if Alignment("austronesian").CoreCases() != nil {
		t.Error("unknown alignment has core cases")
	}
}
