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

func TestWordFormValidator_Validate(t *testing.T) {
	wfv := NewWordFormValidator(NewIPAClassifier())

	inv := document.Inventory{
		Consonants: []document.Phoneme{"t", "k", "n"},
		Vowels:     []document.Phoneme{"a", "u"},
	}
	cvOnly := document.Phonotactics{SyllableTemplates: []string{"CV"}}

	t.Run("CV form syllabifies", func(t *testing.T) {
		report := wfv.Validate("/tana/", cvOnly, inv)
		if !report.Valid {
			t.Fatalf("Valid = false, want true; issues: %v", report.Issues)
		}
		want := []string{"ta", "na"}
		if len(report.Syllables) != len(want) {
			t.Fatalf("Syllables = %v, want %v", report.Syllables, want)
		}
		for i, s := range want {
			if report.Syllables[i] != s {
				t.Errorf("Syllables[%d] = %q, want %q", i, report.Syllables[i], s)
			}
		}
	})

	t.Run("unparseable form is invalid", func(t *testing.T) {
		report := wfv.Validate("/tna/", cvOnly, inv)
		if report.Valid {
			t.Fatal("Valid = true, want false")
		}
		if len(report.Issues) != 1 {
			t.Fatalf("len(Issues) = %d, want 1", len(report.Issues))
		}
		if report.Issues[0].RuleID != RuleFormNoParse {
			t.Errorf("RuleID = %s, want %s", report.Issues[0].RuleID, RuleFormNoParse)
		}
	})

	t.Run("unknown phoneme reported per symbol", func(t *testing.T) {
		report := wfv.Validate("/taza/", cvOnly, inv)
		if report.Valid {
			t.Fatal("Valid = true, want false")
		}
		if len(report.Issues) != 1 {
			t.Fatalf("len(Issues) = %d, want 1", len(report.Issues))
		}
		issue := report.Issues[0]
		if issue.RuleID != RuleFormUnknownPhoneme {
			t.Errorf("RuleID = %s, want %s", issue.RuleID, RuleFormUnknownPhoneme)
		}
		if issue.EntityRef != "z" {
			t.Errorf("EntityRef = %q, want %q", issue.EntityRef, "z")
		}
	})

	t.Run("optional slots backtrack", func(t *testing.T) {
		tactics := document.Phonotactics{SyllableTemplates: []string{"(C)V(N)"}}
		for _, form := range []string{"a", "na", "an", "nan", "tanan"} {
			report := wfv.Validate(form, tactics, inv)
			if !report.Valid {
				t.Errorf("form %q: Valid = false, want true; issues: %v", form, report.Issues)
			}
		}
		// "t" alone never matches: the nucleus slot is mandatory.
		if report := wfv.Validate("t", tactics, inv); report.Valid {
			t.Error("form \"t\": Valid = true, want false")
		}
	})

	t.Run("onset clusters must be declared", func(t *testing.T) {
		clusterInv := document.Inventory{
			Consonants: []document.Phoneme{"s", "t", "k"},
			Vowels:     []document.Phoneme{"a"},
		}
		tactics := document.Phonotactics{
			SyllableTemplates: []string{"CCV", "CV"},
			OnsetClusters:     []string{"st"},
		}
		if report := wfv.Validate("sta", tactics, clusterInv); !report.Valid {
			t.Errorf("declared cluster: Valid = false; issues: %v", report.Issues)
		}
		if report := wfv.Validate("kta", tactics, clusterInv); report.Valid {
			t.Error("undeclared cluster: Valid = true, want false")
		}
	})

	t.Run("tones are transparent to templates", func(t *testing.T) {
		tonalInv := inv
		tonalInv.Tones = []document.Phoneme{"˥"}
		report := wfv.Validate("ta˥na", cvOnly, tonalInv)
		if !report.Valid {
			t.Fatalf("Valid = false; issues: %v", report.Issues)
		}
	})

	t.Run("malformed template reported but parse still wins", func(t *testing.T) {
		tactics := document.Phonotactics{SyllableTemplates: []string{"CV", "XQ"}}
		report := wfv.Validate("tana", tactics, inv)
		if !report.Valid {
			t.Fatal("Valid = false, want true despite the bad template")
		}
		found := false
		for _, issue := range report.Issues {
			if issue.RuleID == RuleFormBadTemplate {
				found = true
			}
		}
		if !found {
			t.Errorf("no %s issue for template XQ; issues: %v", RuleFormBadTemplate, report.Issues)
		}
	})

	t.Run("no templates declared", func(t *testing.T) {
		report := wfv.Validate("tana", document.Phonotactics{}, inv)
		if report.Valid {
			t.Fatal("Valid = true, want false")
		}
	})

	t.Run("empty form", func(t *testing.T) {
		report := wfv.Validate("//", cvOnly, inv)
		if report.Valid || len(report.Issues) != 1 {
			t.Fatalf("report = %+v, want exactly one issue", report)
		}
	})

	t.Run("multi-rune phonemes use longest match", func(t *testing.T) {
		affricateInv := document.Inventory{
			Consonants: []document.Phoneme{"t", "tʃ"},
			Vowels:     []document.Phoneme{"a"},
		}
		report := wfv.Validate("tʃa", cvOnly, affricateInv)
		if !report.Valid {
			t.Fatalf("Valid = false; issues: %v", report.Issues)
		}
		if len(report.Syllables) != 1 || report.Syllables[0] != "tʃa" {
			t.Errorf("Syllables = %v, want [tʃa]", report.Syllables)
		}
	})
}

func TestParseTemplate(t *testing.T) {
	cases := []struct {
		raw     string
		wantErr bool
		slots   int
	}{
		{"CV", false, 2},
		{"(C)V(N)", false, 3},
		{"CVC", false, 3},
		{"", true, 0},
		{"C(V", true, 0},
		{"C)V", true, 0},
		{"((C)V", true, 0},
		{"CX", true, 0},
	}
	for _, tc := range cases {
		slots, errMsg := parseTemplate(tc.raw)
		if tc.wantErr && errMsg == "" {
			t.Errorf("parseTemplate(%q) succeeded, want error", tc.raw)
		}
		if !tc.wantErr {
			if errMsg != "" {
				t.Errorf("parseTemplate(%q) = %q, want success", tc.raw, errMsg)
				continue
			}
			if len(slots) != tc.slots {
				t.Errorf("parseTemplate(%q) slots = %d, want %d", tc.raw, len(slots), tc.slots)
			}
		}
	}
}
