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
	"strings"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

// ParadigmCell is one inflected surface form.
type ParadigmCell struct {
	// Label joins the feature values with dots, e.g. "1.sg.past".
	Label string `json:"label"`

	// Features maps category name to the value realized in this cell.
	Features map[string]string `json:"features"`

	// Form is the orthographic surface form.
	Form string `json:"form"`

	// IPA is the phonemic surface form, without delimiters.
	IPA string `json:"ipa"`
}

// ParadigmTable is the full inflection of one lexical entry: one cell per
// combination of feature values across the categories declared for the
// entry's part of speech.
type ParadigmTable struct {
	LexemeID   string              `json:"lexeme_id"`
	Lemma      string              `json:"lemma"`
	POS        document.PartOfSpeech `json:"pos"`
	Categories []string            `json:"categories"`
	Cells      []ParadigmCell      `json:"cells"`
}

// GenerateParadigmTable computes every inflected form of one entry.
//
// Description:
//
//	Takes the Cartesian product of feature values across the categories
//	declared for the entry's part of speech, then realizes each
//	combination by slot-ordered affixation along morphemeOrder. Before
//	composing slot by slot, the combined feature key (the concatenated
//	values, e.g. "1sg") is looked up in each of the part of speech's
//	paradigms; a combined-key affix overrides the per-slot composition
//	entirely. Infixes insert immediately after the first vowel of the
//	root; a root with no vowel gets the affix appended instead.
//
// Inputs:
//
//	entry     - The lexeme to inflect.
//	cfg       - Morphology declaration (categories, paradigms, order).
//	phonology - Used to segment forms and transliterate affixes.
//
// Outputs:
//
//	*ParadigmTable - One cell per feature combination. An entry whose part
//	of speech declares no categories yields a table with zero cells.
func GenerateParadigmTable(entry document.LexicalEntry, cfg document.MorphologyConfig, phonology document.PhonologyConfig) *ParadigmTable {
	cats := cfg.Categories[entry.POS]
	table := &ParadigmTable{
		LexemeID: entry.ID,
		Lemma:    entry.Lemma,
		POS:      entry.POS,
	}
	for _, c := range cats {
		table.Categories = append(table.Categories, c.Name)
	}
	if len(cats) == 0 {
		return table
	}

	rootIPA := strings.Trim(strings.TrimSpace(entry.IPA), "/")

	for _, combo := range featureCombinations(cats) {
		cell := ParadigmCell{
			Label:    strings.Join(combo, "."),
			Features: map[string]string{},
			Form:     entry.Lemma,
			IPA:      rootIPA,
		}
		for i, c := range cats {
			cell.Features[c.Name] = combo[i]
		}

		if affix, ok := lookupCombined(entry.POS, cats, combo, cfg.Paradigms); ok {
			applyAffix(&cell, affix, phonology)
			table.Cells = append(table.Cells, cell)
			continue
		}

		for _, slot := range cfg.MorphemeOrder {
			if slot == document.RootSlot {
				continue
			}
			value, ok := cell.Features[slot]
			if !ok {
				continue
			}
			paradigm, ok := cfg.Paradigms[document.ParadigmKey(entry.POS, slot)]
			if !ok {
				continue
			}
			affix, ok := paradigm[value]
			if !ok {
				continue
			}
			applyAffix(&cell, affix, phonology)
		}
		table.Cells = append(table.Cells, cell)
	}
	return table
}

// ValidateParadigmPhonology re-runs word-form validation over every cell of
// a generated table. One illegal cell yields one issue referencing the
// lexeme and the cell label, never a document-wide failure.
func ValidateParadigmPhonology(table *ParadigmTable, phonology document.PhonologyConfig, wfv *WordFormValidator) []Issue {
	var issues []Issue
	for _, cell := range table.Cells {
		report := wfv.Validate(cell.IPA, phonology.Phonotactics, phonology.Inventory)
		if !report.Valid {
			issues = append(issues, Errorf(ModuleMorphology, RuleMorphParadigmCell,
				"paradigm cell %s of %q (/%s/) violates phonotactics", cell.Label, table.Lemma, cell.IPA).
				WithRef(table.LexemeID+":"+cell.Label))
		}
	}
	return issues
}

// featureCombinations returns the Cartesian product of category values,
// in declaration order.
func featureCombinations(cats []document.GrammaticalCategory) [][]string {
	combos := [][]string{{}}
	for _, c := range cats {
		var next [][]string
		for _, combo := range combos {
			for _, v := range c.Values {
				row := make([]string, len(combo), len(combo)+1)
				copy(row, combo)
				next = append(next, append(row, v))
			}
		}
		combos = next
	}
	if len(combos) == 1 && len(combos[0]) == 0 {
		return nil
	}
	return combos
}

// lookupCombined searches the part of speech's paradigms for an affix keyed
// by the concatenated feature values (e.g. "1sg"). Combined keys take
// precedence over per-slot composition; the match is case-insensitive.
func lookupCombined(pos document.PartOfSpeech, cats []document.GrammaticalCategory, combo []string, paradigms map[string]document.Paradigm) (document.Affix, bool) {
	combined := strings.ToLower(strings.Join(combo, ""))
	for _, c := range cats {
		paradigm, ok := paradigms[document.ParadigmKey(pos, c.Name)]
		if !ok {
			continue
		}
		for key, affix := range paradigm {
			if strings.ToLower(key) == combined {
				return affix, true
			}
		}
	}
	return document.Affix{}, false
}

// applyAffix attaches one affix to both surfaces of a cell.
func applyAffix(cell *ParadigmCell, affix document.Affix, phonology document.PhonologyConfig) {
	switch affix.Type {
	case document.AffixPrefix:
		cell.IPA = affix.Form + cell.IPA
		cell.Form = transliterate(affix.Form, phonology) + cell.Form
	case document.AffixCircumfix:
		cell.IPA = affix.Form + cell.IPA + affix.Tail
		cell.Form = transliterate(affix.Form, phonology) + cell.Form + transliterate(affix.Tail, phonology)
	case document.AffixInfix:
		cell.IPA = insertAfterFirstVowelIPA(cell.IPA, affix.Form, phonology.Inventory)
		cell.Form = insertAfterFirstVowelOrtho(cell.Form, transliterate(affix.Form, phonology), phonology)
	default: // suffix, and the fallback for anything undeclared
		cell.IPA = cell.IPA + affix.Form
		cell.Form = cell.Form + transliterate(affix.Form, phonology)
	}
}

// transliterate maps a phonemic affix body onto graphemes. Segments with no
// orthography entry pass through unchanged.
func transliterate(form string, phonology document.PhonologyConfig) string {
	segments, unknown := segmentForm(form, phonology.Inventory)
	if len(unknown) > 0 {
		return form
	}
	var b strings.Builder
	for _, seg := range segments {
		if g, ok := phonology.Orthography[seg]; ok {
			b.WriteString(string(g))
			continue
		}
		b.WriteString(string(seg))
	}
	return b.String()
}

// insertAfterFirstVowelIPA places an infix after the first vowel phoneme of
// the root, appending when the root has no vowel.
func insertAfterFirstVowelIPA(root, infix string, inv document.Inventory) string {
	segments, unknown := segmentForm(root, inv)
	if len(unknown) > 0 {
		return root + infix
	}
	offset := 0
	for _, seg := range segments {
		offset += len(seg)
		if inv.IsVowel(seg) {
			return root[:offset] + infix + root[offset:]
		}
	}
	return root + infix
}

// insertAfterFirstVowelOrtho places an infix after the first grapheme whose
// phoneme is a vowel, appending when none is found.
func insertAfterFirstVowelOrtho(root, infix string, phonology document.PhonologyConfig) string {
	type pair struct {
		g document.Grapheme
		v bool
	}
	pairs := make([]pair, 0, len(phonology.Orthography))
	for p, g := range phonology.Orthography {
		pairs = append(pairs, pair{g: g, v: phonology.Inventory.IsVowel(p)})
	}
	sort.Slice(pairs, func(i, j int) bool { return len(pairs[i].g) > len(pairs[j].g) })

	rest := root
	offset := 0
	for len(rest) > 0 {
		matched := false
		for _, pr := range pairs {
			if strings.HasPrefix(rest, string(pr.g)) {
				offset += len(pr.g)
				rest = rest[len(pr.g):]
				if pr.v {
					return root[:offset] + infix + root[offset:]
				}
				matched = true
				break
			}
		}
		if !matched {
			runes := []rune(rest)
			offset += len(string(runes[0]))
			rest = string(runes[1:])
		}
	}
	return root + infix
}
