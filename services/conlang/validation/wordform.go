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

// WordFormReport is the outcome of syllabifying one phonemic form.
type WordFormReport struct {
	Valid bool

	// Syllables holds the successful segmentation, one string of phonemes
	// per syllable. Empty when Valid is false.
	Syllables []string

	Issues []Issue
}

// templateSlot is one parsed position of a syllable template.
type templateSlot struct {
	class    byte // 'C', 'V', 'G', 'N', 'S'
	optional bool
}

// WordFormValidator syllabifies phonemic forms against declared templates.
// Construct with NewWordFormValidator; the zero value is unusable.
type WordFormValidator struct {
	classifier PhonemeClassifier
}

// NewWordFormValidator builds a validator using the given classifier for
// the G/N/S template classes.
func NewWordFormValidator(classifier PhonemeClassifier) *WordFormValidator {
	return &WordFormValidator{classifier: classifier}
}

// Validate checks whether ipaForm is a legal word.
//
// Description:
//
//	Strips slash delimiters, segments the form into inventory phonemes
//	(longest match first), then searches for a partition into syllables
//	where each syllable matches one declared template and every
//	consonant cluster in onset or coda position is declared. The search
//	backtracks over optional template slots and syllable boundaries; a
//	form is valid iff at least one complete parse exists.
//
// Inputs:
//
//	ipaForm - Phonemic form, with or without slashes, e.g. "/tana/".
//	tactics - Declared templates and cluster whitelists.
//	inv     - The phoneme inventory.
//
// Outputs:
//
//	WordFormReport - Verdict, the winning syllabification, and issues.
func (w *WordFormValidator) Validate(ipaForm string, tactics document.Phonotactics, inv document.Inventory) WordFormReport {
	form := strings.TrimSpace(strings.Trim(strings.TrimSpace(ipaForm), "/"))
	if form == "" {
		return WordFormReport{Issues: []Issue{Errorf(ModulePhonology, RuleFormNoParse,
			"empty phonemic form")}}
	}

	segments, unknown := segmentForm(form, inv)
	if len(unknown) > 0 {
		report := WordFormReport{}
		for _, sym := range unknown {
			report.Issues = append(report.Issues, Errorf(ModulePhonology, RuleFormUnknownPhoneme,
				"/%s/ contains /%s/ which is not in the inventory", form, sym).WithRef(sym))
		}
		return report
	}

	templates, badTemplates := parseTemplates(tactics.SyllableTemplates)
	report := WordFormReport{Issues: badTemplates}
	if len(templates) == 0 {
		report.Issues = append(report.Issues, Errorf(ModulePhonology, RuleFormNoParse,
			"no usable syllable templates declared"))
		return report
	}

	syllables, ok := w.parse(segments, 0, templates, tactics, inv)
	if !ok {
		report.Issues = append(report.Issues, Errorf(ModulePhonology, RuleFormNoParse,
			"/%s/ has no syllabification matching the declared templates", form))
		return report
	}
	// Malformed-template issues are config defects reported alongside, but
	// validity of the form itself is the existence of a parse.
	report.Valid = true
	report.Syllables = syllables
	return report
}

// parse searches for a syllable partition of segments[pos:]. Returns the
// syllable strings of the first complete parse found.
func (w *WordFormValidator) parse(segments []document.Phoneme, pos int, templates [][]templateSlot, tactics document.Phonotactics, inv document.Inventory) ([]string, bool) {
	if pos == len(segments) {
		return nil, true
	}
	for _, tmpl := range templates {
		for _, end := range w.matchTemplate(segments, pos, tmpl, tactics, inv) {
			rest, ok := w.parse(segments, end, templates, tactics, inv)
			if ok {
				syllable := joinPhonemes(segments[pos:end])
				return append([]string{syllable}, rest...), true
			}
		}
	}
	return nil, false
}

// matchTemplate returns every end index (exclusive) at which the template
// can finish matching starting at pos, longest candidates first so greedy
// consumption is tried before shorter parses. A candidate is discarded when
// its onset or coda forms an undeclared cluster.
func (w *WordFormValidator) matchTemplate(segments []document.Phoneme, pos int, tmpl []templateSlot, tactics document.Phonotactics, inv document.Inventory) []int {
	ends := map[int]bool{}
	var walk func(segIdx, slotIdx int)
	walk = func(segIdx, slotIdx int) {
		if slotIdx == len(tmpl) {
			if segIdx > pos {
				ends[segIdx] = true
			}
			return
		}
		slot := tmpl[slotIdx]
		if slot.optional {
			walk(segIdx, slotIdx+1)
		}
		if segIdx < len(segments) && w.member(segments[segIdx], slot.class, inv) {
			walk(segIdx+1, slotIdx+1)
		}
	}
	walk(pos, 0)

	out := make([]int, 0, len(ends))
	for end := range ends {
		if w.clustersDeclared(segments[pos:end], tactics, inv) {
			out = append(out, end)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// member reports whether phoneme p satisfies a template class letter.
// G, N, and S are consonant subclasses; a glide also satisfies C.
func (w *WordFormValidator) member(p document.Phoneme, class byte, inv document.Inventory) bool {
	switch class {
	case 'V':
		return inv.IsVowel(p)
	case 'C':
		return inv.IsConsonant(p)
	case 'G':
		return inv.IsConsonant(p) && w.classifier.Glide(p)
	case 'N':
		return inv.IsConsonant(p) && w.classifier.Nasal(p)
	case 'S':
		return inv.IsConsonant(p) && w.classifier.Sibilant(p)
	default:
		return false
	}
}

// clustersDeclared checks the consonant runs at the syllable edges against
// the declared onset and coda whitelists. Single consonants always pass.
func (w *WordFormValidator) clustersDeclared(syllable []document.Phoneme, tactics document.Phonotactics, inv document.Inventory) bool {
	firstVowel := -1
	lastVowel := -1
	for i, p := range syllable {
		if inv.IsVowel(p) {
			if firstVowel < 0 {
				firstVowel = i
			}
			lastVowel = i
		}
	}
	if firstVowel < 0 {
		// No nucleus: the whole syllable is treated as an onset run.
		return len(syllable) <= 1 || containsCluster(tactics.OnsetClusters, syllable)
	}
	onset := syllable[:firstVowel]
	coda := syllable[lastVowel+1:]
	if len(onset) > 1 && !containsCluster(tactics.OnsetClusters, onset) {
		return false
	}
	if len(coda) > 1 && !containsCluster(tactics.CodaClusters, coda) {
		return false
	}
	return true
}

func containsCluster(declared []string, run []document.Phoneme) bool {
	joined := joinPhonemes(run)
	for _, c := range declared {
		if c == joined {
			return true
		}
	}
	return false
}

func joinPhonemes(run []document.Phoneme) string {
	var b strings.Builder
	for _, p := range run {
		b.WriteString(string(p))
	}
	return b.String()
}

// segmentForm splits a raw form into inventory phonemes using longest-match
// segmentation. Tone phonemes are consumed but dropped: they are
// suprasegmental and occupy no template slot. Unknown symbols are returned
// separately, one rune at a time.
func segmentForm(form string, inv document.Inventory) (segments []document.Phoneme, unknown []string) {
	known := make([]document.Phoneme, 0, len(inv.Consonants)+len(inv.Vowels)+len(inv.Tones))
	known = append(known, inv.Consonants...)
	known = append(known, inv.Vowels...)
	known = append(known, inv.Tones...)
	sort.Slice(known, func(i, j int) bool { return len(known[i]) > len(known[j]) })

	tone := map[document.Phoneme]bool{}
	for _, t := range inv.Tones {
		tone[t] = true
	}

	rest := form
	for len(rest) > 0 {
		matched := false
		for _, p := range known {
			if strings.HasPrefix(rest, string(p)) {
				if !tone[p] {
					segments = append(segments, p)
				}
				rest = rest[len(p):]
				matched = true
				break
			}
		}
		if !matched {
			runes := []rune(rest)
			unknown = append(unknown, string(runes[0]))
			rest = string(runes[1:])
		}
	}
	return segments, unknown
}

// parseTemplates compiles template strings into slot lists. A malformed
// template (unknown class letter, unbalanced parentheses) produces an error
// issue and is skipped rather than aborting the whole check.
func parseTemplates(templates []string) ([][]templateSlot, []Issue) {
	var out [][]templateSlot
	var issues []Issue
	for _, raw := range templates {
		slots, err := parseTemplate(raw)
		if err != "" {
			issues = append(issues, Errorf(ModulePhonology, RuleFormBadTemplate,
				"syllable template %q: %s", raw, err).WithRef(raw))
			continue
		}
		out = append(out, slots)
	}
	return out, issues
}

func parseTemplate(raw string) ([]templateSlot, string) {
	var slots []templateSlot
	open := false
	for i := 0; i < len(raw); i++ {
		switch ch := raw[i]; ch {
		case '(':
			if open {
				return nil, "nested parenthesis"
			}
			open = true
		case ')':
			if !open {
				return nil, "unbalanced parenthesis"
			}
			open = false
		case 'C', 'V', 'G', 'N', 'S':
			slots = append(slots, templateSlot{class: ch, optional: open})
		default:
			return nil, "unknown class letter " + string(ch)
		}
	}
	if open {
		return nil, "unclosed parenthesis"
	}
	if len(slots) == 0 {
		return nil, "empty template"
	}
	return slots, ""
}
