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
	"fmt"
	"sort"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

// ValidateMorphologyConfig checks the word-formation declaration against
// the phonology it builds on.
//
// Findings:
//   - morphemeOrder missing the "root" sentinel slot: error
//   - unknown typology value: error
//   - an affix containing phonemes outside the inventory: error, one per
//     offending affix
//   - a derivational rule with a missing id or an unknown affix type: error
func ValidateMorphologyConfig(cfg document.MorphologyConfig, phonology document.PhonologyConfig) []Issue {
	var issues []Issue

	rootSeen := false
	for _, slot := range cfg.MorphemeOrder {
		if slot == document.RootSlot {
			rootSeen = true
			break
		}
	}
	if !rootSeen {
		issues = append(issues, Errorf(ModuleMorphology, RuleMorphRootMissing,
			"morpheme order %v does not contain the %q slot", cfg.MorphemeOrder, document.RootSlot))
	}

	if cfg.Typology != "" && !cfg.Typology.Known() {
		issues = append(issues, Errorf(ModuleMorphology, RuleMorphTypology,
			"unknown morphological typology %q", cfg.Typology))
	}

	// Paradigm affixes, walked in deterministic order.
	keys := make([]string, 0, len(cfg.Paradigms))
	for k := range cfg.Paradigms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		paradigm := cfg.Paradigms[key]
		values := make([]string, 0, len(paradigm))
		for fv := range paradigm {
			values = append(values, fv)
		}
		sort.Strings(values)
		for _, fv := range values {
			ref := key + "." + fv
			issues = append(issues, checkAffixPhonemes(paradigm[fv], ref, phonology.Inventory)...)
		}
	}

	for i, rule := range cfg.DerivationalRules {
		ref := rule.ID
		if ref == "" {
			ref = fmt.Sprintf("derivational_rules[%d]", i)
			issues = append(issues, Errorf(ModuleMorphology, RuleMorphDerivShape,
				"derivational rule at index %d has no id", i).WithRef(ref))
		}
		if !rule.Affix.Type.Known() {
			issues = append(issues, Errorf(ModuleMorphology, RuleMorphDerivShape,
				"derivational rule %s has unknown affix type %q", ref, rule.Affix.Type).WithRef(ref))
		}
		issues = append(issues, checkAffixPhonemes(rule.Affix, ref, phonology.Inventory)...)
	}

	return issues
}

// checkAffixPhonemes verifies that an affix decomposes entirely into
// inventory phonemes. The affix body is segmented the same way word forms
// are; anything left over is an orphan phoneme.
func checkAffixPhonemes(affix document.Affix, ref string, inv document.Inventory) []Issue {
	var issues []Issue
	for _, part := range []string{affix.Form, affix.Tail} {
		if part == "" {
			continue
		}
		_, unknown := segmentForm(part, inv)
		for _, sym := range unknown {
			issues = append(issues, Errorf(ModuleMorphology, RuleMorphOrphanPhoneme,
				"affix %q uses /%s/ which is not in the inventory", part, sym).WithRef(ref))
		}
	}
	return issues
}
