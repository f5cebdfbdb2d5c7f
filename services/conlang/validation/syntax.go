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

// coreConstituents is the fixed vocabulary that phrase-structure slot
// labels may always reference, independent of declared constituents.
var coreConstituents = map[string]bool{
	"S": true, "NP": true, "VP": true, "PP": true, "AP": true,
	"Det": true, "N": true, "V": true, "P": true, "A": true,
	"Adv": true, "Comp": true, "Rel": true, "Num": true, "Cl": true,
}

// ValidateSyntaxConfig checks the clause- and phrase-level declaration.
//
// Findings:
//   - unknown word order or alignment value: error
//   - empty clause type list: error
//   - clause types missing "declarative": warning (unusual, not fatal)
//   - a phrase-structure slot label that resolves neither to the core
//     constituent vocabulary nor to another declared constituent: error
func ValidateSyntaxConfig(cfg document.SyntaxConfig) []Issue {
	var issues []Issue

	if cfg.WordOrder != "" && !cfg.WordOrder.Known() {
		issues = append(issues, Errorf(ModuleSyntax, RuleSyntaxWordOrder,
			"unknown word order %q", cfg.WordOrder))
	}
	if cfg.Alignment != "" && !cfg.Alignment.Known() {
		issues = append(issues, Errorf(ModuleSyntax, RuleSyntaxAlignment,
			"unknown alignment %q", cfg.Alignment))
	}

	if len(cfg.ClauseTypes) == 0 {
		issues = append(issues, Errorf(ModuleSyntax, RuleSyntaxNoClauseTypes,
			"no clause types declared"))
	} else {
		declarative := false
		for _, ct := range cfg.ClauseTypes {
			if strings.EqualFold(ct, "declarative") {
				declarative = true
				break
			}
		}
		if !declarative {
			issues = append(issues, Warnf(ModuleSyntax, RuleSyntaxNoDeclarative,
				"clause types do not include \"declarative\""))
		}
	}

	// Slot labels resolve against the core vocabulary plus every declared
	// constituent, so recursive references are legal by construction.
	constituents := make([]string, 0, len(cfg.PhraseStructure))
	for name := range cfg.PhraseStructure {
		constituents = append(constituents, name)
	}
	sort.Strings(constituents)

	for _, name := range constituents {
		for _, slot := range cfg.PhraseStructure[name] {
			if coreConstituents[slot.Label] {
				continue
			}
			if _, declared := cfg.PhraseStructure[slot.Label]; declared {
				continue
			}
			issues = append(issues, Errorf(ModuleSyntax, RuleSyntaxBadSlot,
				"phrase %s references unknown constituent %q", name, slot.Label).
				WithRef(name+"."+slot.Label))
		}
	}

	return issues
}
