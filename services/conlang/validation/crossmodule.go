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
	"strings"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

// ValidateCrossModule checks agreement between sub-configs.
//
// The one built-in check: every core case the declared alignment implies
// must have a marker in the noun case paradigm. For typologies that expect
// isolation (analytic), a missing marker is a warning — case is plausibly
// carried by particles — otherwise it is an error.
func ValidateCrossModule(doc *document.Document) []Issue {
	var issues []Issue

	alignment := doc.Syntax.Alignment
	if alignment == "" || !alignment.Known() {
		return nil
	}

	paradigm := doc.Morphology.Paradigms[document.ParadigmKey(document.POSNoun, "case")]
	isolating := doc.Morphology.Typology.AffixPolicy().ExpectsIsolation

	for _, caseName := range alignment.CoreCases() {
		if hasCaseMarker(paradigm, caseName) {
			continue
		}
		msg := "alignment %s implies a %s marker but the noun case paradigm has none"
		if isolating {
			issues = append(issues, Warnf(ModuleCross, RuleCrossCaseParadigm,
				msg, alignment, caseName).WithRef(caseName))
			continue
		}
		issues = append(issues, Errorf(ModuleCross, RuleCrossCaseParadigm,
			msg, alignment, caseName).WithRef(caseName))
	}

	return issues
}

func hasCaseMarker(paradigm document.Paradigm, caseName string) bool {
	if paradigm == nil {
		return false
	}
	for key := range paradigm {
		if strings.EqualFold(key, caseName) {
			return true
		}
	}
	return false
}
