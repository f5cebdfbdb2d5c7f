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
	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

// GlossChecker judges whether one glossed sample agrees with the declared
// word order. The built-in implementation is a first-noun/first-verb
// position heuristic; it lives behind this interface so a real parser can
// replace it without touching the engine or the orchestration.
type GlossChecker interface {
	// Check returns issues for one sample. Implementations must emit
	// warnings only: the heuristic tolerates false positives by design.
	Check(sample document.CorpusSample, cfg document.SyntaxConfig) []Issue
}

// positionHeuristic is the default GlossChecker.
type positionHeuristic struct{}

// NewGlossChecker returns the built-in word-order position heuristic.
func NewGlossChecker() GlossChecker {
	return positionHeuristic{}
}

// Check locates the first noun-or-pronoun token and the first verb token in
// the interlinear gloss. For verb-final orders a verb preceding every noun
// is suspicious; for verb-initial orders a noun preceding the verb is.
// Free word order is exempt, as are samples without a gloss.
func (positionHeuristic) Check(sample document.CorpusSample, cfg document.SyntaxConfig) []Issue {
	if cfg.WordOrder == document.OrderFree || len(sample.Gloss) == 0 {
		return nil
	}

	firstNoun := -1
	firstVerb := -1
	for i, tok := range sample.Gloss {
		switch tok.POS {
		case document.POSNoun, document.POSPronoun:
			if firstNoun < 0 {
				firstNoun = i
			}
		case document.POSVerb:
			if firstVerb < 0 {
				firstVerb = i
			}
		}
	}
	if firstNoun < 0 || firstVerb < 0 {
		return nil
	}

	switch {
	case cfg.WordOrder.VerbFinal() || cfg.WordOrder == document.OrderSVO:
		if firstVerb < firstNoun {
			return []Issue{Warnf(ModuleCorpus, RuleCorpusWordOrder,
				"sample glosses a verb before any noun, unexpected for %s order", cfg.WordOrder).
				WithRef(sample.ID)}
		}
	case cfg.WordOrder.VerbInitial():
		if firstNoun < firstVerb {
			return []Issue{Warnf(ModuleCorpus, RuleCorpusWordOrder,
				"sample glosses a noun before the verb, unexpected for %s order", cfg.WordOrder).
				WithRef(sample.ID)}
		}
	}
	return nil
}

// ValidateCorpusConsistency runs the gloss checker over every sample.
func ValidateCorpusConsistency(corpus []document.CorpusSample, cfg document.SyntaxConfig, checker GlossChecker) []Issue {
	var issues []Issue
	for _, sample := range corpus {
		issues = append(issues, checker.Check(sample, cfg)...)
	}
	return issues
}
