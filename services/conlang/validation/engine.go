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
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
)

// Engine composes the module passes into a single verdict. All
// dependencies are injected at construction; there is no ambient state.
//
// Thread Safety: Safe for concurrent use after construction.
type Engine struct {
	classifier PhonemeClassifier
	gloss      GlossChecker
	wordForms  *WordFormValidator
	structural *validator.Validate
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier swaps the phoneme classifier (default: fixed IPA table).
func WithClassifier(c PhonemeClassifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// WithGlossChecker swaps the corpus word-order checker (default: position
// heuristic).
func WithGlossChecker(g GlossChecker) Option {
	return func(e *Engine) { e.gloss = g }
}

// NewEngine builds an Engine with the default heuristics unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		classifier: NewIPAClassifier(),
		gloss:      NewGlossChecker(),
		structural: validator.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.wordForms = NewWordFormValidator(e.classifier)
	return e
}

// WordForms exposes the engine's word-form validator for callers that need
// to check individual forms (paradigm previews, entry editors).
func (e *Engine) WordForms() *WordFormValidator {
	return e.wordForms
}

// Validate runs every module pass plus the cross-module pass and merges
// the findings.
//
// Description:
//
//	The document is valid iff no pass produced an error-severity issue;
//	warnings are carried in the result but never affect validity. Pass
//	timings are recorded per module for observability.
//
// Inputs:
//
//	ctx - Carries the trace span; passes themselves do not block.
//	doc - The document to judge. Must satisfy the structural contract.
//
// Outputs:
//
//	*Result - The merged verdict. Nil when err is non-nil.
//	error - *StructuralError if required top-level structure is absent.
//	This is the only error this method returns; linguistic defects are
//	always findings, never errors.
func (e *Engine) Validate(ctx context.Context, doc *document.Document) (*Result, error) {
	ctx, span := tracer.Start(ctx, "validation.Validate")
	defer span.End()

	if doc == nil {
		return nil, &StructuralError{Reason: "document is nil"}
	}
	if err := doc.CheckStructure(e.structural); err != nil {
		return nil, &StructuralError{Reason: err.Error()}
	}

	start := time.Now()
	result := &Result{Valid: true, Summary: map[Module]PassOutcome{}}

	e.runPass(ctx, result, ModulePhonology, func() []Issue {
		issues := ValidateInventory(doc.Phonology.Inventory, e.classifier)
		report := ValidateOrthography(doc.Phonology.Inventory, doc.Phonology.Orthography)
		issues = append(issues, report.Issues...)
		for _, entry := range doc.Lexicon {
			wf := e.wordForms.Validate(entry.IPA, doc.Phonology.Phonotactics, doc.Phonology.Inventory)
			for _, issue := range wf.Issues {
				issues = append(issues, issue.WithRef(entry.ID))
			}
		}
		return issues
	})

	e.runPass(ctx, result, ModuleMorphology, func() []Issue {
		issues := ValidateMorphologyConfig(doc.Morphology, doc.Phonology)
		for _, entry := range doc.Lexicon {
			table := GenerateParadigmTable(entry, doc.Morphology, doc.Phonology)
			issues = append(issues, ValidateParadigmPhonology(table, doc.Phonology, e.wordForms)...)
		}
		return issues
	})

	e.runPass(ctx, result, ModuleSyntax, func() []Issue {
		return ValidateSyntaxConfig(doc.Syntax)
	})

	e.runPass(ctx, result, ModuleCorpus, func() []Issue {
		return ValidateCorpusConsistency(doc.Corpus, doc.Syntax, e.gloss)
	})

	e.runPass(ctx, result, ModuleCross, func() []Issue {
		return ValidateCrossModule(doc)
	})

	result.Duration = time.Since(start)
	recordValidate(ctx, result.Valid, result.Duration)
	return result, nil
}

func (e *Engine) runPass(ctx context.Context, result *Result, module Module, pass func() []Issue) {
	start := time.Now()
	issues := pass()
	result.Add(module, time.Since(start), issues...)
	recordPass(ctx, module, issues)
}
