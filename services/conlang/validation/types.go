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
	"time"
)

// Severity classifies how serious an issue is.
type Severity string

const (
	// SeverityError blocks acceptance of the document.
	SeverityError Severity = "error"

	// SeverityWarning is surfaced to the caller but never blocks acceptance.
	SeverityWarning Severity = "warning"
)

// Module names the sub-config a pass inspects.
type Module string

const (
	ModulePhonology  Module = "phonology"
	ModuleMorphology Module = "morphology"
	ModuleSyntax     Module = "syntax"
	ModuleCorpus     Module = "corpus"
	ModuleCross      Module = "cross"
)

// Rule IDs. Stable machine-readable codes; retry prompts and diagnostics
// key off these, so renaming one is a breaking change.
const (
	RuleInventoryEmptyConsonants = "INV_EMPTY_CONSONANTS"
	RuleInventoryEmptyVowels     = "INV_EMPTY_VOWELS"
	RuleInventoryDuplicate       = "INV_DUPLICATE"
	RuleInventoryUnknownSymbol   = "INV_UNKNOWN_SYMBOL"

	RuleOrthographyMissing      = "ORTH_MISSING_PHONEME"
	RuleOrthographyDupGrapheme  = "ORTH_DUPLICATE_GRAPHEME"
	RuleOrthographyUnused       = "ORTH_UNUSED_GRAPHEME"
	RuleOrthographyOrphan       = "ORTH_ORPHAN_MAPPING"

	RuleFormUnknownPhoneme = "FORM_UNKNOWN_PHONEME"
	RuleFormNoParse        = "FORM_NO_SYLLABIFICATION"
	RuleFormBadTemplate    = "FORM_BAD_TEMPLATE"

	RuleMorphRootMissing   = "MORPH_ROOT_SLOT_MISSING"
	RuleMorphTypology      = "MORPH_UNKNOWN_TYPOLOGY"
	RuleMorphOrphanPhoneme = "MORPH_AFFIX_ORPHAN_PHONEME"
	RuleMorphDerivShape    = "MORPH_DERIVATION_SHAPE"
	RuleMorphParadigmCell  = "MORPH_PARADIGM_CELL"

	RuleSyntaxWordOrder     = "SYN_UNKNOWN_WORD_ORDER"
	RuleSyntaxAlignment     = "SYN_UNKNOWN_ALIGNMENT"
	RuleSyntaxNoClauseTypes = "SYN_NO_CLAUSE_TYPES"
	RuleSyntaxNoDeclarative = "SYN_NO_DECLARATIVE"
	RuleSyntaxBadSlot       = "SYN_UNRESOLVED_SLOT"

	RuleCorpusWordOrder = "CORPUS_WORD_ORDER"

	RuleCrossCaseParadigm = "CROSS_CASE_PARADIGM"
)

// Issue is one validation finding.
type Issue struct {
	// RuleID is the machine-readable code identifying the violated rule.
	RuleID string `json:"rule_id"`

	// Module is the sub-config the finding belongs to.
	Module Module `json:"module"`

	Severity Severity `json:"severity"`
	Message  string   `json:"message"`

	// EntityRef points at the offending entity (lexeme ID, paradigm label,
	// sample ID) when the issue is narrower than the whole module.
	EntityRef string `json:"entity_ref,omitempty"`
}

// Errorf builds an error-severity issue.
func Errorf(module Module, ruleID, format string, args ...any) Issue {
	return Issue{RuleID: ruleID, Module: module, Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a warning-severity issue.
func Warnf(module Module, ruleID, format string, args ...any) Issue {
	return Issue{RuleID: ruleID, Module: module, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

// WithRef returns a copy of the issue pointing at an entity.
func (i Issue) WithRef(ref string) Issue {
	i.EntityRef = ref
	return i
}

// String renders the issue the way retry prompts consume it:
// "[MODULE RULE_ID] message (ref: entity)".
func (i Issue) String() string {
	if i.EntityRef != "" {
		return fmt.Sprintf("[%s %s] %s (ref: %s)", i.Module, i.RuleID, i.Message, i.EntityRef)
	}
	return fmt.Sprintf("[%s %s] %s", i.Module, i.RuleID, i.Message)
}

// PassOutcome summarizes one module pass inside a Result.
type PassOutcome struct {
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Duration time.Duration `json:"duration"`
}

// Result is the aggregated verdict over a whole document.
//
// Valid holds iff Errors is empty; Warnings never affect it.
type Result struct {
	Valid    bool                   `json:"valid"`
	Errors   []Issue                `json:"errors"`
	Warnings []Issue                `json:"warnings"`
	Summary  map[Module]PassOutcome `json:"summary"`
	Duration time.Duration          `json:"duration"`
}

// Add merges issues into the result under the given module, updating the
// per-module summary and the validity flag.
func (r *Result) Add(module Module, elapsed time.Duration, issues ...Issue) {
	outcome := r.Summary[module]
	outcome.Duration += elapsed
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			r.Errors = append(r.Errors, issue)
			outcome.Errors++
		default:
			r.Warnings = append(r.Warnings, issue)
			outcome.Warnings++
		}
	}
	r.Summary[module] = outcome
	r.Valid = len(r.Errors) == 0
}

// ErrorMessages renders every error-severity issue in prompt format.
func (r *Result) ErrorMessages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, issue := range r.Errors {
		out = append(out, issue.String())
	}
	return out
}

// StructuralError signals that the validation engine was handed a document
// missing required top-level structure. It is a caller contract violation,
// not a validity finding.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "structural: " + e.Reason
}
