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

// WordOrder is the basic constituent order of a main clause.
type WordOrder string

const (
	OrderSOV  WordOrder = "SOV"
	OrderSVO  WordOrder = "SVO"
	OrderVSO  WordOrder = "VSO"
	OrderVOS  WordOrder = "VOS"
	OrderOVS  WordOrder = "OVS"
	OrderOSV  WordOrder = "OSV"
	OrderFree WordOrder = "free"
)

// Known reports whether w is a declared word order.
func (w WordOrder) Known() bool {
	switch w {
	case OrderSOV, OrderSVO, OrderVSO, OrderVOS, OrderOVS, OrderOSV, OrderFree:
		return true
	}
	return false
}

// VerbInitial reports whether the verb precedes all arguments.
func (w WordOrder) VerbInitial() bool {
	return w == OrderVSO || w == OrderVOS
}

// VerbFinal reports whether the verb follows all arguments.
func (w WordOrder) VerbFinal() bool {
	return w == OrderSOV || w == OrderOSV
}

// Alignment is the morphosyntactic alignment system.
type Alignment string

const (
	AlignNominativeAccusative Alignment = "nominative-accusative"
	AlignErgativeAbsolutive   Alignment = "ergative-absolutive"
	AlignTripartite           Alignment = "tripartite"
	AlignSplitErgative        Alignment = "split-ergative"
	AlignActiveStative        Alignment = "active-stative"
)

// Known reports whether a is a declared alignment.
func (a Alignment) Known() bool {
	switch a {
	case AlignNominativeAccusative, AlignErgativeAbsolutive, AlignTripartite,
		AlignSplitErgative, AlignActiveStative:
		return true
	}
	return false
}

// CoreCases returns the case categories this alignment obliges the
// morphology to realize. The cross-module pass checks that a noun paradigm
// exists for each.
func (a Alignment) CoreCases() []string {
	switch a {
	case AlignNominativeAccusative:
		return []string{"nominative", "accusative"}
	case AlignErgativeAbsolutive:
		return []string{"ergative", "absolutive"}
	case AlignTripartite:
		return []string{"ergative", "accusative", "intransitive"}
	case AlignSplitErgative:
		return []string{"ergative", "absolutive", "nominative", "accusative"}
	case AlignActiveStative:
		return []string{"agentive", "patientive"}
	default:
		return nil
	}
}

// AdpositionType records whether relational words precede or follow their
// complement.
type AdpositionType string

const (
	AdpositionPre  AdpositionType = "preposition"
	AdpositionPost AdpositionType = "postposition"
	AdpositionBoth AdpositionType = "both"
	AdpositionNone AdpositionType = "none"
)

// Headedness records where heads sit within phrases.
type Headedness string

const (
	HeadInitial Headedness = "head-initial"
	HeadFinal   Headedness = "head-final"
	HeadMixed   Headedness = "mixed"
)

// SyntaxSlot is one position in a phrase-structure expansion. Label either
// names a member of the fixed constituent vocabulary or another declared
// constituent (recursive reference).
type SyntaxSlot struct {
	Label      string `json:"label" yaml:"label"`
	Optional   bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Repeatable bool   `json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
}

// SyntaxConfig bundles the clause- and phrase-level declaration.
type SyntaxConfig struct {
	WordOrder      WordOrder      `json:"word_order" yaml:"word_order"`
	Alignment      Alignment      `json:"alignment" yaml:"alignment"`
	AdpositionType AdpositionType `json:"adposition_type" yaml:"adposition_type"`
	Headedness     Headedness     `json:"headedness" yaml:"headedness"`

	// PhraseStructure maps a constituent name (e.g. "NP") to its ordered
	// slot expansion.
	PhraseStructure map[string][]SyntaxSlot `json:"phrase_structure" yaml:"phrase_structure"`

	// ClauseTypes lists declared clause types ("declarative", ...). Must be
	// non-empty for a valid document.
	ClauseTypes []string `json:"clause_types" yaml:"clause_types"`
}

// Clone returns a deep copy of the syntax config.
func (s SyntaxConfig) Clone() SyntaxConfig {
	out := s
	if s.PhraseStructure != nil {
		out.PhraseStructure = make(map[string][]SyntaxSlot, len(s.PhraseStructure))
		for k, slots := range s.PhraseStructure {
			out.PhraseStructure[k] = append([]SyntaxSlot(nil), slots...)
		}
	}
	out.ClauseTypes = append([]string(nil), s.ClauseTypes...)
	return out
}
