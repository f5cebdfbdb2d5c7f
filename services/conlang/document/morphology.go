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

import "strings"

// PartOfSpeech labels a lexical class. The set is open-ended but the
// constants below cover everything the built-in passes reason about.
type PartOfSpeech string

const (
	POSNoun       PartOfSpeech = "noun"
	POSVerb       PartOfSpeech = "verb"
	POSAdjective  PartOfSpeech = "adjective"
	POSPronoun    PartOfSpeech = "pronoun"
	POSAdposition PartOfSpeech = "adposition"
	POSParticle   PartOfSpeech = "particle"
)

// Typology is the closed set of morphological strategies a language can
// declare. It is a tagged variant: each value carries its own affix-shape
// policy via AffixPolicy, and dispatch is always an exhaustive switch,
// never substring matching on the name.
type Typology string

const (
	TypologyAnalytic      Typology = "analytic"
	TypologyAgglutinative Typology = "agglutinative"
	TypologyFusional      Typology = "fusional"
	TypologyPolysynthetic Typology = "polysynthetic"
	TypologyMixed         Typology = "mixed"
)

// Known reports whether t is one of the five declared typology values.
func (t Typology) Known() bool {
	switch t {
	case TypologyAnalytic, TypologyAgglutinative, TypologyFusional,
		TypologyPolysynthetic, TypologyMixed:
		return true
	}
	return false
}

// AffixPolicy is the shape contract one typology imposes on its affixes.
type AffixPolicy struct {
	// MaxAffixesPerWord bounds how many affix slots one surface form may
	// fill. 0 means unbounded.
	MaxAffixesPerWord int

	// FusesFeatures is true when one affix may realize several feature
	// values at once (combined paradigm keys are expected, not exceptional).
	FusesFeatures bool

	// ExpectsIsolation is true when grammatical meaning is normally carried
	// by separate words; a heavily affixing paradigm is suspicious.
	ExpectsIsolation bool
}

// AffixPolicy returns the policy for this typology value.
func (t Typology) AffixPolicy() AffixPolicy {
	switch t {
	case TypologyAnalytic:
		return AffixPolicy{MaxAffixesPerWord: 1, ExpectsIsolation: true}
	case TypologyAgglutinative:
		return AffixPolicy{MaxAffixesPerWord: 0}
	case TypologyFusional:
		return AffixPolicy{MaxAffixesPerWord: 3, FusesFeatures: true}
	case TypologyPolysynthetic:
		return AffixPolicy{MaxAffixesPerWord: 0, FusesFeatures: true}
	case TypologyMixed:
		return AffixPolicy{MaxAffixesPerWord: 0, FusesFeatures: true}
	default:
		return AffixPolicy{}
	}
}

// AffixType is the placement class of an affix.
type AffixType string

const (
	AffixPrefix    AffixType = "prefix"
	AffixSuffix    AffixType = "suffix"
	AffixInfix     AffixType = "infix"
	AffixCircumfix AffixType = "circumfix"
)

// Known reports whether a is a declared affix type.
func (a AffixType) Known() bool {
	switch a {
	case AffixPrefix, AffixSuffix, AffixInfix, AffixCircumfix:
		return true
	}
	return false
}

// Affix is one bound morpheme. Form is the phonemic body; for circumfixes
// Form is the leading part and Tail the trailing part.
type Affix struct {
	Form  string    `json:"form" yaml:"form"`
	Tail  string    `json:"tail,omitempty" yaml:"tail,omitempty"`
	Type  AffixType `json:"type" yaml:"type"`
	Gloss string    `json:"gloss,omitempty" yaml:"gloss,omitempty"`
}

// GrammaticalCategory is one inflectional dimension (e.g. tense) and the
// feature values it distinguishes (e.g. past, nonpast).
type GrammaticalCategory struct {
	Name   string   `json:"name" yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

// Paradigm maps a feature value to the affix realizing it. Keys may also be
// combined feature values (e.g. "1sg"); combined keys take precedence over
// composing the individual values slot by slot.
type Paradigm map[string]Affix

// ParadigmKey builds the canonical paradigm map key for one part of speech
// and one category name, e.g. "verb:tense".
func ParadigmKey(pos PartOfSpeech, category string) string {
	return string(pos) + ":" + strings.ToLower(category)
}

// RootSlot is the sentinel morpheme-order slot standing for the lexical
// root. MorphemeOrder must always contain it.
const RootSlot = "root"

// DerivationalRule derives a new lexeme from an existing one.
type DerivationalRule struct {
	ID    string       `json:"id" yaml:"id"`
	From  PartOfSpeech `json:"from" yaml:"from"`
	To    PartOfSpeech `json:"to" yaml:"to"`
	Affix Affix        `json:"affix" yaml:"affix"`
	Gloss string       `json:"gloss,omitempty" yaml:"gloss,omitempty"`
}

// AlternationRule describes a morphophonological adjustment applied at a
// morpheme boundary (e.g. vowel deletion before a vowel-initial suffix).
type AlternationRule struct {
	ID          string `json:"id" yaml:"id"`
	Target      string `json:"target" yaml:"target"`
	Replacement string `json:"replacement" yaml:"replacement"`
	Environment string `json:"environment" yaml:"environment"`
}

// MorphologyConfig bundles the word-formation declaration.
type MorphologyConfig struct {
	Typology Typology `json:"typology" yaml:"typology"`

	// Categories lists, per part of speech, which inflectional dimensions
	// apply and in which order their slots compose.
	Categories map[PartOfSpeech][]GrammaticalCategory `json:"categories" yaml:"categories"`

	// Paradigms is keyed by ParadigmKey(pos, category).
	Paradigms map[string]Paradigm `json:"paradigms" yaml:"paradigms"`

	// MorphemeOrder lists slot names outward from the root; it must contain
	// the RootSlot sentinel. Non-root slots name grammatical categories.
	MorphemeOrder []string `json:"morpheme_order" yaml:"morpheme_order"`

	DerivationalRules []DerivationalRule `json:"derivational_rules,omitempty" yaml:"derivational_rules,omitempty"`
	AlternationRules  []AlternationRule  `json:"alternation_rules,omitempty" yaml:"alternation_rules,omitempty"`
}

// Clone returns a deep copy of the morphology config.
func (m MorphologyConfig) Clone() MorphologyConfig {
	out := m
	if m.Categories != nil {
		out.Categories = make(map[PartOfSpeech][]GrammaticalCategory, len(m.Categories))
		for pos, cats := range m.Categories {
			cc := make([]GrammaticalCategory, len(cats))
			for i, c := range cats {
				cc[i] = GrammaticalCategory{Name: c.Name, Values: append([]string(nil), c.Values...)}
			}
			out.Categories[pos] = cc
		}
	}
	if m.Paradigms != nil {
		out.Paradigms = make(map[string]Paradigm, len(m.Paradigms))
		for key, p := range m.Paradigms {
			np := make(Paradigm, len(p))
			for fv, a := range p {
				np[fv] = a
			}
			out.Paradigms[key] = np
		}
	}
	out.MorphemeOrder = append([]string(nil), m.MorphemeOrder...)
	out.DerivationalRules = append([]DerivationalRule(nil), m.DerivationalRules...)
	out.AlternationRules = append([]AlternationRule(nil), m.AlternationRules...)
	return out
}
