// Package classify infers a fake-data generator from a field name.
//
// Classification is an ordered decision list of case-insensitive substring
// rules. The first rule whose needle occurs in the key wins; a rule may
// refine its choice with sub-rules that are again checked in order. Keys
// matching nothing fall back to a single lorem word.
//
// Order matters because needles overlap: "streetName" contains both "name"
// and "street" and is classified by the "name" rule.
package classify

import "strings"

// Generator describes the fake-data call for a field. Exactly one of Path
// or Literal is set.
type Generator struct {
	Kind KindEnum
	// Path is the dotted faker function path, e.g. "name.firstName".
	Path string
	// Args is the literal argument list passed to the function.
	Args string
	// Literal is a fixed JSON value used instead of a generator call.
	Literal string
}

// IsLiteral reports whether the generator is a fixed value.
func (g Generator) IsLiteral() bool {
	return g.Literal != ""
}

// Rule is one entry of the decision list.
type Rule struct {
	// Needles match when any of them occurs in the lower-cased key.
	Needles []string
	// Refinements are checked in order once Needles matched.
	Refinements []Refinement
	// Default is used when no refinement matches.
	Default KindEnum
}

// Refinement narrows a matched rule by a second needle.
type Refinement struct {
	Needle string
	Kind   KindEnum
}

var rules = []Rule{
	{
		Needles: []string{"name"},
		Refinements: []Refinement{
			{Needle: "first", Kind: KindFirstName},
			{Needle: "last", Kind: KindLastName},
			{Needle: "street", Kind: KindStreetName},
		},
		Default: KindFullName,
	},
	{
		Needles:     []string{"country"},
		Refinements: []Refinement{{Needle: "code", Kind: KindCountryCode}},
		Default:     KindCountry,
	},
	{Needles: []string{"zip", "postal"}, Default: KindZipCode},
	{Needles: []string{"city", "town"}, Default: KindCity},
	{
		Needles:     []string{"street"},
		Refinements: []Refinement{{Needle: "number", Kind: KindNumber}},
		Default:     KindStreetName,
	},
	{Needles: []string{"phone"}, Default: KindPhone},
	{Needles: []string{"email"}, Default: KindEmail},
	// unreachable through Classify ("username" contains "name"), kept so the
	// list documents the full generator set
	{Needles: []string{"username"}, Default: KindUserName},
	{Needles: []string{"domain"}, Default: KindDomain},
	{Needles: []string{"company"}, Default: KindCompany},
	{Needles: []string{"image"}, Default: KindImage},
	{
		Needles:     []string{"title"},
		Refinements: []Refinement{{Needle: "code", Kind: KindTitleCode}},
		Default:     KindTitle,
	},
}

// Rules returns a copy of the decision list in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{
			Needles:     append([]string(nil), r.Needles...),
			Refinements: append([]Refinement(nil), r.Refinements...),
			Default:     r.Default,
		}
	}

	return out
}

// Fallback is the kind used when no rule matches.
const Fallback = KindWord

// Classify picks the generator for a field typed "string" from its key.
func Classify(key string) Generator {
	return ClassifyKind(key).Generator()
}

// ClassifyKind runs the decision list and returns the chosen kind.
func ClassifyKind(key string) KindEnum {
	lower := strings.ToLower(key)

	for _, r := range rules {
		if !containsAny(lower, r.Needles) {
			continue
		}

		for _, ref := range r.Refinements {
			if strings.Contains(lower, ref.Needle) {
				return ref.Kind
			}
		}

		return r.Default
	}

	return Fallback
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}

	return false
}
