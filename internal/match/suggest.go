package match

import "sort"

// DefaultMinScore is the similarity a candidate needs to be suggested.
const DefaultMinScore = 0.6

// maxSuggestions caps the number of suggestions returned.
const maxSuggestions = 3

// Suggestion is a candidate ranked by similarity to the input.
type Suggestion struct {
	Value string
	Score float64
}

// SuggestionList is a list of suggestions with ranking functionality.
type SuggestionList []Suggestion

// Rank scores every candidate against input and returns them sorted by
// score (descending), ties broken by value.
func Rank(input string, candidates []string) SuggestionList {
	out := make(SuggestionList, 0, len(candidates))

	for _, c := range candidates {
		out = append(out, Suggestion{Value: c, Score: Similarity(input, c)})
	}

	sort.Sort(out)

	return out
}

// Suggest returns up to three candidates whose similarity to input is at
// least minScore. Exact matches after normalization are never suggested:
// they are not typos.
func Suggest(input string, candidates []string, minScore float64) []string {
	var out []string

	for _, s := range Rank(input, candidates) {
		if s.Score < minScore || s.Score >= 1.0 {
			continue
		}

		out = append(out, s.Value)
		if len(out) == maxSuggestions {
			break
		}
	}

	return out
}

// Len implements sort.Interface.
func (s SuggestionList) Len() int { return len(s) }

// Swap implements sort.Interface.
func (s SuggestionList) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Less implements sort.Interface (higher score first).
func (s SuggestionList) Less(i, j int) bool {
	if s[i].Score != s[j].Score {
		return s[i].Score > s[j].Score
	}

	return s[i].Value < s[j].Value
}
