package score

import (
	"cmp"
	"slices"
)

// Candidate is a value with its plausibility score.
type Candidate struct {
	Value string
	Score float64
}

// Rank scores values and sorts them by descending score. Ties keep their
// input order, so discovery order breaks ties.
func Rank(values []string, s Scorer) []Candidate {
	out := make([]Candidate, len(values))
	for i, v := range values {
		out[i] = Candidate{Value: v, Score: s(v)}
	}
	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// Top returns at most n values. When there are no more than n values they
// are returned unscored in input order; otherwise the n best-ranked.
func Top(values []string, n int, s Scorer) []string {
	if n <= 0 {
		return []string{}
	}
	if len(values) <= n {
		out := make([]string, len(values))
		copy(out, values)
		return out
	}
	ranked := Rank(values, s)
	out := make([]string, n)
	for i := range n {
		out[i] = ranked[i].Value
	}
	return out
}

// Best returns the highest-ranked value, provided its score is positive.
func Best(values []string, s Scorer) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	ranked := Rank(values, s)
	if ranked[0].Score <= 0 {
		return "", false
	}
	return ranked[0].Value, true
}
