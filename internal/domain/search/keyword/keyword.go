// Package keyword implements the flexible keyword query: any/all modes,
// exact or substring matching, and a case-sensitivity toggle.
package keyword

import (
	"fmt"
	"strings"

	"github.com/paperdex/paperdex/internal/domain"
)

// Mode selects how query keywords combine.
type Mode string

// Keyword combination modes.
const (
	// Any selects documents where at least one query keyword matches.
	Any Mode = "any"
	// All selects documents where every query keyword matches.
	All Mode = "all"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Any || m == All
}

// Query is a validated, normalized keyword query.
type Query struct {
	keywords      []string
	mode          Mode
	exact         bool
	caseSensitive bool
}

// NewQuery validates and normalizes a keyword query. Entries are trimmed and,
// unless caseSensitive, lower-cased. Order is preserved and duplicates are
// kept (they simply match redundantly). An empty list fails with
// domain.ErrInvalidQuery.
func NewQuery(keywords []string, mode Mode, exact, caseSensitive bool) (Query, error) {
	normalized := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if !caseSensitive {
			k = strings.ToLower(k)
		}
		normalized = append(normalized, k)
	}
	if len(normalized) == 0 {
		return Query{}, fmt.Errorf("%w: at least one keyword is required", domain.ErrInvalidQuery)
	}
	if mode == "" {
		mode = Any
	}
	if !mode.IsValid() {
		return Query{}, fmt.Errorf("%w: invalid keyword mode %q", domain.ErrInvalidQuery, mode)
	}
	return Query{keywords: normalized, mode: mode, exact: exact, caseSensitive: caseSensitive}, nil
}

// Keywords returns the normalized query keywords in input order.
func (q Query) Keywords() []string { return q.keywords }

// Mode returns the combination mode.
func (q Query) Mode() Mode { return q.mode }

// Exact reports whether matching is exact equality rather than substring.
func (q Query) Exact() bool { return q.exact }

// CaseSensitive reports whether matching respects case.
func (q Query) CaseSensitive() bool { return q.caseSensitive }

// Match is the outcome of evaluating a query against one document.
type Match struct {
	// MatchedKeywords lists document keywords matched by any query keyword,
	// deduplicated, in document order.
	MatchedKeywords []string
	// Score is the fraction of distinct query keywords with at least one
	// match, in [0, 1].
	Score float64
}

// Evaluate runs the query against a document keyword list. The boolean
// reports selection under the configured mode: any needs one query keyword
// to match, all needs every query keyword to match some document keyword
// independently. A document with no keywords never matches.
func (q Query) Evaluate(docKeywords []string) (Match, bool) {
	if len(docKeywords) == 0 {
		return Match{}, false
	}

	matchedDoc := make([]string, 0, len(docKeywords))
	seenDoc := make(map[string]struct{}, len(docKeywords))
	matchedQuery := make(map[string]struct{}, len(q.keywords))

	for _, dk := range docKeywords {
		target := dk
		if !q.caseSensitive {
			target = strings.ToLower(dk)
		}
		hit := false
		for _, qk := range q.keywords {
			if q.matches(qk, target) {
				hit = true
				matchedQuery[qk] = struct{}{}
			}
		}
		if hit {
			if _, dup := seenDoc[dk]; !dup {
				seenDoc[dk] = struct{}{}
				matchedDoc = append(matchedDoc, dk)
			}
		}
	}

	selected := false
	switch q.mode {
	case All:
		selected = true
		for _, qk := range q.keywords {
			if _, ok := matchedQuery[qk]; !ok {
				selected = false
				break
			}
		}
	case Any:
		selected = len(matchedQuery) > 0
	}
	if !selected {
		return Match{}, false
	}

	// Duplicated query keywords count once: score is the fraction of
	// distinct query keywords matched, so mode=all at full coverage is 1.0.
	distinct := make(map[string]struct{}, len(q.keywords))
	for _, qk := range q.keywords {
		distinct[qk] = struct{}{}
	}
	score := float64(len(matchedQuery)) / float64(len(distinct))
	return Match{MatchedKeywords: matchedDoc, Score: score}, true
}

// matches compares one normalized query keyword against one normalized
// document keyword under the exact/fuzzy rule.
func (q Query) matches(queryKeyword, docKeyword string) bool {
	if q.exact {
		return queryKeyword == docKeyword
	}
	return strings.Contains(docKeyword, queryKeyword)
}
