// Package filter ranks module names against a fuzzy search query.
package filter

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const (
	// candidateLimit caps how many ranked names are considered at all.
	candidateLimit = 200
	// Score thresholds on the 0-100 scale; short queries get a laxer cutoff
	// because a single character can barely discriminate.
	thresholdLong  = 65
	thresholdShort = 50
	// fallbackCount is returned when the threshold filters everything out.
	fallbackCount = 20
)

// Modules returns the subset of names matching the query, best first.
//
// An empty or whitespace-only query returns names unchanged. Otherwise every
// name is scored against the query, the top candidates are kept in
// descending score order (stable, so equal scores preserve input order), and
// a score threshold trims the tail. If the threshold would leave nothing,
// the top candidates are returned regardless of score so a typo never blanks
// the list. Pure function of its inputs.
func Modules(query string, names []string) []string {
	q := strings.TrimSpace(query)
	if q == "" {
		return names
	}

	type candidate struct {
		name  string
		score int
	}
	ranked := make([]candidate, len(names))
	for i, name := range names {
		ranked[i] = candidate{name: name, score: fuzzy.WRatio(q, name)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > candidateLimit {
		ranked = ranked[:candidateLimit]
	}

	threshold := thresholdShort
	if len(q) >= 2 {
		threshold = thresholdLong
	}

	matched := make([]string, 0, len(ranked))
	for _, c := range ranked {
		if c.score >= threshold {
			matched = append(matched, c.name)
		}
	}
	if len(matched) > 0 {
		return matched
	}

	n := fallbackCount
	if len(ranked) < n {
		n = len(ranked)
	}
	for _, c := range ranked[:n] {
		matched = append(matched, c.name)
	}
	return matched
}
