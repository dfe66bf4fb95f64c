package engine

import "strings"

// dedupeKey is the identity of a correction for duplicate suppression.
// Two corrections are the same when they replace the same text with the same
// replacement, ignoring case.
type dedupeKey struct {
	original  string
	corrected string
}

// dedupe drops corrections whose (original, corrected) pair, lowercased, has
// already been seen, preserving first-seen order. It is evaluated once at
// the end of the pipeline over the full accumulated list so that a
// rule-based correction always wins over a later external duplicate.
func dedupe(corrections []Correction) []Correction {
	unique := make([]Correction, 0, len(corrections))
	seen := make(map[dedupeKey]struct{}, len(corrections))
	for _, c := range corrections {
		key := dedupeKey{
			original:  strings.ToLower(c.Original),
			corrected: strings.ToLower(c.Corrected),
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}
