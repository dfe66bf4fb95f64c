// Package vocab implements a phonetic vocabulary matcher that resolves
// near-miss mishearings of known words in speech-to-text output, using
// Double Metaphone phonetic encoding combined with Jaro-Winkler string
// similarity.
//
// The matcher is opt-in: it only considers the vocabulary it was constructed
// with (domain terms, proper nouns, product names), never general English.
// Matching proceeds in two stages:
//
//  1. Phonetic candidate filtering: Double Metaphone codes are computed for
//     the input word and for each vocabulary entry; an entry whose codes
//     overlap with the input's becomes a candidate.
//
//  2. Jaro-Winkler ranking: among candidates, the entry with the highest
//     Jaro-Winkler similarity wins, provided it clears the phonetic
//     threshold. When no phonetic candidate exists, a fallback pass accepts
//     a pure string-similarity match above a stricter fuzzy threshold.
//
// A Matcher is read-only after construction and safe for concurrent use.
package vocab

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.80
	defaultFuzzyThreshold    = 0.90

	// minWordLen is the minimum input length considered for matching.
	// Shorter tokens ("a", "is") produce too many phonetic collisions.
	minWordLen = 3
)

// Option is a functional option for configuring a [Matcher].
type Option func(*Matcher)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched entry to be accepted. Default: 0.80.
func WithPhoneticThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic candidate is found and the matcher falls back to pure string
// similarity. Default: 0.90.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.fuzzyThreshold = threshold
	}
}

// entry is a vocabulary word with its precomputed phonetic codes.
type entry struct {
	word  string
	lower string
	codes map[string]struct{}
}

// Matcher resolves misheard words to their canonical vocabulary spelling.
type Matcher struct {
	entries           []entry
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// New returns a [Matcher] for the given vocabulary. Phonetic codes are
// precomputed once here so Match runs without repeated encoding work.
// Blank vocabulary entries are ignored.
func New(vocabulary []string, opts ...Option) *Matcher {
	m := &Matcher{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	for _, w := range vocabulary {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		lower := strings.ToLower(w)
		m.entries = append(m.entries, entry{
			word:  w,
			lower: lower,
			codes: codesFor(lower),
		})
	}
	return m
}

// Empty reports whether the matcher has no vocabulary and can never match.
func (m *Matcher) Empty() bool {
	return len(m.entries) == 0
}

// Match attempts to resolve word to the most similar vocabulary entry.
//
// When matched is false, corrected equals word unchanged and confidence is 0.
// A word that already equals a vocabulary entry (ignoring case) is reported
// as unmatched — it needs no correction.
func (m *Matcher) Match(word string) (corrected string, confidence float64, matched bool) {
	trimmed := strings.TrimSpace(word)
	if len([]rune(trimmed)) < minWordLen {
		return word, 0, false
	}

	lower := strings.ToLower(trimmed)
	for _, e := range m.entries {
		if e.lower == lower {
			return word, 0, false
		}
	}

	inputCodes := codesFor(lower)

	var (
		bestWord     string
		bestScore    float64
		bestPhonetic bool
	)

	for _, e := range m.entries {
		jw := matchr.JaroWinkler(lower, e.lower, false)

		if codesOverlap(inputCodes, e.codes) {
			if jw >= m.phoneticThreshold && (!bestPhonetic || jw > bestScore) {
				bestWord, bestScore, bestPhonetic = e.word, jw, true
			}
		} else if !bestPhonetic {
			if jw >= m.fuzzyThreshold && jw > bestScore {
				bestWord, bestScore = e.word, jw
			}
		}
	}

	if bestWord == "" {
		return word, 0, false
	}
	return bestWord, bestScore, true
}

// codesFor returns the set of Double Metaphone codes for word. Empty codes
// (produced when the word has no consonants) are excluded.
func codesFor(word string) map[string]struct{} {
	codes := make(map[string]struct{}, 2)
	p, s := matchr.DoubleMetaphone(word)
	if p != "" {
		codes[p] = struct{}{}
	}
	if s != "" {
		codes[s] = struct{}{}
	}
	return codes
}

// codesOverlap reports whether the two code sets share at least one code.
func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}
