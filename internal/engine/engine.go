// Package engine implements the rule-based grammar correction engine that
// post-processes spoken-style English text, typically the output of a
// speech-to-text provider.
//
// The central type is [Engine]: a linear correction pipeline that applies, in
// a fixed order, sentence-pattern substitutions from a declarative pattern
// table, an optional vocabulary matcher for misheard words, suggestions from
// an optional external grammar service, contraction normalisation, and final
// sentence polish (leading capital, terminal punctuation). Every visible
// substitution is itemised as a [Correction] so callers can audit or display
// what changed, and the whole result is summarised by a bounded confidence
// score.
//
// All per-request state is local to a single Analyze call; the pattern table
// and any configured matchers are read-only after construction, so an Engine
// is safe for concurrent use.
package engine

// Source describes which correction stage produced a [Correction].
type Source string

const (
	// SourceRule marks corrections produced in-process by the pattern table
	// or the vocabulary matcher.
	SourceRule Source = "rule"

	// SourceExternal marks corrections merged in from an external grammar
	// checking service.
	SourceExternal Source = "external"
)

// Correction categories attached to rule-based corrections. External
// corrections carry whatever category the grammar service reported.
const (
	// CategoryGrammar covers subject-verb agreement, preposition, and
	// article errors.
	CategoryGrammar = "GRAMMAR"

	// CategoryWordUsage covers malformed verb forms and mispronunciations
	// that surface as the wrong word ("buyed", "goed").
	CategoryWordUsage = "WORD_USAGE"

	// CategoryPronounUsage covers a leading pronoun used in place of a
	// possessive ("me name is" → "My name is").
	CategoryPronounUsage = "PRONOUN_USAGE"

	// CategoryVocabulary covers near-miss mishearings of configured
	// vocabulary words resolved by the phonetic matcher.
	CategoryVocabulary = "VOCABULARY"
)

// Correction captures a single substitution applied by the pipeline. It is
// suitable for direct display to an end user.
type Correction struct {
	// Original is the exact substring that was replaced, case as found.
	Original string `json:"original"`

	// Corrected is the replacement that was actually inserted.
	Corrected string `json:"corrected"`

	// Message is a human-readable explanation of the substitution.
	Message string `json:"message"`

	// Category classifies the error (GRAMMAR, WORD_USAGE, PRONOUN_USAGE,
	// VOCABULARY, or a category reported by the external service).
	Category string `json:"category"`

	// Source records which stage produced this correction.
	Source Source `json:"source"`
}

// Result is the outcome of a single [Engine.Analyze] call. It is constructed
// fresh per call and never mutated afterwards.
type Result struct {
	// OriginalSentence is the trimmed input text.
	OriginalSentence string `json:"original_sentence"`

	// CorrectedSentence is the fully corrected text.
	CorrectedSentence string `json:"corrected_sentence"`

	// WrongWordCount is the number of deduplicated corrections.
	WrongWordCount int `json:"wrong_word_count"`

	// Corrections is the ordered, deduplicated list of substitutions.
	// An empty (non-nil) slice means no corrections were necessary.
	Corrections []Correction `json:"corrections"`

	// Confidence estimates the fraction of words that were NOT in error,
	// in [0.0, 1.0] rounded to two decimals. It is an explainable proxy,
	// not a calibrated probability.
	Confidence float64 `json:"confidence"`

	// TotalWords is the whitespace-delimited word count of the original
	// input.
	TotalWords int `json:"total_words"`
}
