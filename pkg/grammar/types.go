package grammar

// Suggestion is one issue reported by a grammar service, normalised to a
// backend-independent shape.
type Suggestion struct {
	// Text is the exact source span the suggestion applies to, as it
	// appeared in the checked text.
	Text string

	// Offset is the byte offset of Text in the checked text.
	Offset int

	// Length is the byte length of Text.
	Length int

	// Replacements holds the offered replacements in preference order.
	// The pipeline applies the first one verbatim.
	Replacements []string

	// Message is the backend's human-readable explanation.
	Message string

	// Category is the backend's error classification (e.g., "TYPOS",
	// "GRAMMAR").
	Category string
}
