package engine

// Pattern is a declarative wrong-phrase → right-phrase mapping. Wrong is a
// lowercase, word-boundary-delimited phrase; Right is the replacement as it
// should read in a lowercase sentence (case is mirrored from the matched
// span at substitution time).
type Pattern struct {
	Wrong    string
	Right    string
	Category string
}

// grammarPatterns lists the known speech-to-text error patterns. Declaration
// order is part of the observable contract: later patterns may re-match text
// altered by earlier ones, so the order must not be changed casually.
var grammarPatterns = []Pattern{
	// Subject-verb agreement.
	{Wrong: "i is", Right: "I am", Category: CategoryGrammar},
	{Wrong: "i are", Right: "I am", Category: CategoryGrammar},
	{Wrong: "he are", Right: "he is", Category: CategoryGrammar},
	{Wrong: "she are", Right: "she is", Category: CategoryGrammar},
	{Wrong: "it are", Right: "it is", Category: CategoryGrammar},
	{Wrong: "we is", Right: "we are", Category: CategoryGrammar},
	{Wrong: "they is", Right: "they are", Category: CategoryGrammar},

	// Malformed verb forms and mispronunciations.
	{Wrong: "buyed", Right: "bought", Category: CategoryWordUsage},
	{Wrong: "goed", Right: "went", Category: CategoryWordUsage},
	{Wrong: "eated", Right: "ate", Category: CategoryWordUsage},
	{Wrong: "runned", Right: "ran", Category: CategoryWordUsage},
	{Wrong: "speaked", Right: "spoke", Category: CategoryWordUsage},

	// Preposition errors.
	{Wrong: "in home", Right: "at home", Category: CategoryGrammar},
	{Wrong: "on home", Right: "at home", Category: CategoryGrammar},
	{Wrong: "on japan", Right: "in Japan", Category: CategoryGrammar},
	{Wrong: "at japan", Right: "in Japan", Category: CategoryGrammar},

	// Article errors.
	{Wrong: "a apple", Right: "an apple", Category: CategoryGrammar},
	{Wrong: "a hour", Right: "an hour", Category: CategoryGrammar},
	{Wrong: "an book", Right: "a book", Category: CategoryGrammar},
	{Wrong: "an university", Right: "a university", Category: CategoryGrammar},

	// Leading pronoun in place of a possessive before "name".
	{Wrong: "i name", Right: "My name", Category: CategoryPronounUsage},
	{Wrong: "me name", Right: "My name", Category: CategoryPronounUsage},
}

// contractionPatterns lists the expanded forms that are contracted during the
// style-normalisation pass. Only negation and auxiliary contractions appear
// here: contracting pronoun+verb pairs ("i am" → "I'm") would undo the
// subject-verb corrections above. Contractions never generate visible
// correction records.
var contractionPatterns = []Pattern{
	{Wrong: "is not", Right: "isn't"},
	{Wrong: "are not", Right: "aren't"},
	{Wrong: "was not", Right: "wasn't"},
	{Wrong: "were not", Right: "weren't"},
	{Wrong: "do not", Right: "don't"},
	{Wrong: "does not", Right: "doesn't"},
	{Wrong: "did not", Right: "didn't"},
	{Wrong: "have not", Right: "haven't"},
	{Wrong: "has not", Right: "hasn't"},
	{Wrong: "had not", Right: "hadn't"},
	{Wrong: "will not", Right: "won't"},
	{Wrong: "would not", Right: "wouldn't"},
	{Wrong: "should not", Right: "shouldn't"},
	{Wrong: "could not", Right: "couldn't"},
	{Wrong: "cannot", Right: "can't"},
}

// GrammarPatterns returns a copy of the grammar/word-usage pattern table in
// application order.
func GrammarPatterns() []Pattern {
	out := make([]Pattern, len(grammarPatterns))
	copy(out, grammarPatterns)
	return out
}

// ContractionPatterns returns a copy of the contraction pattern table in
// application order.
func ContractionPatterns() []Pattern {
	out := make([]Pattern, len(contractionPatterns))
	copy(out, contractionPatterns)
	return out
}
