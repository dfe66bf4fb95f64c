package engine

import (
	"log/slog"
	"regexp"
)

// rule pairs a [Pattern] with its compiled whole-word matcher.
type rule struct {
	Pattern
	re *regexp.Regexp
}

// compileRules builds whole-word, case-insensitive matchers for patterns,
// preserving declaration order. An empty or uncompilable pattern is logged
// and skipped so that a single bad entry cannot take the whole table down.
func compileRules(patterns []Pattern) []rule {
	rules := make([]rule, 0, len(patterns))
	for _, p := range patterns {
		if p.Wrong == "" {
			continue
		}
		re, err := wholeWordRegexp(p.Wrong)
		if err != nil {
			slog.Warn("skipping uncompilable pattern", "wrong", p.Wrong, "err", err)
			continue
		}
		rules = append(rules, rule{Pattern: p, re: re})
	}
	return rules
}

// wholeWordRegexp compiles a case-insensitive matcher for phrase bounded by
// word boundaries, so "is" does not match inside "this".
func wholeWordRegexp(phrase string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}

// findWholeWord locates the first whole-word occurrence of phrase in text,
// case-insensitively. Returns ok=false when phrase is absent or empty.
func findWholeWord(text, phrase string) (start, end int, ok bool) {
	if phrase == "" {
		return 0, 0, false
	}
	re, err := wholeWordRegexp(phrase)
	if err != nil {
		return 0, 0, false
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

// replace substitutes every whole-word occurrence of the rule's wrong phrase
// in text. Each inserted replacement mirrors the casing style of the span it
// replaces (see [matchCase]). The returned matched value is the first span
// that was replaced, case as found, or "" when nothing matched.
func (r rule) replace(text string) (newText, matched string) {
	newText = r.re.ReplaceAllStringFunc(text, func(span string) string {
		if matched == "" {
			matched = span
		}
		return matchCase(r.Right, span)
	})
	return newText, matched
}
