package engine

import (
	"strings"
	"unicode"
)

// caseStyle is the casing class of a matched span, used to re-case the
// replacement that takes its place.
type caseStyle int

const (
	styleLower caseStyle = iota
	styleUpper
	styleTitle
)

// detectCase classifies s by its letters. The whole span is evaluated as one
// unit — multi-word phrases are not classified word by word. Mixed casing
// that fits neither the upper nor the title shape falls back to lower.
func detectCase(s string) caseStyle {
	if isUpper(s) {
		return styleUpper
	}
	if isTitle(s) {
		return styleTitle
	}
	return styleLower
}

// matchCase renders replacement in the casing style of matched. It is a pure
// function: the same inputs always produce the same output.
func matchCase(replacement, matched string) string {
	switch detectCase(matched) {
	case styleUpper:
		return strings.ToUpper(replacement)
	case styleTitle:
		return titleCase(replacement)
	default:
		return strings.ToLower(replacement)
	}
}

// isUpper reports whether s contains at least one letter and every letter in
// s is uppercase.
func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetter
}

// isTitle reports whether every whitespace-separated word in s starts with an
// uppercase letter followed only by lowercase letters.
func isTitle(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		runes := []rune(w)
		first := true
		for _, r := range runes {
			if !unicode.IsLetter(r) {
				continue
			}
			if first {
				if !unicode.IsUpper(r) {
					return false
				}
				first = false
				continue
			}
			if !unicode.IsLower(r) {
				return false
			}
		}
		if first {
			// Word without letters cannot carry a title shape.
			return false
		}
	}
	return true
}

// titleCase uppercases the first letter of every word in s and lowercases the
// rest.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = capitalizeFirst(w)
	}
	return strings.Join(words, " ")
}

// capitalizeFirst uppercases the first rune of s. It is a no-op on the empty
// string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
