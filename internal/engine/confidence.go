package engine

import (
	"math"
	"strings"
)

// confidence derives a bounded score from the ratio of corrections to total
// word count: max(0, 1 - corrections/max(1, totalWords)), rounded to two
// decimals. Zero corrections always yields 1.0.
func confidence(corrections, totalWords int) float64 {
	if totalWords < 1 {
		totalWords = 1
	}
	c := 1.0 - float64(corrections)/float64(totalWords)
	if c < 0 {
		c = 0
	}
	return math.Round(c*100) / 100
}

// countWords counts whitespace-delimited tokens in s.
func countWords(s string) int {
	return len(strings.Fields(s))
}
