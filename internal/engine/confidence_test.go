package engine

import "testing"

func TestConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		corrections int
		totalWords  int
		want        float64
	}{
		{0, 5, 1.0},
		{1, 3, 0.67},
		{1, 4, 0.75},
		{2, 4, 0.5},
		{5, 5, 0.0},
		// More corrections than words clamps to zero.
		{7, 3, 0.0},
		// Zero or negative word counts use a denominator of one.
		{0, 0, 1.0},
		{1, 0, 0.0},
	}
	for _, tt := range tests {
		if got := confidence(tt.corrections, tt.totalWords); got != tt.want {
			t.Errorf("confidence(%d, %d) = %v, want %v", tt.corrections, tt.totalWords, got, tt.want)
		}
	}
}

func TestCountWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"i are happy", 3},
		{"  spaced   out  ", 2},
		{"", 0},
		{"one", 1},
	}
	for _, tt := range tests {
		if got := countWords(tt.in); got != tt.want {
			t.Errorf("countWords(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
