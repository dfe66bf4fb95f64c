package engine

import "testing"

// ── detectCase ────────────────────────────────────────────────────────────────

func TestDetectCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want caseStyle
	}{
		{"i are", styleLower},
		{"hello", styleLower},
		{"I ARE", styleUpper},
		{"HELLO", styleUpper},
		{"Me Name", styleTitle},
		{"Hello", styleTitle},
		// Mixed casing falls back to lower.
		{"hELLo", styleLower},
		{"Me name", styleLower},
		// Single uppercase letter counts as upper, not title.
		{"I", styleUpper},
	}
	for _, tt := range tests {
		if got := detectCase(tt.in); got != tt.want {
			t.Errorf("detectCase(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ── matchCase ─────────────────────────────────────────────────────────────────

func TestMatchCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		replacement string
		matched     string
		want        string
	}{
		{"I am", "i are", "i am"},
		{"I am", "I ARE", "I AM"},
		{"My name", "Me Name", "My Name"},
		{"bought", "BUYED", "BOUGHT"},
		{"bought", "Buyed", "Bought"},
		{"bought", "buyed", "bought"},
	}
	for _, tt := range tests {
		if got := matchCase(tt.replacement, tt.matched); got != tt.want {
			t.Errorf("matchCase(%q, %q) = %q, want %q", tt.replacement, tt.matched, got, tt.want)
		}
	}
}

// matchCase must be deterministic: repeated application with identical inputs
// yields identical output.
func TestMatchCase_Deterministic(t *testing.T) {
	t.Parallel()

	first := matchCase("I am", "I Are")
	for range 10 {
		if got := matchCase("I am", "I Are"); got != first {
			t.Fatalf("matchCase not deterministic: %q then %q", first, got)
		}
	}
}

// ── shape helpers ─────────────────────────────────────────────────────────────

func TestIsUpper(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"ABC", true},
		{"A B!", true},
		{"AbC", false},
		{"abc", false},
		{"123", false}, // no letters
		{"", false},
	}
	for _, tt := range tests {
		if got := isUpper(tt.in); got != tt.want {
			t.Errorf("isUpper(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"Hello World", true},
		{"Hello", true},
		{"Hello world", false},
		{"HELLO", false},
		{"", false},
		{"123", false},
	}
	for _, tt := range tests {
		if got := isTitle(tt.in); got != tt.want {
			t.Errorf("isTitle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCapitalizeFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"i am happy", "I am happy"},
		{"already Capital", "Already Capital"},
		{"", ""},
		{"ärger", "Ärger"},
	}
	for _, tt := range tests {
		if got := capitalizeFirst(tt.in); got != tt.want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
