package vocab_test

import (
	"testing"

	"github.com/MrWong99/sayright/internal/engine/vocab"
)

func TestMatch_PhoneticNearMiss(t *testing.T) {
	t.Parallel()

	m := vocab.New([]string{"kubernetes", "prometheus", "grafana"})

	tests := []struct {
		in   string
		want string
	}{
		{"coobernetes", "kubernetes"},
		{"kubernetis", "kubernetes"},
		{"prometheous", "prometheus"},
		{"graphana", "grafana"},
	}
	for _, tt := range tests {
		got, conf, ok := m.Match(tt.in)
		if !ok {
			t.Errorf("Match(%q) did not match, want %q", tt.in, tt.want)
			continue
		}
		if got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if conf <= 0 || conf > 1 {
			t.Errorf("Match(%q) confidence = %v, want in (0, 1]", tt.in, conf)
		}
	}
}

// A word that already is a vocabulary entry needs no correction.
func TestMatch_ExactWordUnmatched(t *testing.T) {
	t.Parallel()

	m := vocab.New([]string{"kubernetes"})

	for _, in := range []string{"kubernetes", "Kubernetes", "KUBERNETES"} {
		got, conf, ok := m.Match(in)
		if ok {
			t.Errorf("Match(%q) matched %q, want unmatched", in, got)
		}
		if got != in {
			t.Errorf("Match(%q) returned %q, want input unchanged", in, got)
		}
		if conf != 0 {
			t.Errorf("Match(%q) confidence = %v, want 0", in, conf)
		}
	}
}

func TestMatch_UnrelatedWordUnmatched(t *testing.T) {
	t.Parallel()

	m := vocab.New([]string{"kubernetes", "prometheus"})

	for _, in := range []string{"banana", "weather", "xyzzy"} {
		if got, _, ok := m.Match(in); ok {
			t.Errorf("Match(%q) = %q, want no match", in, got)
		}
	}
}

// Tokens shorter than three runes are never considered.
func TestMatch_ShortInputSkipped(t *testing.T) {
	t.Parallel()

	m := vocab.New([]string{"kubernetes"})
	for _, in := range []string{"", "a", "ku"} {
		if got, _, ok := m.Match(in); ok {
			t.Errorf("Match(%q) = %q, want no match for short input", in, got)
		}
	}
}

func TestMatch_CanonicalSpellingReturned(t *testing.T) {
	t.Parallel()

	// The canonical spelling, including its casing, comes from the vocabulary.
	m := vocab.New([]string{"PostgreSQL"})
	got, _, ok := m.Match("postgresequel")
	if !ok {
		t.Fatal("Match(postgresequel) did not match")
	}
	if got != "PostgreSQL" {
		t.Errorf("Match(postgresequel) = %q, want %q", got, "PostgreSQL")
	}
}

func TestNew_SkipsBlankEntries(t *testing.T) {
	t.Parallel()

	m := vocab.New([]string{"", "  ", "grafana"})
	if m.Empty() {
		t.Fatal("Empty() = true, want false with one real entry")
	}
	if got, _, ok := m.Match("graphana"); !ok || got != "grafana" {
		t.Errorf("Match(graphana) = %q, %v; want grafana, true", got, ok)
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	if !vocab.New(nil).Empty() {
		t.Error("Empty() = false for nil vocabulary")
	}
	if vocab.New([]string{"grafana"}).Empty() {
		t.Error("Empty() = true for non-empty vocabulary")
	}
}

func TestMatch_RaisedThresholdRejects(t *testing.T) {
	t.Parallel()

	strict := vocab.New([]string{"kubernetes"},
		vocab.WithPhoneticThreshold(0.99),
		vocab.WithFuzzyThreshold(0.99),
	)
	if got, _, ok := strict.Match("coobernetes"); ok {
		t.Errorf("Match(coobernetes) = %q with 0.99 thresholds, want no match", got)
	}
}
