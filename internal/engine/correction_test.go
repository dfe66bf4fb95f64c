package engine

import "testing"

func TestDedupe(t *testing.T) {
	t.Parallel()

	ruleCorr := Correction{
		Original:  "i are",
		Corrected: "I am",
		Message:   `"I am" is more appropriate than "i are"`,
		Category:  CategoryGrammar,
		Source:    SourceRule,
	}
	externalDup := Correction{
		Original:  "I ARE",
		Corrected: "i am",
		Message:   "agreement error",
		Category:  "GRAMMAR",
		Source:    SourceExternal,
	}
	other := Correction{
		Original:  "buyed",
		Corrected: "bought",
		Category:  CategoryWordUsage,
		Source:    SourceRule,
	}

	got := dedupe([]Correction{ruleCorr, externalDup, other})
	if len(got) != 2 {
		t.Fatalf("dedupe kept %d corrections, want 2", len(got))
	}
	// First occurrence wins: the rule-based record survives, the external
	// duplicate (same pair ignoring case) is dropped.
	if got[0].Source != SourceRule || got[0].Original != "i are" {
		t.Errorf("first kept correction = %+v, want the rule-based record", got[0])
	}
	if got[1].Original != "buyed" {
		t.Errorf("second kept correction = %+v, want the buyed record", got[1])
	}
}

func TestDedupe_DistinctReplacementsKept(t *testing.T) {
	t.Parallel()

	// Same original with different replacements are different corrections.
	got := dedupe([]Correction{
		{Original: "goed", Corrected: "went"},
		{Original: "goed", Corrected: "gone"},
	})
	if len(got) != 2 {
		t.Fatalf("dedupe kept %d corrections, want 2", len(got))
	}
}

func TestDedupe_Empty(t *testing.T) {
	t.Parallel()

	got := dedupe(nil)
	if got == nil {
		t.Fatal("dedupe(nil) = nil, want non-nil empty slice")
	}
	if len(got) != 0 {
		t.Errorf("dedupe(nil) has %d elements, want 0", len(got))
	}
}
