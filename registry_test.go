package giac

import (
	"testing"
)

// =============================================================================
// Suggestions
// =============================================================================

func TestSuggestOrderedByDistance(t *testing.T) {
	f := newFakeEngine()
	ctx := newFakeContext(f, "expand", "fact", "factor", "factors", "simplify")

	got := ctx.reg.suggest("factr")
	// fact and factor are both distance 1; ties break lexicographically.
	want := []string{"fact", "factor", "factors"}
	if len(got) != len(want) {
		t.Fatalf("suggest(factr) = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggest[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestSuggestLimit(t *testing.T) {
	f := newFakeEngine()
	ctx := newFakeContext(f, "solva", "solvb", "solvc", "solvd", "solve")

	got := ctx.reg.suggest("solv")
	if len(got) != maxSuggestions {
		t.Errorf("suggest returned %d names; want %d", len(got), maxSuggestions)
	}
}

func TestSuggestCutoff(t *testing.T) {
	f := newFakeEngine()
	ctx := newFakeContext(f, "integrate", "determinant")

	if got := ctx.reg.suggest("zz"); len(got) != 0 {
		t.Errorf("suggest(zz) = %v; want no far-away names", got)
	}
}

// =============================================================================
// Bootstrap
// =============================================================================

func TestBootstrapSoftFailure(t *testing.T) {
	r := bootstrapRegistry(nil)
	if !r.empty() {
		t.Error("registry from nil engine not empty")
	}
	if r.known("factor") {
		t.Error("empty registry claims to know factor")
	}
	if got := r.suggest("factor"); len(got) != 0 {
		t.Errorf("empty registry suggested %v", got)
	}
}

func TestBootstrapDeduplicates(t *testing.T) {
	f := newFakeEngine()
	ctx := newFakeContext(f, "factor", "factor", "expand")

	if got := ctx.Commands(""); len(got) != 2 {
		t.Errorf("Commands() = %v; want 2 unique names", got)
	}
}

func TestBootstrapMissingHelpKeepsName(t *testing.T) {
	f := newFakeEngine() // no help entries at all
	ctx := newFakeContext(f, "factor")

	h, ok := ctx.HelpFor("factor")
	if !ok {
		t.Fatal("name without help record dropped from registry")
	}
	if h.Name != "factor" || h.Synopsis != "" {
		t.Errorf("HelpFor(factor) = %+v; want bare name", h)
	}
}
