package constraint_test

import (
	"testing"

	"github.com/nlpstack/ccgparse/pkg/category"
	"github.com/nlpstack/ccgparse/pkg/constraint"
)

func mustCat(t *testing.T, s string) category.Category {
	t.Helper()
	c, err := category.Parse(s)
	if err != nil {
		t.Fatalf("category.Parse(%q): %v", s, err)
	}
	return c
}

func TestEmptySetAdmitsEverything(t *testing.T) {
	var s *constraint.Set
	if !s.Empty() {
		t.Fatal("nil Set should be Empty")
	}
	if !s.Admits(constraint.Span{Start: 0, End: 5}, mustCat(t, "NP")) {
		t.Fatal("nil Set should admit any span/category")
	}
}

func TestAdmitsRejectsCrossingSpan(t *testing.T) {
	s := constraint.New([]constraint.Item{{Span: constraint.Span{Start: 1, End: 3}}})
	if s.Admits(constraint.Span{Start: 0, End: 2}, mustCat(t, "NP")) {
		t.Fatal("a span crossing a constraint boundary must be rejected")
	}
}

func TestAdmitsAllowsContainedSpan(t *testing.T) {
	s := constraint.New([]constraint.Item{{Span: constraint.Span{Start: 0, End: 4}}})
	if !s.Admits(constraint.Span{Start: 1, End: 2}, mustCat(t, "NP")) {
		t.Fatal("a span strictly inside a constraint item is an unconstrained sub-derivation")
	}
}

func TestAdmitsEnforcesPinnedCategory(t *testing.T) {
	np := mustCat(t, "NP")
	svp := mustCat(t, "S\\NP")
	s := constraint.New([]constraint.Item{{Span: constraint.Span{Start: 0, End: 1}, Category: &np}})

	if !s.Admits(constraint.Span{Start: 0, End: 1}, np) {
		t.Fatal("the pinned category should be admitted at its own span")
	}
	if s.Admits(constraint.Span{Start: 0, End: 1}, svp) {
		t.Fatal("a different category at the pinned span should be rejected")
	}
}

func TestAdmitsIgnoresCategoryWhenUnset(t *testing.T) {
	s := constraint.New([]constraint.Item{{Span: constraint.Span{Start: 0, End: 1}}})
	if !s.Admits(constraint.Span{Start: 0, End: 1}, mustCat(t, "NP")) {
		t.Fatal("a constraint item with no pinned category should admit any category at its span")
	}
}

func TestSpanCrosses(t *testing.T) {
	a := constraint.Span{Start: 0, End: 3}
	b := constraint.Span{Start: 2, End: 5}
	if !a.Crosses(b) {
		t.Fatal("overlapping, non-nesting spans should cross")
	}
	if a.Crosses(a) {
		t.Fatal("a span never crosses itself")
	}
	inner := constraint.Span{Start: 1, End: 2}
	if a.Crosses(inner) {
		t.Fatal("a wholly-contained span does not cross")
	}
}
