package chart

import (
	"testing"

	"github.com/nlpstack/ccgparse/pkg/category"
)

func TestTryAdmitFirstAdmitted(t *testing.T) {
	arena := NewArena()
	defer arena.Release()
	c := New(arena)

	np, _ := category.Parse("NP")
	id := arena.Alloc(Edge{Start: 0, End: 1, Category: np, InScore: -1.0})
	if got := c.TryAdmit(id); got != Admitted {
		t.Fatalf("expected first edge admitted, got %v", got)
	}
	primary, ok := c.Primary(0, 1, "NP")
	if !ok || primary != id {
		t.Errorf("expected %d to be primary, got %d (ok=%v)", id, primary, ok)
	}
}

func TestTryAdmitDominated(t *testing.T) {
	arena := NewArena()
	defer arena.Release()
	c := New(arena)

	np, _ := category.Parse("NP")
	better := arena.Alloc(Edge{Start: 0, End: 1, Category: np, InScore: -1.0})
	worse := arena.Alloc(Edge{Start: 0, End: 1, Category: np, InScore: -2.0})

	c.TryAdmit(better)
	if got := c.TryAdmit(worse); got != Dominated {
		t.Errorf("expected worse edge dominated, got %v", got)
	}
	primary, _ := c.Primary(0, 1, "NP")
	if primary != better {
		t.Errorf("expected better edge to remain primary")
	}
	alts := c.Alternatives(0, 1, "NP")
	if len(alts) != 2 {
		t.Errorf("expected 2 alternatives recorded, got %d", len(alts))
	}
}

func TestTryAdmitReplacesPrimaryWhenStrictlyBetter(t *testing.T) {
	arena := NewArena()
	defer arena.Release()
	c := New(arena)

	np, _ := category.Parse("NP")
	worse := arena.Alloc(Edge{Start: 0, End: 1, Category: np, InScore: -2.0})
	better := arena.Alloc(Edge{Start: 0, End: 1, Category: np, InScore: -1.0})

	c.TryAdmit(worse)
	if got := c.TryAdmit(better); got != Admitted {
		t.Errorf("expected strictly better edge admitted, got %v", got)
	}
	primary, _ := c.Primary(0, 1, "NP")
	if primary != better {
		t.Errorf("expected better edge to become primary")
	}
}

func TestCategoriesAtDistinguishesSpans(t *testing.T) {
	arena := NewArena()
	defer arena.Release()
	c := New(arena)

	np, _ := category.Parse("NP")
	n, _ := category.Parse("N")
	c.TryAdmit(arena.Alloc(Edge{Start: 0, End: 1, Category: np}))
	c.TryAdmit(arena.Alloc(Edge{Start: 1, End: 2, Category: n}))

	if got := c.CategoriesAt(0, 1); len(got) != 1 || got[0] != "NP" {
		t.Errorf("CategoriesAt(0,1) = %v, want [NP]", got)
	}
	if got := c.CategoriesAt(1, 2); len(got) != 1 || got[0] != "N" {
		t.Errorf("CategoriesAt(1,2) = %v, want [N]", got)
	}
}

func TestCheckCoverageBinaryMismatchPanics(t *testing.T) {
	arena := NewArena()
	defer arena.Release()

	np, _ := category.Parse("NP")
	left := arena.Alloc(Edge{Start: 0, End: 1, Category: np, Rule: Terminal})
	right := arena.Alloc(Edge{Start: 2, End: 3, Category: np, Rule: Terminal}) // gap: not adjacent

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic on non-tiling binary edge")
		}
	}()
	e := Edge{Start: 0, End: 3, Category: np, Rule: Binary, Left: left, Right: right}
	CheckCoverage(e, arena)
}
