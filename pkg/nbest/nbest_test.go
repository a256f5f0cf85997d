package nbest_test

import (
	"testing"

	"github.com/nlpstack/ccgparse/pkg/category"
	"github.com/nlpstack/ccgparse/pkg/chart"
	"github.com/nlpstack/ccgparse/pkg/nbest"
)

func mustCat(t *testing.T, s string) category.Category {
	t.Helper()
	c, err := category.Parse(s)
	if err != nil {
		t.Fatalf("category.Parse(%q): %v", s, err)
	}
	return c
}

// buildTheCatChart hand-assembles the chart for "the cat" -> (NP (NP/N the)
// (N cat)), bypassing the A* driver entirely so nbest is tested in
// isolation from search.
func buildTheCatChart(t *testing.T) (*chart.Arena, *chart.Chart, chart.EdgeID) {
	t.Helper()
	npOverN := mustCat(t, "NP/N")
	n := mustCat(t, "N")
	np := mustCat(t, "NP")

	arena := chart.NewArena()
	ch := chart.New(arena)

	left := arena.Alloc(chart.Edge{
		Start: 0, End: 1, Category: npOverN, Rule: chart.Terminal,
		Left: chart.NoEdge, Right: chart.NoEdge, InScore: -0.1,
	}.SetWord("the"))
	ch.TryAdmit(left)

	right := arena.Alloc(chart.Edge{
		Start: 1, End: 2, Category: n, Rule: chart.Terminal,
		Left: chart.NoEdge, Right: chart.NoEdge, InScore: -0.1,
	}.SetWord("cat"))
	ch.TryAdmit(right)

	root := arena.Alloc(chart.Edge{
		Start: 0, End: 2, Category: np, Rule: chart.Binary, RuleName: ">",
		Left: left, Right: right, InScore: -0.2,
	})
	ch.TryAdmit(root)

	return arena, ch, root
}

func TestExtractReconstructsTree(t *testing.T) {
	arena, ch, _ := buildTheCatChart(t)
	defer arena.Release()

	x := nbest.New(ch, arena)
	ds := x.Extract(0, 2, "NP", 1)
	if len(ds) != 1 {
		t.Fatalf("len(derivations) = %d, want 1", len(ds))
	}
	d := ds[0]
	if d.Score != -0.2 {
		t.Fatalf("Score = %v, want -0.2", d.Score)
	}
	if d.Root.Category.String() != "NP" || d.Root.Rule != ">" {
		t.Fatalf("root = %+v, want NP/>", d.Root)
	}
	if len(d.Root.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(d.Root.Children))
	}
}

func TestExtractNeverPadsBeyondAvailable(t *testing.T) {
	arena, ch, _ := buildTheCatChart(t)
	defer arena.Release()

	x := nbest.New(ch, arena)
	ds := x.Extract(0, 2, "NP", 5)
	if len(ds) != 1 {
		t.Fatalf("len(derivations) = %d, want 1 (no padding)", len(ds))
	}
}

func TestExtractUnknownCellReturnsEmpty(t *testing.T) {
	arena, ch, _ := buildTheCatChart(t)
	defer arena.Release()

	x := nbest.New(ch, arena)
	ds := x.Extract(0, 2, "PP", 3)
	if len(ds) != 0 {
		t.Fatalf("len(derivations) = %d, want 0 for an unseeded cell", len(ds))
	}
}

func TestLeavesOrdersLeftToRight(t *testing.T) {
	arena, ch, _ := buildTheCatChart(t)
	defer arena.Release()

	x := nbest.New(ch, arena)
	ds := x.Extract(0, 2, "NP", 1)
	if len(ds) != 1 {
		t.Fatalf("len(derivations) = %d, want 1", len(ds))
	}
	leaves := nbest.Leaves(ds[0].Root)
	if len(leaves) != 2 || leaves[0].Word != "the" || leaves[1].Word != "cat" {
		t.Fatalf("leaves = %+v, want [the cat]", leaves)
	}
}
