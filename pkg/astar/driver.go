package astar

import (
	"fmt"
	"math"
	"sort"

	"github.com/nlpstack/ccgparse/pkg/agenda"
	"github.com/nlpstack/ccgparse/pkg/category"
	"github.com/nlpstack/ccgparse/pkg/chart"
	"github.com/nlpstack/ccgparse/pkg/constraint"
	"github.com/nlpstack/ccgparse/pkg/grammar"
	"github.com/nlpstack/ccgparse/pkg/nbest"
	"github.com/nlpstack/ccgparse/pkg/scorer"
	"github.com/nlpstack/ccgparse/pkg/token"
)

var negInf = math.Inf(-1)

// Result is the outcome of a successful Parse.
type Result struct {
	NBest    []nbest.Derivation
	PopCount int
	ChartLen int // number of edges allocated, for diagnostics
}

// Parse runs the A* main loop over sentence using the scorer output
// tensors and grammar pack, returning up to cfg.NBest derivations in
// descending score order.
//
// There is no "no parse" error: an empty Result (len(NBest) == 0) with a
// nil error is the documented "no parse" outcome — surfaced as a valid,
// empty result, never an exception.
func Parse(pack *grammar.Pack, sentence []token.Token, tensors scorer.Tensors, cfg Config, constraints *constraint.Set) (*Result, error) {
	if len(sentence) > cfg.MaxLength {
		return nil, ErrSentenceTooLong
	}
	if err := tensors.Validate(len(sentence), len(pack.Categories)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(sentence) == 0 {
		return &Result{}, nil
	}

	words := token.Surfaces(sentence)
	allowed := buildCategoryFilter(pack, words, tensors, cfg)

	bound := newOutsideBound(bestPerPosition(tensors, allowed))

	arena := chart.NewArena()
	ch := chart.New(arena)
	ag := agenda.New()

	seedTerminals(arena, ag, pack, words, tensors, cfg, allowed, bound, constraints)

	rootCats := cfg.PossibleRootCats
	if len(rootCats) == 0 {
		rootCats = pack.RootCategories
	}

	var completions []chart.EdgeID
	fullSpan := [2]int{0, len(sentence)}

	for {
		if len(completions) >= cfg.NBest {
			break
		}
		if ag.PopCount() > cfg.MaxSteps {
			arena.Release()
			return nil, ErrBudgetExceeded
		}
		item, ok := ag.Pop()
		if !ok {
			break
		}
		e := arena.Get(item.ID)

		if admitted := ch.TryAdmit(item.ID); admitted == chart.Dominated {
			continue
		}
		chart.CheckCoverage(e, arena)

		if e.Start == fullSpan[0] && e.End == fullSpan[1] && isRootAdmissible(pack, rootCats, e.Category) {
			completions = append(completions, item.ID)
		}

		expandUnary(arena, ag, ch, pack, cfg, item, e, words, constraints, bound)
		expandBinary(arena, ag, ch, pack, cfg, item, e, constraints, bound)
	}

	result := &Result{PopCount: ag.PopCount(), ChartLen: arena.Len()}
	if len(completions) > 0 {
		x := nbest.New(ch, arena)
		// Completions may span more than one admissible root category;
		// extract each cell's stream and merge, since n-best extraction
		// operates per (span, category) cell.
		byCat := map[string]bool{}
		for _, id := range completions {
			byCat[arena.Get(id).Category.String()] = true
		}
		var all []nbest.Derivation
		for cat := range byCat {
			all = append(all, x.Extract(fullSpan[0], fullSpan[1], cat, cfg.NBest)...)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Score > all[j].Score })
		if len(all) > cfg.NBest {
			all = all[:cfg.NBest]
		}
		result.NBest = all
	}
	arena.Release()
	return result, nil
}

func isRootAdmissible(pack *grammar.Pack, rootCats []category.Category, cat category.Category) bool {
	if len(rootCats) == 0 {
		return true
	}
	match := pack.RootMatch
	for _, r := range rootCats {
		if match(cat, r) {
			return true
		}
	}
	return false
}
