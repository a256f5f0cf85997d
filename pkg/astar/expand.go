package astar

import (
	"math"
	"sort"

	"github.com/nlpstack/ccgparse/pkg/agenda"
	"github.com/nlpstack/ccgparse/pkg/chart"
	"github.com/nlpstack/ccgparse/pkg/combinator"
	"github.com/nlpstack/ccgparse/pkg/constraint"
	"github.com/nlpstack/ccgparse/pkg/grammar"
	"github.com/nlpstack/ccgparse/pkg/scorer"
)

// buildCategoryFilter returns the predicate "is category index c allowed
// at position pos", combining the category dictionary (if enabled) and
// the beta beam (if enabled). Pruning-size is applied separately in
// seedTerminals since it ranks surviving categories rather than filtering
// by a fixed threshold.
func buildCategoryFilter(pack *grammar.Pack, words []string, tensors scorer.Tensors, cfg Config) func(pos, cat int) bool {
	return func(pos, cat int) bool {
		if cfg.UseCategoryDict {
			if allowed := pack.AllowedCategoryIndices(words[pos]); allowed != nil {
				if !containsInt(allowed, cat) {
					return false
				}
			}
		}
		if cfg.UseBeta {
			row := tensors.TagLogProb[pos]
			max := negInf
			for _, v := range row {
				if v > max {
					max = v
				}
			}
			threshold := logBeta(cfg.Beta) + max
			if row[cat] < threshold {
				return false
			}
		}
		return true
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func logBeta(beta float64) float64 {
	if beta <= 0 {
		return negInf
	}
	return logf(beta)
}

// seedTerminals pushes the initial terminal agenda items: for each
// position, the top pruning_size categories (by tag_log_prob) surviving
// the category-dictionary and beta filters, scored with
// tag_log_prob[i,c] + dep_log_prob[i, head_guess] where head_guess is the
// position's best dependency target.
func seedTerminals(arena *chart.Arena, ag *agenda.Agenda, pack *grammar.Pack, words []string,
	tensors scorer.Tensors, cfg Config, allowed func(pos, cat int) bool, bound outsideBound, constraints *constraint.Set) {

	for i := range words {
		type candidate struct {
			cat int
			lp  float64
		}
		var candidates []candidate
		for c := range pack.Categories {
			if !allowed(i, c) {
				continue
			}
			candidates = append(candidates, candidate{c, tensors.TagLogProb[i][c]})
		}
		sort.Slice(candidates, func(a, b int) bool { return candidates[a].lp > candidates[b].lp })
		if cfg.PruningSize > 0 && len(candidates) > cfg.PruningSize {
			candidates = candidates[:cfg.PruningSize]
		}

		headGuess, headLP := argmax(tensors.DepLogProb[i])

		for _, cand := range candidates {
			cat := pack.Categories[cand.cat]
			span := constraint.Span{Start: i, End: i + 1}
			if !constraints.Admits(span, cat) {
				continue
			}
			inScore := cand.lp + headLP
			edge := chart.Edge{
				Start: i, End: i + 1, Category: cat,
				Rule: chart.Terminal,
				Left: chart.NoEdge, Right: chart.NoEdge,
				InScore: inScore, OutBound: bound.Of(i, i+1),
				HeadIndex: headGuess, DepLogProbSum: headLP,
			}
			edge = edge.SetWord(words[i])
			id := arena.Alloc(edge)
			ag.Push(agenda.Item{
				ID: id, Priority: edge.Priority(), SpanWidth: 1,
				CategoryIx: cand.cat, LeftChild: chart.NoEdge,
			})
		}
	}
}

func argmax(row []float64) (int, float64) {
	best, bestV := 0, negInf
	for i, v := range row {
		if v > bestV {
			best, bestV = i, v
		}
	}
	return best, bestV
}

// expandUnary pushes every admissible unary expansion of e, respecting
// Config.MaxUnaryChain, which bounds how many consecutive unary
// applications a single derivation node may accumulate.
func expandUnary(arena *chart.Arena, ag *agenda.Agenda, ch *chart.Chart, pack *grammar.Pack, cfg Config,
	item agenda.Item, e chart.Edge, words []string, constraints *constraint.Set, bound outsideBound) {

	if e.UnaryChainDepth >= cfg.MaxUnaryChain {
		return
	}
	parents := pack.UnaryParents(e.Category)
	for _, parent := range parents {
		span := constraint.Span{Start: e.Start, End: e.End}
		if !constraints.Admits(span, parent) {
			continue
		}
		newEdge := chart.Edge{
			Start: e.Start, End: e.End, Category: parent,
			Rule: chart.Unary, RuleName: "unary",
			Left: item.ID, Right: chart.NoEdge,
			InScore: e.InScore + cfg.UnaryPenalty, OutBound: bound.Of(e.Start, e.End),
			HeadIndex: e.HeadIndex, DepLogProbSum: e.DepLogProbSum,
			UnaryChainDepth: e.UnaryChainDepth + 1,
		}
		id := arena.Alloc(newEdge)
		ag.Push(agenda.Item{
			ID: id, Priority: newEdge.Priority(), SpanWidth: e.End - e.Start,
			CategoryIx: pack.CategoryIndex(parent), LeftChild: item.ID,
		})
	}
}

// expandBinary combines e with every chart-adjacent primary edge via
// every binary rule in the pack's catalogue, pushing legal, seen-rules-
// admissible, constraint-admissible results. "Chart adjacent" means a span that starts exactly where e ends (e supplies the
// left operand) or ends exactly where e starts (e supplies the right
// operand), for any adjacent span length.
func expandBinary(arena *chart.Arena, ag *agenda.Agenda, ch *chart.Chart, pack *grammar.Pack, cfg Config,
	item agenda.Item, e chart.Edge, constraints *constraint.Set, bound outsideBound) {

	for _, fid := range ch.PrimaryEdgesStartingAt(e.End) {
		tryCombine(arena, ag, ch, pack, cfg, item.ID, e, fid, arena.Get(fid), constraints, bound)
	}
	for _, fid := range ch.PrimaryEdgesEndingAt(e.Start) {
		tryCombine(arena, ag, ch, pack, cfg, fid, arena.Get(fid), item.ID, e, constraints, bound)
	}
}

// tryCombine applies every binary rule to the ordered pair (leftEdgeID,
// rightEdgeID), pushing legal results. expandBinary calls it once for each
// side e can occupy.
func tryCombine(arena *chart.Arena, ag *agenda.Agenda, ch *chart.Chart, pack *grammar.Pack, cfg Config,
	leftID chart.EdgeID, left chart.Edge, rightID chart.EdgeID, right chart.Edge, constraints *constraint.Set, bound outsideBound) {

	for _, rule := range pack.BinaryRules {
		result, ok := combinator.Apply(rule, left.Category, right.Category)
		if !ok {
			continue
		}
		if cfg.UseSeenRules && !rule.BypassSeenRules && !pack.Seen(left.Category, right.Category) {
			continue
		}
		span := constraint.Span{Start: left.Start, End: right.End}
		if !constraints.Admits(span, result) {
			continue
		}
		newEdge := chart.Edge{
			Start: left.Start, End: right.End, Category: result,
			Rule: chart.Binary, RuleName: rule.Name,
			Left: leftID, Right: rightID,
			InScore: left.InScore + right.InScore, OutBound: bound.Of(left.Start, right.End),
			HeadIndex: right.HeadIndex, DepLogProbSum: left.DepLogProbSum + right.DepLogProbSum,
		}
		id := arena.Alloc(newEdge)
		ag.Push(agenda.Item{
			ID: id, Priority: newEdge.Priority(), SpanWidth: right.End - left.Start,
			CategoryIx: pack.CategoryIndex(result), LeftChild: leftID,
		})
	}
}

func logf(x float64) float64 {
	return math.Log(x)
}
