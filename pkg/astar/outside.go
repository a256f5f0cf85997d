package astar

import "github.com/nlpstack/ccgparse/pkg/scorer"

// outsideBound precomputes the admissible outside-score heuristic: per-
// position maxima of tag and dependency log-probability, prefix-summed
// so out_score_bound(span) = Σ_{k not in span} (best_tag[k] +
// best_dep[k]) is an O(1) lookup per span. best_tag is restricted to
// categories surviving the category-dictionary and beta filters, since any
// completion of an edge is itself bound by those same filters.
type outsideBound struct {
	total  float64   // sum over every position of (best_tag+best_dep)
	prefix []float64 // prefix[i] = sum over positions [0,i) of (best_tag+best_dep)
}

func newOutsideBound(bestPerPosition []float64) outsideBound {
	prefix := make([]float64, len(bestPerPosition)+1)
	for i, v := range bestPerPosition {
		prefix[i+1] = prefix[i] + v
	}
	return outsideBound{total: prefix[len(prefix)-1], prefix: prefix}
}

// Of returns the admissible outside bound for span [start, end).
func (b outsideBound) Of(start, end int) float64 {
	inside := b.prefix[end] - b.prefix[start]
	return b.total - inside
}

// bestPerPosition computes best_tag[i] (over categories surviving the
// filters selected by allowed) and best_dep[i] (over every head
// candidate, unrestricted — the dependency scorer is not filtered by the
// category heuristics), then sums them per position.
func bestPerPosition(tensors scorer.Tensors, allowed func(pos, cat int) bool) []float64 {
	t := tensors.TagLogProb
	d := tensors.DepLogProb
	out := make([]float64, len(t))
	for i := range t {
		bestTag := negInf
		for c, v := range t[i] {
			if !allowed(i, c) {
				continue
			}
			if v > bestTag {
				bestTag = v
			}
		}
		if bestTag == negInf && len(t[i]) > 0 {
			// No category survives the filters at this position: fall
			// back to the unfiltered max so the bound stays admissible
			// (it must never underestimate what a completion could pay).
			for _, v := range t[i] {
				if v > bestTag {
					bestTag = v
				}
			}
		}
		bestDep := negInf
		for _, v := range d[i] {
			if v > bestDep {
				bestDep = v
			}
		}
		out[i] = bestTag + bestDep
	}
	return out
}
