// Package nbest reconstructs the top-N CCG derivations from a finished
// chart's back-pointers. During search only a cell's primary edge
// propagates upward (re-expansion on a dominated alternative is never
// triggered), so recovering more than one derivation over the full span
// requires, at extraction time, lazily
// retrying each binary/unary production point against the next-best
// alternative of its children. This is the standard k-best hypergraph
// derivation algorithm (Huang & Chiang): each chart cell is treated as a
// lazily-growing, score-sorted stream of sub-derivations, merged via a
// local priority queue over (child-rank, child-rank) candidates.
package nbest

import (
	"container/heap"

	"github.com/nlpstack/ccgparse/pkg/category"
	"github.com/nlpstack/ccgparse/pkg/chart"
)

// Node is a materialised derivation tree node.
type Node struct {
	Category category.Category
	Rule     string // combinator name; "" for a terminal leaf
	Word     string // set only on terminal leaves
	Children []*Node
}

// Derivation is one fully-materialised, scored CCG tree.
type Derivation struct {
	Root  *Node
	Score float64
}

// Extractor reconstructs derivations from a finished Chart, memoising each
// cell's k-best stream so repeated extraction calls (e.g. for several
// root categories) share work. Not safe for concurrent use — one
// Extractor per finished parse.
type Extractor struct {
	arena   *chart.Arena
	ch      *chart.Chart
	streams map[cellKey]*stream
}

type cellKey struct {
	start, end int
	cat        string
}

// New creates an Extractor over a finished chart and its backing arena.
func New(ch *chart.Chart, arena *chart.Arena) *Extractor {
	return &Extractor{arena: arena, ch: ch, streams: map[cellKey]*stream{}}
}

// Extract returns up to n derivations rooted at span [start, end) with
// category catString, in non-increasing score order. Returns fewer than n
// if that many distinct derivations don't exist — it never pads: when
// nbest exceeds the number of distinct derivations, all available ones
// are returned.
func (x *Extractor) Extract(start, end int, catString string, n int) []Derivation {
	s := x.streamFor(cellKey{start, end, catString})
	cands := s.take(n)
	out := make([]Derivation, len(cands))
	for i, c := range cands {
		out[i] = Derivation{Root: x.materialize(c), Score: c.score}
	}
	return out
}

// candidate is one point in a cell's lazy k-best stream: a concrete seed
// edge (fixing the rule and which children categories are combined) plus
// the rank of each child's own stream used to realize it.
type candidate struct {
	seedEdge   chart.EdgeID
	leftRank   int
	rightRank  int
	score      float64
}

// stream lazily computes a cell's derivations in descending-score order
// using a local max-heap seeded from every distinct construction the
// search admitted for this cell (chart.Alternatives), then growing by
// incrementing child ranks (Algorithm 3, Huang & Chiang 2005).
type stream struct {
	x       *Extractor
	key     cellKey
	extracted []candidate
	pending heap.Interface
	seen    map[[3]int]bool // (seedIndexIntoAlts, leftRank, rightRank)
	seeds   []chart.EdgeID
}

func (x *Extractor) streamFor(key cellKey) *stream {
	if s, ok := x.streams[key]; ok {
		return s
	}
	seeds := x.ch.Alternatives(key.start, key.end, key.cat)
	s := &stream{x: x, key: key, seen: map[[3]int]bool{}, seeds: seeds, pending: &candHeap{}}
	heap.Init(s.pending)
	for i, seed := range seeds {
		c, ok := x.bestCandidateFor(seed, 0, 0)
		if !ok {
			continue
		}
		if s.seen[[3]int{i, 0, 0}] {
			continue
		}
		s.seen[[3]int{i, 0, 0}] = true
		heap.Push(s.pending, heapItem{cand: c, seedIx: i})
	}
	x.streams[key] = s
	return s
}

// bestCandidateFor builds the candidate for seed edge e using leftRank /
// rightRank of its children's streams (0 = each child's own best), or
// (zero, false) if those ranks don't exist in the child stream.
func (x *Extractor) bestCandidateFor(e chart.EdgeID, leftRank, rightRank int) (candidate, bool) {
	edge := x.arena.Get(e)
	switch edge.Rule {
	case chart.Terminal:
		return candidate{seedEdge: e, score: edge.InScore}, true
	case chart.Unary:
		child := x.arena.Get(edge.Left)
		childStream := x.streamFor(cellKey{child.Start, child.End, child.Category.String()})
		childCands := childStream.take(leftRank + 1)
		if len(childCands) <= leftRank {
			return candidate{}, false
		}
		penalty := edge.InScore - child.InScore // baked-in unary penalty delta
		return candidate{seedEdge: e, leftRank: leftRank, score: childCands[leftRank].score + penalty}, true
	case chart.Binary:
		left := x.arena.Get(edge.Left)
		right := x.arena.Get(edge.Right)
		leftStream := x.streamFor(cellKey{left.Start, left.End, left.Category.String()})
		rightStream := x.streamFor(cellKey{right.Start, right.End, right.Category.String()})
		leftCands := leftStream.take(leftRank + 1)
		rightCands := rightStream.take(rightRank + 1)
		if len(leftCands) <= leftRank || len(rightCands) <= rightRank {
			return candidate{}, false
		}
		return candidate{seedEdge: e, leftRank: leftRank, rightRank: rightRank,
			score: leftCands[leftRank].score + rightCands[rightRank].score}, true
	}
	return candidate{}, false
}

// take returns the stream's first k candidates (by score, descending),
// computing more only as needed.
func (s *stream) take(k int) []candidate {
	for len(s.extracted) < k && s.pending.Len() > 0 {
		top := heap.Pop(s.pending).(heapItem)
		s.extracted = append(s.extracted, top.cand)

		seed := s.seeds[top.seedIx]
		edge := s.x.arena.Get(seed)
		// Push neighbors: increment left rank, and (for binary) right rank.
		if edge.Rule == chart.Unary || edge.Rule == chart.Binary {
			if c, ok := s.x.bestCandidateFor(seed, top.cand.leftRank+1, top.cand.rightRank); ok {
				key := [3]int{top.seedIx, top.cand.leftRank + 1, top.cand.rightRank}
				if !s.seen[key] {
					s.seen[key] = true
					heap.Push(s.pending, heapItem{cand: c, seedIx: top.seedIx})
				}
			}
		}
		if edge.Rule == chart.Binary {
			if c, ok := s.x.bestCandidateFor(seed, top.cand.leftRank, top.cand.rightRank+1); ok {
				key := [3]int{top.seedIx, top.cand.leftRank, top.cand.rightRank + 1}
				if !s.seen[key] {
					s.seen[key] = true
					heap.Push(s.pending, heapItem{cand: c, seedIx: top.seedIx})
				}
			}
		}
	}
	if k > len(s.extracted) {
		k = len(s.extracted)
	}
	return s.extracted[:k]
}

type heapItem struct {
	cand   candidate
	seedIx int
}

type candHeap []heapItem

func (h candHeap) Len() int            { return len(h) }
func (h candHeap) Less(i, j int) bool  { return h[i].cand.score > h[j].cand.score }
func (h candHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candHeap) Push(x any)         { *h = append(*h, x.(heapItem)) }
func (h *candHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// materialize walks a candidate's fixed seed edge and chosen child ranks
// down to terminals, building the displayed tree. It re-resolves child
// ranks through the same streams used to score the candidate, so the
// returned tree always matches the candidate's score.
func (x *Extractor) materialize(c candidate) *Node {
	edge := x.arena.Get(c.seedEdge)
	switch edge.Rule {
	case chart.Terminal:
		return &Node{Category: edge.Category, Word: edge.Word()}
	case chart.Unary:
		child := x.arena.Get(edge.Left)
		childStream := x.streamFor(cellKey{child.Start, child.End, child.Category.String()})
		childCand := childStream.take(c.leftRank + 1)[c.leftRank]
		return &Node{Category: edge.Category, Rule: edge.RuleName, Children: []*Node{x.materialize(childCand)}}
	case chart.Binary:
		left := x.arena.Get(edge.Left)
		right := x.arena.Get(edge.Right)
		leftStream := x.streamFor(cellKey{left.Start, left.End, left.Category.String()})
		rightStream := x.streamFor(cellKey{right.Start, right.End, right.Category.String()})
		leftCand := leftStream.take(c.leftRank + 1)[c.leftRank]
		rightCand := rightStream.take(c.rightRank + 1)[c.rightRank]
		return &Node{Category: edge.Category, Rule: edge.RuleName,
			Children: []*Node{x.materialize(leftCand), x.materialize(rightCand)}}
	}
	return nil
}

// Leaves returns n's leaves left to right, for checking coverage: every
// returned derivation's leaves should equal the input sentence.
func Leaves(n *Node) []*Node {
	if len(n.Children) == 0 {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children {
		out = append(out, Leaves(c)...)
	}
	return out
}
