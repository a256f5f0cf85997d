// Package chart implements the A* chart: an arena-backed store of
// derivation edges indexed by span, enforcing edge equivalence and
// best-first admission.
package chart

import "github.com/nlpstack/ccgparse/pkg/category"

// EdgeID is a 32-bit index into an Arena. Children are referenced by ID,
// not by pointer: IDs are issued in allocation order (topological, since a
// parent is always built from already-allocated children), which rules out
// cycles and makes equality a cheap integer comparison.
type EdgeID uint32

// NoEdge is the sentinel EdgeID denoting "no child" (terminal edges). It is
// not the zero value: EdgeID 0 is the first edge an Arena allocates.
const NoEdge EdgeID = 0xFFFFFFFF

// RuleKind tags how an edge was derived.
type RuleKind byte

const (
	// Terminal is a leaf edge seeded directly from the scorer tensors.
	Terminal RuleKind = iota
	// Unary is a one-child edge produced by a unary combinator.
	Unary
	// Binary is a two-child edge produced by a binary combinator.
	Binary
)

// Edge is an immutable derivation fragment covering Span with root
// Category. InScore is the sum of tag/dep log-probs and rule penalties
// strictly inside Span, OutBound is the admissible upper bound on the
// best completion outside Span, and Priority = InScore + OutBound drives
// agenda ordering.
type Edge struct {
	Start, End int
	Category   category.Category

	Rule     RuleKind
	RuleName string // combinator name, or "" for Terminal

	Left, Right EdgeID // Right == NoEdge for Terminal/Unary edges

	InScore  float64
	OutBound float64

	HeadIndex     int // token index this edge's head points at
	DepLogProbSum float64

	// UnaryChainDepth counts consecutive unary applications ending at
	// this edge (0 for Terminal/Binary edges), enforcing
	// Config.MaxUnaryChain.
	UnaryChainDepth int

	word string // surface form, set only for Terminal edges
}

// Priority is the admissible A* ranking key: InScore + OutBound.
func (e Edge) Priority() float64 { return e.InScore + e.OutBound }

// Span returns the half-open [Start, End) span as a comparable key.
func (e Edge) Span() [2]int { return [2]int{e.Start, e.End} }

// Word returns the surface form for a Terminal edge.
func (e Edge) Word() string { return e.word }

// SetWord sets the surface form of a Terminal edge being constructed.
// Edge is a value type; callers must reassign: e = e.SetWord(w).
func (e Edge) SetWord(w string) Edge {
	e.word = w
	return e
}
