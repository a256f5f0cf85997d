// Package constraint implements the partial-tree constraint layer:
// user-supplied (span, category?) pairs that prune the A* search by
// rejecting spans that cross a constraint boundary without equaling it,
// and by pinning the category at a constraint span when one is given.
package constraint

import "github.com/nlpstack/ccgparse/pkg/category"

// Span is a half-open token span [Start, End).
type Span struct {
	Start, End int
}

// Contains reports whether s wholly contains o.
func (s Span) Contains(o Span) bool { return s.Start <= o.Start && o.End <= s.End }

// Crosses reports whether s and o overlap without one containing the
// other — the "crosses a constraint boundary" case Admits rejects.
func (s Span) Crosses(o Span) bool {
	if s == o {
		return false
	}
	overlaps := s.Start < o.End && o.Start < s.End
	if !overlaps {
		return false
	}
	return !s.Contains(o) && !o.Contains(s)
}

// Item is one partial-tree constraint: a span, and optionally the
// category its root must carry (nil = any category, but the span itself
// must still be respected).
type Item struct {
	Span     Span
	Category *category.Category
}

// Set is an immutable collection of partial-tree constraints for one
// sentence.
type Set struct {
	items []Item
}

// New builds a Set from items.
func New(items []Item) *Set {
	return &Set{items: append([]Item(nil), items...)}
}

// Empty reports whether the set has no constraints (the common case: an
// unconstrained parse).
func (s *Set) Empty() bool { return s == nil || len(s.items) == 0 }

// Admits reports whether a candidate edge covering span with the given
// category is consistent with every constraint, enforced at admission
// time:
//   - if span lies wholly inside some constraint item whose own span is
//     strictly larger, the candidate is unconstrained by that item (it is
//     an internal sub-derivation);
//   - if span exactly equals a constraint item's span, the category (if
//     the item specifies one) must match;
//   - if span crosses a constraint item's boundary, it is rejected.
func (s *Set) Admits(span Span, cat category.Category) bool {
	if s.Empty() {
		return true
	}
	for _, it := range s.items {
		if it.Span.Crosses(span) {
			return false
		}
		if it.Span == span && it.Category != nil {
			if !it.Category.Equal(cat) {
				return false
			}
		}
	}
	return true
}
