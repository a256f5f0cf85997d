// Package agenda implements the max-priority queue driving A* expansion.
// A binary heap is the natural fit for a priority queue of this size, so
// container/heap is used as-is rather than reached past for a
// third-party alternative.
package agenda

import (
	"container/heap"
	"math"

	"github.com/nlpstack/ccgparse/pkg/chart"
)

// Item is one agenda entry: an edge awaiting chart admission, ranked by
// Priority with a documented tie-break order: shorter span, then lower
// category index, then lower left-child id.
type Item struct {
	ID         chart.EdgeID
	Priority   float64
	SpanWidth  int
	CategoryIx int
	LeftChild  chart.EdgeID
}

// Agenda is a max-priority queue over Items. A global pop counter tracks
// how many items have been popped, for Config.MaxSteps enforcement by the
// A* driver.
type Agenda struct {
	h        itemHeap
	popCount int
}

// New creates an empty Agenda.
func New() *Agenda {
	a := &Agenda{}
	heap.Init(&a.h)
	return a
}

// Push adds item to the agenda. A NaN priority is treated as -Inf, the
// lowest possible priority, so a malformed score can never win a
// comparison it shouldn't.
func (a *Agenda) Push(item Item) {
	if item.Priority != item.Priority { // NaN check without importing math twice
		item.Priority = math.Inf(-1)
	}
	heap.Push(&a.h, item)
}

// Pop removes and returns the highest-priority item, incrementing the
// pop counter. ok is false when the agenda is empty.
func (a *Agenda) Pop() (Item, bool) {
	if a.h.Len() == 0 {
		return Item{}, false
	}
	a.popCount++
	return heap.Pop(&a.h).(Item), true
}

// Size returns the number of pending items.
func (a *Agenda) Size() int { return a.h.Len() }

// PopCount returns the number of Pop calls so far.
func (a *Agenda) PopCount() int { return a.popCount }

// itemHeap is a max-heap (container/heap is min-heap by default; Less is
// inverted) ordered by Item.less.
type itemHeap []Item

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	return less(h[i], h[j])
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) {
	*h = append(*h, x.(Item))
}

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// less implements the max-heap-with-tiebreak order: a is "greater than"
// (pops before) b when a.Priority > b.Priority, or on a priority tie when
// a's span is shorter, or on a further tie when a's category index is
// lower, or finally when a's left-child id is lower.
func less(a, b Item) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if a.SpanWidth != b.SpanWidth {
		return a.SpanWidth < b.SpanWidth
	}
	if a.CategoryIx != b.CategoryIx {
		return a.CategoryIx < b.CategoryIx
	}
	return a.LeftChild < b.LeftChild
}
