package chart

import "sync"

// Arena owns every Edge allocated during one parse; it is dropped wholesale
// at parse end rather than freeing edges individually. Arenas are reused
// across parses via arenaPool, following the same sync.Pool-backed buffer
// reuse pattern as a constraint-store pool built for high-throughput
// allocation elsewhere in this codebase.
type Arena struct {
	edges []Edge
}

var arenaPool = sync.Pool{
	New: func() any { return &Arena{edges: make([]Edge, 0, 1024)} },
}

// NewArena borrows an Arena from the shared pool, truncated to empty.
func NewArena() *Arena {
	a := arenaPool.Get().(*Arena)
	a.edges = a.edges[:0]
	return a
}

// Release returns the Arena to the shared pool. Callers must not retain
// any EdgeID obtained from a released Arena.
func (a *Arena) Release() {
	arenaPool.Put(a)
}

// Alloc appends edge to the arena and returns its new, stable EdgeID.
func (a *Arena) Alloc(edge Edge) EdgeID {
	id := EdgeID(len(a.edges))
	a.edges = append(a.edges, edge)
	return id
}

// Get dereferences an EdgeID. IDs from a different Arena are undefined
// behavior; callers never persist an EdgeID past its Arena's Release.
func (a *Arena) Get(id EdgeID) Edge {
	return a.edges[id]
}

// Len returns the number of edges allocated so far.
func (a *Arena) Len() int { return len(a.edges) }
