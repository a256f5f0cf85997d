package chart

import "fmt"

// InvariantViolation is panicked (never returned) when an internal chart
// invariant is found broken: a process-level bug, not a recoverable parse
// failure. It is recovered only at the batch-worker boundary (pkg/batch),
// never inside a single parse, so a corrupted Chart cannot silently yield
// a wrong derivation.
type InvariantViolation struct {
	Invariant string // short tag identifying which check failed, e.g. "span-coverage"
	Detail    string
}

func (v InvariantViolation) Error() string {
	return fmt.Sprintf("chart: invariant %s violated: %s", v.Invariant, v.Detail)
}

// CheckCoverage panics with an InvariantViolation if an edge's span does
// not match what its children's spans would imply, catching a malformed
// combinator result before it enters the chart.
func CheckCoverage(e Edge, arena *Arena) {
	switch e.Rule {
	case Terminal:
		return
	case Unary:
		child := arena.Get(e.Left)
		if child.Start != e.Start || child.End != e.End {
			panic(InvariantViolation{"span-coverage", fmt.Sprintf("unary edge span [%d,%d) does not match child span [%d,%d)", e.Start, e.End, child.Start, child.End)})
		}
	case Binary:
		left := arena.Get(e.Left)
		right := arena.Get(e.Right)
		if left.Start != e.Start || left.End != right.Start || right.End != e.End {
			panic(InvariantViolation{"span-coverage", fmt.Sprintf("binary edge span [%d,%d) does not tile children [%d,%d) [%d,%d)", e.Start, e.End, left.Start, left.End, right.Start, right.End)})
		}
	}
}
