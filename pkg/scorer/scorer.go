// Package scorer defines the boundary between the A* core and an external
// neural supertagger/dependency scorer. The core never computes scores
// itself; it consumes the opaque tensors produced here.
package scorer

import (
	"context"
	"fmt"
	"math"
)

// Tensors holds one sentence's score arrays: TagLogProb[i][c] is the log
// probability of category index c at token position i (length T x K,
// K = len(grammar.Pack.Categories)); DepLogProb[i][j] is the log
// probability that token i's head is token j, where j == T denotes the
// virtual ROOT head (length T x (T+1)). All values lie in (-inf, 0];
// -Inf marks a disallowed cell. The core treats both as read-only.
type Tensors struct {
	TagLogProb [][]float64
	DepLogProb [][]float64
}

// Validate checks the shape invariants scorer.Tensors must satisfy for a
// sentence of the given length and a category inventory of numCategories
// entries, returning
// ErrInvalidInput-wrapped errors on mismatch.
func (t Tensors) Validate(length, numCategories int) error {
	if len(t.TagLogProb) != length {
		return fmt.Errorf("%w: tag_log_prob has %d rows, want %d", ErrInvalidInput, len(t.TagLogProb), length)
	}
	for i, row := range t.TagLogProb {
		if len(row) != numCategories {
			return fmt.Errorf("%w: tag_log_prob[%d] has %d columns, want %d", ErrInvalidInput, i, len(row), numCategories)
		}
		for _, v := range row {
			if math.IsNaN(v) {
				return fmt.Errorf("%w: tag_log_prob[%d] contains NaN", ErrInvalidInput, i)
			}
			if v > 0 {
				return fmt.Errorf("%w: tag_log_prob[%d] contains positive log-probability %v", ErrInvalidInput, i, v)
			}
		}
	}
	if len(t.DepLogProb) != length {
		return fmt.Errorf("%w: dep_log_prob has %d rows, want %d", ErrInvalidInput, len(t.DepLogProb), length)
	}
	for i, row := range t.DepLogProb {
		if len(row) != length+1 {
			return fmt.Errorf("%w: dep_log_prob[%d] has %d columns, want %d", ErrInvalidInput, i, len(row), length+1)
		}
		for _, v := range row {
			if math.IsNaN(v) {
				return fmt.Errorf("%w: dep_log_prob[%d] contains NaN", ErrInvalidInput, i)
			}
		}
	}
	return nil
}

// ErrInvalidInput is wrapped by Tensors.Validate failures.
var ErrInvalidInput = fmt.Errorf("scorer: invalid input")

// Scorer is the adapter interface to an external supertagger/dependency
// scorer. It is the only component in the core allowed to block: the A*
// driver requires its output fully materialised before parsing begins.
type Scorer interface {
	// Score produces the per-token tensors for sentence. Implementations
	// may call out to a remote or in-process neural model.
	Score(ctx context.Context, sentence []string) (Tensors, error)
}

// Func adapts a plain function to the Scorer interface.
type Func func(ctx context.Context, sentence []string) (Tensors, error)

// Score implements Scorer.
func (f Func) Score(ctx context.Context, sentence []string) (Tensors, error) {
	return f(ctx, sentence)
}
