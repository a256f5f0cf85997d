package astar

import "errors"

// SentenceTooLong and BudgetExceeded are per-sentence failures the batch
// driver continues past; NoParse is not an error at all (see Parse's doc
// comment) — it is a successful, empty Result.
var (
	// ErrSentenceTooLong is returned when len(sentence) > Config.MaxLength.
	ErrSentenceTooLong = errors.New("astar: sentence exceeds max_length")
	// ErrBudgetExceeded is returned when the agenda pop count exceeds
	// Config.MaxSteps before N completions were found.
	ErrBudgetExceeded = errors.New("astar: exceeded max_steps")
	// ErrInvalidInput is returned, wrapping the scorer error, when the
	// tensors fail scorer.Tensors.Validate (shape mismatch, NaN, or a
	// positive tag log-probability). Config is not validated by Parse.
	ErrInvalidInput = errors.New("astar: invalid input")
)
