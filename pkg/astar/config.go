// Package astar implements the A* chart-parser driver: the main search
// loop that pops agenda items, goal-tests, expands via unary and binary
// combinators, and admits into the chart until N completions are found
// or a budget is exhausted.
package astar

import "github.com/nlpstack/ccgparse/pkg/category"

// Config holds the per-parse tunables, with defaults set by DefaultConfig.
type Config struct {
	UnaryPenalty float64 // default 0.1
	NBest        int     // default 1

	PruningSize int     // default 50
	Beta        float64 // default 1e-5
	UseBeta     bool    // default true

	UseSeenRules      bool // default true
	UseCategoryDict   bool // default true
	MaxLength         int  // default 250
	MaxSteps          int  // default 10_000_000

	// MaxUnaryChain bounds consecutive unary applications on one
	// derivation node. Default 1, matching the implicit single-application
	// behavior of the reference parser this module reimplements.
	MaxUnaryChain int

	// PossibleRootCats restricts completions to these root categories;
	// nil means the grammar pack's own RootCategories (or "all") apply.
	// Matching uses the pack's RootMatch hook.
	PossibleRootCats []category.Category
}

// DefaultConfig returns the documented per-parse defaults.
func DefaultConfig() Config {
	return Config{
		UnaryPenalty:    0.1,
		NBest:           1,
		PruningSize:     50,
		Beta:            1e-5,
		UseBeta:         true,
		UseSeenRules:    true,
		UseCategoryDict: true,
		MaxLength:       250,
		MaxSteps:        10_000_000,
		MaxUnaryChain:   1,
	}
}
