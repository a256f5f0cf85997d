// Package combinator defines the CCG combinator catalogue: pure functions
// combining one or two categories into a result category, plus the
// restriction predicates (seen-rules, global forbids) that gate whether a
// rule fires. Runtime dispatch is avoided in favor of a small
// tagged-variant table over virtual calls on hot paths.
package combinator

import "github.com/nlpstack/ccgparse/pkg/category"

// Kind tags a Rule's dispatch behavior.
type Kind byte

const (
	// Application is forward/backward functional application.
	Application Kind = iota
	// Composition is forward/backward composition (any order).
	Composition
	// TypeRaisingKind promotes an argument category to a functor over a
	// result category; expressed as a unary rule.
	TypeRaisingKind
	// CoordinationKind combines like categories conjunctively.
	CoordinationKind
	// SubstitutionKind is the combinatory S-combinator rule.
	SubstitutionKind
	// LanguageSpecific covers rules with no general cross-linguistic
	// form, e.g. the Japanese head-final combinator or the English
	// disfluency-removal rule.
	LanguageSpecific
)

// BinaryFunc combines two categories (left, right) into a result category.
// It returns (zero, false) when its own type-logical precondition does not
// hold for the given operands — never an error; illegality is not
// exceptional in a combinator catalogue probed exhaustively per cell.
type BinaryFunc func(left, right category.Category) (category.Category, bool)

// UnaryFunc expands a single child category into zero or more candidate
// parent categories (a unary rule may be one-to-many, e.g. a type-raising
// table entry keyed by argument category).
type UnaryFunc func(child category.Category) []category.Category

// Rule is one entry in the combinator catalogue.
type Rule struct {
	Name string
	Kind Kind

	// Binary is set for binary rules, nil for unary rules.
	Binary BinaryFunc
	// Unary is set for unary rules, nil for binary rules.
	Unary UnaryFunc

	// BypassSeenRules lets this rule fire even when seen-rules pruning
	// is active for the grammar pack, independent of the global
	// UseSeenRules flag. A runtime-appended disfluency rule, for
	// instance, should never be blocked by a seen-rules table that
	// predates its existence.
	BypassSeenRules bool
}

// IsBinary reports whether r is a binary combinator.
func (r Rule) IsBinary() bool { return r.Binary != nil }

// IsUnary reports whether r is a unary combinator.
func (r Rule) IsUnary() bool { return r.Unary != nil }

// Globally forbidden result categories: combinations that would yield one
// of these, e.g. punct / punct, are rejected regardless of which rule
// proposed them.
var forbiddenAtoms = map[string]bool{
	"punct": true,
	",":     true,
	".":     true,
	":":     true,
	";":     true,
}

// globallyForbidden reports whether result is never an admissible output
// of any combinator, independent of grammar pack or seen-rules.
func globallyForbidden(result category.Category) bool {
	if result.IsAtomic() {
		return false
	}
	return forbiddenAtoms[result.Left().AtomName()] && forbiddenAtoms[result.Right().AtomName()]
}

// Apply runs a binary rule, enforcing the global-forbid check uniformly so
// individual rule functions don't need to repeat it.
func Apply(r Rule, left, right category.Category) (category.Category, bool) {
	result, ok := r.Binary(left, right)
	if !ok {
		return category.Category{}, false
	}
	if globallyForbidden(result) {
		return category.Category{}, false
	}
	return result, true
}

// ApplyUnary runs a unary rule.
func ApplyUnary(r Rule, child category.Category) []category.Category {
	return r.Unary(child)
}
