// Package category implements the CCG category algebra: parsing, structural
// equality modulo feature-variable renaming, unification, and feature
// substitution over atomic and slash categories.
package category

import (
	"fmt"
	"strings"
)

// Slash is the direction of a slash-category's argument.
type Slash byte

const (
	// Forward is the `/` slash: a category combines with an argument to
	// its right.
	Forward Slash = iota
	// Backward is the `\` slash: a category combines with an argument to
	// its left.
	Backward
)

func (s Slash) String() string {
	if s == Forward {
		return "/"
	}
	return "\\"
}

// varMarker is the feature value that marks a feature as an unbound
// variable eligible for unification (e.g. the `X` in `S[X]\NP[X]`).
const varMarker = "X"

// Category is a CCG category: either atomic (`NP`, `S[dcl]`) or a
// slash-node combining a left and a right category. The zero value is not
// a valid category; construct with Parse, Atom, or Slashed.
type Category struct {
	atom     string            // non-empty for atomic categories
	features map[string]string // nil or empty for categories without features
	left     *Category         // non-nil for slash categories
	right    *Category
	slash    Slash

	str  string // memoised canonical string
	hash uint64 // memoised stable hash
}

// Atom builds an atomic category, e.g. Atom("NP", nil) or
// Atom("S", map[string]string{"_": "dcl"}) (the bundle Parse builds for
// `S[dcl]`).
func Atom(name string, features map[string]string) Category {
	c := Category{atom: name, features: cloneFeatures(features)}
	c.str = c.canonicalString()
	c.hash = fnv1a(c.str)
	return c
}

// Slashed builds a slash category `left <slash> right`.
func Slashed(left, right Category, slash Slash) Category {
	l, r := left, right
	c := Category{left: &l, right: &r, slash: slash}
	c.str = c.canonicalString()
	c.hash = fnv1a(c.str)
	return c
}

// IsAtomic reports whether c is an atomic category (no slash).
func (c Category) IsAtomic() bool { return c.left == nil }

// Slash returns the top-level slash direction; valid only when !IsAtomic().
func (c Category) Slash() Slash { return c.slash }

// Left returns the argument-taking (result) side of a slash category.
func (c Category) Left() Category { return *c.left }

// Right returns the argument side of a slash category.
func (c Category) Right() Category { return *c.right }

// AtomName returns the bare atom name ("S", "NP", ...); valid only when
// IsAtomic().
func (c Category) AtomName() string { return c.atom }

// Features returns the feature bundle of an atomic category. The returned
// map must not be mutated by the caller.
func (c Category) Features() map[string]string { return c.features }

// String returns the canonical stringification, e.g. `(S[dcl]\NP)/NP`.
func (c Category) String() string { return c.str }

// Hash returns a stable hash of the canonical string, suitable for use as
// a chart / interning key.
func (c Category) Hash() uint64 { return c.hash }

// Equal reports structural equality including features: two categories
// are equal when they unify and their canonical strings match. Feature
// variables are compared by name, so S[X]\NP[X] and S[X1]\NP[X1] are not
// equal, and a variable never equals a concrete value.
func (c Category) Equal(o Category) bool {
	_, ok := unify(c, o, map[string]string{})
	return ok && c.String() == o.String()
}

func (c Category) canonicalString() string {
	if c.IsAtomic() {
		if len(c.features) == 0 {
			return c.atom
		}
		return c.atom + "[" + featureString(c.features) + "]"
	}
	var b strings.Builder
	writeOperand(&b, *c.left, true)
	b.WriteString(c.slash.String())
	writeOperand(&b, *c.right, false)
	return b.String()
}

func writeOperand(b *strings.Builder, c Category, isLeft bool) {
	if !c.IsAtomic() {
		b.WriteByte('(')
		b.WriteString(c.String())
		b.WriteByte(')')
		return
	}
	b.WriteString(c.String())
}

func featureString(f map[string]string) string {
	// Single-feature categories are by far the common case (S[dcl],
	// NP[nom]); sort multi-feature bundles for a stable string.
	if len(f) == 1 {
		for _, v := range f {
			return v
		}
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sortStrings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(f[k])
	}
	return b.String()
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func cloneFeatures(f map[string]string) map[string]string {
	if len(f) == 0 {
		return nil
	}
	out := make(map[string]string, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func fnv1a(s string) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

// ParseError is returned by Parse on malformed category strings.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("category: parse error at %d in %q: %s", e.Pos, e.Input, e.Msg)
}
