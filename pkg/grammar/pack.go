// Package grammar holds the language-specific grammar pack: the category
// inventory, seen-rules set, category dictionary, unary rule table, and
// root-category filter consulted by the A* driver. A Pack is an immutable
// value — never a singleton — so concurrent batch parses and hot reloads
// (see Watcher) never observe a half-updated pack.
package grammar

import (
	"fmt"

	"github.com/nlpstack/ccgparse/pkg/category"
	"github.com/nlpstack/ccgparse/pkg/combinator"
)

// Pack is an immutable grammar pack. Construct with Load or New; never
// mutate a Pack's fields after construction — Watcher relies on that to
// swap packs atomically without locking readers.
type Pack struct {
	// Categories is the supertag inventory; index i is the category a
	// scorer's tag_log_prob column i refers to.
	Categories []category.Category

	// UnaryRules maps a child category's canonical string to the list
	// of parent categories reachable by one unary application.
	UnaryRules map[string][]category.Category

	// SeenRules is the set of (left, right) canonical-string pairs
	// attested in training data.
	SeenRules map[[2]string]bool

	// CategoryDictionary maps a word form to the set of supertag
	// indices (into Categories) allowed at that word; nil entries mean
	// "no restriction" for that word.
	CategoryDictionary map[string][]int

	// RootCategories restricts which categories may head a completed
	// parse. Nil means all categories are allowed.
	RootCategories []category.Category

	// RootMatch is the predicate used to test a derived root category
	// against RootCategories; defaults to exact string match
	// (category.Category.Equal-level — including features). Set to
	// category.MatchAtomicHead for feature-insensitive matching.
	RootMatch func(derived, allowed category.Category) bool

	// BinaryRules is the combinator catalogue selection for this pack
	// (e.g. combinator.EnglishDefaultBinaryRules(), possibly extended
	// via combinator.WithDisfluency).
	BinaryRules []combinator.Rule

	// Name identifies the pack for logging (e.g. "en", "ja").
	Name string
}

// New constructs a Pack from already-parsed components, applying the
// default RootMatch when unset.
func New(name string, cats []category.Category, unary map[string][]category.Category,
	seen map[[2]string]bool, catDict map[string][]int, roots []category.Category,
	binary []combinator.Rule) *Pack {

	return &Pack{
		Name:               name,
		Categories:         cats,
		UnaryRules:         unary,
		SeenRules:          seen,
		CategoryDictionary: catDict,
		RootCategories:     roots,
		RootMatch:          defaultRootMatch,
		BinaryRules:        binary,
	}
}

func defaultRootMatch(derived, allowed category.Category) bool {
	return derived.String() == allowed.String()
}

// IsRootAdmissible reports whether cat may head a completed derivation.
func (p *Pack) IsRootAdmissible(cat category.Category) bool {
	if len(p.RootCategories) == 0 {
		return true
	}
	match := p.RootMatch
	if match == nil {
		match = defaultRootMatch
	}
	for _, r := range p.RootCategories {
		if match(cat, r) {
			return true
		}
	}
	return false
}

// Seen reports whether (left, right) is in the seen-rules set.
func (p *Pack) Seen(left, right category.Category) bool {
	return p.SeenRules[[2]string{left.String(), right.String()}]
}

// UnaryParents returns the possible parent categories for a unary
// expansion of child, or nil if none.
func (p *Pack) UnaryParents(child category.Category) []category.Category {
	return p.UnaryRules[child.String()]
}

// AllowedCategoryIndices returns the category-dictionary whitelist for
// word, or nil if the word has no entry (meaning "unrestricted").
func (p *Pack) AllowedCategoryIndices(word string) []int {
	return p.CategoryDictionary[word]
}

// CategoryIndex returns the supertag index of cat, or -1 if cat is not in
// the pack's inventory.
func (p *Pack) CategoryIndex(cat category.Category) int {
	s := cat.String()
	for i, c := range p.Categories {
		if c.String() == s {
			return i
		}
	}
	return -1
}

// Validate checks internal consistency: every root and unary-rule category
// referenced must parse (already true by construction) and RootMatch must
// be set.
func (p *Pack) Validate() error {
	if p.RootMatch == nil {
		return fmt.Errorf("grammar: pack %q: RootMatch must not be nil", p.Name)
	}
	if len(p.Categories) == 0 {
		return fmt.Errorf("grammar: pack %q: empty category inventory", p.Name)
	}
	return nil
}
