package combinator

import "github.com/nlpstack/ccgparse/pkg/category"

// ForwardApplication: X/Y Y => X
func ForwardApplication() Rule {
	return Rule{Name: ">", Kind: Application, Binary: func(left, right category.Category) (category.Category, bool) {
		if left.IsAtomic() || left.Slash() != category.Forward {
			return category.Category{}, false
		}
		arg, ok := category.Unify(left.Right(), right)
		if !ok {
			return category.Category{}, false
		}
		return category.Substitute(left.Left(), varBindings(left.Right(), arg)), true
	}}
}

// BackwardApplication: Y X\Y => X
func BackwardApplication() Rule {
	return Rule{Name: "<", Kind: Application, Binary: func(left, right category.Category) (category.Category, bool) {
		if right.IsAtomic() || right.Slash() != category.Backward {
			return category.Category{}, false
		}
		arg, ok := category.Unify(right.Right(), left)
		if !ok {
			return category.Category{}, false
		}
		return category.Substitute(right.Left(), varBindings(right.Right(), arg)), true
	}}
}

// ForwardComposition (order 1): X/Y Y/Z => X/Z
func ForwardComposition() Rule {
	return Rule{Name: ">B", Kind: Composition, Binary: func(left, right category.Category) (category.Category, bool) {
		if left.IsAtomic() || left.Slash() != category.Forward {
			return category.Category{}, false
		}
		if right.IsAtomic() || right.Slash() != category.Forward {
			return category.Category{}, false
		}
		if _, ok := category.Unify(left.Right(), right.Left()); !ok {
			return category.Category{}, false
		}
		return category.Slashed(left.Left(), right.Right(), category.Forward), true
	}}
}

// BackwardComposition (order 1): Y\Z X\Y => X\Z
func BackwardComposition() Rule {
	return Rule{Name: "<B", Kind: Composition, Binary: func(left, right category.Category) (category.Category, bool) {
		if left.IsAtomic() || left.Slash() != category.Backward {
			return category.Category{}, false
		}
		if right.IsAtomic() || right.Slash() != category.Backward {
			return category.Category{}, false
		}
		if _, ok := category.Unify(right.Right(), left.Left()); !ok {
			return category.Category{}, false
		}
		return category.Slashed(right.Left(), left.Right(), category.Backward), true
	}}
}

// ForwardComposition2 (order 2): X/Y (Y/Z)/W => (X/Z)/W
func ForwardComposition2() Rule {
	return Rule{Name: ">B2", Kind: Composition, Binary: func(left, right category.Category) (category.Category, bool) {
		if left.IsAtomic() || left.Slash() != category.Forward {
			return category.Category{}, false
		}
		if right.IsAtomic() || right.Slash() != category.Forward {
			return category.Category{}, false
		}
		inner := right.Left()
		if inner.IsAtomic() || inner.Slash() != category.Forward {
			return category.Category{}, false
		}
		if _, ok := category.Unify(left.Right(), inner.Left()); !ok {
			return category.Category{}, false
		}
		return category.Slashed(category.Slashed(left.Left(), inner.Right(), category.Forward), right.Right(), category.Forward), true
	}}
}

// BackwardComposition2 (order 2): (Y/Z)\W X\Y => (X/Z)\W
func BackwardComposition2() Rule {
	return Rule{Name: "<B2", Kind: Composition, Binary: func(left, right category.Category) (category.Category, bool) {
		if left.IsAtomic() || left.Slash() != category.Backward {
			return category.Category{}, false
		}
		if right.IsAtomic() || right.Slash() != category.Backward {
			return category.Category{}, false
		}
		inner := left.Left()
		if inner.IsAtomic() || inner.Slash() != category.Forward {
			return category.Category{}, false
		}
		if _, ok := category.Unify(right.Right(), inner.Left()); !ok {
			return category.Category{}, false
		}
		return category.Slashed(category.Slashed(right.Left(), inner.Right(), category.Forward), left.Right(), category.Backward), true
	}}
}

// GeneralizedForwardComposition: X/Y (Y/Z1)/Z2 => (X/Z1)/Z2 — an alias of
// ForwardComposition2 exposed under its own catalogue name because
// grammar packs enable/disable it independently of the order-1 rule.
func GeneralizedForwardComposition() Rule {
	r := ForwardComposition2()
	r.Name = ">Bx"
	return r
}

// Coordination: conj X => X. The left operand must carry the atomic `conj`
// category (assigned by the scorer/category dictionary); the result is the
// right conjunct's category unchanged. No rule here joins that result with
// a left conjunct X, and the two conjuncts are not checked for likeness.
func Coordination() Rule {
	return Rule{Name: "<Φ>", Kind: CoordinationKind, Binary: func(left, right category.Category) (category.Category, bool) {
		if left.AtomName() != "conj" {
			return category.Category{}, false
		}
		return right, true
	}}
}

// Substitution: (X/Y)/Z Y/Z => X/Z  (the combinatory S-combinator rule).
func Substitution() Rule {
	return Rule{Name: ">S", Kind: SubstitutionKind, Binary: func(left, right category.Category) (category.Category, bool) {
		if left.IsAtomic() || left.Slash() != category.Forward {
			return category.Category{}, false
		}
		outer := left.Left()
		if outer.IsAtomic() || outer.Slash() != category.Forward {
			return category.Category{}, false
		}
		if right.IsAtomic() || right.Slash() != category.Forward {
			return category.Category{}, false
		}
		if _, ok := category.Unify(outer.Right(), right.Left()); !ok {
			return category.Category{}, false
		}
		if _, ok := category.Unify(left.Right(), right.Right()); !ok {
			return category.Category{}, false
		}
		return category.Slashed(outer.Left(), right.Right(), category.Forward), true
	}}
}

// TypeRaising builds the unary type-raising table rule: for an argument
// category arg, raises it to result/(result\arg) for every result category
// in targets (and symmetrically for backward raising when backward is
// true). This is expressed as a unary rule, not a binary one: its table of
// possible results is grammar-pack data.
func TypeRaising(targets []category.Category, backward bool) Rule {
	return Rule{Name: "T", Kind: TypeRaisingKind, Unary: func(child category.Category) []category.Category {
		out := make([]category.Category, 0, len(targets))
		for _, t := range targets {
			if backward {
				out = append(out, category.Slashed(t, category.Slashed(t, child, category.Forward), category.Backward))
			} else {
				out = append(out, category.Slashed(t, category.Slashed(t, child, category.Backward), category.Forward))
			}
		}
		return out
	}}
}

// HeadFinalCombinator wraps an existing binary rule so the head-final
// argument order (right operand supplies the functor) is tried as well as
// the base order, matching the Japanese grammar's head-final convention
// (ja_default_binary_rules in the reference implementation).
func HeadFinalCombinator(base Rule) Rule {
	return Rule{Name: "hf:" + base.Name, Kind: LanguageSpecific, Binary: func(left, right category.Category) (category.Category, bool) {
		if result, ok := base.Binary(left, right); ok {
			return result, true
		}
		return base.Binary(right, left)
	}}
}

// RemoveDisfluency drops a disfluent left fragment when the right operand
// can stand alone as the result, modelling depccg's English
// remove_disfluency() combinator. It is intended to be appended to the
// English rule set at runtime with BypassSeenRules set, since disfluency
// fragments are never attested in training data.
func RemoveDisfluency() Rule {
	r := Rule{Name: "disfl", Kind: LanguageSpecific, Binary: func(_, right category.Category) (category.Category, bool) {
		return right, true
	}}
	r.BypassSeenRules = true
	return r
}

// varBindings extracts the variable->concrete binding implied by
// unifying declared (the functor's argument slot, possibly carrying
// feature variables) against actual (the concrete operand it matched).
func varBindings(declared, actual category.Category) map[string]string {
	bindings := map[string]string{}
	collectBindings(declared, actual, bindings)
	return bindings
}

func collectBindings(declared, actual category.Category, out map[string]string) {
	if declared.IsAtomic() {
		if !actual.IsAtomic() {
			return
		}
		for k, v := range declared.Features() {
			if av, ok := actual.Features()[k]; ok {
				out[v] = av
			}
		}
		return
	}
	if actual.IsAtomic() {
		return
	}
	collectBindings(declared.Left(), actual.Left(), out)
	collectBindings(declared.Right(), actual.Right(), out)
}
