package category

// Unify attempts to unify a and b, honouring feature variables: a variable
// feature unifies with any concrete value (binding it for the rest of the
// unification) or with another variable (aliasing the two). Atomic names
// that differ, or feature keys bound to conflicting concrete values, cause
// unification to fail. Unify never errors; callers test the second return
// value.
func Unify(a, b Category) (Category, bool) {
	return unify(a, b, map[string]string{})
}

// unify is the recursive worker; bindings maps variable markers seen in a
// to the value (variable or concrete) they were bound to in b, so repeated
// occurrences of the same variable within a (or b) are forced to agree.
func unify(a, b Category, bindings map[string]string) (Category, bool) {
	if a.IsAtomic() != b.IsAtomic() {
		return Category{}, false
	}
	if a.IsAtomic() {
		if a.atom != b.atom {
			return Category{}, false
		}
		feats, ok := unifyFeatures(a.features, b.features, bindings)
		if !ok {
			return Category{}, false
		}
		return Atom(a.atom, feats), true
	}
	if a.slash != b.slash {
		return Category{}, false
	}
	left, ok := unify(*a.left, *b.left, bindings)
	if !ok {
		return Category{}, false
	}
	right, ok := unify(*a.right, *b.right, bindings)
	if !ok {
		return Category{}, false
	}
	return Slashed(left, right, a.slash), true
}

func unifyFeatures(a, b map[string]string, bindings map[string]string) (map[string]string, bool) {
	if len(a) == 0 && len(b) == 0 {
		return nil, true
	}
	out := map[string]string{}
	keys := map[string]bool{}
	for k := range a {
		keys[k] = true
	}
	for k := range b {
		keys[k] = true
	}
	for k := range keys {
		av, aok := a[k]
		bv, bok := b[k]
		switch {
		case aok && bok:
			v, ok := unifyValue(av, bv, bindings)
			if !ok {
				return nil, false
			}
			out[k] = v
		case aok:
			out[k] = av
		case bok:
			out[k] = bv
		}
	}
	return out, true
}

// unifyValue resolves a single feature key's concrete-or-variable values.
func unifyValue(av, bv string, bindings map[string]string) (string, bool) {
	aVar, bVar := isVariable(av), isVariable(bv)
	switch {
	case aVar && bVar:
		// Both variables: alias one to the other's binding if any is
		// already known, else leave unbound (represented by b's variable).
		if existing, ok := bindings[av]; ok {
			bindings[bv] = existing
			return existing, true
		}
		bindings[av] = bv
		return bv, true
	case aVar:
		if existing, ok := bindings[av]; ok && existing != bv {
			return "", false
		}
		bindings[av] = bv
		return bv, true
	case bVar:
		if existing, ok := bindings[bv]; ok && existing != av {
			return "", false
		}
		bindings[bv] = av
		return av, true
	default:
		if av != bv {
			return "", false
		}
		return av, true
	}
}

// Substitute applies a concrete-value binding map (keyed by variable
// marker, e.g. "X" -> "dcl") throughout cat, recursively.
func Substitute(cat Category, bindings map[string]string) Category {
	if cat.IsAtomic() {
		if len(cat.features) == 0 {
			return cat
		}
		out := make(map[string]string, len(cat.features))
		for k, v := range cat.features {
			if isVariable(v) {
				if bound, ok := bindings[v]; ok {
					out[k] = bound
					continue
				}
			}
			out[k] = v
		}
		return Atom(cat.atom, out)
	}
	return Slashed(Substitute(*cat.left, bindings), Substitute(*cat.right, bindings), cat.slash)
}

// MatchAtomicHead is a feature-insensitive root-category match hook: it
// compares only the top-level atom name when both categories are atomic;
// when either is a slash category it falls back to exact string match,
// features included. Pass this as grammar.Pack.RootMatch to opt out of the
// default exact-match-including-features behavior.
func MatchAtomicHead(derived, allowed Category) bool {
	if !derived.IsAtomic() || !allowed.IsAtomic() {
		return derived.String() == allowed.String()
	}
	return derived.atom == allowed.atom
}
