package combinator

// Catalogue is an ordered set of binary and unary rules; order matters
// only for determinism of which rule name is attached to a derivation when
// more than one rule could produce the same result category (ties are
// broken by catalogue position, earliest wins).
type Catalogue struct {
	Binary []Rule
	Unary  []Rule
}

// EnglishDefaultBinaryRules mirrors depccg's en_default_binary_rules: the
// standard application/composition/substitution set without the
// head-final wrapping used for Japanese.
func EnglishDefaultBinaryRules() []Rule {
	return []Rule{
		ForwardApplication(),
		BackwardApplication(),
		ForwardComposition(),
		BackwardComposition(),
		ForwardComposition2(),
		BackwardComposition2(),
		Coordination(),
		Substitution(),
	}
}

// JapaneseDefaultBinaryRules wraps the shared combinators with the
// head-final rule so either argument order may supply the functor,
// matching ja_default_binary_rules in the reference implementation.
func JapaneseDefaultBinaryRules() []Rule {
	base := EnglishDefaultBinaryRules()
	out := make([]Rule, len(base))
	for i, r := range base {
		out[i] = HeadFinalCombinator(r)
	}
	return out
}

// WithDisfluency appends the English disfluency-removal combinator to an
// existing binary rule set, as depccg's --disfluency flag does at parser
// construction time.
func WithDisfluency(rules []Rule) []Rule {
	out := make([]Rule, len(rules), len(rules)+1)
	copy(out, rules)
	return append(out, RemoveDisfluency())
}
