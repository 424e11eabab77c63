package permute

import "iter"

// ArrangementGenerator produces every ordering of every size-k subset of a
// slice: the k-permutations of the slice.
//
// Subsets are visited in the order of [CombinationGenerator]; the orderings
// of each subset follow in the order of [PermutationGenerator] before the
// next subset is taken. Exactly C(n,k)·k! items are produced.
type ArrangementGenerator[S ~[]E, E any] struct {
	combs *CombinationGenerator[S, E]
	perms *PermutationGenerator[S, E]
	done  bool
}

// NewArrangementGenerator returns a generator over the k-permutations of s.
// It fails with an INVALID_ARGUMENT error when k is negative.
func NewArrangementGenerator[S ~[]E, E any](s S, k int) (*ArrangementGenerator[S, E], error) {
	combs, err := NewCombinationGenerator(s, k)
	if err != nil {
		return nil, err
	}
	return &ArrangementGenerator[S, E]{combs: combs}, nil
}

// Next advances to the next arrangement and reports whether there is one.
func (g *ArrangementGenerator[S, E]) Next() bool {
	if g.done {
		return false
	}
	for {
		if g.perms != nil && g.perms.Next() {
			return true
		}
		if !g.combs.Next() {
			g.done = true
			g.perms = nil
			return false
		}
		// Value is a private copy, so the inner generator shares no
		// state with the outer one.
		g.perms = NewPermutationGenerator(g.combs.Value())
	}
}

// Value returns the current arrangement as a new slice.
// It returns nil before the first call to Next and after exhaustion.
func (g *ArrangementGenerator[S, E]) Value() S {
	if g.perms == nil {
		return nil
	}
	return g.perms.Value()
}

// All returns an iterator over the remaining arrangements.
func (g *ArrangementGenerator[S, E]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		for g.Next() {
			if !yield(g.Value()) {
				return
			}
		}
	}
}

// PermutationsOfCombinations returns an iterator over every ordering of
// every size-k subset of s. It fails with an INVALID_ARGUMENT error when k
// is negative.
func PermutationsOfCombinations[S ~[]E, E any](s S, k int) (iter.Seq[S], error) {
	g, err := NewArrangementGenerator(s, k)
	if err != nil {
		return nil, err
	}
	return g.All(), nil
}
