package permute

import (
	"iter"
	"slices"
)

// PermutationGenerator produces every ordering of a slice, one at a time.
//
// Orderings are produced in lexicographic order of the index tuple,
// starting at the identity (0, 1, ..., n-1) and ending at the reversal
// (n-1, ..., 1, 0). A slice of n elements yields exactly n! orderings; an
// empty slice yields a single empty ordering.
//
// The zero value is not usable; create generators with
// NewPermutationGenerator.
type PermutationGenerator[S ~[]E, E any] struct {
	src   S
	index []int
	state genState
}

// NewPermutationGenerator returns a generator over the orderings of s.
// The generator reads s but never modifies it; s must not be modified
// while the generator is in use.
func NewPermutationGenerator[S ~[]E, E any](s S) *PermutationGenerator[S, E] {
	return &PermutationGenerator[S, E]{
		src:   s,
		index: Seq(len(s)),
	}
}

// Next advances to the next ordering and reports whether there is one.
// The first call positions the generator on the identity ordering.
func (g *PermutationGenerator[S, E]) Next() bool {
	switch g.state {
	case stateFresh:
		g.state = stateActive
		return true
	case stateActive:
		if nextPermutation(g.index) {
			return true
		}
		g.state = stateDone
	}
	return false
}

// Value returns the current ordering as a new slice.
// It returns nil before the first call to Next and after exhaustion.
func (g *PermutationGenerator[S, E]) Value() S {
	if g.state != stateActive {
		return nil
	}
	return gather(g.src, g.index)
}

// All returns an iterator over the remaining orderings.
func (g *PermutationGenerator[S, E]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		for g.Next() {
			if !yield(g.Value()) {
				return
			}
		}
	}
}

// Permutations returns an iterator over every ordering of s.
//
// The iterator is backed by a single generator, so it cannot be restarted:
// a second range continues where the first one stopped.
func Permutations[S ~[]E, E any](s S) iter.Seq[S] {
	return NewPermutationGenerator(s).All()
}

// nextPermutation rearranges p into its lexicographic successor.
// It returns false, leaving p untouched, when p is already the last
// (fully decreasing) permutation.
func nextPermutation(p []int) bool {
	flip := len(p) - 2
	for flip >= 0 && p[flip] > p[flip+1] {
		flip--
	}
	if flip < 0 {
		return false
	}

	// p[flip+1:] is decreasing and starts above p[flip]; the element just
	// before the insertion point is the smallest one still larger.
	suffix := p[flip+1:]
	next := flip + searchDescending(suffix, p[flip])
	p[flip], p[next] = p[next], p[flip]
	slices.Reverse(suffix)
	return true
}
