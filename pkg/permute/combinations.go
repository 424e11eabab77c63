package permute

import (
	"iter"

	perrors "github.com/matzehuels/permute/pkg/errors"
)

// CombinationGenerator produces every size-k subset of a slice, one at a
// time.
//
// Subsets are produced in lexicographic order of their strictly increasing
// index tuples, starting at (0, 1, ..., k-1) and ending at
// (n-k, ..., n-2, n-1). Elements keep their relative input order inside each
// subset. Exactly C(n,k) subsets are produced: one empty subset when k is
// zero and none when k exceeds n.
type CombinationGenerator[S ~[]E, E any] struct {
	src   S
	index []int
	state genState
}

// NewCombinationGenerator returns a generator over the size-k subsets of s.
// It fails with an INVALID_ARGUMENT error when k is negative.
func NewCombinationGenerator[S ~[]E, E any](s S, k int) (*CombinationGenerator[S, E], error) {
	if err := perrors.ValidateSize(k); err != nil {
		return nil, err
	}
	if k > len(s) {
		return &CombinationGenerator[S, E]{src: s, state: stateDone}, nil
	}
	return &CombinationGenerator[S, E]{
		src:   s,
		index: Seq(k),
	}, nil
}

// Next advances to the next subset and reports whether there is one.
func (g *CombinationGenerator[S, E]) Next() bool {
	switch g.state {
	case stateFresh:
		g.state = stateActive
		return true
	case stateActive:
		if nextCombination(g.index, len(g.src)) {
			return true
		}
		g.state = stateDone
	}
	return false
}

// Value returns the current subset as a new slice.
// It returns nil before the first call to Next and after exhaustion.
func (g *CombinationGenerator[S, E]) Value() S {
	if g.state != stateActive {
		return nil
	}
	return gather(g.src, g.index)
}

// All returns an iterator over the remaining subsets.
func (g *CombinationGenerator[S, E]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		for g.Next() {
			if !yield(g.Value()) {
				return
			}
		}
	}
}

// Combinations returns an iterator over every size-k subset of s.
// It fails with an INVALID_ARGUMENT error when k is negative.
func Combinations[S ~[]E, E any](s S, k int) (iter.Seq[S], error) {
	g, err := NewCombinationGenerator(s, k)
	if err != nil {
		return nil, err
	}
	return g.All(), nil
}

// nextCombination advances c, a strictly increasing tuple over [0, n), to
// its lexicographic successor. It returns false, leaving c untouched, when c
// is already (n-k, ..., n-1).
//
// Position i can hold at most n-k+i, since k-1-i larger values must still
// fit after it.
func nextCombination(c []int, n int) bool {
	k := len(c)
	i := k - 1
	for i >= 0 && c[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	c[i]++
	for j := i + 1; j < k; j++ {
		c[j] = c[j-1] + 1
	}
	return true
}
