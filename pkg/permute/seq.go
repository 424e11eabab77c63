package permute

import (
	"cmp"
	"iter"
	"slices"
)

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is the initial index state of every generator.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n < 0 {
		n = 0
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Take returns a sequence that yields at most limit items of seq.
// A limit of zero or less means no limit.
//
// Take stops pulling from seq as soon as the limit is reached, so a
// generator-backed seq is left positioned right after the last item taken.
func Take[V any](seq iter.Seq[V], limit int) iter.Seq[V] {
	if limit <= 0 {
		return seq
	}
	return func(yield func(V) bool) {
		taken := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			taken++
			if taken >= limit {
				return
			}
		}
	}
}

// genState tracks where a generator is in its lifecycle.
type genState uint8

const (
	stateFresh genState = iota
	stateActive
	stateDone
)

// gather builds a new S holding src[index[0]], src[index[1]], ...
func gather[S ~[]E, E any](src S, index []int) S {
	out := make(S, len(index))
	for i, j := range index {
		out[i] = src[j]
	}
	return out
}

// searchDescending returns the insertion point of v in s, which must be
// sorted in strictly decreasing order: the first position whose element is
// not greater than v.
func searchDescending(s []int, v int) int {
	i, _ := slices.BinarySearchFunc(s, v, func(e, target int) int {
		return cmp.Compare(target, e)
	})
	return i
}
