// Package permute generates permutations and k-combinations of a slice on
// demand, without materializing the full result set.
//
// # Overview
//
// The number of orderings of n elements grows factorially and the number of
// k-subsets grows binomially, so enumerating them up front is rarely an
// option. This package produces one item at a time, using constant amortized
// work per item and O(n) auxiliary state:
//
//   - [PermutationGenerator]: all n! orderings, lexicographic in the index tuple
//   - [CombinationGenerator]: all C(n,k) size-k subsets, lexicographic in the index tuple
//   - [ArrangementGenerator]: every ordering of every k-subset, C(n,k)·k! items
//
// The generators work on index positions, never on element values, so
// repeated or incomparable elements are handled like any others. The order
// is the order of the underlying indices, not of the values:
//
//	for p := range permute.Permutations([]int{2, 3, 1}) {
//		fmt.Println(p)
//	}
//	// [2 3 1]
//	// [2 1 3]
//	// [3 2 1]
//	// [3 1 2]
//	// [1 2 3]
//	// [1 3 2]
//
// # Pull and Push
//
// Each generator exposes a scanner-style pull API and a range-over-func
// iterator:
//
//	g, err := permute.NewCombinationGenerator(items, 2)
//	if err != nil {
//		return err
//	}
//	for g.Next() {
//		use(g.Value())
//	}
//
//	for c := range g.All() {
//		use(c)
//	}
//
// Every value returned by Value is a fresh slice of the same type as the
// input. Callers may keep or modify it freely.
//
// # Lifecycle
//
// Generators cannot be restarted. Once Next has returned false it keeps
// returning false, and ranging over All again continues from wherever the
// previous range stopped. Create a new generator to enumerate again.
//
// Generators are not safe for concurrent use. Abandoning a generator
// part-way is always safe; it holds no external resources.
//
// # Sizing
//
// [Factorial], [Binomial] and [NumArrangements] return the exact size of an
// enumeration as a [math/big.Int], which makes it cheap to decide whether a
// full enumeration is feasible before starting one.
package permute
