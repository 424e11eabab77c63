package permute

import (
	"iter"
	"math/big"
	"strings"

	perrors "github.com/matzehuels/permute/pkg/errors"
)

// Kind names one of the three enumerations.
type Kind string

// Supported enumeration kinds.
const (
	KindPermutations Kind = "permutations"
	KindCombinations Kind = "combinations"
	KindArrangements Kind = "arrangements"
)

// Kinds lists every supported kind in a stable order.
var Kinds = []Kind{KindPermutations, KindCombinations, KindArrangements}

// kindAliases maps short names accepted by ParseKind to kinds.
var kindAliases = map[string]Kind{
	"perm":    KindPermutations,
	"perms":   KindPermutations,
	"comb":    KindCombinations,
	"combs":   KindCombinations,
	"arrange": KindArrangements,
	"kperm":   KindArrangements,
}

// ParseKind parses a kind name. Matching is case-insensitive and accepts
// the short aliases used by the CLI ("perm", "comb", "arrange").
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidKind, "unknown enumeration kind %q", s)
}

// UsesSize reports whether the kind takes a subset size.
func (k Kind) UsesSize() bool {
	return k == KindCombinations || k == KindArrangements
}

// Enumerate returns the sequence of the given kind over s. The size k is
// ignored for permutations.
func Enumerate[S ~[]E, E any](kind Kind, s S, k int) (iter.Seq[S], error) {
	switch kind {
	case KindPermutations:
		return Permutations(s), nil
	case KindCombinations:
		return Combinations(s, k)
	case KindArrangements:
		return PermutationsOfCombinations(s, k)
	}
	return nil, perrors.New(perrors.ErrCodeInvalidKind, "unknown enumeration kind %q", kind)
}

// Count returns the exact number of items Enumerate produces for n
// elements.
func Count(kind Kind, n, k int) (*big.Int, error) {
	switch kind {
	case KindPermutations:
		return Factorial(n)
	case KindCombinations:
		return Binomial(n, k)
	case KindArrangements:
		return NumArrangements(n, k)
	}
	return nil, perrors.New(perrors.ErrCodeInvalidKind, "unknown enumeration kind %q", kind)
}
