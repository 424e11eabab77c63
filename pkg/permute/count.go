package permute

import (
	"math/big"

	perrors "github.com/matzehuels/permute/pkg/errors"
)

// Factorial returns n!, the number of orderings of n elements.
// Factorial(0) is 1. Negative n is rejected with INVALID_ARGUMENT.
//
// Factorials outgrow int64 at 21!, so the result is exact and unbounded.
func Factorial(n int) (*big.Int, error) {
	if err := perrors.ValidateCount(n); err != nil {
		return nil, err
	}
	return new(big.Int).MulRange(1, int64(n)), nil
}

// Binomial returns C(n, k), the number of size-k subsets of n elements.
// It is zero when k exceeds n. Negative arguments are rejected with
// INVALID_ARGUMENT.
func Binomial(n, k int) (*big.Int, error) {
	if err := perrors.ValidateCount(n); err != nil {
		return nil, err
	}
	if err := perrors.ValidateSize(k); err != nil {
		return nil, err
	}
	if k > n {
		return new(big.Int), nil
	}
	return new(big.Int).Binomial(int64(n), int64(k)), nil
}

// NumArrangements returns C(n, k)·k!, which equals n!/(n-k)!: the number of
// orderings of size-k subsets of n elements. It is zero when k exceeds n.
func NumArrangements(n, k int) (*big.Int, error) {
	if err := perrors.ValidateCount(n); err != nil {
		return nil, err
	}
	if err := perrors.ValidateSize(k); err != nil {
		return nil, err
	}
	if k > n {
		return new(big.Int), nil
	}
	return new(big.Int).MulRange(int64(n-k+1), int64(n)), nil
}
