package permute

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutations(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected [][]int
	}{
		{"empty", []int{}, [][]int{{}}},
		{"single", []int{7}, [][]int{{7}}},
		{"pair", []int{1, 2}, [][]int{{1, 2}, {2, 1}}},
		{
			"sorted values",
			[]int{2, 4, 5},
			[][]int{{2, 4, 5}, {2, 5, 4}, {4, 2, 5}, {4, 5, 2}, {5, 2, 4}, {5, 4, 2}},
		},
		{
			"order follows indices not values",
			[]int{2, 3, 1},
			[][]int{{2, 3, 1}, {2, 1, 3}, {3, 2, 1}, {3, 1, 2}, {1, 2, 3}, {1, 3, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Permutations(tt.input))
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestPermutations_Nil(t *testing.T) {
	got := slices.Collect(Permutations[[]string](nil))
	require.Len(t, got, 1)
	assert.Empty(t, got[0])
}

func TestPermutations_Count(t *testing.T) {
	for n := 0; n <= 8; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			want, err := Factorial(n)
			require.NoError(t, err)

			count := 0
			for range Permutations(Seq(n)) {
				count++
			}
			assert.Equal(t, want.Int64(), int64(count))
		})
	}
}

func TestPermutations_LexicographicAndBijective(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			identity := Seq(n)
			reversed := slices.Clone(identity)
			slices.Reverse(reversed)

			var prev []int
			seen := make(map[string]bool)
			for p := range Permutations(identity) {
				if prev == nil {
					require.Equal(t, identity, p, "first permutation must be the identity")
				} else {
					require.Negative(t, slices.Compare(prev, p), "%v must precede %v", prev, p)
				}

				sorted := slices.Clone(p)
				slices.Sort(sorted)
				require.Equal(t, identity, sorted, "%v is not a permutation", p)

				key := fmt.Sprint(p)
				require.False(t, seen[key], "duplicate permutation %v", p)
				seen[key] = true
				prev = p
			}
			assert.Equal(t, reversed, prev, "last permutation must be the reversal")
		})
	}
}

func TestPermutations_RepeatedElements(t *testing.T) {
	got := slices.Collect(Permutations([]string{"a", "a"}))
	assert.Equal(t, [][]string{{"a", "a"}, {"a", "a"}}, got)
}

type row []string

func TestPermutations_KeepsSliceType(t *testing.T) {
	var got []row
	for p := range Permutations(row{"x", "y"}) {
		got = append(got, p)
	}
	assert.Equal(t, []row{{"x", "y"}, {"y", "x"}}, got)
}

func TestPermutationGenerator_Lifecycle(t *testing.T) {
	g := NewPermutationGenerator([]int{1, 2, 3})

	assert.Nil(t, g.Value(), "Value before Next")

	count := 0
	for g.Next() {
		require.NotNil(t, g.Value())
		count++
	}
	assert.Equal(t, 6, count)

	assert.False(t, g.Next(), "exhausted generator must stay exhausted")
	assert.Nil(t, g.Value(), "Value after exhaustion")
	assert.Empty(t, slices.Collect(g.All()))
}

func TestPermutationGenerator_PartialRangeResumes(t *testing.T) {
	g := NewPermutationGenerator([]string{"a", "b", "c"})

	var first [][]string
	for p := range g.All() {
		first = append(first, p)
		if len(first) == 2 {
			break
		}
	}
	rest := slices.Collect(g.All())

	assert.Equal(t, [][]string{{"a", "b", "c"}, {"a", "c", "b"}}, first)
	assert.Equal(t, [][]string{{"b", "a", "c"}, {"b", "c", "a"}, {"c", "a", "b"}, {"c", "b", "a"}}, rest)
}

func TestPermutationGenerator_ValuesAreIndependent(t *testing.T) {
	input := []int{10, 20, 30}
	g := NewPermutationGenerator(input)

	require.True(t, g.Next())
	first := g.Value()
	again := g.Value()
	first[0] = -1

	assert.Equal(t, []int{10, 20, 30}, again)
	assert.Equal(t, []int{10, 20, 30}, input, "input must not be modified")

	require.True(t, g.Next())
	assert.Equal(t, []int{10, 30, 20}, g.Value())
}

func TestNextPermutation(t *testing.T) {
	tests := []struct {
		in   []int
		want []int
		ok   bool
	}{
		{[]int{0, 1, 2}, []int{0, 2, 1}, true},
		{[]int{0, 2, 1}, []int{1, 0, 2}, true},
		{[]int{1, 3, 2, 0}, []int{2, 0, 1, 3}, true},
		{[]int{2, 1, 0}, []int{2, 1, 0}, false},
		{[]int{0}, []int{0}, false},
		{[]int{}, []int{}, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			p := slices.Clone(tt.in)
			ok := nextPermutation(p)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestSearchDescending(t *testing.T) {
	tests := []struct {
		s    []int
		v    int
		want int
	}{
		{[]int{5, 3, 1}, 4, 1},
		{[]int{5, 3, 1}, 0, 3},
		{[]int{5, 3, 1}, 6, 0},
		{[]int{5, 3, 1}, 2, 2},
		{[]int{9}, 2, 1},
		{nil, 2, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v/%d", tt.s, tt.v), func(t *testing.T) {
			assert.Equal(t, tt.want, searchDescending(tt.s, tt.v))
		})
	}
}
