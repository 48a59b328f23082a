package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	it := From([]int{1, 2, 3, 4, 5, 6})

	require.Equal(t, []int{2, 4, 6}, it.Filter(func(v int) bool { return v%2 == 0 }).Collect())
	require.Equal(t, []int{1, 2}, it.Take(2).Collect())
	require.Empty(t, it.Take(0).Collect())
	require.Equal(t, 6, it.Count())

	last, ok := it.Filter(func(v int) bool { return v < 4 }).Last()
	require.True(t, ok)
	require.Equal(t, 3, last)

	_, ok = From([]int{}).Last()
	require.False(t, ok)

	sum := Reduce(it, 0.0, func(acc float64, v int) float64 { return acc + float64(v) })
	require.Equal(t, 21.0, sum)

	groups := GroupBy(it, func(v int) bool { return v > 3 })
	require.Equal(t, []int{1, 2, 3}, groups[false])
	require.Equal(t, []int{4, 5, 6}, groups[true])
}

func TestFromSeq(t *testing.T) {
	seq := func(yield func(int) bool) {
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
	require.Equal(t, []int{0, 1, 2}, FromSeq(seq).Take(3).Collect())
}
