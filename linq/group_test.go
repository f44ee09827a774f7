package linq_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-linq/linq"
)

func TestGroupBy(t *testing.T) {
	words := linq.New("pear", "fig", "kiwi", "apple", "yam", "plum")
	byLen := linq.GroupBy(words, func(s string) int { return len(s) })

	require.NoError(t, byLen.Err())
	require.Equal(t, 6, byLen.Len())
	require.Equal(t, 3, byLen.KeyCount())
	require.Equal(t, []int{3, 4, 5}, byLen.Keys().ToSlice())
	require.Equal(t, []string{"pear", "kiwi", "plum"}, byLen.Get(4))
	require.Equal(t, []string{"fig", "yam", "pear", "kiwi", "plum", "apple"}, byLen.Values().ToSlice())
	require.True(t, byLen.Has(5))
	require.False(t, byLen.Has(9))
	require.Nil(t, byLen.Get(9))
}

func TestGroupByGetReturnsCopy(t *testing.T) {
	m := linq.GroupBy(ints(1, 2, 3), func(n int) int { return n % 2 })
	odd := m.Get(1)
	odd[0] = 99
	require.Equal(t, []int{1, 3}, m.Get(1))
}

func TestGroupByValue(t *testing.T) {
	m := linq.GroupByValue(people(),
		func(p person) string { return p.City },
		func(p person) string { return p.Name })

	require.Equal(t, []string{"Lima", "Oslo", "Rome"}, m.Keys().ToSlice())
	require.Equal(t, []string{"Ann", "Cid"}, m.Get("Oslo"))

	pairs := m.Pairs().ToSlice()
	require.Len(t, pairs, 4)
	require.Equal(t, linq.Pair[string, string]{First: "Lima", Second: "Dee"}, pairs[0])
	require.Equal(t, linq.Pair[string, string]{First: "Rome", Second: "Bob"}, pairs[3])

	var keys []string
	for k, vs := range m.Groups() {
		keys = append(keys, k)
		require.NotEmpty(t, vs)
	}
	require.Equal(t, []string{"Lima", "Oslo", "Rome"}, keys)

	n := 0
	for k, v := range m.All() {
		if k == "Oslo" {
			break
		}
		require.Equal(t, "Dee", v)
		n++
	}
	require.Equal(t, 1, n)
}

func TestGroupByEmptyAndErrors(t *testing.T) {
	m := linq.GroupBy(linq.Empty[int](), func(n int) int { return n })
	require.Zero(t, m.Len())
	require.Zero(t, m.KeyCount())
	require.Empty(t, m.Keys().ToSlice())

	bad := linq.GroupBy(ints(1).Skip(-1), func(n int) int { return n })
	require.ErrorIs(t, bad.Err(), linq.ErrIndexOutOfRange)
	require.Zero(t, bad.Len())
}

func TestGroupByNaNKeys(t *testing.T) {
	nan := math.NaN()
	m := linq.GroupBy(linq.New(nan, 1.5, math.NaN(), 1.5, nan), func(f float64) float64 { return f })

	require.Equal(t, 2, m.KeyCount())
	require.Equal(t, 5, m.Len())
	require.True(t, m.Has(math.NaN()))
	require.Len(t, m.Get(math.NaN()), 3)
	require.Equal(t, []float64{1.5, 1.5}, m.Get(1.5))

	keys := m.Keys().ToSlice()
	require.Len(t, keys, 2)
	require.True(t, math.IsNaN(keys[0]))
	require.Equal(t, 1.5, keys[1])

	require.Equal(t, 5, m.Values().Count())
	require.Equal(t, 5, m.Pairs().Count())
	for k, vs := range m.Groups() {
		if math.IsNaN(k) {
			require.Len(t, vs, 3)
		}
	}
}
