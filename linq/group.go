package linq

import (
	"cmp"
	"iter"
	"slices"

	"github.com/go-logr/logr"
)

// MultiMap is the materialised result of [GroupBy]: a set of ordered keys,
// each associated with the values filed under it in input order.
//
// A MultiMap is read-only once built and is not a Query; use [MultiMap.Keys],
// [MultiMap.Values] or [MultiMap.Pairs] to continue a chain.
//
// Every NaN key lands in one group, which sorts before all other keys and
// is found by Get and Has with any NaN.
type MultiMap[K cmp.Ordered, V any] struct {
	keys   []K // ascending
	groups map[K][]V
	nan    []V // values filed under NaN, which a map cannot find again
	size   int
	err    error
	log    logr.Logger
}

// GroupBy files every element under the key returned by fn.
//
//	byLen := linq.GroupBy(linq.From(words), func(s string) int { return len(s) })
//	byLen.Get(3) // every three-letter word, in input order
func GroupBy[T any, K cmp.Ordered](q *Query[T], fn func(T) K) *MultiMap[K, T] {
	if fn == nil {
		panic("linq.GroupBy: nil key function")
	}
	return group(q, "GroupBy", fn, func(item T) T { return item })
}

// GroupByValue files val(item) under key(item) for every element.
//
//	names := linq.GroupByValue(people,
//	    func(p Person) string { return p.City },
//	    func(p Person) string { return p.Name })
func GroupByValue[T any, K cmp.Ordered, V any](q *Query[T], key func(T) K, val func(T) V) *MultiMap[K, V] {
	if key == nil || val == nil {
		panic("linq.GroupByValue: nil function")
	}
	return group(q, "GroupByValue", key, val)
}

func group[T any, K cmp.Ordered, V any](q *Query[T], op string, key func(T) K, val func(T) V) *MultiMap[K, V] {
	m := &MultiMap[K, V]{groups: make(map[K][]V), log: q.log}
	if q.err != nil {
		m.err = q.err
		return m
	}
	for item := range q.seq {
		k := key(item)
		m.size++
		if isNaN(k) {
			if len(m.nan) == 0 {
				m.keys = append(m.keys, k)
			}
			m.nan = append(m.nan, val(item))
			continue
		}
		vs, ok := m.groups[k]
		if !ok {
			m.keys = append(m.keys, k)
		}
		m.groups[k] = append(vs, val(item))
	}
	slices.Sort(m.keys)
	q.log.V(1).Info("materialized", "op", op, "elements", m.size, "keys", len(m.keys))
	return m
}

// isNaN reports whether k is a floating-point NaN, the only ordered value
// that differs from itself.
func isNaN[K cmp.Ordered](k K) bool { return k != k }

// lookup returns the values filed under k without copying them.
func (m *MultiMap[K, V]) lookup(k K) []V {
	if isNaN(k) {
		return m.nan
	}
	return m.groups[k]
}

// Err returns the error carried by the query the map was built from.
func (m *MultiMap[K, V]) Err() error { return m.err }

// Len returns the total number of values across all keys.
func (m *MultiMap[K, V]) Len() int { return m.size }

// KeyCount returns the number of distinct keys.
func (m *MultiMap[K, V]) KeyCount() int { return len(m.keys) }

// Has reports whether at least one value is filed under k.
func (m *MultiMap[K, V]) Has(k K) bool {
	return len(m.lookup(k)) > 0
}

// Get returns a copy of the values filed under k, in input order, or nil.
func (m *MultiMap[K, V]) Get(k K) []V {
	return slices.Clone(m.lookup(k))
}

// Keys returns a query over the distinct keys in ascending order.
func (m *MultiMap[K, V]) Keys() *Query[K] {
	return indexedView(m.keys, false, m.log)
}

// Values returns a query over every value, grouped by ascending key.
func (m *MultiMap[K, V]) Values() *Query[V] {
	out := make([]V, 0, m.size)
	for _, k := range m.keys {
		out = append(out, m.lookup(k)...)
	}
	return indexedView(out, false, m.log)
}

// Pairs returns a query over every (key, value) pair, ordered by key and then
// by input order.
func (m *MultiMap[K, V]) Pairs() *Query[Pair[K, V]] {
	out := make([]Pair[K, V], 0, m.size)
	for k, v := range m.All() {
		out = append(out, Pair[K, V]{First: k, Second: v})
	}
	return indexedView(out, false, m.log)
}

// All iterates every (key, value) pair, ordered by key and then by input
// order.
func (m *MultiMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			for _, v := range m.lookup(k) {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Groups iterates the keys in ascending order together with their values.
// The yielded slices must not be modified.
func (m *MultiMap[K, V]) Groups() iter.Seq2[K, []V] {
	return func(yield func(K, []V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.lookup(k)) {
				return
			}
		}
	}
}
