package linq

import (
	"cmp"
	"slices"
)

// This file contains the eager adaptors. Each one consumes its input
// completely when called and returns a view that owns a freshly allocated
// slice; the root the input was built from is left untouched.

// OrderBy returns the elements sorted in ascending natural order.
// The sort is stable: equal elements keep their relative order.
func OrderBy[T cmp.Ordered](q *Query[T]) *Query[T] {
	return q.orderBy("OrderBy", cmp.Compare[T])
}

// OrderByDescending returns the elements sorted in descending natural order.
// It is OrderBy followed by Reverse, so equal elements appear in reverse
// input order.
func OrderByDescending[T cmp.Ordered](q *Query[T]) *Query[T] {
	return OrderBy(q).Reverse()
}

// OrderByKey returns the elements sorted in ascending order of the key
// extracted by fn. The sort is stable.
//
//	byAge := linq.OrderByKey(people, func(p Person) int { return p.Age })
func OrderByKey[T any, K cmp.Ordered](q *Query[T], fn func(T) K) *Query[T] {
	if fn == nil {
		panic("linq.OrderByKey: nil key function")
	}
	return q.orderBy("OrderByKey", func(a, b T) int { return cmp.Compare(fn(a), fn(b)) })
}

// OrderByFunc returns the elements sorted by the three-way comparison fn,
// which must return a negative number when a < b, zero when a == b and a
// positive number when a > b. The sort is stable.
func (q *Query[T]) OrderByFunc(fn func(a, b T) int) *Query[T] {
	if fn == nil {
		panic("linq.OrderByFunc: nil comparison")
	}
	return q.orderBy("OrderByFunc", fn)
}

// OrderByDescendingFunc is OrderByFunc followed by Reverse.
func (q *Query[T]) OrderByDescendingFunc(fn func(a, b T) int) *Query[T] {
	return q.OrderByFunc(fn).Reverse()
}

func (q *Query[T]) orderBy(op string, fn func(a, b T) int) *Query[T] {
	if q.err != nil {
		return q
	}
	out := q.ToSlice()
	slices.SortStableFunc(out, fn)
	q.log.V(1).Info("materialized", "op", op, "elements", len(out))
	return q.materialized(out)
}

// Distinct collapses runs of adjacent equal elements into their first
// element. Non-adjacent duplicates are kept, so a sequence must be sorted
// first for global deduplication; use [DistinctBy] to deduplicate an
// unsorted sequence.
//
//	linq.Distinct(linq.New(1, 1, 2, 1)).ToSlice() // → [1 2 1]
func Distinct[T comparable](q *Query[T]) *Query[T] {
	return q.distinct("Distinct", func(a, b T) bool { return a == b })
}

// DistinctFunc is like [Distinct] with a custom equality.
func (q *Query[T]) DistinctFunc(eq func(a, b T) bool) *Query[T] {
	if eq == nil {
		panic("linq.DistinctFunc: nil equality")
	}
	return q.distinct("DistinctFunc", eq)
}

func (q *Query[T]) distinct(op string, eq func(a, b T) bool) *Query[T] {
	if q.err != nil {
		return q
	}
	out := slices.CompactFunc(q.ToSlice(), eq)
	q.log.V(1).Info("materialized", "op", op, "elements", len(out))
	return q.materialized(out)
}

// DistinctBy keeps the first element for every distinct key extracted by fn,
// in input order. Unlike [Distinct] it removes duplicates wherever they are.
//
//	linq.DistinctBy(linq.New(1, 1, 2, 1), func(n int) int { return n }).ToSlice() // → [1 2]
func DistinctBy[T any, K comparable](q *Query[T], fn func(T) K) *Query[T] {
	if fn == nil {
		panic("linq.DistinctBy: nil key function")
	}
	if q.err != nil {
		return q
	}
	seen := make(map[K]struct{})
	out := make([]T, 0, max(q.size, 0))
	for item := range q.seq {
		k := fn(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	q.log.V(1).Info("materialized", "op", "DistinctBy", "elements", len(out))
	return q.materialized(out)
}
