package linq

import "iter"

// This file contains the lazy adaptors. Each one is O(1) to attach and
// performs its per-element work only while the resulting view is traversed.

// Select projects every element through fn.
//
//	doubled := linq.Select(linq.From(nums), func(n int) int { return n * 2 })
func Select[T, U any](q *Query[T], fn func(T) U) *Query[U] {
	if fn == nil {
		panic("linq.Select: nil projection")
	}
	out := &Query[U]{seq: mapSeq(q.seq, fn), size: q.size, err: q.err, log: q.log}
	if q.back != nil {
		out.back = mapSeq(q.back, fn)
	}
	return out
}

// SelectMany projects every element to a slice and flattens the results
// into a single view.
//
//	words := linq.SelectMany(linq.From(lines), strings.Fields)
func SelectMany[T, U any](q *Query[T], fn func(T) []U) *Query[U] {
	if fn == nil {
		panic("linq.SelectMany: nil projection")
	}
	out := &Query[U]{size: -1, err: q.err, log: q.log}
	out.seq = func(yield func(U) bool) {
		for item := range q.seq {
			for _, v := range fn(item) {
				if !yield(v) {
					return
				}
			}
		}
	}
	if q.back != nil {
		out.back = func(yield func(U) bool) {
			for item := range q.back {
				vs := fn(item)
				for i := len(vs) - 1; i >= 0; i-- {
					if !yield(vs[i]) {
						return
					}
				}
			}
		}
	}
	return out
}

// Zip pairs the elements of a and b positionally. It stops at the end of
// the shorter view.
func Zip[A, B any](a *Query[A], b *Query[B]) *Query[Pair[A, B]] {
	out := &Query[Pair[A, B]]{size: -1, log: a.log}
	switch {
	case a.err != nil:
		out.err = a.err
	case b.err != nil:
		out.err = b.err
	}
	if a.size >= 0 && b.size >= 0 {
		out.size = min(a.size, b.size)
	}
	out.seq = func(yield func(Pair[A, B]) bool) {
		next, stop := iter.Pull(b.seq)
		defer stop()
		for va := range a.seq {
			vb, ok := next()
			if !ok || !yield(Pair[A, B]{First: va, Second: vb}) {
				return
			}
		}
	}
	return out
}

// Where keeps the elements for which fn returns true.
func (q *Query[T]) Where(fn func(T) bool) *Query[T] {
	if fn == nil {
		panic("linq.Where: nil predicate")
	}
	out := q.derive(filterSeq(q.seq, fn), nil, -1)
	out.err = q.err
	if q.back != nil {
		out.back = filterSeq(q.back, fn)
	}
	return out
}

// Reverse walks the view back to front.
//
// Views over slices, and views derived from them by Select, Where and
// Concat, are walked backwards directly. Other views (FromSeq, TakeWhile,
// SkipWhile, …) are buffered once per traversal.
func (q *Query[T]) Reverse() *Query[T] {
	if q.err != nil {
		return q
	}
	if q.indexed {
		return indexedView(q.items, !q.reversed, q.log)
	}
	if q.back != nil {
		return q.derive(q.back, q.seq, q.size)
	}
	return q.derive(buffered(q.seq), q.seq, q.size)
}

// Concat appends other after the elements of q.
func (q *Query[T]) Concat(other Enumerable[T]) *Query[T] {
	if other == nil {
		panic("linq.Concat: nil enumerable")
	}
	if q.err != nil {
		return q
	}
	size := -1
	switch o := other.(type) {
	case *Query[T]:
		if o.err != nil {
			return q.failed(o.err)
		}
		size = o.size
	case Slice[T]:
		size = len(o)
	}
	if q.size < 0 {
		size = -1
	} else if size >= 0 {
		size += q.size
	}

	tail := other.Seq()
	out := q.derive(concatSeq(q.seq, tail), nil, size)
	if b, ok := other.(bidirectional[T]); ok && q.back != nil {
		if tailBack, ok := b.backward(); ok {
			out.back = concatSeq(tailBack, q.back)
		}
	}
	return out
}

// Skip bypasses the first n elements. Skipping past the end yields an empty
// view. A negative n produces a view whose Err reports [ErrIndexOutOfRange].
func (q *Query[T]) Skip(n int) *Query[T] {
	if q.err != nil {
		return q
	}
	if n < 0 {
		return q.failed(newOpError("Skip", n, ErrIndexOutOfRange))
	}
	if q.indexed {
		return q.slice(n, q.size)
	}
	out := q.derive(skipTake(q.seq, n, -1), nil, -1)
	if q.size >= 0 {
		out.size = max(q.size-n, 0)
		if q.back != nil {
			out.back = skipTake(q.back, 0, out.size)
		}
	}
	return out
}

// Take keeps the elements at positions [start, end). An end beyond the
// length is clamped; a start beyond the clamped end yields an empty view.
// A negative start, or an end before start, produces a view whose Err
// reports [ErrIndexOutOfRange].
//
//	linq.New(1, 2, 3, 4, 5).Take(1, 3) // → [2 3]
func (q *Query[T]) Take(start, end int) *Query[T] {
	if q.err != nil {
		return q
	}
	if start < 0 {
		return q.failed(newOpError("Take", start, ErrIndexOutOfRange))
	}
	if end < start {
		return q.failed(newOpError("Take", end, ErrIndexOutOfRange))
	}
	if q.indexed {
		return q.slice(start, end)
	}
	out := q.derive(skipTake(q.seq, start, end-start), nil, -1)
	if q.size >= 0 {
		e := min(end, q.size)
		s := min(start, e)
		out.size = e - s
		if q.back != nil {
			out.back = skipTake(q.back, q.size-e, e-s)
		}
	}
	return out
}

// slice returns the random-access sub-view at logical positions [start, end),
// clamped to the length.
func (q *Query[T]) slice(start, end int) *Query[T] {
	n := len(q.items)
	end = min(end, n)
	start = min(start, end)
	if q.reversed {
		return indexedView(q.items[n-end:n-start], true, q.log)
	}
	return indexedView(q.items[start:end], false, q.log)
}

// TakeWhile keeps elements from the start for as long as fn returns true.
func (q *Query[T]) TakeWhile(fn func(T) bool) *Query[T] {
	if fn == nil {
		panic("linq.TakeWhile: nil predicate")
	}
	if q.err != nil {
		return q
	}
	return q.derive(func(yield func(T) bool) {
		for item := range q.seq {
			if !fn(item) || !yield(item) {
				return
			}
		}
	}, nil, -1)
}

// SkipWhile bypasses elements while fn returns true and yields the rest.
func (q *Query[T]) SkipWhile(fn func(T) bool) *Query[T] {
	if fn == nil {
		panic("linq.SkipWhile: nil predicate")
	}
	if q.err != nil {
		return q
	}
	return q.derive(func(yield func(T) bool) {
		skipping := true
		for item := range q.seq {
			if skipping && fn(item) {
				continue
			}
			skipping = false
			if !yield(item) {
				return
			}
		}
	}, nil, -1)
}

func mapSeq[T, U any](seq iter.Seq[T], fn func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for item := range seq {
			if !yield(fn(item)) {
				return
			}
		}
	}
}

func filterSeq[T any](seq iter.Seq[T], fn func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range seq {
			if fn(item) && !yield(item) {
				return
			}
		}
	}
}

func concatSeq[T any](first, second iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range first {
			if !yield(item) {
				return
			}
		}
		for item := range second {
			if !yield(item) {
				return
			}
		}
	}
}

// skipTake drops skip elements then yields at most take of the rest; a
// negative take means no limit.
func skipTake[T any](seq iter.Seq[T], skip, take int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if take == 0 {
			return
		}
		i, taken := 0, 0
		for item := range seq {
			if i < skip {
				i++
				continue
			}
			if !yield(item) {
				return
			}
			taken++
			if take > 0 && taken == take {
				return
			}
		}
	}
}
