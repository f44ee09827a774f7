package linq

import (
	"cmp"
	"fmt"
	"iter"
)

// Any reports whether fn returns true for at least one element. It stops at
// the first match and returns false on an empty view.
func (q *Query[T]) Any(fn func(T) bool) bool {
	if fn == nil {
		panic("linq.Any: nil predicate")
	}
	for item := range q.seq {
		if fn(item) {
			return true
		}
	}
	return false
}

// All reports whether fn returns true for every element. It stops at the
// first mismatch and returns true on an empty view.
func (q *Query[T]) All(fn func(T) bool) bool {
	if fn == nil {
		panic("linq.All: nil predicate")
	}
	for item := range q.seq {
		if !fn(item) {
			return false
		}
	}
	return true
}

// Contains reports whether at least one element satisfies fn.
// Use [ContainsValue] to test membership by equality.
func (q *Query[T]) Contains(fn func(T) bool) bool { return q.Any(fn) }

// ContainsValue reports whether v is one of the elements.
func ContainsValue[T comparable](q *Query[T], v T) bool {
	return Find(q, v) >= 0
}

// Find returns the position of the first element equal to v, or -1.
func Find[T comparable](q *Query[T], v T) int {
	return q.IndexWhere(func(item T) bool { return item == v })
}

// IndexWhere returns the position of the first element satisfying fn, or -1.
func (q *Query[T]) IndexWhere(fn func(T) bool) int {
	if fn == nil {
		panic("linq.IndexWhere: nil predicate")
	}
	i := 0
	for item := range q.seq {
		if fn(item) {
			return i
		}
		i++
	}
	return -1
}

// LastIndexWhere returns the position of the last element satisfying fn,
// or -1.
func (q *Query[T]) LastIndexWhere(fn func(T) bool) int {
	if fn == nil {
		panic("linq.LastIndexWhere: nil predicate")
	}
	if q.size >= 0 {
		if i := q.Reverse().IndexWhere(fn); i >= 0 {
			return q.size - 1 - i
		}
		return -1
	}
	last, i := -1, 0
	for item := range q.seq {
		if fn(item) {
			last = i
		}
		i++
	}
	return last
}

// First returns the first element, or [ErrEmptySequence].
func (q *Query[T]) First() (T, error) {
	var zero T
	if q.err != nil {
		return zero, q.err
	}
	for item := range q.seq {
		return item, nil
	}
	return zero, q.fail("First", -1, ErrEmptySequence)
}

// FirstWhere returns the first element satisfying fn.
// Returns the zero value and false when no element matches.
func (q *Query[T]) FirstWhere(fn func(T) bool) (T, bool) {
	if fn == nil {
		panic("linq.FirstWhere: nil predicate")
	}
	for item := range q.seq {
		if fn(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Last returns the last element, or [ErrEmptySequence].
func (q *Query[T]) Last() (T, error) {
	var zero T
	if q.err != nil {
		return zero, q.err
	}
	if q.indexed && q.size > 0 {
		return q.at(q.size - 1), nil
	}
	for item := range q.Reverse().seq {
		return item, nil
	}
	return zero, q.fail("Last", -1, ErrEmptySequence)
}

// LastWhere returns the last element satisfying fn.
// Returns the zero value and false when no element matches.
func (q *Query[T]) LastWhere(fn func(T) bool) (T, bool) {
	return q.Reverse().FirstWhere(fn)
}

// ElementAt returns the element at position i. It returns
// [ErrIndexOutOfRange], naming i, when i is negative or not below Count.
func (q *Query[T]) ElementAt(i int) (T, error) {
	var zero T
	if q.err != nil {
		return zero, q.err
	}
	if i < 0 || (q.size >= 0 && i >= q.size) {
		return zero, q.fail("ElementAt", i, ErrIndexOutOfRange)
	}
	if q.indexed {
		return q.at(i), nil
	}
	n := 0
	for item := range q.seq {
		if n == i {
			return item, nil
		}
		n++
	}
	return zero, q.fail("ElementAt", i, ErrIndexOutOfRange)
}

// SequenceEqual reports whether q and other have the same length and equal
// elements at every position. A view whose Err is set equals nothing, not
// even an empty view.
func SequenceEqual[T comparable](q *Query[T], other Enumerable[T]) bool {
	return q.SequenceEqualFunc(other, func(a, b T) bool { return a == b })
}

// SequenceEqualFunc is like [SequenceEqual] with a custom equality.
func (q *Query[T]) SequenceEqualFunc(other Enumerable[T], eq func(a, b T) bool) bool {
	if other == nil || eq == nil {
		panic("linq.SequenceEqualFunc: nil argument")
	}
	if q.err != nil {
		return false
	}
	if o, ok := other.(*Query[T]); ok && (o.err != nil || (q.size >= 0 && o.size >= 0 && q.size != o.size)) {
		return false
	}
	next, stop := iter.Pull(other.Seq())
	defer stop()
	for item := range q.seq {
		v, ok := next()
		if !ok || !eq(item, v) {
			return false
		}
	}
	_, more := next()
	return !more
}

// Includes reports whether every element of other also appears in q, counting
// multiplicity. Both sequences must be sorted in ascending natural order; an
// unsorted input met during the merge is reported as [ErrNotSorted].
func Includes[T cmp.Ordered](q *Query[T], other Enumerable[T]) (bool, error) {
	return q.includes("Includes", other, cmp.Compare[T])
}

// IncludesFunc is like [Includes] for sequences sorted by fn.
func (q *Query[T]) IncludesFunc(other Enumerable[T], fn func(a, b T) int) (bool, error) {
	if fn == nil {
		panic("linq.IncludesFunc: nil comparison")
	}
	return q.includes("IncludesFunc", other, fn)
}

func (q *Query[T]) includes(op string, other Enumerable[T], fn func(a, b T) int) (bool, error) {
	if err := q.operandErr(other); err != nil {
		return false, err
	}
	a := pullSorted(q.seq, fn)
	defer a.stop()
	b := pullSorted(other.Seq(), fn)
	defer b.stop()

	for b.ok {
		if err := q.checkSorted(op, a, b); err != nil {
			return false, err
		}
		if !a.ok {
			return false, nil
		}
		switch c := fn(b.cur, a.cur); {
		case c < 0:
			return false, nil
		case c == 0:
			b.advance()
		}
		a.advance()
	}
	if err := q.checkSorted(op, a, b); err != nil {
		return false, err
	}
	return true, nil
}

// Except appends to dst, in order, the elements of q that have no
// counterpart in other, counting multiplicity, and returns the extended
// slice. Both sequences must be sorted in ascending natural order; an unsorted
// input met during the merge is reported as [ErrNotSorted].
//
//	diff, _ := linq.Except(linq.New(1, 2, 2, 3, 5), linq.Slice[int]{2, 5}, nil) // → [1 2 3]
func Except[T cmp.Ordered](q *Query[T], other Enumerable[T], dst []T) ([]T, error) {
	return q.except("Except", other, cmp.Compare[T], dst)
}

// ExceptFunc is like [Except] for sequences sorted by fn.
func (q *Query[T]) ExceptFunc(other Enumerable[T], fn func(a, b T) int, dst []T) ([]T, error) {
	if fn == nil {
		panic("linq.ExceptFunc: nil comparison")
	}
	return q.except("ExceptFunc", other, fn, dst)
}

func (q *Query[T]) except(op string, other Enumerable[T], fn func(a, b T) int, dst []T) ([]T, error) {
	if err := q.operandErr(other); err != nil {
		return dst, err
	}
	a := pullSorted(q.seq, fn)
	defer a.stop()
	b := pullSorted(other.Seq(), fn)
	defer b.stop()

	for a.ok {
		if err := q.checkSorted(op, a, b); err != nil {
			return dst, err
		}
		if !b.ok {
			dst = append(dst, a.cur)
			a.advance()
			continue
		}
		switch c := fn(a.cur, b.cur); {
		case c < 0:
			dst = append(dst, a.cur)
			a.advance()
		case c > 0:
			b.advance()
		default:
			a.advance()
			b.advance()
		}
	}
	return dst, q.checkSorted(op, a, b)
}

func (q *Query[T]) operandErr(other Enumerable[T]) error {
	if other == nil {
		panic("linq: nil enumerable")
	}
	if q.err != nil {
		return q.err
	}
	if o, ok := other.(*Query[T]); ok && o.err != nil {
		return o.err
	}
	return nil
}

func (q *Query[T]) checkSorted(op string, a, b *sortedCursor[T]) error {
	if a.unsorted {
		return q.fail(op, a.pos, ErrNotSorted)
	}
	if b.unsorted {
		return q.fail(op, b.pos, fmt.Errorf("other: %w", ErrNotSorted))
	}
	return nil
}

// sortedCursor walks a pulled iterator and records the first position at
// which an element compares below its predecessor.
type sortedCursor[T any] struct {
	next     func() (T, bool)
	stop     func()
	fn       func(a, b T) int
	cur      T
	ok       bool
	pos      int
	unsorted bool
}

func pullSorted[T any](seq iter.Seq[T], fn func(a, b T) int) *sortedCursor[T] {
	next, stop := iter.Pull(seq)
	c := &sortedCursor[T]{next: next, stop: stop, fn: fn, pos: -1}
	c.advance()
	return c
}

func (c *sortedCursor[T]) advance() {
	prev, hadPrev := c.cur, c.ok
	c.cur, c.ok = c.next()
	if !c.ok {
		return
	}
	c.pos++
	if hadPrev && !c.unsorted && c.fn(c.cur, prev) < 0 {
		c.unsorted = true
	}
}
