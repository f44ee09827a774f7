package linq

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/go-logr/logr"
)

// Query is a chainable view over an ordered, finite sequence of T.
//
// A Query is never modified after construction: every adaptor returns a new
// Query that refers to its parent. Lazy adaptors defer all per-element work
// until the result is traversed; eager adaptors run to completion when called
// and return a Query that owns its elements.
//
// # Creating a query
//
//	q := linq.From([]int{1, 2, 3})  // borrows the slice
//	q := linq.New(1, 2, 3)          // owns a copy
//	q := linq.FromSeq(maps.Keys(m)) // forward-only, any iterator
//
// # Traversal
//
//	for v := range q.Seq() { ... }
//	items := q.ToSlice()
//
// A Query may be traversed any number of times; each traversal re-runs the
// pending transformations against the root.
type Query[T any] struct {
	seq  iter.Seq[T]
	back iter.Seq[T] // nil when the view cannot be walked back to front

	// Random-access views keep the slice they walk. reversed means the view
	// walks items back to front.
	items    []T
	indexed  bool
	reversed bool

	size int // -1 when unknown without a traversal
	err  error
	log  logr.Logger
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// From creates a Query over items without copying them.
//
// The query borrows the slice: element writes made by the caller remain
// visible to later traversals, appends are not. Callers that keep mutating
// the slice while queries derived from it are alive should use [New] or
// [Query.Clone] instead.
func From[T any](items []T) *Query[T] {
	return indexedView(items, false, logr.Discard())
}

// New creates a Query from a variadic list of items (copied).
func New[T any](items ...T) *Query[T] {
	dst := make([]T, len(items))
	copy(dst, items)
	return indexedView(dst, false, logr.Discard())
}

// FromSeq creates a forward-only Query over an arbitrary iterator. The
// iterator must be finite and must be safe to range over more than once if
// the query is traversed more than once.
func FromSeq[T any](seq iter.Seq[T]) *Query[T] {
	if seq == nil {
		panic("linq.FromSeq: nil iterator")
	}
	return &Query[T]{seq: seq, size: -1, log: logr.Discard()}
}

// Empty creates an empty Query of type T.
func Empty[T any]() *Query[T] {
	return indexedView[T](nil, false, logr.Discard())
}

func indexedView[T any](items []T, reversed bool, log logr.Logger) *Query[T] {
	q := &Query[T]{
		items:    items,
		indexed:  true,
		reversed: reversed,
		size:     len(items),
		log:      log,
	}
	if reversed {
		q.seq, q.back = backward(items), forward(items)
	} else {
		q.seq, q.back = forward(items), backward(items)
	}
	return q
}

// derive returns a child view that inherits the logger of q.
func (q *Query[T]) derive(seq, back iter.Seq[T], size int) *Query[T] {
	return &Query[T]{seq: seq, back: back, size: size, log: q.log}
}

// materialized wraps a freshly computed slice owned by the new view.
func (q *Query[T]) materialized(items []T) *Query[T] {
	return indexedView(items, false, q.log)
}

// failed returns an empty child view that carries err.
func (q *Query[T]) failed(err error) *Query[T] {
	q.log.V(2).Info("adaptor failed", "error", err.Error())
	return &Query[T]{seq: emptySeq[T](), back: emptySeq[T](), err: err, log: q.log}
}

// at returns the i-th element of a random-access view.
func (q *Query[T]) at(i int) T {
	if q.reversed {
		return q.items[len(q.items)-1-i]
	}
	return q.items[i]
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// Seq returns an iterator over the elements of the view, in order.
func (q *Query[T]) Seq() iter.Seq[T] { return q.seq }

// Backward returns an iterator over the elements of the view from last to
// first. Views that cannot be walked backwards are buffered at traversal time.
func (q *Query[T]) Backward() iter.Seq[T] {
	if q.back != nil {
		return q.back
	}
	return buffered(q.seq)
}

func (q *Query[T]) backward() (iter.Seq[T], bool) { return q.back, q.back != nil }

// Err returns the error recorded by an adaptor in the chain that produced q,
// if any. A query with an error yields no elements.
func (q *Query[T]) Err() error { return q.err }

// ToSlice collects the view into a new slice.
func (q *Query[T]) ToSlice() []T {
	out := make([]T, 0, max(q.size, 0))
	for item := range q.seq {
		out = append(out, item)
	}
	return out
}

// Clone materialises the view into a Query that owns its elements and no
// longer refers to the root it was built from.
func (q *Query[T]) Clone() *Query[T] {
	if q.err != nil {
		return q
	}
	return q.materialized(q.ToSlice())
}

// WithLogger returns a view identical to q that reports eager passes and
// failures to log. Views derived from the result inherit the logger.
func (q *Query[T]) WithLogger(log logr.Logger) *Query[T] {
	c := *q
	c.log = log
	return &c
}

// IsEmpty reports whether the view yields no element.
func (q *Query[T]) IsEmpty() bool {
	if q.size >= 0 {
		return q.size == 0
	}
	for range q.seq {
		return false
	}
	return true
}

// IsNotEmpty reports whether the view yields at least one element.
func (q *Query[T]) IsNotEmpty() bool { return !q.IsEmpty() }

// ToJSON serialises the elements of the view to a JSON array.
func (q *Query[T]) ToJSON() ([]byte, error) {
	return json.Marshal(q.ToSlice())
}

// String returns a JSON representation of the view.
// It implements [fmt.Stringer].
func (q *Query[T]) String() string {
	b, err := q.ToJSON()
	if err != nil {
		return fmt.Sprintf("%v", q.ToSlice())
	}
	return string(b)
}

// ─────────────────────────────────────────────────────────────────────────────
// Iteration
// ─────────────────────────────────────────────────────────────────────────────

// Each calls fn for every element, in order.
func (q *Query[T]) Each(fn func(T)) {
	for item := range q.seq {
		fn(item)
	}
}

// Tap calls fn(q) for side-effects (e.g. logging or debugging) and returns
// q unchanged for further chaining.
func (q *Query[T]) Tap(fn func(*Query[T])) *Query[T] {
	if fn == nil {
		panic("linq.Tap: nil function")
	}
	fn(q)
	return q
}

func buffered[T any](seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		var buf []T
		for item := range seq {
			buf = append(buf, item)
		}
		for i := len(buf) - 1; i >= 0; i-- {
			if !yield(buf[i]) {
				return
			}
		}
	}
}
