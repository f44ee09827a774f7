package linq

import "iter"

// Enumerable is anything that can be walked front to back.
//
// [Query][T] satisfies it; wrap a plain slice with [From] or an iterator with
// [FromSeq]. Concat, SequenceEqual, Includes and Except accept an Enumerable
// for their second operand.
type Enumerable[T any] interface {
	// Seq returns an iterator over the elements in order.
	Seq() iter.Seq[T]
}

// bidirectional is implemented by enumerables that can also be walked back to
// front without buffering.
type bidirectional[T any] interface {
	backward() (iter.Seq[T], bool)
}

// Slice adapts a plain slice to Enumerable without wrapping it in a Query.
type Slice[T any] []T

// Seq implements Enumerable.
func (s Slice[T]) Seq() iter.Seq[T] { return forward([]T(s)) }

func (s Slice[T]) backward() (iter.Seq[T], bool) { return backward([]T(s)), true }

func forward[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

func backward[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := len(items) - 1; i >= 0; i-- {
			if !yield(items[i]) {
				return
			}
		}
	}
}

func emptySeq[T any]() iter.Seq[T] {
	return func(func(T) bool) {}
}
