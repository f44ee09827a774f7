// Package linq provides a generic, fluent query layer over in-memory ordered
// sequences, in the spirit of .NET's LINQ to Objects.
//
// # Overview
//
// The central type is [Query][T], a chainable view over a sequence of T built
// on the standard iter package:
//
//	top := linq.OrderByDescending(
//	    linq.From([]int{5, 3, 9, 1, 7}).Where(func(n int) bool { return n > 2 }),
//	).Take(0, 2).ToSlice() // → [9 7]
//
// # Lazy and eager operations
//
// Select, Where, Reverse, Concat, Skip, Take, TakeWhile and SkipWhile are
// lazy: they only describe the computation and touch no element until a
// terminal operation (Count, Sum, First, All, a range loop over Seq, …)
// walks the chain.
//
// OrderBy, OrderByDescending, Distinct, DistinctBy and GroupBy are eager:
// they run a full pass when called and return a materialised result that
// owns its storage. Sorting never reorders the caller's slice.
//
// # Borrowed roots
//
// [From] does not copy the slice it is given. Writes to the elements of that
// slice are visible to later traversals of every query derived from it;
// appends made by the caller after the call are not. Use [New] or
// [Query.Clone] when the query must own its data.
//
// # Type-changing operations
//
// Go generics do not allow methods to introduce new type parameters, and
// methods cannot narrow the constraint of the receiver's type parameter.
// Operations that change the element type, or need T to be ordered,
// comparable or numeric, are package-level functions:
//
//	lengths := linq.Select(words, func(s string) int { return len(s) })
//	longest, err := linq.Max(lengths)
//
// Package-level functions: [Select], [SelectMany], [Zip], [OrderBy],
// [OrderByDescending], [OrderByKey], [Distinct], [DistinctBy], [GroupBy],
// [GroupByValue], [Sum], [Average], [AverageDecimal], [Min], [Max], [Reduce],
// [ContainsValue], [Find], [SequenceEqual], [Includes], [Except].
//
// # Errors
//
// Terminals that need at least one element return an [*OpError] wrapping
// [ErrEmptySequence] on empty input; index failures wrap [ErrIndexOutOfRange]
// and unsorted inputs to Includes/Except wrap [ErrNotSorted]. A failure only
// affects the call that produced it; the query stays usable.
//
// An adaptor given a bad argument (Skip(-1), Take(3, 1), an unknown Macro)
// returns a view whose [Query.Err] reports the failure. Terminals that return
// an error hand it back. Terminals without an error result (Count, CountFunc,
// Any, All, IndexWhere, Reduce, …) see the failed view as empty, and
// SequenceEqual reports it equal to nothing; check Err when that matters.
package linq
