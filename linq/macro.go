package linq

import (
	"fmt"
	"reflect"
	"sync"
)

// MacroFunc is a named, reusable query step for elements of type T. It
// receives the view it is applied to and the arguments passed to
// [Query.Macro]; a returned error becomes the sticky error of the result.
type MacroFunc[T any] func(q *Query[T], args ...any) (*Query[T], error)

// Macros are filed by name and element type, so "top" for Query[int] and
// "top" for Query[string] are different entries.
type macroKey struct {
	name string
	elem reflect.Type
}

var macros = struct {
	sync.RWMutex
	steps map[macroKey]any
}{steps: make(map[macroKey]any)}

// RegisterMacro files fn under name for queries over T, replacing any step
// already registered for the same name and type.
//
//	linq.RegisterMacro("top", func(q *linq.Query[int], args ...any) (*linq.Query[int], error) {
//	    n, ok := args[0].(int)
//	    if !ok {
//	        return nil, fmt.Errorf("top: want an int, got %T", args[0])
//	    }
//	    return linq.OrderByDescending(q).Take(0, n), nil
//	})
//
//	linq.New(4, 9, 1, 7).Macro("top", 2).ToSlice() // → [9 7]
func RegisterMacro[T any](name string, fn MacroFunc[T]) {
	if fn == nil {
		panic("linq.RegisterMacro: nil macro")
	}
	macros.Lock()
	defer macros.Unlock()
	macros.steps[macroKey{name, reflect.TypeFor[T]()}] = fn
}

// HasMacro reports whether a step named name is registered for queries over T.
func HasMacro[T any](name string) bool {
	_, ok := lookupMacro[T](name)
	return ok
}

// FlushMacros removes every registered step.
func FlushMacros() {
	macros.Lock()
	defer macros.Unlock()
	clear(macros.steps)
}

func lookupMacro[T any](name string) (MacroFunc[T], bool) {
	macros.RLock()
	defer macros.RUnlock()
	fn, ok := macros.steps[macroKey{name, reflect.TypeFor[T]()}]
	if !ok {
		return nil, false
	}
	return fn.(MacroFunc[T]), true
}

// Macro applies the step registered under name for T. Like the other
// adaptors it never fails outright: an unknown name, or an error returned
// by the step, is reported by Err on the resulting view. A nil result is an
// empty view.
func (q *Query[T]) Macro(name string, args ...any) *Query[T] {
	if q.err != nil {
		return q
	}
	fn, ok := lookupMacro[T](name)
	if !ok {
		return q.failed(newOpError("Macro", -1, fmt.Errorf("%w: %q", ErrMacroNotFound, name)))
	}
	out, err := fn(q, args...)
	if err != nil {
		return q.failed(newOpError("Macro", -1, fmt.Errorf("%q: %w", name, err)))
	}
	if out == nil {
		return q.materialized(nil)
	}
	return out
}
