package linq

import (
	"cmp"
	"math"
	"math/big"
	"reflect"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// Number is the constraint satisfied by the element types of [Sum] and
// [Average].
type Number interface {
	constraints.Integer | constraints.Float
}

// Count returns the number of elements. It is O(1) on views whose length is
// known (slices, and Select/Reverse/Skip/Take/Concat over them) and O(n)
// otherwise.
func (q *Query[T]) Count() int {
	if q.size >= 0 {
		return q.size
	}
	n := 0
	for range q.seq {
		n++
	}
	return n
}

// CountFunc returns the number of elements for which fn returns true.
func (q *Query[T]) CountFunc(fn func(T) bool) int {
	if fn == nil {
		panic("linq.CountFunc: nil predicate")
	}
	n := 0
	for item := range q.seq {
		if fn(item) {
			n++
		}
	}
	return n
}

// Aggregate folds the elements from left to right. The first element is the
// seed; fn combines the running value with every following element.
// It returns [ErrEmptySequence] on an empty view.
//
//	s, _ := linq.New("a", "b", "c").Aggregate(func(acc, s string) string { return acc + s }) // "abc"
func (q *Query[T]) Aggregate(fn func(acc, item T) T) (T, error) {
	if fn == nil {
		panic("linq.Aggregate: nil function")
	}
	return q.fold("Aggregate", fn)
}

func (q *Query[T]) fold(op string, fn func(acc, item T) T) (T, error) {
	var acc T
	if q.err != nil {
		return acc, q.err
	}
	seeded := false
	for item := range q.seq {
		if !seeded {
			acc, seeded = item, true
			continue
		}
		acc = fn(acc, item)
	}
	if !seeded {
		return acc, q.fail(op, -1, ErrEmptySequence)
	}
	return acc, nil
}

// Reduce folds the elements from left to right starting from seed. Unlike
// [Query.Aggregate] it is defined on an empty view, where it returns seed.
//
//	total := linq.Reduce(orders, func(acc float64, o Order) float64 { return acc + o.Total }, 0)
func Reduce[T, U any](q *Query[T], fn func(acc U, item T) U, seed U) U {
	if fn == nil {
		panic("linq.Reduce: nil function")
	}
	acc := seed
	for item := range q.seq {
		acc = fn(acc, item)
	}
	return acc
}

// Sum adds up the elements. It returns [ErrEmptySequence] on an empty view:
// no identity element is assumed.
func Sum[T Number](q *Query[T]) (T, error) {
	return q.fold("Sum", func(a, b T) T { return a + b })
}

// Average returns Sum / Count. For integer types the division truncates
// toward zero; the sum is accumulated without overflow, so the mean of any
// number of int8 or uint8 values is exact up to that truncation.
// It returns [ErrDivisionByZero] on an empty view.
func Average[T Number](q *Query[T]) (T, error) {
	var zero T
	if q.err != nil {
		return zero, q.err
	}
	if isFloat[T]() {
		sum, n := zero, 0
		for item := range q.seq {
			sum += item
			n++
		}
		if n == 0 {
			return zero, q.fail("Average", -1, ErrDivisionByZero)
		}
		return sum / T(n), nil
	}

	sum, n := new(big.Int), int64(0)
	for item := range q.seq {
		sum.Add(sum, toBigInt(item))
		n++
	}
	if n == 0 {
		return zero, q.fail("Average", -1, ErrDivisionByZero)
	}
	mean := sum.Quo(sum, big.NewInt(n))
	if mean.IsInt64() {
		return T(mean.Int64()), nil
	}
	return T(mean.Uint64()), nil
}

// AverageDecimal returns the mean of the elements as a decimal, without the
// truncation integer division introduces. Quotients that do not terminate
// are rounded to [decimal.DivisionPrecision] digits.
// It returns [ErrDivisionByZero] on an empty view and [ErrNotFinite], naming
// the position, when a float element is NaN or infinite.
func AverageDecimal[T Number](q *Query[T]) (decimal.Decimal, error) {
	if q.err != nil {
		return decimal.Zero, q.err
	}
	sum := decimal.Zero
	n := int64(0)
	for item := range q.seq {
		d, ok := toDecimal(item)
		if !ok {
			return decimal.Zero, q.fail("AverageDecimal", int(n), ErrNotFinite)
		}
		sum = sum.Add(d)
		n++
	}
	if n == 0 {
		return decimal.Zero, q.fail("AverageDecimal", -1, ErrDivisionByZero)
	}
	return sum.Div(decimal.NewFromInt(n)), nil
}

func isFloat[T Number]() bool {
	k := reflect.TypeFor[T]().Kind()
	return k == reflect.Float32 || k == reflect.Float64
}

func toBigInt[T Number](v T) *big.Int {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint())
	default:
		return big.NewInt(rv.Int())
	}
}

// toDecimal reports false for NaN and infinities, which decimal cannot hold.
func toDecimal[T Number](v T) (decimal.Decimal, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(rv.Uint()), 0), true
	default:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(f), true
	}
}

// Min returns the smallest element. On ties the first one is returned.
// It returns [ErrEmptySequence] on an empty view.
func Min[T cmp.Ordered](q *Query[T]) (T, error) {
	return q.extremum("Min", cmp.Compare[T], -1)
}

// Max returns the largest element. On ties the first one is returned.
// It returns [ErrEmptySequence] on an empty view.
func Max[T cmp.Ordered](q *Query[T]) (T, error) {
	return q.extremum("Max", cmp.Compare[T], 1)
}

// MinFunc returns the smallest element under the three-way comparison fn.
// On ties the first one is returned.
func (q *Query[T]) MinFunc(fn func(a, b T) int) (T, error) {
	if fn == nil {
		panic("linq.MinFunc: nil comparison")
	}
	return q.extremum("MinFunc", fn, -1)
}

// MaxFunc returns the largest element under the three-way comparison fn.
// On ties the first one is returned.
func (q *Query[T]) MaxFunc(fn func(a, b T) int) (T, error) {
	if fn == nil {
		panic("linq.MaxFunc: nil comparison")
	}
	return q.extremum("MaxFunc", fn, 1)
}

// extremum keeps the first element that no later element beats in the
// direction of dir (-1 for minimum, 1 for maximum).
func (q *Query[T]) extremum(op string, fn func(a, b T) int, dir int) (T, error) {
	var best T
	if q.err != nil {
		return best, q.err
	}
	found := false
	for item := range q.seq {
		if !found {
			best, found = item, true
			continue
		}
		if c := fn(item, best); (dir < 0 && c < 0) || (dir > 0 && c > 0) {
			best = item
		}
	}
	if !found {
		return best, q.fail(op, -1, ErrEmptySequence)
	}
	return best, nil
}

// fail builds the error returned by a terminal operation and reports it to
// the query's logger.
func (q *Query[T]) fail(op string, index int, err error) error {
	e := newOpError(op, index, err)
	q.log.V(2).Info("operation failed", "op", op, "error", e.Error())
	return e
}
