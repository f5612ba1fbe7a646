package types

import "fmt"

// ColumnValue is the closed set of element types a column may hold: 32-bit
// signed integer, 64-bit signed integer, 32-bit float, 64-bit float, and
// string. It is deliberately narrower than cmp.Ordered — every type in the
// set is one AllTypeVariant can actually carry, and no others.
type ColumnValue interface {
	~int32 | ~int64 | ~float32 | ~float64 | ~string
}

// AllTypeVariant is a tagged union over the five supported element types.
// Values are held as plain `any`, restricted by convention (and by
// TypeCast's assertion) to int32, int64, float32, float64, or string.
type AllTypeVariant any

// TypeCast coerces v to T, the concrete element type a caller expects it
// to hold. It returns a coercion error — rather than panicking the way a
// bare Go type assertion would — because every caller sits on an
// error-returning code path already (value column append, dictionary
// construction, scan comparison) and should not introduce a panic/recover
// boundary to stay in that idiom.
func TypeCast[T ColumnValue](v AllTypeVariant) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("types: type_cast: value %v (%T) is not assignable to %T", v, v, zero)
	}
	return t, nil
}
