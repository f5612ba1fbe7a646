package storage

import (
	"fmt"

	"columnstore/types"
)

// ValueColumn is an append-only typed sequence: the encoding every column
// starts in, before (optionally) being replaced by a DictionaryColumn
// during chunk compression.
type ValueColumn[T types.ColumnValue] struct {
	values []T
}

// NewValueColumn returns an empty ValueColumn[T].
func NewValueColumn[T types.ColumnValue]() *ValueColumn[T] {
	return &ValueColumn[T]{}
}

// Values returns the raw backing slice, letting fast paths (the
// ValueColumn scan strategy, direct-copy dictionary construction) iterate
// without paying for AllTypeVariant boxing on every element. Callers must
// not mutate the result.
func (c *ValueColumn[T]) Values() []T {
	return c.values
}

// Get returns the value at i, boxed as AllTypeVariant, satisfying
// BaseColumn. Out-of-range i panics via the native slice index, matching
// every other column variant's Get.
func (c *ValueColumn[T]) Get(i int) types.AllTypeVariant {
	return c.values[i]
}

// Append coerces v to T and appends it.
func (c *ValueColumn[T]) Append(v types.AllTypeVariant) error {
	t, err := types.TypeCast[T](v)
	if err != nil {
		return fmt.Errorf("storage: value column append: %w", err)
	}
	c.values = append(c.values, t)
	return nil
}

// Size returns the number of values appended so far.
func (c *ValueColumn[T]) Size() int {
	return len(c.values)
}
