package storage

import (
	"fmt"
	"slices"

	"columnstore/types"
)

// DictionaryColumn is a sorted, deduplicated dictionary plus a
// width-fitted attribute vector of codes into it. It is built once, from
// any BaseColumn, by Table.CompressChunk, and is immutable afterward:
// Append always fails.
type DictionaryColumn[T types.ColumnValue] struct {
	dictionary      []T
	attributeVector AttributeVector
}

// NewDictionaryColumn builds a DictionaryColumn[T] from base, following
// the four-step construction contract: copy values, sort and dedupe into
// the dictionary, allocate a width-fitted attribute vector, then encode
// every offset as the dictionary index of its value.
func NewDictionaryColumn[T types.ColumnValue](base BaseColumn) (*DictionaryColumn[T], error) {
	working, err := collectValues[T](base)
	if err != nil {
		return nil, fmt.Errorf("storage: dictionary column: %w", err)
	}

	slices.Sort(working)
	dictionary := slices.Compact(working)

	width := types.WidthForCardinality(len(dictionary))
	av := newAttributeVector(base.Size(), width)

	for i := 0; i < base.Size(); i++ {
		v, err := types.TypeCast[T](base.Get(i))
		if err != nil {
			return nil, fmt.Errorf("storage: dictionary column: encode offset %d: %w", i, err)
		}
		av.Set(i, lowerBound(dictionary, v))
	}

	return &DictionaryColumn[T]{dictionary: dictionary, attributeVector: av}, nil
}

// collectValues copies base's values into a fresh []T, taking the direct
// raw-slice path when base is already a ValueColumn[T] and otherwise
// reading element by element through Get, a slower path that fires the
// OnElementwiseCopy hook.
func collectValues[T types.ColumnValue](base BaseColumn) ([]T, error) {
	if vc, ok := base.(*ValueColumn[T]); ok {
		out := make([]T, vc.Size())
		copy(out, vc.Values())
		return out, nil
	}

	OnElementwiseCopy(base.Size())
	out := make([]T, base.Size())
	for i := range out {
		v, err := types.TypeCast[T](base.Get(i))
		if err != nil {
			return nil, fmt.Errorf("copy offset %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// At returns the value at offset i, following the dictionary's indirect
// encoding back to a raw T.
func (c *DictionaryColumn[T]) At(i int) T {
	return c.dictionary[c.attributeVector.Get(i)]
}

// Get satisfies BaseColumn, boxing At(i) as AllTypeVariant.
func (c *DictionaryColumn[T]) Get(i int) types.AllTypeVariant {
	return c.At(i)
}

// Append always fails: a DictionaryColumn is immutable once built.
func (c *DictionaryColumn[T]) Append(types.AllTypeVariant) error {
	return fmt.Errorf("storage: dictionary column is immutable: append not supported")
}

// Size returns the number of encoded offsets (equal to the source
// column's size at construction time).
func (c *DictionaryColumn[T]) Size() int {
	return c.attributeVector.Size()
}

// Dictionary returns a copy of the sorted, deduplicated dictionary.
func (c *DictionaryColumn[T]) Dictionary() []T {
	out := make([]T, len(c.dictionary))
	copy(out, c.dictionary)
	return out
}

// AttributeVector returns the backing attribute vector.
func (c *DictionaryColumn[T]) AttributeVector() AttributeVector {
	return c.attributeVector
}

// UniqueValuesCount returns the dictionary's cardinality.
func (c *DictionaryColumn[T]) UniqueValuesCount() int {
	return len(c.dictionary)
}

// ValueByValueID returns the dictionary entry at the given code.
func (c *DictionaryColumn[T]) ValueByValueID(id types.ValueID) T {
	return c.dictionary[id]
}

// LowerBound returns the smallest ValueID k such that dictionary[k] >= v,
// or InvalidValueID if no such k exists.
func (c *DictionaryColumn[T]) LowerBound(v T) types.ValueID {
	return lowerBound(c.dictionary, v)
}

// UpperBound returns the smallest ValueID k such that dictionary[k] > v,
// or InvalidValueID if no such k exists.
func (c *DictionaryColumn[T]) UpperBound(v T) types.ValueID {
	return upperBound(c.dictionary, v)
}

// LowerBoundVariant is LowerBound for callers holding a boxed search
// value rather than a typed one (e.g. an operator dispatching generically
// over column type).
func (c *DictionaryColumn[T]) LowerBoundVariant(v types.AllTypeVariant) (types.ValueID, error) {
	t, err := types.TypeCast[T](v)
	if err != nil {
		return 0, fmt.Errorf("storage: dictionary column: lower_bound: %w", err)
	}
	return c.LowerBound(t), nil
}

// UpperBoundVariant is UpperBound's AllTypeVariant counterpart.
func (c *DictionaryColumn[T]) UpperBoundVariant(v types.AllTypeVariant) (types.ValueID, error) {
	t, err := types.TypeCast[T](v)
	if err != nil {
		return 0, fmt.Errorf("storage: dictionary column: upper_bound: %w", err)
	}
	return c.UpperBound(t), nil
}

// lowerBound finds the first index in dict whose value is >= v, using the
// same binary-search position slices.BinarySearch already computes for
// insertion.
func lowerBound[T types.ColumnValue](dict []T, v T) types.ValueID {
	pos, _ := slices.BinarySearch(dict, v)
	if pos >= len(dict) {
		return types.InvalidValueID
	}
	return types.ValueID(pos)
}

// upperBound finds the first index in dict whose value is > v. When v is
// present at pos, the match itself must be skipped; when absent, the
// insertion point slices.BinarySearch returns is already the first index
// greater than v.
func upperBound[T types.ColumnValue](dict []T, v T) types.ValueID {
	pos, found := slices.BinarySearch(dict, v)
	if found {
		pos++
	}
	if pos >= len(dict) {
		return types.InvalidValueID
	}
	return types.ValueID(pos)
}
