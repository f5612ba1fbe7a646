package storage

import "columnstore/types"

// BaseColumn is the uniform interface every column variant satisfies:
// positional read, append, and length. ValueColumn, DictionaryColumn, and
// ReferenceColumn are the closed set of implementations; hot paths (the
// dictionary fast-path scan, the raw-value scan) type-switch on the
// concrete type instead of going through this interface, which exists for
// the parts of Chunk and Table that must treat columns uniformly.
type BaseColumn interface {
	Get(i int) types.AllTypeVariant
	Append(v types.AllTypeVariant) error
	Size() int
}

// OnElementwiseCopy is called once per DictionaryColumn construction that
// cannot take the raw-slice fast path (the source column is not already a
// ValueColumn[T] of the matching type), with the number of elements
// copied. It defaults to a no-op; tests override it to assert the
// performance-warning path was taken without requiring a logging
// dependency this module otherwise never imports.
var OnElementwiseCopy func(columnSize int) = func(int) {}
