// Package types holds the data-model primitives shared across the storage
// and operator packages: row/column/chunk identifiers, the tagged
// AllTypeVariant union, and the type-name registry used to dispatch
// generic code onto a concrete element type at runtime.
package types

// ChunkID indexes a table's chunk list.
type ChunkID uint32

// ChunkOffset indexes a row within a single chunk.
type ChunkOffset uint32

// ColumnID indexes a table's (or chunk's) column list.
type ColumnID uint16

// RowID identifies a single row by the chunk it lives in and its offset
// within that chunk.
type RowID struct {
	ChunkID     ChunkID
	ChunkOffset ChunkOffset
}

// PosList is an ordered sequence of RowIDs, as produced by a TableScan and
// consumed by a ReferenceColumn.
type PosList []RowID
