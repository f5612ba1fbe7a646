package storage

import (
	"fmt"

	"columnstore/types"
)

// Chunk is an ordered, equal-length tuple of columns: one horizontal
// slab of a Table.
type Chunk struct {
	columns []BaseColumn
}

// NewChunk returns an empty chunk.
func NewChunk() *Chunk {
	return &Chunk{}
}

// AddColumn appends col as the chunk's next column.
func (c *Chunk) AddColumn(col BaseColumn) {
	c.columns = append(c.columns, col)
}

// Append forwards each value in row to the corresponding column, failing
// if row's length does not match ColCount.
func (c *Chunk) Append(row []types.AllTypeVariant) error {
	if len(row) != len(c.columns) {
		return fmt.Errorf("storage: chunk append: got %d values, want %d (col_count)", len(row), len(c.columns))
	}
	for i, v := range row {
		if err := c.columns[i].Append(v); err != nil {
			return fmt.Errorf("storage: chunk append: column %d: %w", i, err)
		}
	}
	return nil
}

// Column returns the column at id, failing if id is out of range.
func (c *Chunk) Column(id types.ColumnID) (BaseColumn, error) {
	if int(id) >= len(c.columns) {
		return nil, fmt.Errorf("storage: chunk: column id %d out of range (chunk has %d columns)", id, len(c.columns))
	}
	return c.columns[id], nil
}

// columnAt is Column without the bounds check, for call sites (reference
// column resolution, chunk compression) that already know id is
// valid because it came from the schema, not from untrusted input.
func (c *Chunk) columnAt(id types.ColumnID) BaseColumn {
	return c.columns[id]
}

// ColCount returns the number of columns in the chunk.
func (c *Chunk) ColCount() int {
	return len(c.columns)
}

// Size returns the chunk's row count: 0 if it has no columns yet,
// otherwise the first column's size (every column in a chunk is required
// to have equal length).
func (c *Chunk) Size() int {
	if len(c.columns) == 0 {
		return 0
	}
	return c.columns[0].Size()
}
