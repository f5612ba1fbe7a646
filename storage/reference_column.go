package storage

import (
	"fmt"

	"columnstore/types"
)

// ReferenceColumn is a (referenced_table, referenced_column_id,
// position_list) view: it owns no data of its own, only a shared pointer
// to the table it resolves through and a shared position list. A
// ReferenceColumn never points to another ReferenceColumn — it always
// resolves to a ValueColumn or DictionaryColumn in the original table,
// an invariant TableScan's output construction upholds (see the
// operators package).
type ReferenceColumn struct {
	referencedTable    *Table
	referencedColumnID types.ColumnID
	positions          types.PosList
}

// NewReferenceColumn constructs a ReferenceColumn over table, pointing
// every entry in positions at columnID within that table.
func NewReferenceColumn(table *Table, columnID types.ColumnID, positions types.PosList) *ReferenceColumn {
	return &ReferenceColumn{referencedTable: table, referencedColumnID: columnID, positions: positions}
}

// ReferencedTable returns the table this column resolves through.
func (c *ReferenceColumn) ReferencedTable() *Table {
	return c.referencedTable
}

// ReferencedColumnID returns the column index resolved within
// ReferencedTable.
func (c *ReferenceColumn) ReferencedColumnID() types.ColumnID {
	return c.referencedColumnID
}

// PositionAt returns the i-th entry of the shared position list
// unchanged, letting a scan over a ReferenceColumn push positions through
// to its own output without renumbering them.
func (c *ReferenceColumn) PositionAt(i int) types.RowID {
	return c.positions[i]
}

// Get resolves entry i by indirection: look up its RowID in the
// referenced table and read the referenced column at that row. Indexing
// here is always into positions this module itself produced, so an
// out-of-range table/chunk/column access is an invariant violation, not a
// caller-facing condition — it panics via the unexported chunkAt/columnAt
// accessors rather than returning an error.
func (c *ReferenceColumn) Get(i int) types.AllTypeVariant {
	row := c.positions[i]
	chunk := c.referencedTable.chunkAt(row.ChunkID)
	col := chunk.columnAt(c.referencedColumnID)
	return col.Get(int(row.ChunkOffset))
}

// Append always fails: a ReferenceColumn never owns data to append to.
func (c *ReferenceColumn) Append(types.AllTypeVariant) error {
	return fmt.Errorf("storage: reference column does not support append")
}

// Size returns the length of the shared position list.
func (c *ReferenceColumn) Size() int {
	return len(c.positions)
}
