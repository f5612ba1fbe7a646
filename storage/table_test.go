package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"columnstore/types"
)

// newFoobarTable builds the table used by S1: max_chunk_size=2, columns
// ("pk","int") and ("name","string"), five rows appended.
func newFoobarTable(t *testing.T) *Table {
	t.Helper()
	table := NewTable(2)
	require.NoError(t, table.AddColumn("pk", "int"))
	require.NoError(t, table.AddColumn("name", "string"))

	rows := [][2]any{
		{int32(1), "foo"},
		{int32(2), "bar"},
		{int32(3), "spam"},
		{int32(4), "eggs"},
		{int32(5), "elephant"},
	}
	for _, row := range rows {
		require.NoError(t, table.Append([]types.AllTypeVariant{row[0], row[1]}))
	}
	return table
}

// S1 — storage manager report (table shape portion; the Print format
// itself is exercised in the storagemanager package).
func TestTableChunkingMatchesS1(t *testing.T) {
	table := newFoobarTable(t)

	assert.Equal(t, 2, table.ColCount())
	assert.Equal(t, 5, table.RowCount())
	assert.Equal(t, 3, table.ChunkCount())
}

// Invariant 6 — chunking: every chunk but the last has size == max_chunk_size.
func TestTableChunkSizesExceptLast(t *testing.T) {
	table := newFoobarTable(t)
	for id := types.ChunkID(0); id < types.ChunkID(table.ChunkCount()-1); id++ {
		chunk, err := table.GetChunk(id)
		require.NoError(t, err)
		assert.Equal(t, table.ChunkSize(), chunk.Size())
	}
}

func TestNewTableStartsWithOneEmptyChunk(t *testing.T) {
	table := NewTable(0)
	assert.Equal(t, 1, table.ChunkCount())
	assert.Equal(t, 0, table.RowCount())
}

// S7 — schema-definition mutual exclusion.
func TestAddColumnThenAddColumnDefinitionFails(t *testing.T) {
	table := NewTable(0)
	require.NoError(t, table.AddColumn("a", "int"))
	err := table.AddColumnDefinition("b", "string")
	require.Error(t, err)
}

func TestAddColumnDefinitionThenAddColumnFails(t *testing.T) {
	table := NewTable(0)
	require.NoError(t, table.AddColumnDefinition("a", "int"))
	err := table.AddColumn("b", "string")
	require.Error(t, err)
}

func TestAddColumnOnNonEmptyTableFails(t *testing.T) {
	table := NewTable(0)
	require.NoError(t, table.AddColumn("a", "int"))
	require.NoError(t, table.Append([]types.AllTypeVariant{int32(1)}))

	err := table.AddColumn("b", "string")
	require.Error(t, err)
}

// S8 — lazy materialisation.
func TestAddColumnDefinitionMaterialisesLazily(t *testing.T) {
	table := NewTable(0)
	require.NoError(t, table.AddColumnDefinition("a", "int"))
	require.NoError(t, table.AddColumnDefinition("b", "string"))

	chunk, err := table.GetChunk(0)
	require.NoError(t, err)
	assert.Equal(t, 0, chunk.ColCount())

	require.NoError(t, table.Append([]types.AllTypeVariant{int32(1), "x"}))

	chunk, err = table.GetChunk(0)
	require.NoError(t, err)
	assert.Equal(t, 2, chunk.ColCount())
	assert.Equal(t, 1, table.RowCount())
}

// S9 — compression preserves per-chunk sizes.
func TestCompressChunkPreservesChunkSizes(t *testing.T) {
	table := newFoobarTable(t)
	sizesBefore := make([]int, table.ChunkCount())
	for id := types.ChunkID(0); id < types.ChunkID(table.ChunkCount()); id++ {
		chunk, err := table.GetChunk(id)
		require.NoError(t, err)
		sizesBefore[id] = chunk.Size()
	}

	require.NoError(t, table.CompressChunk(1))

	for id := types.ChunkID(0); id < types.ChunkID(table.ChunkCount()); id++ {
		chunk, err := table.GetChunk(id)
		require.NoError(t, err)
		assert.Equal(t, sizesBefore[id], chunk.Size())
	}
	assert.Equal(t, 5, table.RowCount())
	assert.Equal(t, 2, table.ColCount())
}

// Invariant 5 — row preservation after compression.
func TestCompressChunkPreservesValues(t *testing.T) {
	table := newFoobarTable(t)
	require.NoError(t, table.CompressChunk(0))

	chunk, err := table.GetChunk(0)
	require.NoError(t, err)
	col, err := chunk.Column(0)
	require.NoError(t, err)
	assert.Equal(t, types.AllTypeVariant(int32(1)), col.Get(0))
	assert.Equal(t, types.AllTypeVariant(int32(2)), col.Get(1))

	nameCol, err := chunk.Column(1)
	require.NoError(t, err)
	assert.Equal(t, types.AllTypeVariant("foo"), nameCol.Get(0))
}

func TestColumnIDByNameAndAccessors(t *testing.T) {
	table := newFoobarTable(t)

	id, err := table.ColumnIDByName("name")
	require.NoError(t, err)
	assert.Equal(t, types.ColumnID(1), id)

	_, err = table.ColumnIDByName("missing")
	require.Error(t, err)

	name, err := table.ColumnName(0)
	require.NoError(t, err)
	assert.Equal(t, "pk", name)

	typeName, err := table.ColumnType(1)
	require.NoError(t, err)
	assert.Equal(t, "string", typeName)

	assert.Equal(t, []string{"pk", "name"}, table.ColumnNames())
	assert.Equal(t, []string{"int", "string"}, table.ColumnTypes())
}

func TestGetChunkOutOfRangeFails(t *testing.T) {
	table := NewTable(0)
	_, err := table.GetChunk(5)
	require.Error(t, err)
}

func TestCompressChunkOutOfRangeFails(t *testing.T) {
	table := NewTable(0)
	err := table.CompressChunk(5)
	require.Error(t, err)
}

func TestNewTableWithSchemaAndEmplaceChunk(t *testing.T) {
	table, err := NewTableWithSchema([]string{"a", "b"}, []string{"int", "string"})
	require.NoError(t, err)
	assert.Equal(t, 2, table.ColCount())
	assert.Equal(t, 1, table.ChunkCount())

	replacement := NewChunk()
	replacement.AddColumn(NewValueColumn[int32]())
	replacement.AddColumn(NewValueColumn[string]())
	require.NoError(t, table.EmplaceChunk(0, replacement))

	mismatched := NewChunk()
	mismatched.AddColumn(NewValueColumn[int32]())
	err = table.EmplaceChunk(0, mismatched)
	require.Error(t, err)
}

func TestNewTableWithSchemaRejectsUnknownType(t *testing.T) {
	_, err := NewTableWithSchema([]string{"a"}, []string{"bool"})
	require.Error(t, err)
}
