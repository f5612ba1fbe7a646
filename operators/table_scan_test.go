package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"columnstore/storage"
	"columnstore/types"
)

// source is a minimal Operator wrapping an already-built table, standing
// in for GetTable in tests that don't need a StorageManager.
type source struct {
	table *storage.Table
}

func (s *source) Execute() (*storage.Table, error) { return s.table, nil }

func newIntColumnTable(t *testing.T, maxChunkSize int, values ...int32) *storage.Table {
	t.Helper()
	table := storage.NewTable(maxChunkSize)
	require.NoError(t, table.AddColumn("v", "int"))
	for _, v := range values {
		require.NoError(t, table.Append([]types.AllTypeVariant{v}))
	}
	return table
}

func positionsOf(t *testing.T, table *storage.Table, columnID types.ColumnID) (types.PosList, *storage.Table) {
	t.Helper()
	chunk, err := table.GetChunk(0)
	require.NoError(t, err)
	col, err := chunk.Column(columnID)
	require.NoError(t, err)
	ref, ok := col.(*storage.ReferenceColumn)
	require.True(t, ok)

	out := make(types.PosList, ref.Size())
	for i := range out {
		out[i] = ref.PositionAt(i)
	}
	return out, ref.ReferencedTable()
}

func TestTableScanOnValueColumn(t *testing.T) {
	table := newIntColumnTable(t, 0, 0, 2, 4, 6, 8, 10)
	scan := NewTableScan(&source{table: table}, 0, GreaterThan, types.AllTypeVariant(int32(5)))

	out, err := scan.Execute()
	require.NoError(t, err)

	positions, refTable := positionsOf(t, out, 0)
	assert.Same(t, table, refTable)
	assert.Equal(t, types.PosList{
		{ChunkID: 0, ChunkOffset: 3},
		{ChunkID: 0, ChunkOffset: 4},
		{ChunkID: 0, ChunkOffset: 5},
	}, positions)
}

// S5 — scan on dictionary column with a non-existent search value.
func TestTableScanOnDictionaryColumnS5(t *testing.T) {
	table := newIntColumnTable(t, 0, 0, 2, 4, 6, 8, 10)
	require.NoError(t, table.CompressChunk(0))

	tests := []struct {
		name       string
		scanType   ScanType
		want       []int
	}{
		{"greater than", GreaterThan, []int{3, 4, 5}},
		{"less than", LessThan, []int{0, 1, 2}},
		{"equals", Equals, nil},
		{"not equals", NotEquals, []int{0, 1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan := NewTableScan(&source{table: table}, 0, tt.scanType, types.AllTypeVariant(int32(5)))
			out, err := scan.Execute()
			require.NoError(t, err)

			positions, _ := positionsOf(t, out, 0)
			want := make(types.PosList, len(tt.want))
			for i, off := range tt.want {
				want[i] = types.RowID{ChunkID: 0, ChunkOffset: types.ChunkOffset(off)}
			}
			assert.Equal(t, want, positions)
		})
	}
}

// Invariant 8 — encoding-agnostic scan.
func TestTableScanEncodingAgnostic(t *testing.T) {
	uncompressed := newIntColumnTable(t, 0, 0, 2, 4, 6, 8, 10)
	compressed := newIntColumnTable(t, 0, 0, 2, 4, 6, 8, 10)
	require.NoError(t, compressed.CompressChunk(0))

	for _, scanType := range []ScanType{Equals, NotEquals, LessThan, LessThanEquals, GreaterThan, GreaterThanEquals} {
		before, err := NewTableScan(&source{table: uncompressed}, 0, scanType, types.AllTypeVariant(int32(5))).Execute()
		require.NoError(t, err)
		after, err := NewTableScan(&source{table: compressed}, 0, scanType, types.AllTypeVariant(int32(5))).Execute()
		require.NoError(t, err)

		beforePositions, _ := positionsOf(t, before, 0)
		afterPositions, _ := positionsOf(t, after, 0)
		assert.ElementsMatchf(t, beforePositions, afterPositions, "scan type %v", scanType)
	}
}

// S6 — scan through reference, non-cascading.
func TestTableScanThroughReferenceS6(t *testing.T) {
	tableA := newIntColumnTable(t, 2, 10, 20, 30, 40)

	first := NewTableScan(&source{table: tableA}, 0, GreaterThan, types.AllTypeVariant(int32(15)))
	intermediate, err := first.Execute()
	require.NoError(t, err)

	firstPositions, firstRefTable := positionsOf(t, intermediate, 0)
	assert.Same(t, tableA, firstRefTable)
	assert.Equal(t, types.PosList{
		{ChunkID: 0, ChunkOffset: 1},
		{ChunkID: 1, ChunkOffset: 0},
		{ChunkID: 1, ChunkOffset: 1},
	}, firstPositions)

	second := NewTableScan(&source{table: intermediate}, 0, LessThan, types.AllTypeVariant(int32(40)))
	final, err := second.Execute()
	require.NoError(t, err)

	finalPositions, finalRefTable := positionsOf(t, final, 0)
	assert.Same(t, tableA, finalRefTable, "reference must not cascade through the intermediate table")
	assert.Equal(t, types.PosList{
		{ChunkID: 0, ChunkOffset: 1},
		{ChunkID: 1, ChunkOffset: 0},
	}, finalPositions)
}

func TestTableScanUnsupportedScanTypeFails(t *testing.T) {
	table := newIntColumnTable(t, 0, 1, 2, 3)
	scan := NewTableScan(&source{table: table}, 0, ScanType("Bogus"), types.AllTypeVariant(int32(1)))

	_, err := scan.Execute()
	require.Error(t, err)
}

func TestTableScanOutOfRangeColumnIDFails(t *testing.T) {
	table := newIntColumnTable(t, 0, 1, 2, 3)
	scan := NewTableScan(&source{table: table}, 5, Equals, types.AllTypeVariant(int32(1)))

	_, err := scan.Execute()
	require.Error(t, err)
}

func TestTableScanTypeMismatchFails(t *testing.T) {
	table := newIntColumnTable(t, 0, 1, 2, 3)
	scan := NewTableScan(&source{table: table}, 0, Equals, types.AllTypeVariant("not an int"))

	_, err := scan.Execute()
	require.Error(t, err)
}
