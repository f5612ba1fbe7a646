package storage

import (
	"fmt"

	"columnstore/types"
)

// schemaMode tracks which of AddColumnDefinition/AddColumn a table was
// first built with — the two are mutually exclusive for the table's
// lifetime, not just for a single call.
type schemaMode int

const (
	schemaNone schemaMode = iota
	schemaLazy            // AddColumnDefinition: physical columns appear on first Append.
	schemaEager           // AddColumn: physical columns exist immediately.
)

// Table is a schema (column names/types) plus an ordered chunk list.
// Construction installs one empty chunk; schema is fixed by
// AddColumnDefinition/AddColumn before any row is appended, and is
// read-only afterward.
type Table struct {
	maxChunkSize int
	columnNames  []string
	columnTypes  []string
	chunks       []*Chunk
	mode         schemaMode
	materialized bool
}

// NewTable returns a table with the given max chunk size (0 means
// unbounded — only one chunk is ever created automatically) and a single
// empty chunk.
func NewTable(maxChunkSize int) *Table {
	return &Table{maxChunkSize: maxChunkSize, chunks: []*Chunk{NewChunk()}}
}

// NewTableWithSchema builds a table whose schema is the given names and
// type names, with a single chunk that holds no columns; the caller
// installs the real chunk with EmplaceChunk. It exists for operators
// (TableScan's output) that construct a table directly out of reference
// columns rather than through AddColumnDefinition/AddColumn/Append.
func NewTableWithSchema(columnNames, columnTypes []string) (*Table, error) {
	if len(columnNames) != len(columnTypes) {
		return nil, fmt.Errorf("storage: new_table_with_schema: %d names, %d types", len(columnNames), len(columnTypes))
	}
	for _, tn := range columnTypes {
		if !types.IsRegisteredType(tn) {
			return nil, fmt.Errorf("storage: new_table_with_schema: unknown type %q", tn)
		}
	}
	t := &Table{
		columnNames:  append([]string(nil), columnNames...),
		columnTypes:  append([]string(nil), columnTypes...),
		mode:         schemaEager,
		materialized: true,
		chunks:       []*Chunk{NewChunk()},
	}
	return t, nil
}

func (t *Table) emptyPrecondition() error {
	if t.RowCount() != 0 || len(t.chunks) != 1 {
		return fmt.Errorf("storage: schema must be fixed before any row is appended")
	}
	return nil
}

// AddColumnDefinition records schema only — the physical column is
// materialised lazily, on the first Append. Fails if AddColumn has
// already been called, or the table is no longer empty.
func (t *Table) AddColumnDefinition(name, typeName string) error {
	if t.mode == schemaEager {
		return fmt.Errorf("storage: add_column_definition: table already uses add_column")
	}
	if err := t.emptyPrecondition(); err != nil {
		return fmt.Errorf("storage: add_column_definition: %w", err)
	}
	if !types.IsRegisteredType(typeName) {
		return fmt.Errorf("storage: add_column_definition: unknown type %q", typeName)
	}
	t.mode = schemaLazy
	t.columnNames = append(t.columnNames, name)
	t.columnTypes = append(t.columnTypes, typeName)
	return nil
}

// AddColumn records schema and immediately materialises an empty
// ValueColumn[T] in chunk 0. Fails if AddColumnDefinition has already
// been called, or the table is no longer empty.
func (t *Table) AddColumn(name, typeName string) error {
	if t.mode == schemaLazy {
		return fmt.Errorf("storage: add_column: table already uses add_column_definition")
	}
	if err := t.emptyPrecondition(); err != nil {
		return fmt.Errorf("storage: add_column: %w", err)
	}
	col, err := newValueColumnFor(typeName)
	if err != nil {
		return fmt.Errorf("storage: add_column: %w", err)
	}
	t.mode = schemaEager
	t.columnNames = append(t.columnNames, name)
	t.columnTypes = append(t.columnTypes, typeName)
	t.chunks[0].AddColumn(col)
	t.materialized = true
	return nil
}

func (t *Table) materializeColumns() error {
	chunk := t.chunks[0]
	for _, tn := range t.columnTypes {
		col, err := newValueColumnFor(tn)
		if err != nil {
			return err
		}
		chunk.AddColumn(col)
	}
	t.materialized = true
	return nil
}

// Append materialises lazily-declared columns on first use, rolls over
// to a new chunk when the last one is full, then appends values to the
// last chunk.
func (t *Table) Append(values []types.AllTypeVariant) error {
	if t.mode == schemaNone {
		return fmt.Errorf("storage: append: no columns declared")
	}
	if !t.materialized {
		if err := t.materializeColumns(); err != nil {
			return fmt.Errorf("storage: append: %w", err)
		}
	}
	if t.maxChunkSize > 0 && t.chunks[len(t.chunks)-1].Size() >= t.maxChunkSize {
		if err := t.CreateNewChunk(); err != nil {
			return fmt.Errorf("storage: append: %w", err)
		}
	}
	last := t.chunks[len(t.chunks)-1]
	if err := last.Append(values); err != nil {
		return fmt.Errorf("storage: append: %w", err)
	}
	return nil
}

// CreateNewChunk allocates a new chunk, populates it with one empty
// ValueColumn[T] per declared column, and appends it to the table.
func (t *Table) CreateNewChunk() error {
	chunk := NewChunk()
	for _, tn := range t.columnTypes {
		col, err := newValueColumnFor(tn)
		if err != nil {
			return err
		}
		chunk.AddColumn(col)
	}
	t.chunks = append(t.chunks, chunk)
	return nil
}

// CompressChunk replaces the chunk at id with a new chunk whose i-th
// column is a DictionaryColumn built from the existing i-th column. The
// operation is lossless and preserves row order within the chunk.
func (t *Table) CompressChunk(id types.ChunkID) error {
	if int(id) >= len(t.chunks) {
		return fmt.Errorf("storage: compress_chunk: chunk id %d out of range (table has %d chunks)", id, len(t.chunks))
	}
	old := t.chunks[id]
	compressed := NewChunk()
	for i := 0; i < old.ColCount(); i++ {
		base := old.columnAt(types.ColumnID(i))
		dictCol, err := newDictionaryColumnFor(t.columnTypes[i], base)
		if err != nil {
			return fmt.Errorf("storage: compress_chunk: column %d: %w", i, err)
		}
		compressed.AddColumn(dictCol)
	}
	t.chunks[id] = compressed
	return nil
}

// EmplaceChunk replaces the chunk at id outright. It is used by operators
// building an output table directly (TableScan's reference columns), not
// by ordinary ingest, which goes through Append/CompressChunk.
func (t *Table) EmplaceChunk(id types.ChunkID, c *Chunk) error {
	if int(id) >= len(t.chunks) {
		return fmt.Errorf("storage: emplace_chunk: chunk id %d out of range (table has %d chunks)", id, len(t.chunks))
	}
	if c.ColCount() != t.ColCount() {
		return fmt.Errorf("storage: emplace_chunk: column count mismatch: got %d, want %d", c.ColCount(), t.ColCount())
	}
	t.chunks[id] = c
	return nil
}

// ColCount returns the number of declared columns.
func (t *Table) ColCount() int { return len(t.columnNames) }

// RowCount returns the sum of every chunk's size.
func (t *Table) RowCount() int {
	sum := 0
	for _, c := range t.chunks {
		sum += c.Size()
	}
	return sum
}

// ChunkCount returns the number of chunks.
func (t *Table) ChunkCount() int { return len(t.chunks) }

// ChunkSize returns the configured max chunk size (0 means unbounded).
func (t *Table) ChunkSize() int { return t.maxChunkSize }

// ColumnName returns the declared name of column id.
func (t *Table) ColumnName(id types.ColumnID) (string, error) {
	if int(id) >= len(t.columnNames) {
		return "", fmt.Errorf("storage: column_name: column id %d out of range (table has %d columns)", id, len(t.columnNames))
	}
	return t.columnNames[id], nil
}

// ColumnType returns the declared type name of column id.
func (t *Table) ColumnType(id types.ColumnID) (string, error) {
	if int(id) >= len(t.columnTypes) {
		return "", fmt.Errorf("storage: column_type: column id %d out of range (table has %d columns)", id, len(t.columnTypes))
	}
	return t.columnTypes[id], nil
}

// ColumnNames returns a copy of every declared column name, in schema order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.columnNames))
	copy(out, t.columnNames)
	return out
}

// ColumnTypes returns a copy of every declared column type name, in schema order.
func (t *Table) ColumnTypes() []string {
	out := make([]string, len(t.columnTypes))
	copy(out, t.columnTypes)
	return out
}

// ColumnIDByName linearly searches the schema for name, failing if absent.
func (t *Table) ColumnIDByName(name string) (types.ColumnID, error) {
	for i, n := range t.columnNames {
		if n == name {
			return types.ColumnID(i), nil
		}
	}
	return 0, fmt.Errorf("storage: column_id_by_name: no column named %q", name)
}

// GetChunk returns the chunk at id, failing if id is out of range.
func (t *Table) GetChunk(id types.ChunkID) (*Chunk, error) {
	if int(id) >= len(t.chunks) {
		return nil, fmt.Errorf("storage: get_chunk: chunk id %d out of range (table has %d chunks)", id, len(t.chunks))
	}
	return t.chunks[id], nil
}

// chunkAt is GetChunk without the bounds check, for call sites (reference
// column resolution) that already know id is valid.
func (t *Table) chunkAt(id types.ChunkID) *Chunk {
	return t.chunks[id]
}

// newValueColumnFor instantiates an empty ValueColumn of the concrete
// type typeName names.
func newValueColumnFor(typeName string) (BaseColumn, error) {
	return types.Resolve(typeName, types.TypeVisitor[BaseColumn]{
		Int:    func() BaseColumn { return NewValueColumn[int32]() },
		Long:   func() BaseColumn { return NewValueColumn[int64]() },
		Float:  func() BaseColumn { return NewValueColumn[float32]() },
		Double: func() BaseColumn { return NewValueColumn[float64]() },
		String: func() BaseColumn { return NewValueColumn[string]() },
	})
}

// compressResult carries a DictionaryColumn[T] out of a types.Resolve
// call as a plain BaseColumn, since TypeVisitor's factories cannot return
// a (value, error) pair directly.
type compressResult struct {
	col BaseColumn
	err error
}

func wrapDictionaryColumn[T types.ColumnValue](c *DictionaryColumn[T], err error) compressResult {
	if err != nil {
		return compressResult{err: err}
	}
	return compressResult{col: c}
}

// newDictionaryColumnFor builds a DictionaryColumn of the concrete type
// typeName names, from base.
func newDictionaryColumnFor(typeName string, base BaseColumn) (BaseColumn, error) {
	res, err := types.Resolve(typeName, types.TypeVisitor[compressResult]{
		Int:    func() compressResult { return wrapDictionaryColumn(NewDictionaryColumn[int32](base)) },
		Long:   func() compressResult { return wrapDictionaryColumn(NewDictionaryColumn[int64](base)) },
		Float:  func() compressResult { return wrapDictionaryColumn(NewDictionaryColumn[float32](base)) },
		Double: func() compressResult { return wrapDictionaryColumn(NewDictionaryColumn[float64](base)) },
		String: func() compressResult { return wrapDictionaryColumn(NewDictionaryColumn[string](base)) },
	})
	if err != nil {
		return nil, err
	}
	if res.err != nil {
		return nil, res.err
	}
	return res.col, nil
}
