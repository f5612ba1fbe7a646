package operators

import (
	"fmt"

	"columnstore/storage"
	"columnstore/types"
)

// ScanType is the comparison TableScan applies between a column's values
// and its search value. All other values are rejected.
type ScanType string

const (
	Equals            ScanType = "Equals"
	NotEquals         ScanType = "NotEquals"
	LessThan          ScanType = "LessThan"
	LessThanEquals    ScanType = "LessThanEquals"
	GreaterThan       ScanType = "GreaterThan"
	GreaterThanEquals ScanType = "GreaterThanEquals"
)

// TableScan is a type-dispatched predicate scan: it filters the input
// operator's output by comparing the column at columnID against
// searchValue using scanType, and produces a Table of reference columns over the rows that match.
type TableScan struct {
	in          Operator
	columnID    types.ColumnID
	scanType    ScanType
	searchValue types.AllTypeVariant
}

// NewTableScan returns a TableScan reading from in.
func NewTableScan(in Operator, columnID types.ColumnID, scanType ScanType, searchValue types.AllTypeVariant) *TableScan {
	return &TableScan{in: in, columnID: columnID, scanType: scanType, searchValue: searchValue}
}

// Execute runs the input operator, scans its output column by column ID,
// and produces a reference table over the matching rows. Type mismatches
// between the column's declared element type and the dispatched
// encoding, an unsupported ScanType, and an out-of-range column ID are
// all returned as errors here rather than panicked — operator failure is
// reported uniformly through Execute's return, like any other operator.
func (op *TableScan) Execute() (*storage.Table, error) {
	inTable, err := op.in.Execute()
	if err != nil {
		return nil, fmt.Errorf("operators: table_scan: %w", err)
	}

	typeName, err := inTable.ColumnType(op.columnID)
	if err != nil {
		return nil, fmt.Errorf("operators: table_scan: %w", err)
	}

	positions, err := scanPositions(typeName, inTable, op.columnID, op.scanType, op.searchValue)
	if err != nil {
		return nil, fmt.Errorf("operators: table_scan: %w", err)
	}

	refTable, err := resolveReferencedTable(inTable, op.columnID)
	if err != nil {
		return nil, fmt.Errorf("operators: table_scan: %w", err)
	}

	out, err := buildOutputTable(inTable, refTable, positions)
	if err != nil {
		return nil, fmt.Errorf("operators: table_scan: %w", err)
	}
	return out, nil
}

// scanOutcome carries a scan's (positions, error) pair out of a
// types.Resolve call, whose factories return a single value.
type scanOutcome struct {
	positions types.PosList
	err       error
}

// scanPositions dispatches typeName to the matching generic runScan
// instantiation and returns its result.
func scanPositions(typeName string, table *storage.Table, columnID types.ColumnID, scanType ScanType, searchValue types.AllTypeVariant) (types.PosList, error) {
	outcome, err := types.Resolve(typeName, types.TypeVisitor[scanOutcome]{
		Int:    func() scanOutcome { return wrapScan(runScan[int32](table, columnID, scanType, searchValue)) },
		Long:   func() scanOutcome { return wrapScan(runScan[int64](table, columnID, scanType, searchValue)) },
		Float:  func() scanOutcome { return wrapScan(runScan[float32](table, columnID, scanType, searchValue)) },
		Double: func() scanOutcome { return wrapScan(runScan[float64](table, columnID, scanType, searchValue)) },
		String: func() scanOutcome { return wrapScan(runScan[string](table, columnID, scanType, searchValue)) },
	})
	if err != nil {
		return nil, err
	}
	return outcome.positions, outcome.err
}

func wrapScan(positions types.PosList, err error) scanOutcome {
	return scanOutcome{positions: positions, err: err}
}

// comparator is the predicate for one ScanType, specialised to T.
type comparator[T types.ColumnValue] func(value, search T) bool

func comparatorFor[T types.ColumnValue](scanType ScanType) (comparator[T], error) {
	switch scanType {
	case Equals:
		return func(v, s T) bool { return v == s }, nil
	case NotEquals:
		return func(v, s T) bool { return v != s }, nil
	case LessThan:
		return func(v, s T) bool { return v < s }, nil
	case LessThanEquals:
		return func(v, s T) bool { return v <= s }, nil
	case GreaterThan:
		return func(v, s T) bool { return v > s }, nil
	case GreaterThanEquals:
		return func(v, s T) bool { return v >= s }, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %q", scanType)
	}
}

// runScan is TableScanImpl<T>::execute(): coerce the search value once,
// then scan every chunk's column at columnID with the strategy matching
// its concrete encoding.
func runScan[T types.ColumnValue](table *storage.Table, columnID types.ColumnID, scanType ScanType, searchValue types.AllTypeVariant) (types.PosList, error) {
	search, err := types.TypeCast[T](searchValue)
	if err != nil {
		return nil, fmt.Errorf("coerce search value: %w", err)
	}

	cmp, err := comparatorFor[T](scanType)
	if err != nil {
		return nil, err
	}

	var positions types.PosList
	for chunkID := types.ChunkID(0); int(chunkID) < table.ChunkCount(); chunkID++ {
		chunk, err := table.GetChunk(chunkID)
		if err != nil {
			return nil, err
		}
		col, err := chunk.Column(columnID)
		if err != nil {
			return nil, err
		}

		switch c := col.(type) {
		case *storage.ValueColumn[T]:
			positions = scanValueColumn(c, chunkID, cmp, search, positions)
		case *storage.DictionaryColumn[T]:
			positions, err = scanDictionaryColumn(c, chunkID, scanType, search, positions)
			if err != nil {
				return nil, err
			}
		case *storage.ReferenceColumn:
			positions, err = scanReferenceColumn(c, cmp, search, positions)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("column %d has unexpected encoding %T for dispatched type %T", columnID, col, search)
		}
	}
	return positions, nil
}

// scanValueColumn is §4.9.1: iterate raw values, keep the rows matching cmp.
func scanValueColumn[T types.ColumnValue](col *storage.ValueColumn[T], chunkID types.ChunkID, cmp comparator[T], search T, out types.PosList) types.PosList {
	for offset, v := range col.Values() {
		if cmp(v, search) {
			out = append(out, types.RowID{ChunkID: chunkID, ChunkOffset: types.ChunkOffset(offset)})
		}
	}
	return out
}

// scanDictionaryColumn is §4.9.2: the fast path. It decodes no row's
// value — apart from reading dictionary entry k once for the exact-hit
// check, every decision is made against ValueIDs via lower_bound and the
// truth table below.
func scanDictionaryColumn[T types.ColumnValue](col *storage.DictionaryColumn[T], chunkID types.ChunkID, scanType ScanType, search T, out types.PosList) (types.PosList, error) {
	k := col.LowerBound(search)
	exact := k != types.InvalidValueID && col.ValueByValueID(k) == search

	match, err := codeMatcher(scanType, k, exact)
	if err != nil {
		return nil, err
	}

	av := col.AttributeVector()
	for offset := 0; offset < av.Size(); offset++ {
		if match(av.Get(offset)) {
			out = append(out, types.RowID{ChunkID: chunkID, ChunkOffset: types.ChunkOffset(offset)})
		}
	}
	return out, nil
}

// codeMatcher implements the §4.9.2 truth table: given k = lower_bound(search)
// and whether it is an exact dictionary hit, return the ValueID predicate
// equivalent to comparing the decoded value against search under scanType.
func codeMatcher(scanType ScanType, k types.ValueID, exact bool) (func(types.ValueID) bool, error) {
	switch {
	case k == types.InvalidValueID:
		// every dictionary value is < search.
		switch scanType {
		case Equals, GreaterThan, GreaterThanEquals:
			return func(types.ValueID) bool { return false }, nil
		case NotEquals, LessThan, LessThanEquals:
			return func(types.ValueID) bool { return true }, nil
		default:
			return nil, fmt.Errorf("unsupported scan type %q", scanType)
		}
	case exact:
		switch scanType {
		case Equals:
			return func(c types.ValueID) bool { return c == k }, nil
		case NotEquals:
			return func(c types.ValueID) bool { return c != k }, nil
		case LessThan:
			return func(c types.ValueID) bool { return c < k }, nil
		case LessThanEquals:
			return func(c types.ValueID) bool { return c <= k }, nil
		case GreaterThan:
			return func(c types.ValueID) bool { return c > k }, nil
		case GreaterThanEquals:
			return func(c types.ValueID) bool { return c >= k }, nil
		default:
			return nil, fmt.Errorf("unsupported scan type %q", scanType)
		}
	default:
		// k valid but not an exact hit: >/<= rewrite onto the same
		// boundary k (first dict index with value > search).
		switch scanType {
		case Equals:
			return func(types.ValueID) bool { return false }, nil
		case NotEquals:
			return func(types.ValueID) bool { return true }, nil
		case LessThan, LessThanEquals:
			return func(c types.ValueID) bool { return c < k }, nil
		case GreaterThan, GreaterThanEquals:
			return func(c types.ValueID) bool { return c >= k }, nil
		default:
			return nil, fmt.Errorf("unsupported scan type %q", scanType)
		}
	}
}

// scanReferenceColumn is §4.9.3: walk the position list, resolve each
// entry's value indirectly, and push matching entries through unchanged.
func scanReferenceColumn[T types.ColumnValue](col *storage.ReferenceColumn, cmp comparator[T], search T, out types.PosList) (types.PosList, error) {
	for i := 0; i < col.Size(); i++ {
		v, err := types.TypeCast[T](col.Get(i))
		if err != nil {
			return nil, fmt.Errorf("resolve reference entry %d: %w", i, err)
		}
		if cmp(v, search) {
			out = append(out, col.PositionAt(i))
		}
	}
	return out, nil
}

// resolveReferencedTable determines the table TableScan's output
// references. Per §9's resolution of the source's open question, only
// chunk 0's column is inspected: if it is itself a ReferenceColumn, the
// output references *its* referenced table (collapsing the indirection,
// never cascading); otherwise it references inTable directly.
func resolveReferencedTable(inTable *storage.Table, columnID types.ColumnID) (*storage.Table, error) {
	chunk, err := inTable.GetChunk(0)
	if err != nil {
		return nil, err
	}
	col, err := chunk.Column(columnID)
	if err != nil {
		return nil, err
	}
	if ref, ok := col.(*storage.ReferenceColumn); ok {
		return ref.ReferencedTable(), nil
	}
	return inTable, nil
}

// buildOutputTable constructs the Table TableScan.Execute returns: same
// schema as inTable, one chunk, one ReferenceColumn per input column, all
// sharing positions. Each output column i references refTable at
// inTable's column i's own referenced_column_id if column i is itself a
// ReferenceColumn, or at column i directly otherwise — the per-column
// counterpart of resolveReferencedTable's chunk-0 table resolution.
func buildOutputTable(inTable, refTable *storage.Table, positions types.PosList) (*storage.Table, error) {
	out, err := storage.NewTableWithSchema(inTable.ColumnNames(), inTable.ColumnTypes())
	if err != nil {
		return nil, err
	}

	srcChunk, err := inTable.GetChunk(0)
	if err != nil {
		return nil, err
	}

	chunk := storage.NewChunk()
	for i := 0; i < inTable.ColCount(); i++ {
		referencedColumnID := types.ColumnID(i)
		srcCol, err := srcChunk.Column(types.ColumnID(i))
		if err != nil {
			return nil, err
		}
		if ref, ok := srcCol.(*storage.ReferenceColumn); ok {
			referencedColumnID = ref.ReferencedColumnID()
		}
		chunk.AddColumn(storage.NewReferenceColumn(refTable, referencedColumnID, positions))
	}

	if err := out.EmplaceChunk(0, chunk); err != nil {
		return nil, err
	}
	return out, nil
}
