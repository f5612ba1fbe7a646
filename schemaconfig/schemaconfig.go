// Package schemaconfig loads a declarative TOML schema document into a
// storagemanager.Manager: one or more tables, each with a column list and
// literal rows, decoded with github.com/BurntSushi/toml and converted
// into storage.Table values the same way the rest of this module builds
// them — AddColumn followed by Append. It is schema *data* loading, not a
// query language: there is no expression evaluation and no SQL.
package schemaconfig

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"columnstore/storage"
	"columnstore/storagemanager"
	"columnstore/types"
)

// schemaFile is the top-level TOML document: a list of tables.
type schemaFile struct {
	Tables []tomlTable `toml:"tables"`
}

// tomlTable maps one [[tables]] entry.
type tomlTable struct {
	Name         string       `toml:"name"`
	MaxChunkSize int          `toml:"max_chunk_size"`
	Columns      []tomlColumn `toml:"columns"`
	Rows         []tomlRow    `toml:"rows"`
}

// tomlColumn maps one [[tables.columns]] entry.
type tomlColumn struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// tomlRow maps one [[tables.rows]] entry: one literal value per column,
// in column order.
type tomlRow struct {
	Values []any `toml:"values"`
}

// LoadFile opens the file at path and loads it as a schema config into mgr.
func LoadFile(path string, mgr *storagemanager.Manager) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("schemaconfig: open file %q: %w", path, err)
	}
	defer f.Close()

	return Load(f, mgr)
}

// Load reads a TOML schema config from r, builds one storage.Table per
// declared table, and registers each into mgr under its name.
func Load(r io.Reader, mgr *storagemanager.Manager) error {
	var sf schemaFile
	if _, err := toml.NewDecoder(r).Decode(&sf); err != nil {
		return fmt.Errorf("schemaconfig: decode: %w", err)
	}

	for i := range sf.Tables {
		tt := &sf.Tables[i]
		table, err := convertTable(tt)
		if err != nil {
			return fmt.Errorf("schemaconfig: table %q: %w", tt.Name, err)
		}
		if err := mgr.AddTable(tt.Name, table); err != nil {
			return fmt.Errorf("schemaconfig: table %q: %w", tt.Name, err)
		}
	}
	return nil
}

func convertTable(tt *tomlTable) (*storage.Table, error) {
	table := storage.NewTable(tt.MaxChunkSize)
	for _, col := range tt.Columns {
		if err := table.AddColumn(col.Name, col.Type); err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
	}

	for i, row := range tt.Rows {
		values, err := convertRowValues(tt, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := table.Append(values); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return table, nil
}

func convertRowValues(tt *tomlTable, row tomlRow) ([]types.AllTypeVariant, error) {
	if len(row.Values) != len(tt.Columns) {
		return nil, fmt.Errorf("got %d values, want %d (column count)", len(row.Values), len(tt.Columns))
	}
	out := make([]types.AllTypeVariant, len(row.Values))
	for i, v := range row.Values {
		coerced, err := coerceTOMLValue(v, tt.Columns[i].Type)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = coerced
	}
	return out, nil
}

// coerceTOMLValue narrows a value the TOML decoder produced (int64 for
// any integer, float64 for any float, string for any string) to the Go
// type the declared column type requires.
func coerceTOMLValue(v any, typeName string) (types.AllTypeVariant, error) {
	switch typeName {
	case "int":
		n, ok := v.(int64)
		if !ok {
			return nil, fmt.Errorf("expected integer for type %q, got %T", typeName, v)
		}
		return types.AllTypeVariant(int32(n)), nil
	case "long":
		n, ok := v.(int64)
		if !ok {
			return nil, fmt.Errorf("expected integer for type %q, got %T", typeName, v)
		}
		return types.AllTypeVariant(n), nil
	case "float":
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("expected float for type %q, got %T", typeName, v)
		}
		return types.AllTypeVariant(float32(f)), nil
	case "double":
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("expected float for type %q, got %T", typeName, v)
		}
		return types.AllTypeVariant(f), nil
	case "string":
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string for type %q, got %T", typeName, v)
		}
		return types.AllTypeVariant(s), nil
	default:
		return nil, fmt.Errorf("unknown type %q", typeName)
	}
}
