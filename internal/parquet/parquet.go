// Package parquet persists the activity table as a Parquet snapshot using
// github.com/parquet-go/parquet-go, and reads snapshots back into tables.
package parquet

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/flazor/stride/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/snappy"
)

// columnOrderKey is the file metadata key carrying the table's first-seen
// column order. Parquet groups store fields sorted by name, so the logical
// order rides along as metadata and is restored on read.
const columnOrderKey = "stride.column_order"

// rowBatchSize bounds how many rows are materialized per write call.
const rowBatchSize = 512

// WriteTable serializes a coerced table to a Parquet file with full
// overwrite semantics. The data is written to a temporary file in the
// destination directory and renamed into place, so a concurrent reader
// never observes a half-written snapshot. Any failure returns a
// PersistenceError and leaves no partial file behind.
func WriteTable(t *schema.Table, path string, logger *slog.Logger) error {
	sch := buildSchema(t)

	order, err := json.Marshal(t.Columns())
	if err != nil {
		return &schema.PersistenceError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".stride-*.parquet")
	if err != nil {
		return &schema.PersistenceError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	writer := parquet.NewGenericWriter[map[string]any](tmp, sch,
		parquet.KeyValueMetadata(columnOrderKey, string(order)))

	for start := 0; start < t.NumRows(); start += rowBatchSize {
		end := min(start+rowBatchSize, t.NumRows())
		if _, err := writer.Write(buildRows(t, start, end)); err != nil {
			cleanup()
			return &schema.PersistenceError{Path: path, Err: fmt.Errorf("write rows: %w", err)}
		}
	}

	if err := writer.Close(); err != nil {
		cleanup()
		return &schema.PersistenceError{Path: path, Err: fmt.Errorf("close writer: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &schema.PersistenceError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &schema.PersistenceError{Path: path, Err: err}
	}

	logger.Info("wrote activity snapshot",
		"path", path,
		"records", t.NumRows(),
		"columns", t.NumColumns())
	return nil
}

// ReadTable loads a Parquet snapshot back into a table, restoring the
// logical column order from file metadata.
func ReadTable(path string) (*schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &schema.PersistenceError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, &schema.PersistenceError{Path: path, Err: err}
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, &schema.PersistenceError{Path: path, Err: fmt.Errorf("open parquet: %w", err)}
	}

	fields := pf.Schema().Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
	}

	t := schema.NewTable()
	t.EnsureColumns(columnOrder(pf, names))

	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(t, rg, names); err != nil {
			return nil, &schema.PersistenceError{Path: path, Err: err}
		}
	}
	return t, nil
}

// columnOrder restores the logical column order from metadata, falling back
// to the physical field order for files written by other tools.
func columnOrder(pf *parquet.File, physical []string) []string {
	raw, ok := pf.Lookup(columnOrderKey)
	if !ok {
		return physical
	}
	var order []string
	if err := json.Unmarshal([]byte(raw), &order); err != nil || len(order) != len(physical) {
		return physical
	}
	return order
}

func readRowGroup(t *schema.Table, rg parquet.RowGroup, names []string) error {
	rows := rg.Rows()
	defer func() { _ = rows.Close() }()

	buf := make([]parquet.Row, rowBatchSize)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			rec := schema.NewFlatRecord()
			for _, v := range row {
				if v.IsNull() {
					continue
				}
				name := names[v.Column()]
				rec.Set(name, cellFromValue(name, v))
			}
			t.Append(rec)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read rows: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}

func cellFromValue(name string, v parquet.Value) any {
	switch {
	case schema.IsDatetimeColumn(name):
		return time.UnixMilli(v.Int64()).UTC()
	case schema.IsNumericColumn(name):
		return v.Double()
	default:
		return string(v.ByteArray())
	}
}

// buildSchema derives the Parquet schema from the table's typed columns:
// datetime columns map to optional millisecond timestamps, numeric catalog
// columns to optional doubles, and everything else to optional strings.
// All columns are snappy-compressed.
func buildSchema(t *schema.Table) *parquet.Schema {
	group := parquet.Group{}
	for _, name := range t.Columns() {
		var node parquet.Node
		switch {
		case schema.IsDatetimeColumn(name):
			node = parquet.Timestamp(parquet.Millisecond)
		case schema.IsNumericColumn(name):
			node = parquet.Leaf(parquet.DoubleType)
		default:
			node = parquet.String()
		}
		group[name] = parquet.Optional(parquet.Compressed(node, &snappy.Codec{}))
	}
	return parquet.NewSchema("activities", group)
}

// buildRows materializes rows [start, end) as map rows for the generic
// writer. Nil cells are omitted so optional columns encode them as nulls.
func buildRows(t *schema.Table, start, end int) []map[string]any {
	out := make([]map[string]any, 0, end-start)
	for row := start; row < end; row++ {
		m := make(map[string]any, t.NumColumns())
		for _, name := range t.Columns() {
			v := t.Value(name, row)
			if v == nil {
				continue
			}
			if cell, ok := cellToValue(name, v); ok {
				m[name] = cell
			}
		}
		out = append(out, m)
	}
	return out
}

// cellToValue maps a table cell onto its physical column type. Cells that
// do not fit their column's type (possible only on an uncoerced table)
// encode as null, mirroring the coercer's null-on-failure policy.
func cellToValue(name string, v any) (any, bool) {
	switch {
	case schema.IsDatetimeColumn(name):
		ts, ok := v.(time.Time)
		if !ok {
			return nil, false
		}
		return ts.UnixMilli(), true
	case schema.IsNumericColumn(name):
		switch n := v.(type) {
		case float64:
			return n, true
		case int64:
			return float64(n), true
		}
		return nil, false
	default:
		return stringify(v), true
	}
}

// stringify renders any remaining scalar as an opaque string cell.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case time.Time:
		return s.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", s)
	}
}
