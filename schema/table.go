package schema

// Table is a columnar container: an ordered set of column names plus one
// value slice per column, all aligned by row position. Column identity is
// derived purely from names; a column absent from an appended record holds
// nil for that row.
//
// Cell values are nil (null) or one of string, bool, int64, float64, or
// time.Time once coercion has run.
type Table struct {
	names []string
	cols  map[string][]any
	rows  int
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{cols: make(map[string][]any)}
}

// Append adds one record as a new row. Columns seen for the first time are
// backfilled with nil for all prior rows.
func (t *Table) Append(rec *FlatRecord) {
	for _, name := range rec.Columns() {
		t.ensureColumn(name)
	}
	for _, name := range t.names {
		v, ok := rec.Get(name)
		if !ok {
			v = nil
		}
		t.cols[name] = append(t.cols[name], v)
	}
	t.rows++
}

// EnsureColumns registers columns (in the given order) even when no row
// carries a value for them yet. Used when reconstructing a table whose
// schema is known up front.
func (t *Table) EnsureColumns(names []string) {
	for _, name := range names {
		t.ensureColumn(name)
	}
}

func (t *Table) ensureColumn(name string) {
	if _, ok := t.cols[name]; ok {
		return
	}
	t.names = append(t.names, name)
	col := make([]any, t.rows)
	t.cols[name] = col
}

// Columns returns the column names in first-seen order.
func (t *Table) Columns() []string { return t.names }

// HasColumn reports whether a column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return t.rows }

// NumColumns returns the column count.
func (t *Table) NumColumns() int { return len(t.names) }

// Value returns the cell at (column, row), or nil when the column is unknown.
func (t *Table) Value(name string, row int) any {
	col, ok := t.cols[name]
	if !ok || row < 0 || row >= len(col) {
		return nil
	}
	return col[row]
}

// SetValue replaces the cell at (column, row) in place. Unknown columns and
// out-of-range rows are ignored; coercion never adds rows or columns.
func (t *Table) SetValue(name string, row int, value any) {
	col, ok := t.cols[name]
	if !ok || row < 0 || row >= len(col) {
		return
	}
	col[row] = value
}

// Column returns the backing slice for a column, or nil when unknown.
func (t *Table) Column(name string) []any { return t.cols[name] }
