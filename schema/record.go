package schema

// FlatRecord is a single-level mapping from column name to scalar value.
// It remembers the order in which columns were first assigned, because the
// table's column order is defined as first-seen order across all records.
//
// Set follows last-wins semantics: assigning an already-used column name
// overwrites the earlier value without changing its position. This matters
// when a synthesized nested name (parent_child) collides with an existing
// flat key; the collision resolves in traversal order by overwrite.
type FlatRecord struct {
	keys []string
	vals map[string]any
}

// NewFlatRecord returns an empty FlatRecord.
func NewFlatRecord() *FlatRecord {
	return &FlatRecord{vals: make(map[string]any)}
}

// Set assigns a value to a column, appending the column on first use.
func (r *FlatRecord) Set(name string, value any) {
	if _, ok := r.vals[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.vals[name] = value
}

// Get returns the value for a column and whether the column is present.
func (r *FlatRecord) Get(name string) (any, bool) {
	v, ok := r.vals[name]
	return v, ok
}

// Columns returns the column names in first-assigned order.
func (r *FlatRecord) Columns() []string { return r.keys }

// Len returns the number of distinct columns.
func (r *FlatRecord) Len() int { return len(r.keys) }
