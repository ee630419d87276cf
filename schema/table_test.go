package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatRecordOrderAndLastWins(t *testing.T) {
	rec := NewFlatRecord()
	rec.Set("b", 1)
	rec.Set("a", 2)
	rec.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, rec.Columns(), "Reassignment keeps the original position")
	assert.Equal(t, 2, rec.Len())

	v, ok := rec.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestTableAppendBackfillsNewColumns(t *testing.T) {
	table := NewTable()

	rec := NewFlatRecord()
	rec.Set("a", int64(1))
	table.Append(rec)

	rec = NewFlatRecord()
	rec.Set("a", int64(2))
	rec.Set("b", "later")
	table.Append(rec)

	assert.Equal(t, []string{"a", "b"}, table.Columns())
	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, 2, table.NumColumns())
	assert.Nil(t, table.Value("b", 0), "Rows before a column appeared hold null")
	assert.Equal(t, "later", table.Value("b", 1))
	assert.Equal(t, int64(1), table.Value("a", 0))
}

func TestTableAppendFillsMissingColumns(t *testing.T) {
	table := NewTable()

	rec := NewFlatRecord()
	rec.Set("a", int64(1))
	rec.Set("b", "x")
	table.Append(rec)

	rec = NewFlatRecord()
	rec.Set("a", int64(2))
	table.Append(rec)

	assert.Equal(t, "x", table.Value("b", 0))
	assert.Nil(t, table.Value("b", 1), "Absent columns read as null")
}

func TestTableValueBounds(t *testing.T) {
	table := NewTable()
	rec := NewFlatRecord()
	rec.Set("a", int64(1))
	table.Append(rec)

	assert.Nil(t, table.Value("unknown", 0))
	assert.Nil(t, table.Value("a", -1))
	assert.Nil(t, table.Value("a", 1))
}

func TestTableSetValue(t *testing.T) {
	table := NewTable()
	rec := NewFlatRecord()
	rec.Set("a", "raw")
	table.Append(rec)

	table.SetValue("a", 0, 3.5)
	assert.Equal(t, 3.5, table.Value("a", 0))

	// Out-of-range writes are ignored, never panic.
	table.SetValue("a", 5, 1.0)
	table.SetValue("unknown", 0, 1.0)
	assert.Equal(t, 1, table.NumRows())
}

func TestTableColumn(t *testing.T) {
	table := NewTable()
	rec := NewFlatRecord()
	rec.Set("a", int64(1))
	table.Append(rec)
	rec = NewFlatRecord()
	rec.Set("a", int64(2))
	table.Append(rec)

	assert.Equal(t, []any{int64(1), int64(2)}, table.Column("a"))
	assert.Nil(t, table.Column("unknown"))
}

func TestTableEnsureColumns(t *testing.T) {
	table := NewTable()
	table.EnsureColumns([]string{"z", "a", "z"})

	assert.Equal(t, []string{"z", "a"}, table.Columns(), "Given order wins; duplicates ignored")
	assert.True(t, table.HasColumn("z"))
	assert.False(t, table.HasColumn("b"))
	assert.Zero(t, table.NumRows())
}

func TestColumnCatalogs(t *testing.T) {
	assert.True(t, IsNumericColumn("distance"))
	assert.True(t, IsNumericColumn("max_heartrate"))
	assert.False(t, IsNumericColumn("name"))
	assert.False(t, IsNumericColumn("start_date"))

	assert.True(t, IsDatetimeColumn("start_date"))
	assert.True(t, IsDatetimeColumn("start_date_local"))
	assert.True(t, IsDatetimeColumn("UPDATE_DATE"))
	assert.False(t, IsDatetimeColumn("timezone"))
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("disk full")

	var err error = &PersistenceError{Path: "/tmp/x.parquet", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/tmp/x.parquet")

	err = &MalformedInputError{Reason: "not json", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "not json")

	err = &MalformedInputError{Reason: "empty input"}
	assert.Equal(t, "malformed input: empty input", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
