package core

import (
	"testing"

	"github.com/flazor/stride/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairSingleArray(t *testing.T) {
	records, err := Repair([]byte(`[{"id": 1}, {"id": 2}]`))
	require.NoError(t, err)
	require.Len(t, records, 2, "Should parse both records")
	assert.JSONEq(t, `{"id": 1}`, string(records[0]))
	assert.JSONEq(t, `{"id": 2}`, string(records[1]))
}

func TestRepairConcatenatedArrays(t *testing.T) {
	// Two valid arrays appended with no separator must yield the elements
	// of the first followed by the elements of the second, in order.
	input := `[{"id": 1}, {"id": 2}][{"id": 3}]`

	records, err := Repair([]byte(input))
	require.NoError(t, err)
	require.Len(t, records, 3, "Should merge all records across arrays")
	assert.JSONEq(t, `{"id": 1}`, string(records[0]))
	assert.JSONEq(t, `{"id": 2}`, string(records[1]))
	assert.JSONEq(t, `{"id": 3}`, string(records[2]))
}

func TestRepairThreeConcatenatedArrays(t *testing.T) {
	input := `[{"id": 1}][{"id": 2}][{"id": 3}]`

	records, err := Repair([]byte(input))
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		id, err := recordID(rec)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id, "Records should keep concatenation order")
	}
}

func TestRepairTrailingEmptyArray(t *testing.T) {
	// Append-only writers leave empty-array debris at the end of the dump.
	records, err := Repair([]byte(`[{"id": 1}][]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.JSONEq(t, `{"id": 1}`, string(records[0]))
}

func TestRepairTrailingWhitespace(t *testing.T) {
	records, err := Repair([]byte("[{\"id\": 1}]\n\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestRepairMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"garbage", "not json at all"},
		{"empty", ""},
		{"empty array", "[]"},
		{"truncated record", `[{"id": 1}, {"id":`},
		{"non-object element", `[1, 2, 3]`},
		{"top-level object", `{"id": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Repair([]byte(tc.input))
			require.Error(t, err)

			var malformed *schema.MalformedInputError
			assert.ErrorAs(t, err, &malformed, "Failure must surface as MalformedInputError")
		})
	}
}

// recordID extracts the id cell from a flattened record for order checks.
func recordID(raw []byte) (int64, error) {
	rec, err := Flatten(raw)
	if err != nil {
		return 0, err
	}
	v, _ := rec.Get("id")
	return v.(int64), nil
}
