package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/flazor/stride/schema"
)

// Flatten maps one raw record to a FlatRecord. Nested mappings are
// flattened one level deep with concatenated names (parent_child);
// sequences are rendered to a single string column, or null when empty.
// Traversal follows the source's key order, and colliding column names
// resolve last-wins.
func Flatten(raw []byte) (*schema.FlatRecord, error) {
	rec := schema.NewFlatRecord()

	err := jsonparser.ObjectEach(raw, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name := string(key)

		if dataType == jsonparser.Object {
			return jsonparser.ObjectEach(value, func(nk, nv []byte, ndt jsonparser.ValueType, _ int) error {
				v, err := cellValue(nv, ndt)
				if err != nil {
					return err
				}
				rec.Set(fmt.Sprintf("%s_%s", name, nk), v)
				return nil
			})
		}

		v, err := cellValue(value, dataType)
		if err != nil {
			return err
		}
		rec.Set(name, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to flatten record: %w", err)
	}

	return rec, nil
}

// BuildTable flattens every record into a single table whose column set is
// the first-seen union across all records.
func BuildTable(records [][]byte) (*schema.Table, error) {
	table := schema.NewTable()
	for i, raw := range records {
		rec, err := Flatten(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		table.Append(rec)
	}
	return table, nil
}

// cellValue converts one parsed JSON value into a flat cell value.
// Sequences and any structure nested deeper than the one flattened level
// collapse to their compact JSON text; a cell holds scalars only.
func cellValue(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, err
		}
		return s, nil
	case jsonparser.Number:
		if i, err := strconv.ParseInt(string(value), 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(string(value), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Array:
		if empty, err := emptyArray(value); err != nil {
			return nil, err
		} else if empty {
			return nil, nil
		}
		return compactJSON(value)
	case jsonparser.Object:
		return compactJSON(value)
	default:
		return nil, fmt.Errorf("unsupported value type %s", dataType)
	}
}

func emptyArray(value []byte) (bool, error) {
	count := 0
	_, err := jsonparser.ArrayEach(value, func([]byte, jsonparser.ValueType, int, error) {
		count++
	})
	return count == 0, err
}

func compactJSON(value []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return "", err
	}
	return buf.String(), nil
}
