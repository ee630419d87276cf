// Package core has the normalization and aggregation pipeline for stride:
// repairing raw activity dumps, flattening records, coercing column types,
// and deriving daily/calendar aggregates.
package core

import (
	"encoding/json"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/flazor/stride/schema"
)

// Repair fixes a raw activity dump that may contain multiple concatenated
// top-level JSON arrays (the artifact of an append-only writer interleaving
// fetch runs) and returns the raw bytes of each record in order.
//
// The repair is strictly structural: adjacent `][` markers are collapsed
// into a single separator, trailing bracket debris and separators are
// stripped, and a closing bracket is re-appended when missing. Anything
// more exotic fails with a MalformedInputError.
func Repair(input []byte) ([][]byte, error) {
	text := strings.TrimSpace(string(input))
	if text == "" {
		return nil, &schema.MalformedInputError{Reason: "empty input"}
	}

	if strings.Contains(text, "][") {
		text = strings.ReplaceAll(text, "][", ",")
	}

	// Trailing empty-array debris, then stray separators.
	text = strings.TrimRight(text, " \t\r\n")
	text = strings.TrimRight(text, "[]")
	text = strings.TrimRight(text, " \t\r\n,")
	if !strings.HasSuffix(text, "]") {
		text += "]"
	}

	repaired := []byte(text)
	if !json.Valid(repaired) {
		return nil, &schema.MalformedInputError{Reason: "input is not a valid record array after repair"}
	}

	var records [][]byte
	var badElement bool
	if _, err := jsonparser.ArrayEach(repaired, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType != jsonparser.Object {
			badElement = true
			return
		}
		// value aliases the repaired buffer; records outlive it, so copy.
		rec := make([]byte, len(value))
		copy(rec, value)
		records = append(records, rec)
	}); err != nil {
		return nil, &schema.MalformedInputError{Reason: "top-level value is not an array", Err: err}
	}
	if badElement {
		return nil, &schema.MalformedInputError{Reason: "array contains a non-object record"}
	}

	return records, nil
}
