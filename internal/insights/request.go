package insights

import (
	"encoding/json"
)

// RawRecord is a transaction-like object as received on the wire. Field types
// are not checked; the prompt builder substitutes defaults for anything missing.
type RawRecord map[string]any

// ParseRequest decodes an insight request body of the form {"expenses": [...]}.
// It returns a *ValidationError when the body is not an object or when
// "expenses" is missing, not an array, or empty.
func ParseRequest(body []byte) ([]RawRecord, error) {
	var req map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil || req == nil {
		return nil, &ValidationError{Message: msgInvalidBody}
	}

	rawExpenses, ok := req["expenses"]
	if !ok {
		return nil, &ValidationError{Message: msgNoExpenses}
	}

	var items []any
	if err := json.Unmarshal(rawExpenses, &items); err != nil || len(items) == 0 {
		return nil, &ValidationError{Message: msgNoExpenses}
	}

	records := make([]RawRecord, 0, len(items))
	for _, item := range items {
		// Non-object entries still count; they render with every field defaulted.
		obj, _ := item.(map[string]any)
		records = append(records, RawRecord(obj))
	}
	return records, nil
}

// validateRecords applies the same shape rule as ParseRequest to records that
// were built in-process rather than decoded from a body.
func validateRecords(records []RawRecord) error {
	if len(records) == 0 {
		return &ValidationError{Message: msgNoExpenses}
	}
	return nil
}
