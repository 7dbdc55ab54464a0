package insights

import (
	"errors"
	"testing"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantMsg string
	}{
		{name: "valid", body: `{"expenses":[{"category":"Food","amount":42}]}`, wantLen: 1},
		{name: "records are not type checked", body: `{"expenses":[{"amount":"lots"}, 7]}`, wantLen: 2},
		{name: "empty list", body: `{"expenses":[]}`, wantMsg: "No valid expenses provided"},
		{name: "missing field", body: `{"transactions":[{}]}`, wantMsg: "No valid expenses provided"},
		{name: "null field", body: `{"expenses":null}`, wantMsg: "No valid expenses provided"},
		{name: "not a list", body: `{"expenses":{"category":"Food"}}`, wantMsg: "No valid expenses provided"},
		{name: "not json", body: `expenses`, wantMsg: "Invalid request body"},
		{name: "top level array", body: `[{"category":"Food"}]`, wantMsg: "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseRequest([]byte(tt.body))
			if tt.wantMsg != "" {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("Expected ValidationError, got: %v", err)
				}
				if vErr.Message != tt.wantMsg {
					t.Errorf("Message = %q, want %q", vErr.Message, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest failed: %v", err)
			}
			if len(records) != tt.wantLen {
				t.Errorf("Expected %d records, got %d", tt.wantLen, len(records))
			}
		})
	}
}
