package insights

import (
	"strings"
	"testing"

	"github.com/dvloznov/spendwise/internal/domain"
)

func TestNormalize_ValidArray(t *testing.T) {
	raw := `[{"title":"Cut dining","description":"Eat in more","impact":"High","type":"warning","potential_savings":"$120.50"}]`

	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := domain.Insight{
		Title:       "Cut dining",
		Description: "Eat in more",
		Impact:      domain.ImpactHigh,
		Type:        domain.InsightWarning,
		Savings:     "$120.5",
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("Normalize() = %+v, want [%+v]", got, want)
	}
}

func TestNormalize_EmptyArrayIsNotFallback(t *testing.T) {
	got, err := Normalize("[]")
	if err != nil {
		t.Fatalf("Expected no error for empty array, got: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestNormalize_NotArray(t *testing.T) {
	for _, raw := range []string{"not json {", `{"title":"x"}`, `"text"`, ""} {
		t.Run(raw, func(t *testing.T) {
			if _, err := Normalize(raw); err == nil {
				t.Errorf("Expected error for %q", raw)
			}
		})
	}
}

func TestNormalize_DropsIncompleteEntries(t *testing.T) {
	raw := `[
		{"title":"ok","description":"d","impact":"Low","type":"positive","potentialSavings":15},
		{"description":"d","impact":"Low","type":"positive","potentialSavings":15},
		{"title":"no savings","description":"d","impact":"Low","type":"positive"},
		{"title":"bad savings","description":"d","impact":"Low","type":"positive","potential_savings":true},
		{"title":5,"description":"d","impact":"Low","type":"positive","potential_savings":1},
		42,
		null
	]`

	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 surviving insight, got %d: %+v", len(got), got)
	}
	if got[0].Title != "ok" || got[0].Savings != "$15" {
		t.Errorf("Unexpected insight: %+v", got[0])
	}
}

func TestNormalize_SavingsAliases(t *testing.T) {
	tests := []struct {
		name    string
		savings string
		want    string
	}{
		{"snake case number", `"potential_savings": 50`, "$50"},
		{"camel case string", `"potentialSavings": "$1,200"`, "$1200"},
		{"space separated", `"potential savings": "about $30.25/month"`, "$30.25"},
		{"snake wins over camel", `"potentialSavings": 1, "potential_savings": 2`, "$2"},
		{"negative", `"potential_savings": "-$40"`, "$-40"},
		{"unparseable text", `"potential_savings": "none"`, "$0"},
		{"empty text", `"potential_savings": ""`, "$0"},
		{"null alias skipped", `"potential_savings": null, "potentialSavings": 7`, "$7"},
		{"multiple dots", `"potential_savings": "1.2.3"`, "$1.2"},
		{"object alias wins and is zero", `"potential_savings": {"usd": 5}, "potentialSavings": 10`, "$0"},
		{"bool alias wins and is zero", `"potential_savings": true, "potentialSavings": 10`, "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `[{"title":"t","description":"d","impact":"Medium","type":"opportunity",` + tt.savings + `}]`
			got, err := Normalize(raw)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("Expected 1 insight, got %d", len(got))
			}
			if got[0].Savings != tt.want {
				t.Errorf("Savings = %q, want %q", got[0].Savings, tt.want)
			}
			if !strings.HasPrefix(got[0].Savings, "$") {
				t.Errorf("Savings %q does not start with $", got[0].Savings)
			}
		})
	}
}

func TestFallbackInsight(t *testing.T) {
	raw := "not json {"
	got := FallbackInsight(raw)

	want := domain.Insight{
		Title:       "AI Suggestion",
		Description: raw,
		Impact:      domain.ImpactMedium,
		Type:        domain.InsightOpportunity,
		Savings:     "$0",
	}
	if got != want {
		t.Errorf("FallbackInsight() = %+v, want %+v", got, want)
	}
}

func TestParseSavingsText(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$120.50", 120.5},
		{"120", 120},
		{".5", 0.5},
		{"5.", 5},
		{"--5", 0},
		{"-", 0},
		{"1-2", 1},
		{"USD 99.99 per year", 99.99},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseSavingsText(tt.in); got != tt.want {
				t.Errorf("parseSavingsText(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
