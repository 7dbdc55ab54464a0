package insights

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"

	"github.com/dvloznov/spendwise/internal/domain"
)

// errNotArray means the completion parsed as JSON but not as an array.
var errNotArray = errors.New("completion is not a JSON array")

// savingsAliases lists the keys a model may use for potential savings,
// in lookup order.
var savingsAliases = []string{
	"potential_savings",
	"potentialSavings",
	"potential savings",
}

var (
	nonNumericChars = regexp.MustCompile(`[^0-9.-]`)
	leadingFloat    = regexp.MustCompile(`^-?(?:\d+(?:\.\d*)?|\.\d+)`)
)

// Normalize parses a completion into insights. Entries missing a required
// text field or any savings value are dropped. An error means the completion
// was not a JSON array at all and the caller should fall back.
func Normalize(raw string) ([]domain.Insight, error) {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}

	entries, ok := parsed.([]any)
	if !ok {
		return nil, errNotArray
	}

	out := make([]domain.Insight, 0, len(entries))
	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok || !hasRequiredFields(obj) {
			continue
		}
		savings, ok := resolveSavings(obj)
		if !ok {
			continue
		}
		out = append(out, domain.Insight{
			Title:       obj["title"].(string),
			Description: obj["description"].(string),
			Impact:      domain.Impact(obj["impact"].(string)),
			Type:        domain.InsightType(obj["type"].(string)),
			Savings:     "$" + formatNumber(savings),
		})
	}
	return out, nil
}

// FallbackInsight wraps an unparseable completion so the caller still has
// something to render.
func FallbackInsight(raw string) domain.Insight {
	return domain.Insight{
		Title:       fallbackTitle,
		Description: raw,
		Impact:      domain.ImpactMedium,
		Type:        domain.InsightOpportunity,
		Savings:     fallbackSavings,
	}
}

func hasRequiredFields(obj map[string]any) bool {
	for _, key := range []string{"title", "description", "impact", "type"} {
		if _, ok := obj[key].(string); !ok {
			return false
		}
	}
	return true
}

// resolveSavings returns the value of the first non-null alias. A number
// or string must be present under some alias, otherwise ok is false. A
// resolved value that is neither is worth 0.
func resolveSavings(obj map[string]any) (float64, bool) {
	if !hasSavingsValue(obj) {
		return 0, false
	}
	for _, key := range savingsAliases {
		v, present := obj[key]
		if !present || v == nil {
			continue
		}
		switch v := v.(type) {
		case float64:
			return v, true
		case string:
			return parseSavingsText(v), true
		default:
			return 0, true
		}
	}
	return 0, true
}

func hasSavingsValue(obj map[string]any) bool {
	for _, key := range savingsAliases {
		switch obj[key].(type) {
		case float64, string:
			return true
		}
	}
	return false
}

// parseSavingsText keeps only digits, '.' and '-' and parses the longest
// numeric prefix of what remains. Anything unparseable is 0.
func parseSavingsText(s string) float64 {
	cleaned := nonNumericChars.ReplaceAllString(s, "")
	prefix := leadingFloat.FindString(cleaned)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}
