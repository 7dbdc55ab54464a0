package insights

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const promptHeader = `You are a financial advisor AI. Based on the following expense data, generate %d smart insights.

Each insight must include:
- title
- description
- impact (High, Medium, Low)
- potential savings (in dollars)
- type (warning, opportunity, positive)

Respond ONLY with a JSON array. No explanation, no markdown.

Here is the data:
`

// BuildPrompt renders at most max records, one per line, into the fixed
// instruction template. Records past max are dropped.
func BuildPrompt(records []RawRecord, max int) string {
	if max > 0 && len(records) > max {
		records = records[:max]
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, formatRecordLine(r))
	}

	var b strings.Builder
	fmt.Fprintf(&b, promptHeader, InsightCount)
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

// formatRecordLine renders "category | amount | date | type".
func formatRecordLine(r RawRecord) string {
	return strings.Join([]string{
		fieldOrDefault(r, "category", defaultCategory),
		fieldOrDefault(r, "amount", defaultAmount),
		fieldOrDefault(r, "date", defaultDateOrKind),
		fieldOrDefault(r, "type", defaultDateOrKind),
	}, " | ")
}

// fieldOrDefault returns the text form of r[key], or def when the value is
// missing or empty (nil, false, "", 0).
func fieldOrDefault(r RawRecord, key, def string) string {
	v, ok := r[key]
	if !ok || isEmptyValue(v) {
		return def
	}
	return valueText(v)
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0 || math.IsNaN(t)
	}
	return false
}

func valueText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return formatNumber(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// formatNumber renders v in its shortest round-trip form: 42, 12.5, 1e+21.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, found := strings.Cut(s, "e")
		if !found || len(exp) < 2 {
			return s
		}
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
