package domain

// Impact grades how much an insight matters.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// InsightType classifies an insight for rendering.
type InsightType string

const (
	InsightWarning     InsightType = "warning"
	InsightOpportunity InsightType = "opportunity"
	InsightPositive    InsightType = "positive"
)

// Insight is one normalized suggestion produced from a model completion.
// Insights are never stored; they only live in the response.
type Insight struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Impact      Impact      `json:"impact"`
	Type        InsightType `json:"type"`
	Savings     string      `json:"savings"` // "$" + number, e.g. "$120.5"
}
