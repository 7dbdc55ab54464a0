package insights

// Defaults for insight generation.
const (
	// DefaultModelName is the Gemini model used for completions.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultTemperature is the sampling temperature sent with every completion.
	DefaultTemperature float32 = 0.7

	// MaxPromptRecords bounds how many records are rendered into the prompt.
	MaxPromptRecords = 20

	// InsightCount is the number of insights the prompt asks for.
	InsightCount = 3

	msgNoExpenses     = "No valid expenses provided"
	msgInvalidBody    = "Invalid request body"
	fallbackTitle     = "AI Suggestion"
	fallbackSavings   = "$0"
	defaultCategory   = "Unknown"
	defaultAmount     = "0"
	defaultDateOrKind = "N/A"
)
