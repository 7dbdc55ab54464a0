package insights

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/dvloznov/spendwise/internal/domain"
)

// Config holds the fixed parameters of every completion call. A nil
// Temperature takes the default; zero is a valid temperature.
type Config struct {
	Model       string
	Temperature *float32
	MaxRecords  int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Model:       DefaultModelName,
		Temperature: genai.Ptr(DefaultTemperature),
		MaxRecords:  MaxPromptRecords,
	}
}

// Service turns a list of transaction records into insights by way of one
// completion call. It holds no per-request state and is safe for concurrent use.
type Service struct {
	completer Completer
	cfg       Config
	log       zerolog.Logger
}

// NewService creates a new insight service. Zero fields in cfg take defaults.
func NewService(completer Completer, cfg Config, log zerolog.Logger) *Service {
	def := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Temperature == nil {
		cfg.Temperature = def.Temperature
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = def.MaxRecords
	}
	return &Service{
		completer: completer,
		cfg:       cfg,
		log:       log,
	}
}

// Generate builds the prompt, calls the provider once and normalizes the
// completion. The only errors are *ValidationError (nothing was sent) and
// *UpstreamError (the provider call failed). An unparseable completion is
// not an error: it comes back as a single fallback insight.
func (s *Service) Generate(ctx context.Context, records []RawRecord) ([]domain.Insight, error) {
	if err := validateRecords(records); err != nil {
		s.log.Warn().Msg("Insight request rejected: no records")
		return nil, err
	}

	prompt := BuildPrompt(records, s.cfg.MaxRecords)
	s.log.Info().
		Int("records", len(records)).
		Int("prompt_length", len(prompt)).
		Str("model", s.cfg.Model).
		Msg("Requesting insights")

	raw, err := s.completer.Complete(ctx, CompletionRequest{
		Model:       s.cfg.Model,
		Prompt:      prompt,
		Temperature: *s.cfg.Temperature,
	})
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	insights, err := Normalize(raw)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("raw", raw).
			Msg("Completion is not a JSON array, returning fallback insight")
		return []domain.Insight{FallbackInsight(raw)}, nil
	}

	s.log.Info().Int("insights", len(insights)).Msg("Parsed insights")
	return insights, nil
}
