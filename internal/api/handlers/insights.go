package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendwise/internal/api/middleware"
	"github.com/dvloznov/spendwise/internal/domain"
	"github.com/dvloznov/spendwise/internal/insights"
)

// InsightGenerator produces insights from raw transaction records.
type InsightGenerator interface {
	Generate(ctx context.Context, records []insights.RawRecord) ([]domain.Insight, error)
}

// InsightsHandler handles the insight endpoint.
type InsightsHandler struct {
	svc InsightGenerator
	log zerolog.Logger
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(svc InsightGenerator, log zerolog.Logger) *InsightsHandler {
	return &InsightsHandler{
		svc: svc,
		log: log,
	}
}

// GetInsights handles POST /api/getInsights
func (h *InsightsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	records, err := insights.ParseRequest(body)
	if err == nil {
		var result []domain.Insight
		result, err = h.svc.Generate(r.Context(), records)
		if err == nil {
			middleware.WriteJSON(w, http.StatusOK, result)
			return
		}
	}

	var vErr *insights.ValidationError
	if errors.As(err, &vErr) {
		h.log.Warn().Str("reason", vErr.Message).Msg("Insight request rejected")
		middleware.WriteError(w, http.StatusBadRequest, vErr.Message)
		return
	}

	h.log.Error().Err(err).Msg("Failed to generate insights")
	middleware.WriteErrorDetails(w, http.StatusInternalServerError, "Internal error generating insights", err.Error())
}
