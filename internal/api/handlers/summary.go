package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendwise/internal/api/middleware"
	"github.com/dvloznov/spendwise/internal/domain"
	"github.com/dvloznov/spendwise/internal/storage"
	"github.com/dvloznov/spendwise/internal/summary"
)

// SummaryHandler serves aggregated views over an owner's transactions.
type SummaryHandler struct {
	repo   storage.TransactionRepository
	budget float64
	log    zerolog.Logger
}

// NewSummaryHandler creates a new summary handler. budget is used as the
// budget limit when an owner has no recorded income.
func NewSummaryHandler(repo storage.TransactionRepository, budget float64, log zerolog.Logger) *SummaryHandler {
	return &SummaryHandler{
		repo:   repo,
		budget: budget,
		log:    log,
	}
}

func (h *SummaryHandler) loadAll(w http.ResponseWriter, r *http.Request) ([]domain.TransactionRecord, bool) {
	ctx := r.Context()
	records, err := h.repo.ListTransactions(ctx, middleware.OwnerFromContext(ctx), storage.TransactionFilter{})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load transactions for summary")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load transactions")
		return nil, false
	}
	return records, true
}

// Dashboard handles GET /api/summary/dashboard
func (h *SummaryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	records, ok := h.loadAll(w, r)
	if !ok {
		return
	}
	middleware.WriteJSON(w, http.StatusOK, summary.Dashboard(records, h.budget))
}

// Analytics handles GET /api/summary/analytics
func (h *SummaryHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	records, ok := h.loadAll(w, r)
	if !ok {
		return
	}
	middleware.WriteJSON(w, http.StatusOK, summary.BuildAnalytics(records))
}
