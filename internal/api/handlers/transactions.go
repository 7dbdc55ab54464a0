package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendwise/internal/api/middleware"
	"github.com/dvloznov/spendwise/internal/domain"
	"github.com/dvloznov/spendwise/internal/storage"
)

// DefaultPageSize is used when a page is requested without a page_size.
const DefaultPageSize = 10

// TransactionsHandler handles transaction-related endpoints.
type TransactionsHandler struct {
	repo storage.TransactionRepository
	log  zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo storage.TransactionRepository, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		repo: repo,
		log:  log,
	}
}

// ListTransactions handles GET /api/transactions
// Without page or page_size every matching record is returned.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := middleware.OwnerFromContext(ctx)

	query := r.URL.Query()
	filter := storage.TransactionFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}
	if filter.Category == "all" {
		filter.Category = ""
	}

	pageStr, sizeStr := query.Get("page"), query.Get("page_size")
	if pageStr != "" || sizeStr != "" {
		page, size := 1, DefaultPageSize
		if pageStr != "" {
			p, err := strconv.Atoi(pageStr)
			if err != nil || p < 1 {
				middleware.WriteError(w, http.StatusBadRequest, "Invalid page")
				return
			}
			page = p
		}
		if sizeStr != "" {
			s, err := strconv.Atoi(sizeStr)
			if err != nil || s < 1 || s > 100 {
				middleware.WriteError(w, http.StatusBadRequest, "Invalid page_size")
				return
			}
			size = s
		}
		filter.Limit = size
		filter.Offset = (page - 1) * size
	}

	records, err := h.repo.ListTransactions(ctx, owner, filter)
	if err != nil {
		h.log.Error().Err(err).Str("owner_id", owner).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	// Return array directly for frontend compatibility
	if records == nil {
		records = []domain.TransactionRecord{}
	}
	middleware.WriteJSON(w, http.StatusOK, records)
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Purpose     string                 `json:"purpose"`
		Amount      float64                `json:"amount"`
		Category    string                 `json:"category"`
		Date        string                 `json:"date"`
		Kind        domain.TransactionKind `json:"type"`
		Description string                 `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Amount <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if !validDate(req.Date) {
		middleware.WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if req.Kind == "" {
		req.Kind = domain.KindExpense
	}
	if !req.Kind.Valid() {
		middleware.WriteError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	ctx := r.Context()
	rec := &domain.TransactionRecord{
		OwnerID:     middleware.OwnerFromContext(ctx),
		Purpose:     req.Purpose,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Kind:        req.Kind,
		Description: req.Description,
	}
	if err := h.repo.CreateTransaction(ctx, rec); err != nil {
		h.log.Error().Err(err).Msg("Failed to create transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	h.log.Info().Str("transaction_id", rec.ID).Str("owner_id", rec.OwnerID).Msg("Transaction created")
	middleware.WriteJSON(w, http.StatusCreated, rec)
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	err := h.repo.DeleteTransaction(ctx, middleware.OwnerFromContext(ctx), id)
	if err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
	}
	if writeDeleteResult(w, err, "Failed to delete transaction") {
		w.WriteHeader(http.StatusNoContent)
	}
}
