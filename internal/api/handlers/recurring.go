package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendwise/internal/api/middleware"
	"github.com/dvloznov/spendwise/internal/domain"
	"github.com/dvloznov/spendwise/internal/storage"
	"github.com/dvloznov/spendwise/internal/summary"
)

// BillsHandler handles bill reminder endpoints.
type BillsHandler struct {
	repo storage.BillRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewBillsHandler creates a new bills handler.
func NewBillsHandler(repo storage.BillRepository, log zerolog.Logger) *BillsHandler {
	return &BillsHandler{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// ListBills handles GET /api/bills
func (h *BillsHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bills, err := h.repo.ListBills(ctx, middleware.OwnerFromContext(ctx))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list bills")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list bills")
		return
	}
	summary.RefreshBills(bills, h.now())

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"bills":    bills,
		"overview": summary.SummarizeBills(bills),
		"count":    len(bills),
	})
}

// CreateBill handles POST /api/bills
func (h *BillsHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string  `json:"name"`
		Amount    float64 `json:"amount"`
		DueDate   string  `json:"due_date"`
		Frequency string  `json:"frequency"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Amount <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	now := h.now()
	due, err := time.ParseInLocation(domain.DateLayout, req.DueDate, now.Location())
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
		return
	}
	if req.Frequency == "" {
		req.Frequency = "Monthly"
	}

	ctx := r.Context()
	bill := &domain.Bill{
		OwnerID:   middleware.OwnerFromContext(ctx),
		Name:      req.Name,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Frequency: req.Frequency,
	}
	bill.DaysLeft, bill.Status = summary.BillStatusFor(due, now)

	if err := h.repo.CreateBill(ctx, bill); err != nil {
		h.log.Error().Err(err).Msg("Failed to create bill")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create bill")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, bill)
}

// DeleteBill handles DELETE /api/bills/{id}
func (h *BillsHandler) DeleteBill(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	if writeDeleteResult(w, h.repo.DeleteBill(ctx, middleware.OwnerFromContext(ctx), id), "Failed to delete bill") {
		w.WriteHeader(http.StatusNoContent)
	}
}

// SubscriptionsHandler handles subscription endpoints.
type SubscriptionsHandler struct {
	repo storage.SubscriptionRepository
	log  zerolog.Logger
}

// NewSubscriptionsHandler creates a new subscriptions handler.
func NewSubscriptionsHandler(repo storage.SubscriptionRepository, log zerolog.Logger) *SubscriptionsHandler {
	return &SubscriptionsHandler{
		repo: repo,
		log:  log,
	}
}

// ListSubscriptions handles GET /api/subscriptions
func (h *SubscriptionsHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subs, err := h.repo.ListSubscriptions(ctx, middleware.OwnerFromContext(ctx))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list subscriptions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list subscriptions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"subscriptions": subs,
		"totals":        summary.SummarizeSubscriptions(subs),
		"count":         len(subs),
	})
}

// CreateSubscription handles POST /api/subscriptions
func (h *SubscriptionsHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string                    `json:"name"`
		Amount      float64                   `json:"amount"`
		Billing     domain.BillingCycle       `json:"billing"`
		NextBilling string                    `json:"next_billing"`
		Category    string                    `json:"category"`
		Status      domain.SubscriptionStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Amount <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if req.Billing == "" {
		req.Billing = domain.BillingMonthly
	}
	if req.Billing != domain.BillingMonthly && req.Billing != domain.BillingYearly {
		middleware.WriteError(w, http.StatusBadRequest, "billing must be monthly or yearly")
		return
	}
	if req.NextBilling != "" && !validDate(req.NextBilling) {
		middleware.WriteError(w, http.StatusBadRequest, "next_billing must be YYYY-MM-DD")
		return
	}
	if req.Status != "" && req.Status != domain.SubscriptionActive && req.Status != domain.SubscriptionPaused {
		middleware.WriteError(w, http.StatusBadRequest, "status must be active or paused")
		return
	}

	ctx := r.Context()
	sub := &domain.Subscription{
		OwnerID:     middleware.OwnerFromContext(ctx),
		Name:        req.Name,
		Category:    req.Category,
		Amount:      req.Amount,
		Billing:     req.Billing,
		NextBilling: req.NextBilling,
		Status:      req.Status,
	}
	if err := h.repo.CreateSubscription(ctx, sub); err != nil {
		h.log.Error().Err(err).Msg("Failed to create subscription")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create subscription")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, sub)
}

// UpdateSubscription handles PATCH /api/subscriptions/{id}
func (h *SubscriptionsHandler) UpdateSubscription(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Status domain.SubscriptionStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Status != domain.SubscriptionActive && req.Status != domain.SubscriptionPaused {
		middleware.WriteError(w, http.StatusBadRequest, "status must be active or paused")
		return
	}

	ctx := r.Context()
	err := h.repo.UpdateSubscriptionStatus(ctx, middleware.OwnerFromContext(ctx), id, req.Status)
	if errors.Is(err, storage.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Record not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("subscription_id", id).Msg("Failed to update subscription")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update subscription")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": string(req.Status),
	})
}

// DeleteSubscription handles DELETE /api/subscriptions/{id}
func (h *SubscriptionsHandler) DeleteSubscription(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	if writeDeleteResult(w, h.repo.DeleteSubscription(ctx, middleware.OwnerFromContext(ctx), id), "Failed to delete subscription") {
		w.WriteHeader(http.StatusNoContent)
	}
}
