package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendwise/internal/api/middleware"
	"github.com/dvloznov/spendwise/internal/jobs"
)

// ExportHandler queues data exports and reports their progress.
type ExportHandler struct {
	publisher jobs.Publisher
	store     jobs.JobStore
	enabled   bool
	log       zerolog.Logger
}

// NewExportHandler creates a new export handler. When enabled is false every
// export request is answered with 503.
func NewExportHandler(publisher jobs.Publisher, store jobs.JobStore, enabled bool, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		publisher: publisher,
		store:     store,
		enabled:   enabled,
		log:       log,
	}
}

// CreateExport handles POST /api/export
func (h *ExportHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Export is not configured")
		return
	}

	ctx := r.Context()
	job := &jobs.ExportJob{OwnerID: middleware.OwnerFromContext(ctx)}

	if err := h.publisher.PublishExport(ctx, job); err != nil {
		h.log.Error().Err(err).Str("owner_id", job.OwnerID).Msg("Failed to enqueue export job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue export")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Str("owner_id", job.OwnerID).Msg("Export job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": job.JobID,
		"status": jobs.JobStatusPending,
	})
}

// ListExports handles GET /api/export/jobs
func (h *ExportHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.store.ListJobs(ctx, jobs.JobFilter{
		OwnerID: middleware.OwnerFromContext(ctx),
		Limit:   20,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list export jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list export jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  list,
		"count": len(list),
	})
}

// GetExport handles GET /api/export/jobs/{id}
func (h *ExportHandler) GetExport(w http.ResponseWriter, r *http.Request, jobID string) {
	ctx := r.Context()

	job, err := h.store.GetJob(ctx, jobID)
	if errors.Is(err, jobs.ErrJobNotFound) || (err == nil && job.OwnerID != middleware.OwnerFromContext(ctx)) {
		middleware.WriteError(w, http.StatusNotFound, "Export job not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get export job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get export job")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}
