package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dvloznov/spendwise/internal/api/middleware"
	"github.com/dvloznov/spendwise/internal/domain"
	"github.com/dvloznov/spendwise/internal/storage"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func validDate(s string) bool {
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}

// writeDeleteResult maps a repository delete error onto a response.
func writeDeleteResult(w http.ResponseWriter, err error, failMsg string) bool {
	if errors.Is(err, storage.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Record not found")
		return false
	}
	if err != nil {
		middleware.WriteError(w, http.StatusInternalServerError, failMsg)
		return false
	}
	return true
}
