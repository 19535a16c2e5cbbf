// Package httphandler is the HTTP driving adapter that serves the records
// REST API.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tmarsden/mailledger/internal/domain/model"
	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

// Handler serves the email records CRUD API on top of the record store.
type Handler struct {
	records driven.RecordStore
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(records driven.RecordStore, logger *slog.Logger) *Handler {
	return &Handler{
		records: records,
		logger:  logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/emails", h.ListRecords)
	mux.HandleFunc("POST /api/emails", h.CreateRecord)
	mux.HandleFunc("PUT /api/emails/{id}", h.UpdateRecord)
	mux.HandleFunc("DELETE /api/emails/{id}", h.DeleteRecord)
	mux.HandleFunc("GET /api/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// ListRecords returns all stored email records.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := h.records.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list email records", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]RecordResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, toRecordResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateRecord inserts a new email record with the posted fields.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := model.EmailRecord{
		Date:  req.Date,
		Name:  req.Name,
		Memo:  req.Memo,
		Value: req.Value,
	}

	inserted, err := h.records.Insert(r.Context(), rec)
	if err != nil {
		h.logger.Error("failed to insert email record", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(inserted))
}

// UpdateRecord replaces the named fields of an existing record and returns
// the post-update document.
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.records.Update(r.Context(), id, req.toPatch())
	if err != nil {
		if errors.Is(err, driven.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "email record not found")
			return
		}
		h.logger.Error("failed to update email record", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(updated))
}

// DeleteRecord removes a record by id.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.records.Delete(r.Context(), id); err != nil {
		if errors.Is(err, driven.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "email record not found")
			return
		}
		h.logger.Error("failed to delete email record", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
