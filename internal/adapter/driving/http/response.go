package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tmarsden/mailledger/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// RecordResponse is the JSON representation of a stored email record.
type RecordResponse struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Name       string `json:"name"`
	Memo       string `json:"memo"`
	Value      string `json:"value"`
	IngestedAt string `json:"ingested_at"`
}

// CreateRecordRequest is the JSON body for the create record endpoint.
type CreateRecordRequest struct {
	Date  string `json:"date"`
	Name  string `json:"name"`
	Memo  string `json:"memo"`
	Value string `json:"value"`
}

// UpdateRecordRequest is the JSON body for the update record endpoint.
// Absent fields are left unchanged on the stored record.
type UpdateRecordRequest struct {
	Date  *string `json:"date"`
	Name  *string `json:"name"`
	Memo  *string `json:"memo"`
	Value *string `json:"value"`
}

func (req UpdateRecordRequest) toPatch() model.RecordPatch {
	return model.RecordPatch{
		Date:  req.Date,
		Name:  req.Name,
		Memo:  req.Memo,
		Value: req.Value,
	}
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toRecordResponse converts a domain EmailRecord to its JSON representation.
func toRecordResponse(rec model.EmailRecord) RecordResponse {
	return RecordResponse{
		ID:         rec.ID,
		Date:       rec.Date,
		Name:       rec.Name,
		Memo:       rec.Memo,
		Value:      rec.Value,
		IngestedAt: rec.IngestedAt.UTC().Format(time.RFC3339),
	}
}
