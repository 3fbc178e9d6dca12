package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/risinglab/jewelpanel/internal/domain/model"
)

// writeJSON writes v as a JSON response with the given status code.
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

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// CategoryResponse is the JSON representation of a jewellery category.
type CategoryResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ActivityResponse is the JSON representation of an audited catalog mutation.
type ActivityResponse struct {
	ID          int64  `json:"id"`
	User        string `json:"user"`
	Kind        string `json:"kind"`
	JewelleryID string `json:"jewelleryId,omitempty"`
	SKU         string `json:"sku"`
	Outcome     string `json:"outcome"`
	Message     string `json:"message,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func toActivityResponse(rec model.MutationRecord) ActivityResponse {
	return ActivityResponse{
		ID:          rec.ID,
		User:        rec.UserEmail,
		Kind:        string(rec.Kind),
		JewelleryID: rec.JewelleryID,
		SKU:         rec.SKU,
		Outcome:     string(rec.Outcome),
		Message:     rec.Message,
		CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}
