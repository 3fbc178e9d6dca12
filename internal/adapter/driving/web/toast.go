package web

import (
	"encoding/json"
	"net/http"
)

type toastLevel string

const (
	toastSuccess toastLevel = "success"
	toastError   toastLevel = "error"
	toastInfo    toastLevel = "info"
)

// catalogChangedEvent makes the dashboard reload the jewellery list.
const catalogChangedEvent = "catalogChanged"

type toast struct {
	Level   toastLevel `json:"level"`
	Message string     `json:"message"`
}

// trigger sets the HX-Trigger header. A toast is included when message is
// non-empty; extra names are emitted as plain events.
func trigger(w http.ResponseWriter, level toastLevel, message string, events ...string) {
	payload := make(map[string]any, len(events)+1)
	if message != "" {
		payload["toast"] = toast{Level: level, Message: message}
	}
	for _, e := range events {
		payload[e] = true
	}
	if len(payload) == 0 {
		return
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(b))
}

// isHTMX reports whether r was issued by htmx.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
