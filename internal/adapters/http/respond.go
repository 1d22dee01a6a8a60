package http

import (
	"encoding/json"
	"net/http"

	"github.com/glimpse-dev/glimpse/pkg/domain"
)

type resultPayload struct {
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Err    *domain.Error   `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeResult re-emits an evaluation result. Typed requests always yield
// JSON text; the raw-eval path may return plain text, which is re-encoded
// as a JSON string rather than rejected.
func writeResult(w http.ResponseWriter, result string) {
	raw := json.RawMessage(result)
	if !json.Valid(raw) {
		encoded, err := json.Marshal(result)
		if err != nil {
			writeError(w, domain.NewError(domain.KindInternalError, "encode result: %v", err))
			return
		}
		raw = encoded
	}
	writeJSON(w, http.StatusOK, resultPayload{OK: true, Result: raw})
}

func writeError(w http.ResponseWriter, e *domain.Error) {
	writeJSON(w, statusFor(e.Kind), resultPayload{OK: false, Err: e})
}

// statusFor maps the stable error kinds onto HTTP statuses. Evaluation
// and internal errors are both server-side, distinguished by kind.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidParams:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindTimeout:
		return http.StatusGatewayTimeout
	case domain.KindChannelClosed:
		return http.StatusServiceUnavailable
	case domain.KindPlatformUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
