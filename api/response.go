package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/garnizeh/portfolio/pkg/models"
)

func writeJSON(w http.ResponseWriter, status int, env models.Envelope[any]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, models.Envelope[any]{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.Envelope[any]{Success: false, Message: message})
}

func writeValidation(w http.ResponseWriter, errs []models.FieldError) {
	writeJSON(w, http.StatusBadRequest, models.Envelope[any]{Success: false, Message: "Validation failed", Errors: errs})
}

// keyed wraps v under key, the shape every entity response uses.
func keyed(key string, v any) map[string]any {
	return map[string]any{key: v}
}

// writeJSONRaw answers 200 with v outside the envelope, for health checks.
func writeJSONRaw(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
