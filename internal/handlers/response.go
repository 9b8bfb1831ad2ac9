package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

type errorList struct {
	Errors []models.FieldError `json:"errors"`
}

// respondError renders err according to its kind. Anything that is not an
// AppError is treated as internal, logged, and hidden from the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}

	switch appErr.Kind {
	case models.KindValidation:
		writeJSON(w, http.StatusBadRequest, errorList{Errors: appErr.Fields})
	case models.KindInvalidCredentials, models.KindConflict:
		writeJSON(w, http.StatusBadRequest, errorList{Errors: []models.FieldError{{Msg: appErr.Message}}})
	case models.KindUnauthorized:
		writeMsg(w, http.StatusUnauthorized, appErr.Message)
	case models.KindForbidden:
		writeMsg(w, http.StatusForbidden, appErr.Message)
	case models.KindNotFound:
		writeMsg(w, http.StatusNotFound, appErr.Message)
	case models.KindUpstream:
		slog.WarnContext(r.Context(), "upstream lookup failed", "error", appErr.Err)
		writeMsg(w, http.StatusNotFound, appErr.Message)
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Server Error"))
	}
}

// decodeJSON reads a JSON body into dst. An empty body decodes as {} so the
// request validation reports the missing fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, r, models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
		return false
	}
	return true
}
