package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gift-swap/internal/db"
	"gift-swap/internal/rules"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// apiError maps the domain error taxonomy onto HTTP statuses. Everything
// except storage loss is recoverable by the caller.
func apiError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, db.ErrConstraintViolation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, rules.ErrIllegalMove),
		errors.Is(err, rules.ErrAlreadyStarted),
		errors.Is(err, rules.ErrNotStarted),
		errors.Is(err, db.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
