package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hirescope/hirescope/internal/core/recruitee"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, recruitee.ErrInvalidCriteria):
		status = http.StatusBadRequest
	case errors.Is(err, recruitee.ErrUpstreamRejected):
		status = http.StatusNotFound
	case errors.Is(err, recruitee.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
