package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hirescope/hirescope/internal/core/recruitee"
	"github.com/hirescope/hirescope/internal/services"
)

type ExtractHandler struct {
	extract *services.ExtractService
}

func NewExtractHandler(extract *services.ExtractService) *ExtractHandler {
	return &ExtractHandler{extract: extract}
}

// Extract pulls text out of an arbitrary document URL. Useful for CVs and
// cover letters that live outside any candidate record.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PDFURL string `json:"pdf_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", recruitee.ErrInvalidCriteria, err))
		return
	}
	if u, err := url.ParseRequestURI(req.PDFURL); err != nil || u.Host == "" {
		writeError(w, fmt.Errorf("%w: pdf_url must be an absolute URL", recruitee.ErrInvalidCriteria))
		return
	}

	writeJSON(w, http.StatusOK, h.extract.ExtractFromURL(r.Context(), req.PDFURL))
}
