package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hirescope/hirescope/internal/core/recruitee"
	"github.com/hirescope/hirescope/internal/models"
	"github.com/hirescope/hirescope/internal/services"
)

type CandidatesHandler struct {
	candidates *services.CandidateService
}

func NewCandidatesHandler(candidates *services.CandidateService) *CandidatesHandler {
	return &CandidatesHandler{candidates: candidates}
}

// PipelineBasic lists a job's candidates as lightweight overviews.
func (h *CandidatesHandler) PipelineBasic(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	stage := r.URL.Query().Get("stage")

	views, err := h.candidates.PipelineBasic(r.Context(), jobID, stage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id":           jobID,
		"stage_filter":     stage,
		"total_candidates": len(views),
		"candidates":       views,
	})
}

// PipelineEvaluation lists a job's candidates as evaluation views. The
// include_full_cv flag is explicit per request; absent means false.
func (h *CandidatesHandler) PipelineEvaluation(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	stage := r.URL.Query().Get("stage")
	includeFullCV := r.URL.Query().Get("include_full_cv") == "true"

	views, err := h.candidates.PipelineEvaluation(r.Context(), jobID, stage, includeFullCV)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id":           jobID,
		"stage_filter":     stage,
		"include_full_cv":  includeFullCV,
		"total_candidates": len(views),
		"candidates":       views,
	})
}

// Profile returns the full administrative record of one candidate.
func (h *CandidatesHandler) Profile(w http.ResponseWriter, r *http.Request) {
	candidateID := chi.URLParam(r, "candidateID")
	profile, err := h.candidates.Profile(r.Context(), candidateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Notes returns recruiter notes for one candidate.
func (h *CandidatesHandler) Notes(w http.ResponseWriter, r *http.Request) {
	candidateID := chi.URLParam(r, "candidateID")
	notes, err := h.candidates.Notes(r.Context(), candidateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"candidate_id": candidateID,
		"total_notes":  len(notes),
		"notes":        notes,
	})
}

// Search filters the candidate collection by the posted criteria.
func (h *CandidatesHandler) Search(w http.ResponseWriter, r *http.Request) {
	var criteria models.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		writeError(w, fmt.Errorf("%w: %v", recruitee.ErrInvalidCriteria, err))
		return
	}

	result, err := h.candidates.Search(r.Context(), criteria)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
