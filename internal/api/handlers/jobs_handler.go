package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hirescope/hirescope/internal/services"
)

type JobsHandler struct {
	jobs *services.JobService
}

func NewJobsHandler(jobs *services.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// ListJobs returns every job/pipeline.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListJobs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_jobs": len(jobs),
		"jobs":       jobs,
	})
}

// GetJob returns one job with its pipeline stages.
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	detail, err := h.jobs.GetJobDetails(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
