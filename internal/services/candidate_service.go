package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hirescope/hirescope/internal/core/projection"
	"github.com/hirescope/hirescope/internal/core/recruitee"
	"github.com/hirescope/hirescope/internal/core/search"
	"github.com/hirescope/hirescope/internal/models"
)

// hydrateConcurrency caps parallel per-candidate detail fetches so a large
// pipeline does not stampede the upstream API. OCR for distinct documents
// still overlaps freely underneath.
const hydrateConcurrency = 4

type CandidateService struct {
	client    *recruitee.Client
	projector *projection.Projector
	logger    *slog.Logger
}

func NewCandidateService(client *recruitee.Client, projector *projection.Projector, logger *slog.Logger) *CandidateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CandidateService{client: client, projector: projector, logger: logger}
}

// PipelineBasic lists a job's candidates as lightweight overviews. The
// stage filter is applied client-side (case-insensitive substring), the same
// way the upstream UI matches stages.
func (s *CandidateService) PipelineBasic(ctx context.Context, jobID, stageFilter string) ([]models.BasicView, error) {
	candidates, err := s.client.ListCandidates(ctx, jobID)
	if err != nil {
		return nil, err
	}
	candidates = filterByStage(candidates, jobID, stageFilter)

	views := make([]models.BasicView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, s.projector.Basic(c, jobID))
	}
	return views, nil
}

// PipelineEvaluation lists a job's candidates as evaluation views, hydrating
// each with its detailed record, screening answers and (optionally) CV text.
// A failure local to one candidate degrades that record and the batch
// continues.
func (s *CandidateService) PipelineEvaluation(ctx context.Context, jobID, stageFilter string, includeFullCV bool) ([]models.EvaluationView, error) {
	candidates, err := s.client.ListCandidates(ctx, jobID)
	if err != nil {
		return nil, err
	}
	candidates = filterByStage(candidates, jobID, stageFilter)

	// One id per hydration batch so degraded candidates can be correlated
	// back to the invocation that produced them.
	batchID := uuid.NewString()
	s.logger.Info("hydrating pipeline", "batch_id", batchID, "job_id", jobID, "candidates", len(candidates), "include_full_cv", includeFullCV)

	views := make([]models.EvaluationView, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(hydrateConcurrency)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			views[i] = s.evaluateOne(gctx, c, includeFullCV)
			return nil
		})
	}
	// Workers never return errors; per-candidate failures are warnings.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *CandidateService) evaluateOne(ctx context.Context, listed recruitee.RawCandidate, includeFullCV bool) models.EvaluationView {
	id := listed.ID()
	var warnings []string

	raw, err := s.client.GetCandidate(ctx, id)
	if err != nil {
		// The list payload still carries enough to project a degraded view.
		s.logger.Warn("candidate detail unavailable", "candidate_id", id, "error", err)
		warnings = append(warnings, fmt.Sprintf("profile fetch failed: %v", err))
		raw = listed
	}

	screening, err := s.client.GetCandidateScreening(ctx, id)
	if err != nil {
		s.logger.Warn("screening unavailable", "candidate_id", id, "error", err)
		warnings = append(warnings, fmt.Sprintf("screening fetch failed: %v", err))
		screening = nil
	}

	view := s.projector.Evaluation(ctx, raw, screening, projection.EvalOptions{IncludeFullCV: includeFullCV})
	view.Warnings = append(warnings, view.Warnings...)
	return view
}

// Profile returns the complete administrative view of one candidate.
// Documents and screening are best-effort side lookups, as in the upstream
// UI: their absence degrades the profile, it does not fail it.
func (s *CandidateService) Profile(ctx context.Context, candidateID string) (models.FullProfile, error) {
	raw, err := s.client.GetCandidate(ctx, candidateID)
	if err != nil {
		return models.FullProfile{}, err
	}

	var warnings []string
	documents, err := s.client.GetCandidateDocuments(ctx, candidateID)
	if err != nil {
		s.logger.Warn("documents unavailable", "candidate_id", candidateID, "error", err)
		warnings = append(warnings, fmt.Sprintf("documents fetch failed: %v", err))
	}
	screening, err := s.client.GetCandidateScreening(ctx, candidateID)
	if err != nil {
		s.logger.Warn("screening unavailable", "candidate_id", candidateID, "error", err)
		warnings = append(warnings, fmt.Sprintf("screening fetch failed: %v", err))
		screening = nil
	}

	profile := s.projector.Full(ctx, raw, screening, documents)
	profile.Warnings = append(warnings, profile.Warnings...)
	return profile, nil
}

// SearchResult is one page of matching candidates plus the envelope counts
// callers use for pagination.
type SearchResult struct {
	TotalFound int                `json:"total_found"`
	Returned   int                `json:"returned"`
	Offset     int                `json:"offset"`
	Limit      int                `json:"limit"`
	Candidates []models.BasicView `json:"candidates"`
}

// Search validates the criteria, pulls the candidate set once and filters it
// entirely client-side. Empty criteria (with just limit/offset) lists all
// candidates.
func (s *CandidateService) Search(ctx context.Context, criteria models.SearchCriteria) (SearchResult, error) {
	if err := search.Validate(criteria); err != nil {
		return SearchResult{}, err
	}

	candidates, err := s.client.ListCandidates(ctx, "")
	if err != nil {
		return SearchResult{}, err
	}

	res := search.Filter(candidates, criteria)
	views := make([]models.BasicView, 0, len(res.Candidates))
	for _, c := range res.Candidates {
		views = append(views, s.projector.Basic(c, ""))
	}
	return SearchResult{
		TotalFound: res.TotalFound,
		Returned:   len(views),
		Offset:     criteria.Offset,
		Limit:      criteria.Limit,
		Candidates: views,
	}, nil
}

// Notes returns recruiter notes for a candidate.
func (s *CandidateService) Notes(ctx context.Context, candidateID string) ([]models.Note, error) {
	raw, err := s.client.GetCandidateNotes(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	notes := make([]models.Note, 0, len(raw))
	for _, n := range raw {
		notes = append(notes, parseNote(n))
	}
	return notes, nil
}

func parseNote(n map[string]any) models.Note {
	rec := recruitee.RawCandidate(n)
	note := models.Note{
		Comment:   rec.Str("body"),
		Timestamp: rec.Str("created_at"),
	}
	if note.Comment == "" {
		note.Comment = rec.Str("comment")
	}
	if user := rec.Map("user"); user != nil {
		note.Author = recruitee.RawCandidate(user).Str("name")
	}
	if note.Author == "" {
		note.Author = rec.Str("author")
	}
	if v, ok := n["rating"].(float64); ok {
		note.Rating = &v
	}
	return note
}

func filterByStage(candidates []recruitee.RawCandidate, jobID, stageFilter string) []recruitee.RawCandidate {
	if stageFilter == "" {
		return candidates
	}
	needle := strings.ToLower(stageFilter)
	out := make([]recruitee.RawCandidate, 0, len(candidates))
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.StageForJob(jobID)), needle) {
			out = append(out, c)
		}
	}
	return out
}
