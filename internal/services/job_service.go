package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hirescope/hirescope/internal/core/recruitee"
	"github.com/hirescope/hirescope/internal/models"
)

type JobService struct {
	client *recruitee.Client
	logger *slog.Logger
}

func NewJobService(client *recruitee.Client, logger *slog.Logger) *JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{client: client, logger: logger}
}

// ListJobs returns every job/pipeline visible to the configured company.
func (s *JobService) ListJobs(ctx context.Context) ([]models.JobSummary, error) {
	offers, err := s.client.ListOffers(ctx)
	if err != nil {
		return nil, err
	}
	jobs := make([]models.JobSummary, 0, len(offers))
	for _, o := range offers {
		jobs = append(jobs, jobSummary(o))
	}
	return jobs, nil
}

// GetJobDetails returns one job with its pipeline stages. A failed stage
// lookup degrades to an empty list plus a warning rather than failing the
// whole request.
func (s *JobService) GetJobDetails(ctx context.Context, jobID string) (models.JobDetail, error) {
	offer, err := s.client.GetOffer(ctx, jobID)
	if err != nil {
		return models.JobDetail{}, err
	}

	detail := models.JobDetail{
		JobSummary:  jobSummary(offer),
		Description: recruitee.RawCandidate(offer).Str("description"),
		Stages:      []string{},
	}

	stages, err := s.client.GetOfferStages(ctx, jobID)
	if err != nil {
		s.logger.Warn("stage lookup failed", "job_id", jobID, "error", err)
		detail.Warnings = append(detail.Warnings, fmt.Sprintf("stages unavailable: %v", err))
		return detail, nil
	}
	for _, st := range stages {
		if name := recruitee.RawCandidate(st).Str("name"); name != "" {
			detail.Stages = append(detail.Stages, name)
		}
	}
	return detail, nil
}

func jobSummary(offer map[string]any) models.JobSummary {
	rec := recruitee.RawCandidate(offer)
	return models.JobSummary{
		ID:              rec.ID(),
		Title:           rec.Str("title"),
		Status:          rec.Str("status"),
		Department:      rec.Str("department"),
		CandidatesCount: rec.Int("candidates_count"),
		CreatedAt:       rec.Str("created_at"),
	}
}
