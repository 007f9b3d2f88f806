package projection

import (
	"context"
	"log/slog"

	"github.com/hirescope/hirescope/internal/core/extraction"
	"github.com/hirescope/hirescope/internal/core/recruitee"
	"github.com/hirescope/hirescope/internal/models"
)

// Projector maps raw upstream candidate records into the three output
// shapes. Every target field is looked up via an explicit source path and a
// declared transform; missing sources project to zero values, never errors —
// the upstream schema is inconsistently populated and absence is expected.
type Projector struct {
	resolver *extraction.Resolver
	logger   *slog.Logger
}

func NewProjector(resolver *extraction.Resolver, logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Projector{resolver: resolver, logger: logger}
}

// EvalOptions tunes the evaluation projection. IncludeFullCV is a
// caller-supplied flag with no implied default.
type EvalOptions struct {
	IncludeFullCV bool
}

// Basic projects the lightweight overview. When jobID is set, the stage is
// the candidate's stage within that job; otherwise the first placement wins.
func (p *Projector) Basic(raw recruitee.RawCandidate, jobID string) models.BasicView {
	stage := ""
	if jobID != "" {
		stage = raw.StageForJob(jobID)
	}
	if stage == "" {
		if names := raw.StageNames(); len(names) > 0 {
			stage = names[0]
		}
	}

	answered, total := screeningCounts(parseScreening(embeddedScreening(raw)))
	ratio := 0.0 // zero-denominator sentinel: no questions means ratio 0
	if total > 0 {
		ratio = float64(answered) / float64(total)
	}

	return models.BasicView{
		ID:             raw.ID(),
		Name:           raw.Str("name"),
		Status:         raw.Str("status"),
		Stage:          stage,
		Source:         raw.Str("source"),
		AppliedAt:      raw.Str("created_at"),
		UpdatedAt:      raw.Str("updated_at"),
		ScreeningRatio: ratio,
	}
}

// Full assembles the complete administrative profile: the evaluation content
// with the CV always attached, plus contact data, placements, documents and
// the untouched raw record.
func (p *Projector) Full(ctx context.Context, raw recruitee.RawCandidate, screening []map[string]any, documents []map[string]any) models.FullProfile {
	eval := p.Evaluation(ctx, raw, screening, EvalOptions{IncludeFullCV: true})

	placements := make([]models.Placement, 0, len(raw.Placements()))
	for _, pl := range raw.Placements() {
		rec := recruitee.RawCandidate(pl)
		placements = append(placements, models.Placement{
			JobID:    recruitee.RawCandidate{"id": pl["offer_id"]}.ID(),
			Stage:    stageName(pl),
			PlacedAt: rec.Str("created_at"),
		})
	}

	docs := make([]models.DocumentMeta, 0, len(documents))
	for _, d := range documents {
		rec := recruitee.RawCandidate(d)
		docs = append(docs, models.DocumentMeta{
			URL:      rec.Str("url"),
			FileName: rec.Str("name"),
			Kind:     rec.Str("type"),
		})
	}

	return models.FullProfile{
		EvaluationView:     eval,
		Name:               raw.Str("name"),
		Emails:             raw.StrSlice("emails"),
		Phones:             raw.StrSlice("phones"),
		PhotoURL:           raw.Str("photo_thumb_url"),
		Links:              raw.StrSlice("links"),
		Tags:               raw.StrSlice("tags"),
		Status:             raw.Str("status"),
		Source:             raw.Str("source"),
		AppliedAt:          raw.Str("created_at"),
		UpdatedAt:          raw.Str("updated_at"),
		CVURL:              raw.Str("cv_url"),
		CoverLetterFileURL: raw.Str("cover_letter_file_url"),
		Placements:         placements,
		Documents:          docs,
		Raw:                raw,
	}
}

func stageName(placement map[string]any) string {
	if stage, ok := placement["stage"].(map[string]any); ok {
		if name, ok := stage["name"].(string); ok {
			return name
		}
	}
	return ""
}

// embeddedScreening reads open question answers embedded in a list payload,
// for flows that never fetch the dedicated screening endpoint.
func embeddedScreening(raw recruitee.RawCandidate) []map[string]any {
	items := raw.Slice("open_question_answers")
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
