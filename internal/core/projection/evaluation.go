package projection

import (
	"context"
	"strings"

	"github.com/hirescope/hirescope/internal/core/extraction"
	"github.com/hirescope/hirescope/internal/core/recruitee"
	"github.com/hirescope/hirescope/internal/models"
)

// EvaluationKeys is the closed set of JSON keys the evaluation view may
// emit. The view is built field-by-field from this enumeration: a new
// upstream field is excluded by default, it can only reach the output by
// being added here and in the struct. Contact identifiers and human-facing
// ratings are not on the list and must never be.
var EvaluationKeys = []string{
	"candidate_id",
	"has_cv",
	"cv_text",
	"cv_pages",
	"cv_strategy",
	"cover_letter_text",
	"cover_letter_source",
	"screening_answers",
	"total_screening_questions",
	"answered_questions",
	"skills",
	"experience",
	"has_degree",
	"warnings",
}

// Evaluation projects the privacy- and bias-filtered assessment view. CV
// text is fetched and attached only when opts.IncludeFullCV is set; CV
// presence is reported unconditionally and never requires a fetch.
func (p *Projector) Evaluation(ctx context.Context, raw recruitee.RawCandidate, screening []map[string]any, opts EvalOptions) models.EvaluationView {
	view := models.EvaluationView{
		CandidateID: raw.ID(),
		HasCV:       raw.HasCV(),
		Skills:      flattenStrings(raw.Slice("skills"), fieldValues(raw, "skills")),
		Experience:  experienceEntries(raw),
		HasDegree:   hasDegree(raw),
	}

	if screening == nil {
		screening = embeddedScreening(raw)
	}
	view.ScreeningAnswers = parseScreening(screening)
	view.AnsweredQuestions, view.TotalScreeningQuestions = screeningCounts(view.ScreeningAnswers)

	if view.HasCV && opts.IncludeFullCV {
		res := p.resolver.Resolve(ctx, extraction.AttachmentRef{
			URL:         raw.Str("cv_url"),
			Kind:        extraction.KindCV,
			CandidateID: view.CandidateID,
		})
		view.CVText = res.Text
		view.CVPages = res.Pages
		view.CVStrategy = res.Strategy
		view.Warnings = append(view.Warnings, prefixWarnings("cv", res.Warnings)...)
	}

	p.attachCoverLetter(ctx, raw, &view)
	return view
}

// attachCoverLetter prefers the inline text the upstream already parsed and
// falls back to extracting the attached PDF, recording which source won.
func (p *Projector) attachCoverLetter(ctx context.Context, raw recruitee.RawCandidate, view *models.EvaluationView) {
	if inline := strings.TrimSpace(raw.Str("cover_letter")); inline != "" {
		view.CoverLetterText = inline
		view.CoverLetterSource = "inline"
		return
	}
	fileURL := raw.Str("cover_letter_file_url")
	if fileURL == "" {
		return
	}
	res := p.resolver.Resolve(ctx, extraction.AttachmentRef{
		URL:         fileURL,
		Kind:        extraction.KindCoverLetter,
		CandidateID: view.CandidateID,
	})
	view.CoverLetterText = res.Text
	if res.Succeeded() {
		view.CoverLetterSource = "pdf"
	}
	view.Warnings = append(view.Warnings, prefixWarnings("cover_letter", res.Warnings)...)
}

func parseScreening(items []map[string]any) []models.ScreeningAnswer {
	answers := make([]models.ScreeningAnswer, 0, len(items))
	for _, it := range items {
		rec := recruitee.RawCandidate(it)
		answers = append(answers, models.ScreeningAnswer{
			Question:     rec.Str("question"),
			Answer:       rec.Str("answer"),
			QuestionType: rec.Str("question_type"),
		})
	}
	return answers
}

func screeningCounts(answers []models.ScreeningAnswer) (answered, total int) {
	total = len(answers)
	for _, a := range answers {
		if strings.TrimSpace(a.Answer) != "" {
			answered++
		}
	}
	return answered, total
}

// flattenStrings turns lists of strings or of objects carrying a name/value
// key into a flat string list. Upstream order is kept, duplicates included.
func flattenStrings(lists ...[]any) []string {
	out := []string{}
	for _, list := range lists {
		for _, item := range list {
			switch v := item.(type) {
			case string:
				out = append(out, v)
			case map[string]any:
				rec := recruitee.RawCandidate(v)
				if s := rec.Str("name"); s != "" {
					out = append(out, s)
				} else if s := rec.Str("value"); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// fieldValues pulls the values of a custom field section by kind.
func fieldValues(raw recruitee.RawCandidate, kind string) []any {
	for _, f := range raw.Slice("fields") {
		m, ok := f.(map[string]any)
		if !ok {
			continue
		}
		rec := recruitee.RawCandidate(m)
		if rec.Str("kind") != kind {
			continue
		}
		return rec.Slice("values")
	}
	return nil
}

func experienceEntries(raw recruitee.RawCandidate) []models.ExperienceEntry {
	items := raw.Slice("experiences")
	if len(items) == 0 {
		items = fieldValues(raw, "experience")
	}
	out := []models.ExperienceEntry{}
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		rec := recruitee.RawCandidate(m)
		out = append(out, models.ExperienceEntry{
			Company:     rec.Str("company"),
			Title:       rec.Str("title"),
			Description: rec.Str("description"),
		})
	}
	return out
}

func hasDegree(raw recruitee.RawCandidate) bool {
	if v, ok := raw["has_degree"].(bool); ok {
		return v
	}
	if len(raw.Slice("educations")) > 0 {
		return true
	}
	return len(fieldValues(raw, "education")) > 0
}

func prefixWarnings(prefix string, warnings []string) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, prefix+": "+w)
	}
	return out
}
