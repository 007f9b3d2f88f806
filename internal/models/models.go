package models

// ScreeningAnswer is one open question with the candidate's answer, in the
// order returned by the upstream service.
type ScreeningAnswer struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	QuestionType string `json:"question_type"`
}

// ExperienceEntry is one structured work-history item.
type ExperienceEntry struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BasicView is the lightweight candidate overview. 8 fields, nothing more.
type BasicView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Status         string  `json:"status"`
	Stage          string  `json:"stage"`
	Source         string  `json:"source"`
	AppliedAt      string  `json:"applied_at"`
	UpdatedAt      string  `json:"updated_at"`
	ScreeningRatio float64 `json:"screening_ratio"`
}

// EvaluationView is the privacy- and bias-filtered projection handed to an
// automated assessor. It is built field-by-field from an explicit allow-list;
// no contact identifiers and no human-facing ratings ever appear here. The
// candidate id is the only join key it carries.
type EvaluationView struct {
	CandidateID string `json:"candidate_id"`

	HasCV      bool   `json:"has_cv"`
	CVText     string `json:"cv_text,omitempty"`
	CVPages    int    `json:"cv_pages"`
	CVStrategy string `json:"cv_strategy,omitempty"`

	CoverLetterText   string `json:"cover_letter_text"`
	CoverLetterSource string `json:"cover_letter_source,omitempty"` // "inline" or "pdf"

	ScreeningAnswers        []ScreeningAnswer `json:"screening_answers"`
	TotalScreeningQuestions int               `json:"total_screening_questions"`
	AnsweredQuestions       int               `json:"answered_questions"`

	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	HasDegree  bool              `json:"has_degree"`

	// Warnings records extraction provenance problems (fetch failures,
	// exhausted strategy chains). Not a score, not an identifier.
	Warnings []string `json:"warnings,omitempty"`
}

// Placement records one position of a candidate inside a job pipeline.
type Placement struct {
	JobID    string `json:"job_id"`
	Stage    string `json:"stage"`
	PlacedAt string `json:"placed_at"`
}

// DocumentMeta describes an attachment without its content.
type DocumentMeta struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Kind     string `json:"kind"`
}

// FullProfile is the complete administrative view: everything the evaluation
// view carries plus contact details, placements, documents and the untouched
// upstream record for fields we do not model explicitly.
type FullProfile struct {
	EvaluationView

	Name     string   `json:"name"`
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	PhotoURL string   `json:"photo_url,omitempty"`
	Links    []string `json:"links,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	Status    string `json:"status"`
	Source    string `json:"source"`
	AppliedAt string `json:"applied_at"`
	UpdatedAt string `json:"updated_at"`

	CVURL              string `json:"cv_url,omitempty"`
	CoverLetterFileURL string `json:"cover_letter_file_url,omitempty"`

	Placements []Placement    `json:"placements"`
	Documents  []DocumentMeta `json:"documents"`

	// Raw carries the full upstream record so no administrative field is lost.
	Raw map[string]any `json:"raw_record"`
}

// Note is a recruiter comment on a candidate.
type Note struct {
	Author    string   `json:"author"`
	Rating    *float64 `json:"rating,omitempty"`
	Comment   string   `json:"comment"`
	Timestamp string   `json:"timestamp"`
}

// JobSummary is one row of the jobs listing.
type JobSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Status          string `json:"status"`
	Department      string `json:"department,omitempty"`
	CandidatesCount int    `json:"candidates_count"`
	CreatedAt       string `json:"created_at"`
}

// JobDetail is a single job with its pipeline stages.
type JobDetail struct {
	JobSummary
	Description string   `json:"description,omitempty"`
	Stages      []string `json:"stages"`
	Warnings    []string `json:"warnings,omitempty"`
}

// SearchCriteria drives the client-side candidate filter. All predicates are
// optional and combined with AND; limit/offset paginate the filtered set.
type SearchCriteria struct {
	JobIDs         []string `json:"job_ids,omitempty"`
	StageNames     []string `json:"stage_names,omitempty"`
	Status         string   `json:"status,omitempty"`
	HasCV          *bool    `json:"has_cv,omitempty"`
	HasCoverLetter *bool    `json:"has_cover_letter,omitempty"`
	Limit          int      `json:"limit" validate:"required,gt=0"`
	Offset         int      `json:"offset" validate:"gte=0"`
}
