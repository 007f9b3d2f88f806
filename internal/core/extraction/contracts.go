package extraction

import "context"

// AttachmentKind distinguishes the two document types we pull for candidates.
type AttachmentKind string

const (
	KindCV          AttachmentKind = "cv"
	KindCoverLetter AttachmentKind = "cover_letter"
)

// AttachmentRef identifies one candidate document. The URL is the cache
// identity: two refs with the same URL resolve to the same text within a
// session.
type AttachmentRef struct {
	URL         string
	Kind        AttachmentKind
	CandidateID string
}

// ExtractionResult is the outcome of running the strategy chain over one
// document. Text is empty only when every strategy failed; Strategy names
// the one that produced the text. Immutable once created.
type ExtractionResult struct {
	Text     string   `json:"text"`
	Strategy string   `json:"strategy,omitempty"`
	Pages    int      `json:"pages"`
	Warnings []string `json:"warnings,omitempty"`
}

// Succeeded reports whether any strategy recovered text.
func (r ExtractionResult) Succeeded() bool {
	return r.Text != ""
}

// Strategy is one text-recovery attempt. Implementations return the
// recovered text and page count, or an error when the document cannot be
// handled; an empty (or whitespace-only) text with a nil error also counts
// as failure for fallback purposes.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, data []byte, mimeHint string) (text string, pages int, err error)
}
