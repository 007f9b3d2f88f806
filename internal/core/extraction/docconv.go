package extraction

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

// DocconvStrategy is the alternate decoder, used when the native text-layer
// walk cannot open the file or finds nothing. docconv shells out to a
// different PDF implementation and also copes with non-PDF attachments
// (DOCX cover letters show up occasionally).
type DocconvStrategy struct{}

func NewDocconvStrategy() *DocconvStrategy { return &DocconvStrategy{} }

func (s *DocconvStrategy) Name() string { return "docconv" }

func (s *DocconvStrategy) Attempt(ctx context.Context, data []byte, mimeHint string) (string, int, error) {
	if mimeHint == "" {
		mimeHint = "application/pdf"
	}
	res, err := docconv.Convert(bytes.NewReader(data), mimeHint, false)
	if err != nil {
		return "", 0, fmt.Errorf("convert: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	text := res.Body
	// docconv keeps form feeds as page separators for PDFs.
	pages := 0
	if strings.TrimSpace(text) != "" {
		pages = 1 + strings.Count(text, "\f")
	}
	return text, pages, nil
}
