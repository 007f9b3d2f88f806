package extraction

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFTextStrategy walks the PDF's embedded text layer page by page. Fast and
// accurate for digitally produced documents; yields nothing for scans.
type PDFTextStrategy struct{}

func NewPDFTextStrategy() *PDFTextStrategy { return &PDFTextStrategy{} }

func (s *PDFTextStrategy) Name() string { return "pdf-text" }

func (s *PDFTextStrategy) Attempt(_ context.Context, data []byte, mimeHint string) (text string, pages int, err error) {
	if mimeHint != "" && mimeHint != "application/pdf" {
		return "", 0, fmt.Errorf("unsupported content type %q", mimeHint)
	}
	// The parser panics on some malformed xref tables; keep that contained.
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}

	pages = r.NumPage()
	var b strings.Builder
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		// Pages with no extractable glyphs contribute an empty string.
		pageText, perr := p.GetPlainText(nil)
		if perr != nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\f")
		}
		b.WriteString(pageText)
	}
	return b.String(), pages, nil
}
