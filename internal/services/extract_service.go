package services

import (
	"context"
	"strings"

	"github.com/hirescope/hirescope/internal/core/extraction"
)

// ExtractService is the direct utility entry point into the fetch+extract
// pipeline, for callers that hold a document URL and nothing else.
type ExtractService struct {
	resolver *extraction.Resolver
}

func NewExtractService(resolver *extraction.Resolver) *ExtractService {
	return &ExtractService{resolver: resolver}
}

// ExtractPayload wraps an extraction result with the stats the original
// tooling reported alongside it.
type ExtractPayload struct {
	PDFURL         string                      `json:"pdf_url"`
	Result         extraction.ExtractionResult `json:"extraction_result"`
	CharacterCount int                         `json:"character_count"`
	WordCount      int                         `json:"word_count"`
}

func (s *ExtractService) ExtractFromURL(ctx context.Context, url string) ExtractPayload {
	res := s.resolver.Resolve(ctx, extraction.AttachmentRef{URL: url, Kind: extraction.KindCV})
	return ExtractPayload{
		PDFURL:         url,
		Result:         res,
		CharacterCount: len(res.Text),
		WordCount:      len(strings.Fields(res.Text)),
	}
}
