package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Chain runs an ordered list of strategies until one yields usable text.
// Strategy failures are demoted to warnings; the chain itself never fails.
// Later strategies are never invoked once one succeeds, since OCR dominates
// the cost profile.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
}

func NewChain(logger *slog.Logger, strategies ...Strategy) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{strategies: strategies, logger: logger}
}

// Extract applies each strategy in order to the document bytes. The result
// always comes back populated: on total failure Text is empty and Warnings
// records what every strategy reported.
func (c *Chain) Extract(ctx context.Context, data []byte, mimeHint string) ExtractionResult {
	var warnings []string

	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: skipped: %v", s.Name(), err))
			break
		}

		text, pages, err := s.Attempt(ctx, data, mimeHint)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", s.Name(), err))
			c.logger.Debug("extraction strategy failed", "strategy", s.Name(), "error", err)
			continue
		}
		// Whitespace-only output triggers fallback the same as empty.
		if strings.TrimSpace(text) == "" {
			warnings = append(warnings, fmt.Sprintf("%s: produced no text", s.Name()))
			continue
		}

		c.logger.Debug("extraction succeeded", "strategy", s.Name(), "pages", pages, "chars", len(text))
		return ExtractionResult{
			Text:     strings.TrimSpace(text),
			Strategy: s.Name(),
			Pages:    pages,
			Warnings: warnings,
		}
	}

	return ExtractionResult{Warnings: warnings}
}
