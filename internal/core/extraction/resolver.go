package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Resolver ties the fetcher and the strategy chain together behind a
// session-lifetime cache keyed by attachment URL. At most one fetch+extract
// runs per URL; concurrent requesters for the same key wait on the in-flight
// result. Distinct URLs resolve fully in parallel. Entries are never
// evicted: volume is bounded by the candidates touched in a session.
type Resolver struct {
	fetcher *Fetcher
	chain   *Chain
	logger  *slog.Logger

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]ExtractionResult
}

func NewResolver(fetcher *Fetcher, chain *Chain, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		fetcher: fetcher,
		chain:   chain,
		logger:  logger,
		cache:   map[string]ExtractionResult{},
	}
}

// Resolve returns the extracted text for an attachment. Fetch and extraction
// failures surface as warnings on the result, never as errors: one bad
// attachment must not abort the profile or batch that asked for it.
func (r *Resolver) Resolve(ctx context.Context, ref AttachmentRef) ExtractionResult {
	r.mu.Lock()
	if res, ok := r.cache[ref.URL]; ok {
		r.mu.Unlock()
		return res
	}
	r.mu.Unlock()

	ch := r.group.DoChan(ref.URL, func() (any, error) {
		// Detached from the caller: shared in-flight work completes even if
		// the caller that triggered it goes away, so its result still serves
		// whoever else is waiting on the key.
		res := r.resolve(context.WithoutCancel(ctx), ref)
		r.mu.Lock()
		r.cache[ref.URL] = res
		r.mu.Unlock()
		return res, nil
	})

	select {
	case <-ctx.Done():
		return ExtractionResult{Warnings: []string{fmt.Sprintf("resolution abandoned: %v", ctx.Err())}}
	case out := <-ch:
		return out.Val.(ExtractionResult)
	}
}

func (r *Resolver) resolve(ctx context.Context, ref AttachmentRef) ExtractionResult {
	data, contentType, err := r.fetcher.Fetch(ctx, ref.URL)
	if err != nil {
		r.logger.Warn("attachment unavailable", "kind", ref.Kind, "candidate_id", ref.CandidateID, "error", err)
		return ExtractionResult{Warnings: []string{fmt.Sprintf("document fetch failed: %v", err)}}
	}

	res := r.chain.Extract(ctx, data, mediaType(contentType))
	if !res.Succeeded() {
		r.logger.Warn("extraction exhausted", "kind", ref.Kind, "candidate_id", ref.CandidateID, "warnings", len(res.Warnings))
	}
	return res
}

// mediaType strips parameters like "; charset=utf-8" from a Content-Type.
func mediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}
