package recruitee

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client is a read-only client for the Recruitee company API. All state is
// set at construction; nothing here mutates upstream data.
type Client struct {
	baseURL   string
	token     string
	companyID string
	http      *http.Client
	retries   int
	logger    *slog.Logger
}

func NewClient(baseURL, token, companyID string, timeout time.Duration, retries int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL:   baseURL,
		token:     token,
		companyID: companyID,
		http:      &http.Client{Timeout: timeout},
		retries:   retries,
		logger:    logger,
	}
}

// get issues an authenticated GET and decodes the JSON body into out.
// Transport errors and 5xx responses are retried with a short backoff;
// 4xx responses are permanent and map to ErrUpstreamRejected.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := fmt.Sprintf("%s/c/%s%s", c.baseURL, c.companyID, endpoint)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Warn("recruitee request failed", "endpoint", endpoint, "attempt", attempt, "error", err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				lastErr = readErr
				continue
			}
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decode %s: %w", endpoint, err)
			}
			return nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return fmt.Errorf("%w: %s returned %d", ErrUpstreamRejected, endpoint, resp.StatusCode)
		default:
			lastErr = fmt.Errorf("%s returned %d", endpoint, resp.StatusCode)
			c.logger.Warn("recruitee server error", "endpoint", endpoint, "status", resp.StatusCode, "attempt", attempt)
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, lastErr)
}

// ListOffers returns all jobs/pipelines.
func (c *Client) ListOffers(ctx context.Context) ([]map[string]any, error) {
	var env struct {
		Offers []map[string]any `json:"offers"`
	}
	if err := c.get(ctx, "/offers", nil, &env); err != nil {
		return nil, err
	}
	return env.Offers, nil
}

// GetOffer returns a single job.
func (c *Client) GetOffer(ctx context.Context, jobID string) (map[string]any, error) {
	var env struct {
		Offer map[string]any `json:"offer"`
	}
	if err := c.get(ctx, "/offers/"+jobID, nil, &env); err != nil {
		return nil, fmt.Errorf("job %s: %w", jobID, err)
	}
	return env.Offer, nil
}

// GetOfferStages returns the pipeline stages of a job.
func (c *Client) GetOfferStages(ctx context.Context, jobID string) ([]map[string]any, error) {
	var env struct {
		Stages []map[string]any `json:"stages"`
	}
	if err := c.get(ctx, "/offers/"+jobID+"/stages", nil, &env); err != nil {
		return nil, fmt.Errorf("job %s: %w", jobID, err)
	}
	return env.Stages, nil
}

// ListCandidates returns candidates, optionally scoped to one job. The
// upstream limit is deliberately generous; real filtering happens client
// side because combined server-side filters are unreliable.
func (c *Client) ListCandidates(ctx context.Context, jobID string) ([]RawCandidate, error) {
	params := url.Values{"limit": {"1000"}}
	if jobID != "" {
		params.Set("offer_id", jobID)
	}
	var env struct {
		Candidates []RawCandidate `json:"candidates"`
	}
	if err := c.get(ctx, "/candidates", params, &env); err != nil {
		return nil, err
	}
	return env.Candidates, nil
}

// GetCandidate returns the detailed record of one candidate.
func (c *Client) GetCandidate(ctx context.Context, candidateID string) (RawCandidate, error) {
	var env struct {
		Candidate RawCandidate `json:"candidate"`
	}
	if err := c.get(ctx, "/candidates/"+candidateID, nil, &env); err != nil {
		return nil, fmt.Errorf("candidate %s: %w", candidateID, err)
	}
	return env.Candidate, nil
}

// GetCandidateDocuments returns attachment metadata for a candidate.
func (c *Client) GetCandidateDocuments(ctx context.Context, candidateID string) ([]map[string]any, error) {
	var env struct {
		Documents []map[string]any `json:"documents"`
	}
	if err := c.get(ctx, "/candidates/"+candidateID+"/documents", nil, &env); err != nil {
		return nil, fmt.Errorf("candidate %s: %w", candidateID, err)
	}
	return env.Documents, nil
}

// GetCandidateScreening returns the candidate's open question answers.
func (c *Client) GetCandidateScreening(ctx context.Context, candidateID string) ([]map[string]any, error) {
	var env struct {
		Screening []map[string]any `json:"screening"`
	}
	if err := c.get(ctx, "/candidates/"+candidateID+"/screening", nil, &env); err != nil {
		return nil, fmt.Errorf("candidate %s: %w", candidateID, err)
	}
	return env.Screening, nil
}

// GetCandidateNotes returns recruiter notes for a candidate.
func (c *Client) GetCandidateNotes(ctx context.Context, candidateID string) ([]map[string]any, error) {
	var env struct {
		Notes []map[string]any `json:"notes"`
	}
	if err := c.get(ctx, "/candidates/"+candidateID+"/notes", nil, &env); err != nil {
		return nil, fmt.Errorf("candidate %s: %w", candidateID, err)
	}
	return env.Notes, nil
}
