package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirescope/hirescope/internal/core/extraction"
	"github.com/hirescope/hirescope/internal/core/projection"
	"github.com/hirescope/hirescope/internal/core/recruitee"
	"github.com/hirescope/hirescope/internal/models"
)

// textLayerStrategy mimics native PDF text extraction: it succeeds only for
// documents that carry a text layer marker and fails on "scans".
type textLayerStrategy struct{}

func (textLayerStrategy) Name() string { return "pdf-text" }

func (textLayerStrategy) Attempt(_ context.Context, data []byte, _ string) (string, int, error) {
	body, ok := strings.CutPrefix(string(data), "TEXT:")
	if !ok {
		return "", 0, errors.New("no text layer")
	}
	return body, 1, nil
}

// ocrStubStrategy "reads" any document, like the real OCR fallback.
type ocrStubStrategy struct{}

func (ocrStubStrategy) Name() string { return "ocr" }

func (ocrStubStrategy) Attempt(_ context.Context, data []byte, _ string) (string, int, error) {
	return "OCR:" + strings.TrimPrefix(string(data), "SCAN:"), 1, nil
}

// fixture is a fake upstream: the company API plus the attachment file host,
// with counters on the endpoints the tests care about.
type fixture struct {
	srv       *httptest.Server
	fileHits  atomic.Int64
	apiHits   atomic.Int64
	candidate *CandidateService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}

	mux := http.NewServeMux()
	mux.HandleFunc("/files/", func(w http.ResponseWriter, req *http.Request) {
		f.fileHits.Add(1)
		w.Header().Set("Content-Type", "application/pdf")
		switch req.URL.Path {
		case "/files/cv-1.pdf":
			_, _ = w.Write([]byte("TEXT:ten years of Go"))
		case "/files/cv-2.pdf":
			_, _ = w.Write([]byte("SCAN:handwritten resume"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	mux.HandleFunc("/c/acme/", func(w http.ResponseWriter, req *http.Request) {
		f.apiHits.Add(1)
		path := strings.TrimPrefix(req.URL.Path, "/c/acme")
		base := "http://" + req.Host
		switch {
		case path == "/candidates" && req.URL.Query().Get("offer_id") == "10":
			fmt.Fprintf(w, `{"candidates":[
				{"id":1,"name":"Ada","cv_url":"%s/files/cv-1.pdf","placements":[{"offer_id":10,"stage":{"name":"Interview"}}]},
				{"id":2,"name":"Ben","cv_url":"%s/files/cv-2.pdf","placements":[{"offer_id":10,"stage":{"name":"Applied"}}]},
				{"id":3,"name":"Cal","placements":[{"offer_id":10,"stage":{"name":"Interview"}}]}
			]}`, base, base)
		case path == "/candidates":
			fmt.Fprintf(w, `{"candidates":[
				{"id":1,"name":"Ada","cv_url":"%s/files/cv-1.pdf","status":"new","placements":[{"offer_id":10,"stage":{"name":"Interview"}}]},
				{"id":2,"name":"Ben","cv_url":"%s/files/cv-2.pdf","status":"new","placements":[{"offer_id":10,"stage":{"name":"Applied"}}]},
				{"id":3,"name":"Cal","status":"qualified","placements":[{"offer_id":10,"stage":{"name":"Interview"}}]}
			]}`, base, base)
		case path == "/candidates/1":
			fmt.Fprintf(w, `{"candidate":{"id":1,"name":"Ada","emails":["ada@example.com"],"phones":["+1 555 1000"],"cv_url":"%s/files/cv-1.pdf","skills":["Go"],"open_question_answers":[{"question":"Why?","answer":"Because."}]}}`, base)
		case path == "/candidates/2":
			fmt.Fprintf(w, `{"candidate":{"id":2,"name":"Ben","emails":["ben@example.com"],"cv_url":"%s/files/cv-2.pdf"}}`, base)
		case path == "/candidates/3":
			_, _ = w.Write([]byte(`{"candidate":{"id":3,"name":"Cal","emails":["cal@example.com"]}}`))
		case strings.HasSuffix(path, "/screening"):
			_, _ = w.Write([]byte(`{"screening":[]}`))
		case path == "/candidates/1/notes":
			_, _ = w.Write([]byte(`{"notes":[
				{"body":"strong hire","user":{"name":"Riley"},"rating":4.5,"created_at":"2024-03-01T10:00:00Z"},
				{"comment":"follow up next week","author":"Drew"}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)

	client := recruitee.NewClient(f.srv.URL, "token", "acme", 5*time.Second, 0, nil)
	fetcher := extraction.NewFetcher(5*time.Second, 0, nil)
	chain := extraction.NewChain(nil, textLayerStrategy{}, ocrStubStrategy{})
	resolver := extraction.NewResolver(fetcher, chain, nil)
	projector := projection.NewProjector(resolver, nil)
	f.candidate = NewCandidateService(client, projector, nil)
	return f
}

func TestPipelineEvaluationEndToEnd(t *testing.T) {
	f := newFixture(t)

	views, err := f.candidate.PipelineEvaluation(context.Background(), "10", "", true)
	require.NoError(t, err)
	require.Len(t, views, 3)

	byID := map[string]models.EvaluationView{}
	for _, v := range views {
		byID[v.CandidateID] = v
	}

	// Text-layer CV extracts natively, no warnings.
	ada := byID["1"]
	assert.True(t, ada.HasCV)
	assert.Equal(t, "ten years of Go", ada.CVText)
	assert.Equal(t, "pdf-text", ada.CVStrategy)
	assert.Empty(t, ada.Warnings)

	// Scanned CV falls through to OCR and records the failed attempt.
	ben := byID["2"]
	assert.Equal(t, "OCR:handwritten resume", ben.CVText)
	assert.Equal(t, "ocr", ben.CVStrategy)
	require.NotEmpty(t, ben.Warnings)
	assert.Contains(t, ben.Warnings[0], "pdf-text")

	// No CV means no fetch and an honest has_cv=false.
	cal := byID["3"]
	assert.False(t, cal.HasCV)
	assert.Empty(t, cal.CVText)

	assert.Equal(t, int64(2), f.fileHits.Load(), "only candidates with a CV cost a fetch")
}

func TestPipelineEvaluationOmitsContactData(t *testing.T) {
	f := newFixture(t)

	views, err := f.candidate.PipelineEvaluation(context.Background(), "10", "", false)
	require.NoError(t, err)

	raw, err := json.Marshal(views)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "@example.com")
	assert.NotContains(t, string(raw), "+1 555")
	assert.NotContains(t, string(raw), "Ada", "names never reach the evaluation view")
}

func TestPipelineEvaluationWithoutFullCVSkipsFetch(t *testing.T) {
	f := newFixture(t)

	views, err := f.candidate.PipelineEvaluation(context.Background(), "10", "", false)
	require.NoError(t, err)
	require.Len(t, views, 3)
	for _, v := range views {
		assert.Empty(t, v.CVText)
	}
	assert.Zero(t, f.fileHits.Load(), "cv presence must not trigger extraction")
}

func TestPipelineBasicStageFilter(t *testing.T) {
	f := newFixture(t)

	views, err := f.candidate.PipelineBasic(context.Background(), "10", "interview")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Ada", views[0].Name)
	assert.Equal(t, "Cal", views[1].Name)
	assert.Equal(t, "Interview", views[0].Stage)
}

func TestSearchFiltersAndPaginates(t *testing.T) {
	f := newFixture(t)

	hasCV := true
	res, err := f.candidate.Search(context.Background(), models.SearchCriteria{
		HasCV: &hasCV,
		Limit: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalFound)
	assert.Equal(t, 1, res.Returned)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Ada", res.Candidates[0].Name)
}

func TestSearchInvalidCriteriaNeverCallsUpstream(t *testing.T) {
	f := newFixture(t)

	_, err := f.candidate.Search(context.Background(), models.SearchCriteria{Limit: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, recruitee.ErrInvalidCriteria))
	assert.Zero(t, f.apiHits.Load())
}

func TestNotesParsing(t *testing.T) {
	f := newFixture(t)

	notes, err := f.candidate.Notes(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, notes, 2)

	assert.Equal(t, "Riley", notes[0].Author)
	assert.Equal(t, "strong hire", notes[0].Comment)
	require.NotNil(t, notes[0].Rating)
	assert.InDelta(t, 4.5, *notes[0].Rating, 1e-9)
	assert.Equal(t, "2024-03-01T10:00:00Z", notes[0].Timestamp)

	assert.Equal(t, "Drew", notes[1].Author)
	assert.Equal(t, "follow up next week", notes[1].Comment)
	assert.Nil(t, notes[1].Rating)
}

func TestProfileCarriesContactAndDegradesSideLookups(t *testing.T) {
	f := newFixture(t)

	// The fixture has no /documents route, so that lookup 404s and degrades.
	profile, err := f.candidate.Profile(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, []string{"ada@example.com"}, profile.Emails)
	assert.Equal(t, "ten years of Go", profile.CVText, "full profile always attaches the cv")
	require.NotEmpty(t, profile.Warnings)
	assert.Contains(t, profile.Warnings[0], "documents fetch failed")
}

func TestPipelineEvaluationDegradedCandidate(t *testing.T) {
	var listCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/c/acme/candidates", func(w http.ResponseWriter, _ *http.Request) {
		listCalls.Add(1)
		_, _ = w.Write([]byte(`{"candidates":[{"id":7,"name":"Solo","placements":[{"offer_id":10,"stage":{"name":"Applied"}}]}]}`))
	})
	// Detail and screening endpoints are absent: both lookups 404.
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := recruitee.NewClient(srv.URL, "token", "acme", 5*time.Second, 0, nil)
	fetcher := extraction.NewFetcher(5*time.Second, 0, nil)
	resolver := extraction.NewResolver(fetcher, extraction.NewChain(nil, textLayerStrategy{}), nil)
	svc := NewCandidateService(client, projection.NewProjector(resolver, nil), nil)

	views, err := svc.PipelineEvaluation(context.Background(), "10", "", false)
	require.NoError(t, err, "one broken candidate must not fail the batch")
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, "7", v.CandidateID, "degraded view still projects from the list payload")
	require.GreaterOrEqual(t, len(v.Warnings), 2)
	assert.Contains(t, v.Warnings[0], "profile fetch failed")
	assert.Contains(t, v.Warnings[1], "screening fetch failed")
}
