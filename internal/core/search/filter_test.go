package search

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirescope/hirescope/internal/core/recruitee"
	"github.com/hirescope/hirescope/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func candidate(id string, mutate func(recruitee.RawCandidate)) recruitee.RawCandidate {
	c := recruitee.RawCandidate{"id": id, "status": "new"}
	if mutate != nil {
		mutate(c)
	}
	return c
}

func placement(jobID, stage string) map[string]any {
	return map[string]any{
		"offer_id": jobID,
		"stage":    map[string]any{"name": stage},
	}
}

func fixtureSet() []recruitee.RawCandidate {
	return []recruitee.RawCandidate{
		candidate("1", func(c recruitee.RawCandidate) {
			c["placements"] = []any{placement("job-1", "Applied")}
			c["cv_url"] = "https://files.example/1.pdf"
		}),
		candidate("2", func(c recruitee.RawCandidate) {
			c["placements"] = []any{placement("job-1", "Phone Interview")}
			c["cover_letter"] = "inline letter"
		}),
		candidate("3", func(c recruitee.RawCandidate) {
			c["placements"] = []any{placement("job-2", "Technical Interview")}
			c["status"] = "qualified"
			c["cv_url"] = "https://files.example/3.pdf"
			c["cover_letter_file_url"] = "https://files.example/3-cl.pdf"
		}),
		candidate("4", func(c recruitee.RawCandidate) {
			c["placements"] = []any{placement("job-2", "Offer")}
			c["status"] = "disqualified"
		}),
		candidate("5", nil), // no placements, no attachments
	}
}

func ids(result Result) []string {
	out := make([]string, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		out = append(out, c.ID())
	}
	return out
}

func TestFilterEmptyCriteriaListsAll(t *testing.T) {
	res := Filter(fixtureSet(), models.SearchCriteria{Limit: 100})
	assert.Equal(t, 5, res.TotalFound)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(res))
}

func TestFilterByJobID(t *testing.T) {
	res := Filter(fixtureSet(), models.SearchCriteria{JobIDs: []string{"job-2"}, Limit: 100})
	assert.Equal(t, []string{"3", "4"}, ids(res))
}

func TestFilterJobIDIsExactMatch(t *testing.T) {
	res := Filter(fixtureSet(), models.SearchCriteria{JobIDs: []string{"job"}, Limit: 100})
	assert.Zero(t, res.TotalFound, "job ids never match by substring")
}

func TestFilterByStageSubstring(t *testing.T) {
	res := Filter(fixtureSet(), models.SearchCriteria{StageNames: []string{"interview"}, Limit: 100})
	assert.Equal(t, []string{"2", "3"}, ids(res))
}

func TestFilterByStatus(t *testing.T) {
	res := Filter(fixtureSet(), models.SearchCriteria{Status: "Qualified", Limit: 100})
	// Substring matching makes "qualified" catch "disqualified" too.
	assert.Equal(t, []string{"3", "4"}, ids(res))
}

func TestFilterByAttachmentPresence(t *testing.T) {
	withCV := Filter(fixtureSet(), models.SearchCriteria{HasCV: boolPtr(true), Limit: 100})
	assert.Equal(t, []string{"1", "3"}, ids(withCV))

	withoutCL := Filter(fixtureSet(), models.SearchCriteria{HasCoverLetter: boolPtr(false), Limit: 100})
	assert.Equal(t, []string{"1", "4", "5"}, ids(withoutCL))
}

func TestFilterCombinesCriteriaWithAND(t *testing.T) {
	res := Filter(fixtureSet(), models.SearchCriteria{
		JobIDs:     []string{"job-1", "job-2"},
		StageNames: []string{"interview"},
		HasCV:      boolPtr(true),
		Limit:      100,
	})
	assert.Equal(t, []string{"3"}, ids(res))
}

func TestFilterUnsetBoolDiffersFromFalse(t *testing.T) {
	unset := Filter(fixtureSet(), models.SearchCriteria{Limit: 100})
	explicit := Filter(fixtureSet(), models.SearchCriteria{HasCV: boolPtr(false), Limit: 100})
	assert.Equal(t, 5, unset.TotalFound)
	assert.Equal(t, 3, explicit.TotalFound)
}

func TestFilterPagination(t *testing.T) {
	res := Filter(fixtureSet(), models.SearchCriteria{Limit: 2, Offset: 2})
	assert.Equal(t, 5, res.TotalFound, "total reflects the whole filtered set, not the page")
	assert.Equal(t, []string{"3", "4"}, ids(res))
}

func TestFilterOffsetBeyondEnd(t *testing.T) {
	res := Filter(fixtureSet(), models.SearchCriteria{Limit: 10, Offset: 5})
	assert.Equal(t, 5, res.TotalFound)
	assert.Empty(t, res.Candidates)
}

func TestFilterLimitClampsAtEnd(t *testing.T) {
	res := Filter(fixtureSet(), models.SearchCriteria{Limit: 10, Offset: 4})
	assert.Equal(t, []string{"5"}, ids(res))
}

func TestValidateRejectsBadPagination(t *testing.T) {
	cases := []models.SearchCriteria{
		{Limit: 0},
		{Limit: -1},
		{Limit: 10, Offset: -1},
	}
	for i, c := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			err := Validate(c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, recruitee.ErrInvalidCriteria))
		})
	}
}

func TestValidateAcceptsMinimalCriteria(t *testing.T) {
	require.NoError(t, Validate(models.SearchCriteria{Limit: 1}))
}
