package search

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hirescope/hirescope/internal/core/recruitee"
	"github.com/hirescope/hirescope/internal/models"
)

var validate = validator.New()

// Validate rejects malformed criteria before any upstream call is made.
func Validate(criteria models.SearchCriteria) error {
	if err := validate.Struct(criteria); err != nil {
		return fmt.Errorf("%w: %v", recruitee.ErrInvalidCriteria, err)
	}
	return nil
}

// Result is one page of the filtered candidate set.
type Result struct {
	TotalFound int
	Candidates []recruitee.RawCandidate
}

// Filter evaluates every criteria predicate client-side as a logical AND
// over the already-fetched collection — the upstream's native filtering is
// unreliable for combined criteria. Cheap field predicates run before the
// attachment-presence ones; presence is metadata and never triggers an
// extraction. Pagination applies last, over the full filtered set.
func Filter(candidates []recruitee.RawCandidate, criteria models.SearchCriteria) Result {
	filtered := make([]recruitee.RawCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !matches(c, criteria) {
			continue
		}
		filtered = append(filtered, c)
	}

	return Result{
		TotalFound: len(filtered),
		Candidates: page(filtered, criteria.Limit, criteria.Offset),
	}
}

func matches(c recruitee.RawCandidate, criteria models.SearchCriteria) bool {
	if len(criteria.JobIDs) > 0 && !anyOverlap(criteria.JobIDs, c.JobIDs()) {
		return false
	}
	if len(criteria.StageNames) > 0 && !anyStageMatch(criteria.StageNames, c.StageNames()) {
		return false
	}
	if criteria.Status != "" && !strings.Contains(strings.ToLower(c.Str("status")), strings.ToLower(criteria.Status)) {
		return false
	}
	if criteria.HasCV != nil && *criteria.HasCV != c.HasCV() {
		return false
	}
	if criteria.HasCoverLetter != nil && *criteria.HasCoverLetter != c.HasCoverLetter() {
		return false
	}
	return true
}

func anyOverlap(wanted, actual []string) bool {
	for _, w := range wanted {
		for _, a := range actual {
			if w == a {
				return true
			}
		}
	}
	return false
}

// anyStageMatch is a case-insensitive substring match, mirroring how the
// stage filter behaves on pipeline listings.
func anyStageMatch(wanted, actual []string) bool {
	for _, w := range wanted {
		lw := strings.ToLower(w)
		for _, a := range actual {
			if strings.Contains(strings.ToLower(a), lw) {
				return true
			}
		}
	}
	return false
}

// page slices out [offset, offset+limit); an offset beyond the set yields an
// empty page, not an error.
func page(candidates []recruitee.RawCandidate, limit, offset int) []recruitee.RawCandidate {
	if offset >= len(candidates) {
		return []recruitee.RawCandidate{}
	}
	end := offset + limit
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[offset:end]
}
