package recruitee

import (
	"fmt"
	"strconv"
)

// RawCandidate is the upstream candidate record as decoded JSON. The schema
// is wide and inconsistently populated, so it stays a generic mapping at the
// boundary; the projector enumerates what it needs.
type RawCandidate map[string]any

// Str returns the string at key, or "" when absent or of another type.
func (c RawCandidate) Str(key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the bool at key, false when absent.
func (c RawCandidate) Bool(key string) bool {
	v, _ := c[key].(bool)
	return v
}

// Int returns the numeric value at key. JSON numbers decode as float64.
func (c RawCandidate) Int(key string) int {
	switch v := c[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Slice returns the list at key, nil when absent.
func (c RawCandidate) Slice(key string) []any {
	v, _ := c[key].([]any)
	return v
}

// Map returns the nested object at key, nil when absent.
func (c RawCandidate) Map(key string) map[string]any {
	v, _ := c[key].(map[string]any)
	return v
}

// StrSlice returns the list at key coerced to strings, skipping non-strings.
func (c RawCandidate) StrSlice(key string) []string {
	raw := c.Slice(key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ID returns the candidate id as a string regardless of how the upstream
// encoded it (numeric ids are common).
func (c RawCandidate) ID() string {
	return anyToID(c["id"])
}

func anyToID(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Placements returns the candidate's pipeline placements as raw maps.
func (c RawCandidate) Placements() []map[string]any {
	raw := c.Slice("placements")
	out := make([]map[string]any, 0, len(raw))
	for _, p := range raw {
		if m, ok := p.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// StageForJob returns the stage name of the candidate's placement in the
// given job, or "" when the candidate is not placed there.
func (c RawCandidate) StageForJob(jobID string) string {
	for _, p := range c.Placements() {
		if anyToID(p["offer_id"]) != jobID {
			continue
		}
		if stage, ok := p["stage"].(map[string]any); ok {
			if name, ok := stage["name"].(string); ok {
				return name
			}
		}
	}
	return ""
}

// JobIDs returns every job the candidate is placed in.
func (c RawCandidate) JobIDs() []string {
	var ids []string
	for _, p := range c.Placements() {
		if id := anyToID(p["offer_id"]); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// StageNames returns the stage name of every placement.
func (c RawCandidate) StageNames() []string {
	var names []string
	for _, p := range c.Placements() {
		if stage, ok := p["stage"].(map[string]any); ok {
			if name, ok := stage["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// HasCV reports whether a CV attachment exists. Presence is metadata only;
// checking it never triggers a fetch.
func (c RawCandidate) HasCV() bool {
	return c.Str("cv_url") != ""
}

// HasCoverLetter reports whether cover letter content exists in either form
// the upstream uses: inline text or an attached PDF.
func (c RawCandidate) HasCoverLetter() bool {
	return c.Str("cover_letter") != "" || c.Str("cover_letter_file_url") != ""
}
