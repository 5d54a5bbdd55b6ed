package models

import (
	"encoding/json"
	"strings"
)

// TagList is an ordered set of trimmed, non-empty tag strings. Insertion order
// is preserved for display; the API treats order as insignificant. On the wire
// tags travel as a single comma-joined string.
type TagList []string

// Add trims the tag and appends it. Empty strings and exact duplicates
// (case-sensitive) are ignored.
func (t *TagList) Add(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	for _, existing := range *t {
		if existing == tag {
			return
		}
	}
	*t = append(*t, tag)
}

// Remove drops the first exact match; absent tags are a no-op.
func (t *TagList) Remove(tag string) {
	for i, existing := range *t {
		if existing == tag {
			*t = append((*t)[:i], (*t)[i+1:]...)
			return
		}
	}
}

func (t TagList) Contains(tag string) bool {
	for _, existing := range t {
		if existing == tag {
			return true
		}
	}
	return false
}

// String renders the wire format: tags joined with ",".
func (t TagList) String() string {
	return strings.Join(t, ",")
}

// ParseTags splits a comma-joined string, trimming each segment and dropping
// empties. Duplicates survive parsing only through Add, so parse feeds Add.
func ParseTags(s string) TagList {
	var tags TagList
	for _, part := range strings.Split(s, ",") {
		tags.Add(part)
	}
	return tags
}

func (t TagList) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TagList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Some endpoints return tags as a real array; accept both shapes.
		var arr []string
		if err2 := json.Unmarshal(data, &arr); err2 != nil {
			return err
		}
		parsed := TagList{}
		for _, part := range arr {
			parsed.Add(part)
		}
		*t = parsed
		return nil
	}
	*t = ParseTags(s)
	return nil
}
