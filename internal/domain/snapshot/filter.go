// Where: cli/internal/domain/snapshot/filter.go
// What: Search filter evaluation.
// Why: Keep match semantics pure and independent of orchestration.
package snapshot

import (
	"fmt"
	"strings"
	"time"
)

// Filter restricts a search to a creation-time window and an optional
// case-insensitive name keyword. Both bounds are inclusive. A filter is
// immutable for the duration of one search.
type Filter struct {
	Start   time.Time
	End     time.Time
	Keyword string
}

// NewFilter builds a filter. Either both bounds are set or both are zero;
// a half-open range is a caller bug and rejected up front.
func NewFilter(start, end time.Time, keyword string) (Filter, error) {
	if start.IsZero() != end.IsZero() {
		return Filter{}, fmt.Errorf("date range requires both bounds or neither")
	}
	return Filter{Start: start, End: end, Keyword: strings.TrimSpace(keyword)}, nil
}

// Bounded reports whether the filter has a date window.
func (f Filter) Bounded() bool {
	return !f.Start.IsZero()
}

// Matches reports whether the record falls inside the date window and
// contains the keyword. A degenerate window (start after end) matches
// nothing. The result depends only on the record and the filter.
func (f Filter) Matches(r Record) bool {
	if f.Bounded() {
		if f.Start.After(f.End) {
			return false
		}
		if r.TimeCreated.Before(f.Start) || r.TimeCreated.After(f.End) {
			return false
		}
	}
	if f.Keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.Keyword))
}
