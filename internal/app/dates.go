// Where: cli/internal/app/dates.go
// What: Date-range resolution for the search command.
// Why: Flags win, prompts fill in, defaults cover the current month.
package app

import (
	"fmt"
	"time"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/ports"
)

const dateLayout = "2006-01-02"

// resolveFilter builds the search filter from flags, falling back to
// interactive prompts when no dates were given. A half-specified flag range
// is a usage error.
func resolveFilter(cmd SearchCmd, prompter ports.Prompter, now time.Time) (snapshot.Filter, error) {
	start, end := cmd.Start, cmd.End
	keyword := cmd.Keyword

	if (start == "") != (end == "") {
		return snapshot.Filter{}, &ports.UsageError{Detail: "--start and --end must be given together"}
	}

	if start == "" && prompter != nil {
		defStart, defEnd := defaultRange(now)
		var err error
		start, err = prompter.Input("Start date (YYYY-MM-DD)", defStart.Format(dateLayout))
		if err != nil {
			return snapshot.Filter{}, err
		}
		end, err = prompter.Input("End date (YYYY-MM-DD)", defEnd.Format(dateLayout))
		if err != nil {
			return snapshot.Filter{}, err
		}
		if keyword == "" {
			keyword, err = prompter.Input("Keyword filter (optional)", "")
			if err != nil {
				return snapshot.Filter{}, err
			}
		}
	}

	if start == "" {
		return snapshot.NewFilter(time.Time{}, time.Time{}, keyword)
	}

	startAt, err := time.ParseInLocation(dateLayout, start, time.UTC)
	if err != nil {
		return snapshot.Filter{}, &ports.UsageError{Detail: fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", start)}
	}
	endAt, err := time.ParseInLocation(dateLayout, end, time.UTC)
	if err != nil {
		return snapshot.Filter{}, &ports.UsageError{Detail: fmt.Sprintf("invalid end date %q, expected YYYY-MM-DD", end)}
	}
	// Inclusive end-of-day bound.
	endAt = endAt.Add(24*time.Hour - time.Second)

	return snapshot.NewFilter(startAt, endAt, keyword)
}

// defaultRange is the current calendar month in UTC.
func defaultRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}
