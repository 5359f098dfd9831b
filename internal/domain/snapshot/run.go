// Where: cli/internal/domain/snapshot/run.go
// What: Aggregated search run result.
// Why: Deterministic enumeration-order grouping of per-subscription results.
package snapshot

import "time"

// SubscriptionResult is the outcome of searching one subscription.
// Each search worker owns exactly one entry; entries are never shared.
type SubscriptionResult struct {
	Subscription Subscription
	Matches      []Record
	Warning      string
	Err          string
	Attempts     int
}

// Forbidden reports whether the subscription was skipped for lack of
// permission.
func (r SubscriptionResult) Forbidden() bool {
	return r.Subscription.Access == AccessForbidden
}

// SearchRun is the consolidated result of one search invocation. Results are
// ordered by subscription enumeration order, not completion order, so the
// aggregate is deterministic even though execution is concurrent.
type SearchRun struct {
	RunID    string
	Filter   Filter
	Results  []SubscriptionResult
	Started  time.Time
	Finished time.Time
}

// TotalMatches is the sum of per-subscription match counts.
func (r SearchRun) TotalMatches() int {
	total := 0
	for _, res := range r.Results {
		total += len(res.Matches)
	}
	return total
}

// Warnings counts subscriptions skipped with a warning (forbidden access).
func (r SearchRun) Warnings() int {
	n := 0
	for _, res := range r.Results {
		if res.Warning != "" {
			n++
		}
	}
	return n
}

// Errored counts subscriptions that exhausted retries.
func (r SearchRun) Errored() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != "" {
			n++
		}
	}
	return n
}

// Records returns all matches grouped by subscription in enumeration order,
// preserving the adapter's order within each subscription.
func (r SearchRun) Records() []Record {
	out := make([]Record, 0, r.TotalMatches())
	for _, res := range r.Results {
		out = append(out, res.Matches...)
	}
	return out
}

// Runtime is the wall-clock duration of the search.
func (r SearchRun) Runtime() time.Duration {
	return r.Finished.Sub(r.Started)
}
