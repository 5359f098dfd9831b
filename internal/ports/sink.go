// Where: cli/internal/ports/sink.go
// What: Progress sink contracts for live output.
// Why: The core emits events; presentation stays outside the orchestrators.
package ports

import "github.com/azsnap/azsnap/internal/domain/snapshot"

// SearchProgress receives live search events. Completion events arrive in
// completion order, which may differ from enumeration order; the final
// SearchRun aggregate restores enumeration order. Implementations must be
// safe for concurrent use.
type SearchProgress interface {
	SubscriptionStarted(sub snapshot.Subscription, index, total int)
	RecordMatched(sub snapshot.Subscription, record snapshot.Record)
	SubscriptionCompleted(result snapshot.SubscriptionResult, done, total int)
}

// DeleteProgress receives one event per recorded deletion outcome.
// Implementations must be safe for concurrent use.
type DeleteProgress interface {
	OutcomeRecorded(outcome snapshot.DeletionOutcome, done, total int)
}

// Prompter collects interactive input from the operator.
type Prompter interface {
	Input(title, placeholder string) (string, error)
	Confirm(title string) (bool, error)
}
