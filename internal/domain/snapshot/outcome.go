// Where: cli/internal/domain/snapshot/outcome.go
// What: Per-item deletion outcome type.
// Why: One append-only outcome per attempted deletion, for audit and summary.
package snapshot

import "time"

// OutcomeKind classifies the final state of one deletion attempt.
type OutcomeKind int

const (
	// OutcomeDeleted covers both a successful delete and a snapshot that was
	// already gone: the goal state "snapshot absent" is reached either way.
	OutcomeDeleted OutcomeKind = iota
	OutcomeFailed
	OutcomeSkipped
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// DeletionOutcome records what happened to one snapshot identifier.
// Exactly one outcome exists per attempted identifier, regardless of retries.
type DeletionOutcome struct {
	SnapshotID string
	Kind       OutcomeKind
	Reason     string
	Timestamp  time.Time
}

// OutcomeTally counts outcomes by kind.
type OutcomeTally struct {
	Deleted int
	Failed  int
	Skipped int
}

// Tally aggregates outcomes for summary reporting.
func Tally(outcomes []DeletionOutcome) OutcomeTally {
	var t OutcomeTally
	for _, o := range outcomes {
		switch o.Kind {
		case OutcomeDeleted:
			t.Deleted++
		case OutcomeFailed:
			t.Failed++
		case OutcomeSkipped:
			t.Skipped++
		}
	}
	return t
}
