// Where: cli/internal/infra/report/progress.go
// What: Console implementations of the progress sinks.
// Why: Live growing display in completion order; the final aggregate restores
// enumeration order.
package report

import (
	"fmt"
	"sync"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/ui"
)

// ConsoleSearchProgress prints one line per completed subscription as results
// arrive. Lines appear in completion order, a documented relaxation of the
// enumeration-order grouping used for the final result set.
type ConsoleSearchProgress struct {
	mu      sync.Mutex
	console *ui.Console
}

// NewConsoleSearchProgress builds a search progress sink over a console.
func NewConsoleSearchProgress(console *ui.Console) *ConsoleSearchProgress {
	return &ConsoleSearchProgress{console: console}
}

func (p *ConsoleSearchProgress) SubscriptionStarted(snapshot.Subscription, int, int) {}

func (p *ConsoleSearchProgress) RecordMatched(sub snapshot.Subscription, rec snapshot.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.console.ItemPlain(fmt.Sprintf("%s  (%s)", rec.Name, sub.DisplayName()))
}

func (p *ConsoleSearchProgress) SubscriptionCompleted(result snapshot.SubscriptionResult, done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	name := result.Subscription.DisplayName()
	switch {
	case result.Warning != "":
		p.console.Warn(fmt.Sprintf("[%d/%d] %s: skipped (no permission)", done, total, name))
	case result.Err != "":
		p.console.Error(fmt.Sprintf("[%d/%d] %s: %s", done, total, name, result.Err))
	default:
		p.console.Info(fmt.Sprintf("[%d/%d] %s: %d snapshots matched", done, total, name, len(result.Matches)))
	}
}

// ConsoleDeleteProgress prints one line per recorded deletion outcome.
type ConsoleDeleteProgress struct {
	mu      sync.Mutex
	console *ui.Console
}

// NewConsoleDeleteProgress builds a deletion progress sink over a console.
func NewConsoleDeleteProgress(console *ui.Console) *ConsoleDeleteProgress {
	return &ConsoleDeleteProgress{console: console}
}

func (p *ConsoleDeleteProgress) OutcomeRecorded(outcome snapshot.DeletionOutcome, done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rid, err := snapshot.ParseResourceID(outcome.SnapshotID)
	name := outcome.SnapshotID
	if err == nil {
		name = rid.Name
	}
	switch outcome.Kind {
	case snapshot.OutcomeDeleted:
		p.console.Success(fmt.Sprintf("[%d/%d] deleted %s", done, total, name))
	case snapshot.OutcomeSkipped:
		p.console.Warn(fmt.Sprintf("[%d/%d] skipped %s: %s", done, total, name, outcome.Reason))
	default:
		p.console.Error(fmt.Sprintf("[%d/%d] failed %s: %s", done, total, name, outcome.Reason))
	}
}
