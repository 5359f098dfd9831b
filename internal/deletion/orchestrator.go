// Where: cli/internal/deletion/orchestrator.go
// What: Bulk snapshot deletion orchestrator.
// Why: Bounded-concurrency deletes with per-item outcome isolation and a
// synchronous audit trail.
package deletion

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/ports"
)

const (
	defaultConcurrency = 4
	defaultAttempts    = 3
)

// RetryPolicy bounds transport-failure retries per identifier.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
}

// AuditLog records outcomes durably as they are produced. Implementations
// must be safe for concurrent use; a crash mid-batch must leave a correct
// partial trail.
type AuditLog interface {
	Record(outcome snapshot.DeletionOutcome) error
}

// Orchestrator deletes an operator-confirmed set of snapshot identifiers.
// Confirmation is owned by the caller; the orchestrator never prompts.
type Orchestrator struct {
	Deleter     ports.SnapshotDeleter
	Audit       AuditLog
	Locks       *LockGuard
	Concurrency int
	Retry       RetryPolicy
	Sink        ports.DeleteProgress
	Log         *zap.Logger
	Now         func() time.Time
}

// Run processes the whole batch and returns exactly one outcome per input
// identifier, in input order. Partial failure is expected: failed items never
// stop the batch. Cancelling the context stops dispatching new identifiers;
// in-flight deletes run to completion on an uncancellable context so no
// delete is ever half-killed, and undispatched identifiers are recorded as
// skipped.
func (o *Orchestrator) Run(ctx context.Context, ids []string) []snapshot.DeletionOutcome {
	outcomes := make([]snapshot.DeletionOutcome, len(ids))

	parsed := make([]*snapshot.ResourceID, len(ids))
	for i, id := range ids {
		if rid, err := snapshot.ParseResourceID(id); err == nil {
			parsed[i] = &rid
		}
	}

	var removed []RemovedLock
	if o.Locks != nil {
		removed = o.Locks.Remove(ctx, resourceIDs(parsed))
		defer o.Locks.Restore(ctx, removed)
	}

	g := new(errgroup.Group)
	g.SetLimit(o.concurrency())
	var done atomic.Int64
	total := len(ids)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			var outcome snapshot.DeletionOutcome
			switch {
			case parsed[i] == nil:
				outcome = o.outcome(id, snapshot.OutcomeSkipped, "invalid snapshot resource ID")
			case ctx.Err() != nil:
				outcome = o.outcome(id, snapshot.OutcomeSkipped, "cancelled")
			default:
				outcome = o.deleteOne(ctx, id)
			}
			o.record(&outcomes[i], outcome, int(done.Add(1)), total)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// deleteOne checks the snapshot still exists, then issues the delete with
// bounded retry on transport faults. A not-found response from the delete
// itself means the goal state is already reached.
func (o *Orchestrator) deleteOne(ctx context.Context, id string) snapshot.DeletionOutcome {
	// Existence pre-check before anything destructive. Only a confirmed
	// not-found answer skips the item; a transient fault here leaves the
	// decision to the delete and its retry loop.
	if err := o.Deleter.ShowSnapshot(ctx, id); ports.IsNotFound(err) {
		return o.outcome(id, snapshot.OutcomeSkipped, "not found")
	}

	op := func() error {
		// The delete itself must never be hard-killed mid-flight; only the
		// retry loop observes cancellation.
		err := o.Deleter.DeleteSnapshot(context.WithoutCancel(ctx), id)
		if err == nil || ports.IsTransport(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	err := backoff.Retry(op, backoff.WithContext(o.newBackOff(), ctx))
	switch {
	case err == nil:
		return o.outcome(id, snapshot.OutcomeDeleted, "")
	case ports.IsNotFound(err):
		return o.outcome(id, snapshot.OutcomeDeleted, "already absent")
	default:
		o.log().Error("snapshot deletion failed",
			zap.String("id", id),
			zap.Error(err))
		return o.outcome(id, snapshot.OutcomeFailed, err.Error())
	}
}

func (o *Orchestrator) outcome(id string, kind snapshot.OutcomeKind, reason string) snapshot.DeletionOutcome {
	return snapshot.DeletionOutcome{
		SnapshotID: id,
		Kind:       kind,
		Reason:     reason,
		Timestamp:  o.now()(),
	}
}

// record stores the outcome in the worker's own slot, appends it to the audit
// trail synchronously, and emits the progress event.
func (o *Orchestrator) record(slot *snapshot.DeletionOutcome, outcome snapshot.DeletionOutcome, done, total int) {
	*slot = outcome
	if o.Audit != nil {
		if err := o.Audit.Record(outcome); err != nil {
			o.log().Error("audit write failed",
				zap.String("id", outcome.SnapshotID),
				zap.Error(err))
		}
	}
	o.sink().OutcomeRecorded(outcome, done, total)
}

func (o *Orchestrator) newBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	if o.Retry.InitialInterval > 0 {
		bo.InitialInterval = o.Retry.InitialInterval
	}
	attempts := o.Retry.MaxAttempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	return backoff.WithMaxRetries(bo, uint64(attempts-1))
}

func (o *Orchestrator) concurrency() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return defaultConcurrency
}

func (o *Orchestrator) sink() ports.DeleteProgress {
	if o.Sink != nil {
		return o.Sink
	}
	return nopSink{}
}

func (o *Orchestrator) log() *zap.Logger {
	if o.Log != nil {
		return o.Log
	}
	return zap.NewNop()
}

func (o *Orchestrator) now() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

func resourceIDs(parsed []*snapshot.ResourceID) []snapshot.ResourceID {
	out := make([]snapshot.ResourceID, 0, len(parsed))
	for _, rid := range parsed {
		if rid != nil {
			out = append(out, *rid)
		}
	}
	return out
}

type nopSink struct{}

func (nopSink) OutcomeRecorded(snapshot.DeletionOutcome, int, int) {}
