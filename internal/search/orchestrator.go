// Where: cli/internal/search/orchestrator.go
// What: Multi-subscription snapshot search orchestrator.
// Why: Fan out listing with bounded concurrency while containing
// per-subscription failures and keeping the aggregate deterministic.
package search

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/ports"
)

const (
	defaultConcurrency = 8
	defaultAttempts    = 3
	defaultInterval    = 500 * time.Millisecond
)

// RetryPolicy bounds transport-failure retries per subscription.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
}

// Orchestrator searches all enumerated subscriptions concurrently.
type Orchestrator struct {
	Lister      ports.SnapshotLister
	Concurrency int
	Retry       RetryPolicy
	Sink        ports.SearchProgress
	Log         *zap.Logger
	Now         func() time.Time
}

// Run searches every subscription and returns the consolidated result,
// grouped in enumeration order. Per-subscription authorization failures
// become warnings, exhausted transport retries become per-subscription
// errors; neither aborts the run. Cancelling the context stops new
// subscription tasks from starting while in-flight listings finish.
func (o *Orchestrator) Run(ctx context.Context, subs []snapshot.Subscription, filter snapshot.Filter) snapshot.SearchRun {
	run := snapshot.SearchRun{
		RunID:   uuid.NewString(),
		Filter:  filter,
		Results: make([]snapshot.SubscriptionResult, len(subs)),
		Started: o.now()(),
	}

	g := new(errgroup.Group)
	g.SetLimit(o.concurrency())
	var done atomic.Int64
	total := len(subs)

	for i, sub := range subs {
		i, sub := i, sub
		if ctx.Err() != nil {
			run.Results[i] = cancelledResult(sub)
			continue
		}
		g.Go(func() error {
			// Re-check after waiting for a slot: never start new work
			// once the operator cancelled.
			if ctx.Err() != nil {
				run.Results[i] = cancelledResult(sub)
			} else {
				o.sink().SubscriptionStarted(sub, i, total)
				run.Results[i] = o.searchOne(ctx, sub, filter)
			}
			o.sink().SubscriptionCompleted(run.Results[i], int(done.Add(1)), total)
			return nil
		})
	}
	_ = g.Wait()

	run.Finished = o.now()()
	return run
}

// searchOne lists one subscription with bounded retry on transport faults
// and applies the filter to every returned record.
func (o *Orchestrator) searchOne(ctx context.Context, sub snapshot.Subscription, filter snapshot.Filter) snapshot.SubscriptionResult {
	result := snapshot.SubscriptionResult{Subscription: sub}

	var records []snapshot.Record
	op := func() error {
		result.Attempts++
		recs, err := o.Lister.ListSnapshots(ctx, sub.ID)
		if err != nil {
			if ports.IsTransport(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		records = recs
		return nil
	}

	err := backoff.Retry(op, backoff.WithContext(o.newBackOff(), ctx))
	if err != nil {
		if ports.IsAuthorization(err) {
			result.Subscription.Access = snapshot.AccessForbidden
			result.Warning = fmt.Sprintf("no permission to list snapshots in subscription %s", sub.DisplayName())
			o.log().Warn("subscription skipped",
				zap.String("subscription", sub.ID),
				zap.Error(err))
			return result
		}
		result.Err = err.Error()
		o.log().Error("subscription failed after retries",
			zap.String("subscription", sub.ID),
			zap.Int("attempts", result.Attempts),
			zap.Error(err))
		return result
	}

	result.Subscription.Access = snapshot.AccessGranted
	for _, rec := range records {
		if filter.Matches(rec) {
			result.Matches = append(result.Matches, rec)
			o.sink().RecordMatched(result.Subscription, rec)
		}
	}
	o.log().Info("subscription searched",
		zap.String("subscription", sub.ID),
		zap.Int("listed", len(records)),
		zap.Int("matched", len(result.Matches)))
	return result
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

func (o *Orchestrator) sink() ports.SearchProgress {
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

func cancelledResult(sub snapshot.Subscription) snapshot.SubscriptionResult {
	return snapshot.SubscriptionResult{Subscription: sub, Err: "cancelled"}
}

type nopSink struct{}

func (nopSink) SubscriptionStarted(snapshot.Subscription, int, int)         {}
func (nopSink) RecordMatched(snapshot.Subscription, snapshot.Record)        {}
func (nopSink) SubscriptionCompleted(snapshot.SubscriptionResult, int, int) {}
