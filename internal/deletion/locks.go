// Where: cli/internal/deletion/locks.go
// What: CanNotDelete scope-lock guard around a deletion batch.
// Why: Locks block snapshot deletes; lift them first, restore afterwards.
package deletion

import (
	"context"

	"go.uber.org/zap"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/ports"
)

// RemovedLock identifies a lock the guard removed and must restore.
type RemovedLock struct {
	SubscriptionID string
	ResourceGroup  string
	Name           string
}

// LockGuard removes CanNotDelete locks from the resource groups of a batch
// and restores them once the batch completes. Lock failures are logged and
// tolerated; they only surface as per-item deletion failures later.
type LockGuard struct {
	Manager ports.LockManager
	Log     *zap.Logger
}

// Remove lifts CanNotDelete locks from the distinct resource groups of the
// given resource IDs, in first-seen order, and returns the locks it removed.
func (g *LockGuard) Remove(ctx context.Context, rids []snapshot.ResourceID) []RemovedLock {
	var removed []RemovedLock
	seen := make(map[[2]string]bool)
	for _, rid := range rids {
		key := [2]string{rid.SubscriptionID, rid.ResourceGroup}
		if seen[key] {
			continue
		}
		seen[key] = true

		locks, err := g.Manager.ListLocks(ctx, rid.SubscriptionID, rid.ResourceGroup)
		if err != nil {
			g.log().Warn("lock listing failed",
				zap.String("subscription", rid.SubscriptionID),
				zap.String("resourceGroup", rid.ResourceGroup),
				zap.Error(err))
			continue
		}
		for _, lock := range locks {
			if lock.Level != ports.LevelCanNotDelete {
				continue
			}
			if err := g.Manager.DeleteLock(ctx, rid.SubscriptionID, rid.ResourceGroup, lock.Name); err != nil {
				g.log().Warn("lock removal failed",
					zap.String("resourceGroup", rid.ResourceGroup),
					zap.String("lock", lock.Name),
					zap.Error(err))
				continue
			}
			removed = append(removed, RemovedLock{
				SubscriptionID: rid.SubscriptionID,
				ResourceGroup:  rid.ResourceGroup,
				Name:           lock.Name,
			})
		}
	}
	return removed
}

// Restore recreates previously removed locks and returns the ones it could
// not restore, for the caller to report. Restoration runs even after the
// batch context was cancelled.
func (g *LockGuard) Restore(ctx context.Context, removed []RemovedLock) []RemovedLock {
	restoreCtx := context.WithoutCancel(ctx)
	var failed []RemovedLock
	for _, lock := range removed {
		if err := g.Manager.CreateLock(restoreCtx, lock.SubscriptionID, lock.ResourceGroup, lock.Name); err != nil {
			g.log().Error("lock restore failed",
				zap.String("resourceGroup", lock.ResourceGroup),
				zap.String("lock", lock.Name),
				zap.Error(err))
			failed = append(failed, lock)
		}
	}
	return failed
}

func (g *LockGuard) log() *zap.Logger {
	if g.Log != nil {
		return g.Log
	}
	return zap.NewNop()
}
