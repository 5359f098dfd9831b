// Where: cli/internal/deletion/locks_test.go
// What: Tests for the scope-lock guard.
package deletion

import (
	"context"
	"fmt"
	"testing"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/ports"
)

type fakeLockManager struct {
	locks   map[string][]ports.ResourceLock
	deleted []string
	created []string
	failOn  map[string]bool
}

func lockKey(sub, rg string) string { return sub + "/" + rg }

func (f *fakeLockManager) ListLocks(_ context.Context, sub, rg string) ([]ports.ResourceLock, error) {
	return f.locks[lockKey(sub, rg)], nil
}

func (f *fakeLockManager) DeleteLock(_ context.Context, sub, rg, name string) error {
	f.deleted = append(f.deleted, lockKey(sub, rg)+"/"+name)
	return nil
}

func (f *fakeLockManager) CreateLock(_ context.Context, sub, rg, name string) error {
	key := lockKey(sub, rg) + "/" + name
	if f.failOn[key] {
		return fmt.Errorf("create lock %s: denied", key)
	}
	f.created = append(f.created, key)
	return nil
}

func TestLockGuardRemovesOnlyCanNotDeleteLocks(t *testing.T) {
	manager := &fakeLockManager{locks: map[string][]ports.ResourceLock{
		"sub-1/rg-1": {
			{Name: "blocker", Level: ports.LevelCanNotDelete},
			{Name: "readonly", Level: "ReadOnly"},
		},
	}}
	guard := &LockGuard{Manager: manager}

	rids := []snapshot.ResourceID{
		{SubscriptionID: "sub-1", ResourceGroup: "rg-1", Name: "snap-a"},
		{SubscriptionID: "sub-1", ResourceGroup: "rg-1", Name: "snap-b"},
	}
	removed := guard.Remove(context.Background(), rids)

	if len(removed) != 1 || removed[0].Name != "blocker" {
		t.Fatalf("removed = %+v, want just the CanNotDelete lock", removed)
	}
	// Duplicate resource groups are visited once.
	if len(manager.deleted) != 1 {
		t.Errorf("deleted = %v, want one removal", manager.deleted)
	}
}

func TestLockGuardRestoreReportsFailures(t *testing.T) {
	manager := &fakeLockManager{failOn: map[string]bool{"sub-1/rg-1/stuck": true}}
	guard := &LockGuard{Manager: manager}

	removed := []RemovedLock{
		{SubscriptionID: "sub-1", ResourceGroup: "rg-1", Name: "ok"},
		{SubscriptionID: "sub-1", ResourceGroup: "rg-1", Name: "stuck"},
	}
	failed := guard.Restore(context.Background(), removed)

	if len(manager.created) != 1 || manager.created[0] != "sub-1/rg-1/ok" {
		t.Errorf("created = %v", manager.created)
	}
	if len(failed) != 1 || failed[0].Name != "stuck" {
		t.Errorf("failed = %+v, want the stuck lock reported", failed)
	}
}
