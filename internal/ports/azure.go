// Where: cli/internal/ports/azure.go
// What: Contracts for the external Azure CLI collaborator.
// Why: Provide stable boundaries between orchestration logic and az invocation.
package ports

import (
	"context"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
)

// Session is the authentication collaborator, consumed once before any
// orchestration begins.
type Session interface {
	IsLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
}

// SubscriptionLister enumerates the subscriptions visible to the session.
// An empty list is a valid result; only total authentication failure is an
// error.
type SubscriptionLister interface {
	ListSubscriptions(ctx context.Context) ([]snapshot.Subscription, error)
}

// SnapshotLister lists every snapshot in one subscription. Failures are
// reported as *AuthorizationError, *NotFoundError, or *TransportError; no
// retrying happens at this level.
type SnapshotLister interface {
	ListSnapshots(ctx context.Context, subscriptionID string) ([]snapshot.Record, error)
}

// SnapshotDeleter deletes or inspects a single snapshot by resource ID.
type SnapshotDeleter interface {
	DeleteSnapshot(ctx context.Context, id string) error
	ShowSnapshot(ctx context.Context, id string) error
}

// LevelCanNotDelete is the lock level that blocks deletions.
const LevelCanNotDelete = "CanNotDelete"

// ResourceLock is a management lock on a resource group.
type ResourceLock struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// LockManager manipulates CanNotDelete scope locks that would block snapshot
// deletion. All calls address the resource group explicitly; no process-wide
// subscription switching.
type LockManager interface {
	ListLocks(ctx context.Context, subscriptionID, resourceGroup string) ([]ResourceLock, error)
	DeleteLock(ctx context.Context, subscriptionID, resourceGroup, name string) error
	CreateLock(ctx context.Context, subscriptionID, resourceGroup, name string) error
}
