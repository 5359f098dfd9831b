// Where: cli/internal/app/deps.go
// What: Injected dependencies for CLI command execution.
// Why: Enable swapping the az collaborator and sinks in tests.
package app

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/infra/audit"
	"github.com/azsnap/azsnap/internal/ports"
)

// AuditFile is an open per-run audit trail.
type AuditFile interface {
	Record(outcome snapshot.DeletionOutcome) error
	Close(tally snapshot.OutcomeTally, runtime time.Duration) error
	Path() string
}

// AuditOpener creates the audit file for a deletion run.
type AuditOpener func(dir string, meta audit.RunMeta) (AuditFile, error)

// Dependencies holds all injected collaborators required for command
// execution.
type Dependencies struct {
	Out       io.Writer
	Session   ports.Session
	Accounts  ports.SubscriptionLister
	Lister    ports.SnapshotLister
	Deleter   ports.SnapshotDeleter
	Locks     ports.LockManager
	Prompter  ports.Prompter
	OpenAudit AuditOpener
	Log       *zap.Logger
	Now       func() time.Time
	User      string
}

func (d Dependencies) now() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}

func (d Dependencies) log() *zap.Logger {
	if d.Log != nil {
		return d.Log
	}
	return zap.NewNop()
}
