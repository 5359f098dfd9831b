// Where: cli/internal/infra/audit/writer.go
// What: Append-only per-run deletion audit log.
// Why: A crash mid-batch must leave a correct, human-readable partial trail.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
)

// RunMeta describes the run an audit file belongs to.
type RunMeta struct {
	RunID string
	User  string
	Start time.Time
}

// Writer appends deletion outcomes to a single per-run file. Entries are
// written synchronously, one line per outcome, and the file is never
// rewritten.
type Writer struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// Open creates the audit file for one run and writes its header.
// File name: snapshot_deletion_<user>_<timestamp>.log
func Open(dir string, meta RunMeta) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}
	name := fmt.Sprintf("snapshot_deletion_%s_%s.log", meta.User, meta.Start.Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create audit file: %w", err)
	}

	header := fmt.Sprintf("Snapshot Deletion Log\n=====================\n\nRun:  %s\nUser: %s\nDate: %s\n\n",
		meta.RunID, meta.User, meta.Start.Format(time.RFC3339))
	if _, err := f.WriteString(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write audit header: %w", err)
	}

	return &Writer{f: f, path: path}, nil
}

// Path returns the audit file location.
func (w *Writer) Path() string { return w.path }

// Record appends one outcome line. Safe for concurrent use; each call is an
// atomic append so a partial batch still reads correctly.
func (w *Writer) Record(o snapshot.DeletionOutcome) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	line := fmt.Sprintf("%s  %-8s %s", o.Timestamp.Format(time.RFC3339), o.Kind, o.SnapshotID)
	if o.Reason != "" {
		line += "  (" + o.Reason + ")"
	}
	if _, err := w.f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Close appends the summary block and closes the file.
func (w *Writer) Close(tally snapshot.OutcomeTally, runtime time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	summary := fmt.Sprintf("\nSummary:\n  Deleted: %d\n  Failed:  %d\n  Skipped: %d\n\nTotal Runtime: %.2f seconds\n",
		tally.Deleted, tally.Failed, tally.Skipped, runtime.Seconds())
	if _, err := w.f.WriteString(summary); err != nil {
		w.f.Close()
		return fmt.Errorf("write audit summary: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("close audit file: %w", err)
	}
	return nil
}
