// Where: cli/internal/app/delete.go
// What: Deletion command flow.
// Why: Operator-confirmed bulk deletion with audit trail and exit-code
// semantics matching per-item reporting.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/azsnap/azsnap/internal/config"
	"github.com/azsnap/azsnap/internal/deletion"
	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/infra/audit"
	"github.com/azsnap/azsnap/internal/infra/report"
	"github.com/azsnap/azsnap/internal/ports"
	"github.com/azsnap/azsnap/internal/ui"
)

// runDelete executes the 'delete' command: read the ID file, confirm large
// batches, and process the whole batch. Exit code 0 means the batch was
// processed; individual failures are reported in the summary and audit log,
// not the exit code.
func runDelete(ctx context.Context, cli CLI, cfg config.Config, deps Dependencies, out io.Writer) int {
	console := ui.New(out)

	ids, err := readIDFile(cli.Delete.File)
	if err != nil {
		return exitWithError(out, err)
	}

	if len(ids) > cfg.LargeBatchThreshold && !cli.Delete.Yes {
		confirmed, err := confirm(deps, fmt.Sprintf("You are about to process %d snapshots. Proceed?", len(ids)))
		if err != nil {
			return exitWithError(out, err)
		}
		if !confirmed {
			console.Info("Operation cancelled.")
			return 1
		}
	}

	if err := ensureSession(ctx, deps, console); err != nil {
		return exitWithError(out, err)
	}

	return runDeletionBatch(ctx, cfg, deps, out, console, ids, cli.Delete.ManageLocks)
}

// deleteMatches hands the matched snapshots of a search run to the deletion
// flow after an explicit confirmation. Deletion never proceeds implicitly.
func deleteMatches(ctx context.Context, cli CLI, cfg config.Config, deps Dependencies, out io.Writer, console *ui.Console, run snapshot.SearchRun) int {
	if !cli.Search.Yes {
		confirmed, err := confirm(deps, fmt.Sprintf("Delete all %d matched snapshots?", run.TotalMatches()))
		if err != nil {
			return exitWithError(out, err)
		}
		if !confirmed {
			console.Info("Deletion skipped.")
			return 0
		}
	}

	records := run.Records()
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	return runDeletionBatch(ctx, cfg, deps, out, console, ids, cli.Search.ManageLocks)
}

// runDeletionBatch opens the audit trail, runs the deletion orchestrator, and
// prints the summary. The audit file is opened before any delete is issued;
// failure to open it aborts the run up front.
func runDeletionBatch(ctx context.Context, cfg config.Config, deps Dependencies, out io.Writer, console *ui.Console, ids []string, manageLocks bool) int {
	started := deps.now()()
	meta := audit.RunMeta{RunID: uuid.NewString(), User: deps.User, Start: started}

	auditFile, err := openAudit(deps, cfg.AuditDir, meta)
	if err != nil {
		return exitWithError(out, err)
	}

	var guard *deletion.LockGuard
	if manageLocks && deps.Locks != nil {
		guard = &deletion.LockGuard{Manager: deps.Locks, Log: deps.log()}
	}

	console.Header("🗑️", fmt.Sprintf("Deleting %d snapshots", len(ids)))
	console.Item("Audit log", auditFile.Path())

	orch := deletion.Orchestrator{
		Deleter:     deps.Deleter,
		Audit:       auditFile,
		Locks:       guard,
		Concurrency: cfg.Concurrency.Delete,
		Retry: deletion.RetryPolicy{
			MaxAttempts:     cfg.Retry.MaxAttempts,
			InitialInterval: cfg.InitialDelay(),
		},
		Sink: report.NewConsoleDeleteProgress(console),
		Log:  deps.log(),
		Now:  deps.now(),
	}
	outcomes := orch.Run(ctx, ids)

	runtime := deps.now()().Sub(started)
	if err := auditFile.Close(snapshot.Tally(outcomes), runtime); err != nil {
		console.Warn(fmt.Sprintf("audit close failed: %v", err))
	}

	console.Blank()
	summary, err := report.RenderDeletionSummary(outcomes, runtime, auditFile.Path())
	if err != nil {
		return exitWithError(out, err)
	}
	fmt.Fprint(out, summary)
	return 0
}

// readIDFile reads newline-separated snapshot resource IDs. A missing or
// empty file is a usage error before any orchestration starts.
func readIDFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ports.UsageError{Detail: fmt.Sprintf("cannot read ID file %s: %v", path, err)}
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ports.UsageError{Detail: fmt.Sprintf("read ID file %s: %v", path, err)}
	}
	if len(ids) == 0 {
		return nil, &ports.UsageError{Detail: fmt.Sprintf("ID file %s contains no snapshot IDs", path)}
	}
	return ids, nil
}

func confirm(deps Dependencies, message string) (bool, error) {
	if deps.Prompter == nil {
		return false, &ports.UsageError{Detail: "confirmation required: re-run with --yes in non-interactive mode"}
	}
	return deps.Prompter.Confirm(message)
}

func openAudit(deps Dependencies, dir string, meta audit.RunMeta) (AuditFile, error) {
	if deps.OpenAudit != nil {
		return deps.OpenAudit(dir, meta)
	}
	w, err := audit.Open(dir, meta)
	if err != nil {
		return nil, err
	}
	return w, nil
}
