// Where: cli/internal/app/search.go
// What: Search command flow.
// Why: Tie enumeration, orchestration, display, export, and optional deletion
// together behind one command.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/azsnap/azsnap/internal/config"
	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/infra/report"
	"github.com/azsnap/azsnap/internal/search"
	"github.com/azsnap/azsnap/internal/ui"
)

// runSearch executes the 'search' command: enumerate subscriptions, search
// them concurrently, present results, and optionally hand the matches to the
// deletion flow after explicit confirmation.
func runSearch(ctx context.Context, cli CLI, cfg config.Config, deps Dependencies, out io.Writer) int {
	console := ui.New(out)

	filter, err := resolveFilter(cli.Search, deps.Prompter, deps.now()())
	if err != nil {
		return exitWithError(out, err)
	}

	if err := ensureSession(ctx, deps, console); err != nil {
		return exitWithError(out, err)
	}

	subs, err := deps.Accounts.ListSubscriptions(ctx)
	if err != nil {
		return exitWithError(out, fmt.Errorf("list subscriptions: %w", err))
	}
	if len(subs) == 0 {
		console.Warn("No subscriptions visible to this account.")
		return 0
	}

	console.Header("🔍", fmt.Sprintf("Searching %d subscriptions", len(subs)))

	orch := search.Orchestrator{
		Lister:      deps.Lister,
		Concurrency: cfg.Concurrency.Search,
		Retry: search.RetryPolicy{
			MaxAttempts:     cfg.Retry.MaxAttempts,
			InitialInterval: cfg.InitialDelay(),
		},
		Sink: report.NewConsoleSearchProgress(console),
		Log:  deps.log(),
		Now:  deps.now(),
	}
	run := orch.Run(ctx, subs, filter)

	report.WriteTables(out, run, deps.now()())
	console.Blank()
	summary, err := report.RenderSearchSummary(run)
	if err != nil {
		return exitWithError(out, err)
	}
	fmt.Fprint(out, summary)

	if cli.Search.CSV != "" {
		if err := exportCSV(cli.Search.CSV, run, console); err != nil {
			return exitWithError(out, err)
		}
	}

	if cli.Search.Delete && run.TotalMatches() > 0 {
		return deleteMatches(ctx, cli, cfg, deps, out, console, run)
	}
	return 0
}

func exportCSV(path string, run snapshot.SearchRun, console *ui.Console) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()
	if err := report.WriteCSV(f, run); err != nil {
		return err
	}
	console.Success(fmt.Sprintf("Results exported to %s", path))
	return nil
}
