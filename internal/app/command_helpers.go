// Where: cli/internal/app/command_helpers.go
// What: Shared helpers for CLI commands.
// Why: Keep error output and session checks consistent across commands.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/azsnap/azsnap/internal/ui"
)

func exitWithError(out io.Writer, err error) int {
	ui.New(out).Error(err.Error())
	return 1
}

// ensureSession verifies the az session once before orchestration begins,
// triggering the interactive login flow when needed. Total authentication
// failure is the only error fatal to a whole run.
func ensureSession(ctx context.Context, deps Dependencies, console *ui.Console) error {
	if deps.Session.IsLoggedIn(ctx) {
		return nil
	}
	console.Warn("You are not logged in to Azure. Starting login...")
	if err := deps.Session.Login(ctx); err != nil {
		return fmt.Errorf("azure login failed: %w", err)
	}
	console.Success("Azure login successful")
	return nil
}
