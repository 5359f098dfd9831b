// Where: cli/cmd/azsnap/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"
	"os/user"
	"time"

	"go.uber.org/zap"

	"github.com/azsnap/azsnap/internal/app"
	"github.com/azsnap/azsnap/internal/infra/azcli"
	"github.com/azsnap/azsnap/internal/infra/interaction"
	"github.com/azsnap/azsnap/internal/logging"
	"github.com/azsnap/azsnap/internal/ports"
)

// buildDependencies constructs all runtime dependencies required by the CLI:
// the run logger, the az client, and the interactive prompter. Returns the
// dependencies, a closer that flushes the logger, and any initialization
// error.
func buildDependencies() (app.Dependencies, io.Closer, error) {
	username := currentUser()

	log, _, err := logging.NewRunLogger("logs", username, time.Now())
	if err != nil {
		return app.Dependencies{}, nil, err
	}

	client := azcli.NewClient(azcli.ExecRunner{}, log)

	deps := app.Dependencies{
		Out:      os.Stdout,
		Session:  client,
		Accounts: client,
		Lister:   client,
		Deleter:  client,
		Locks:    client,
		Prompter: prompterForTerminal(),
		Log:      log,
		User:     username,
	}

	return deps, logCloser{log}, nil
}

// prompterForTerminal returns the interactive prompter only when stdin is a
// terminal; non-interactive runs must use flags.
func prompterForTerminal() ports.Prompter {
	if !isTerminal(os.Stdin) {
		return nil
	}
	return interaction.HuhPrompter{}
}

func isTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}

type logCloser struct {
	log *zap.Logger
}

func (c logCloser) Close() error {
	return c.log.Sync()
}
