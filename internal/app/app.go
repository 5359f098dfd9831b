// Where: cli/internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/azsnap/azsnap/internal/config"
	"github.com/azsnap/azsnap/internal/version"
)

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Config  string     `short:"c" help:"Path to config file (default: azsnap.yml)"`
	Search  SearchCmd  `cmd:"" help:"Search snapshots across all subscriptions"`
	Delete  DeleteCmd  `cmd:"" help:"Delete snapshots listed in a file"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type SearchCmd struct {
	Start       string `help:"Start date (YYYY-MM-DD), inclusive"`
	End         string `help:"End date (YYYY-MM-DD), inclusive"`
	Keyword     string `short:"k" help:"Case-insensitive name filter"`
	CSV         string `name:"csv" help:"Export matches to a CSV file"`
	Delete      bool   `help:"Offer deletion of the matched snapshots"`
	ManageLocks bool   `name:"manage-locks" help:"Remove and restore CanNotDelete locks around deletion"`
	Yes         bool   `short:"y" help:"Skip confirmation prompts"`
}

type DeleteCmd struct {
	File        string `arg:"" help:"File with snapshot resource IDs, one per line"`
	ManageLocks bool   `name:"manage-locks" help:"Remove and restore CanNotDelete locks around deletion"`
	Yes         bool   `short:"y" help:"Skip confirmation prompts"`
}

type VersionCmd struct{}

// Run is the main entry point for CLI command execution. It parses the
// arguments, loads configuration, and dispatches to the command handler.
// Returns 0 on success, 1 on usage or setup error. Per-item deletion failures
// never affect the exit code; the batch being processed is what counts.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	if len(args) == 0 {
		fmt.Fprintln(out, "usage: azsnap <search|delete|version> [flags]")
		return 1
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name("azsnap"),
		kong.Description("Inventory and delete Azure disk snapshots across subscriptions."),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := kctx.Command()
	if exitCode, handled := dispatchCommand(ctx, command, cli, cfg, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(context.Context, CLI, config.Config, Dependencies, io.Writer) int

func dispatchCommand(ctx context.Context, command string, cli CLI, cfg config.Config, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"search": runSearch,
		"version": func(_ context.Context, _ CLI, _ config.Config, _ Dependencies, out io.Writer) int {
			return runVersion(out)
		},
	}
	if handler, ok := exactHandlers[command]; ok {
		return handler(ctx, cli, cfg, deps, out), true
	}

	if strings.HasPrefix(command, "delete") {
		return runDelete(ctx, cli, cfg, deps, out), true
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintln(out, version.GetVersion())
	return 0
}
