// Where: cli/cmd/azsnap/main.go
// What: CLI entrypoint.
// Why: Execute azsnap commands with configured dependencies.
package main

import (
	"fmt"
	"os"

	"github.com/azsnap/azsnap/internal/app"
)

func main() {
	deps, closer, err := buildDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	code := app.Run(os.Args[1:], deps)
	if closer != nil {
		closer.Close()
	}
	os.Exit(code)
}
