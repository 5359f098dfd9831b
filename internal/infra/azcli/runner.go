// Where: cli/internal/infra/azcli/runner.go
// What: External command execution for the az CLI.
// Why: Keep exec behind an interface so the adapter is testable without az.
package azcli

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner executes an external command and returns stdout and stderr
// separately. Classification of az failures needs the stderr text.
type CommandRunner interface {
	RunOutput(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner is the os/exec implementation of CommandRunner.
type ExecRunner struct{}

func (r ExecRunner) RunOutput(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
