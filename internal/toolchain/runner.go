package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ethlo/jpagen/pkg/jpagen"
)

// Runner starts an external process and returns its combined output.
type Runner interface {
	// Run executes name with args in dir (the current directory when empty).
	// A non-zero exit yields *ToolError together with the output.
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// ToolError reports an external tool that could not be started or exited
// with a non-zero status.
type ToolError struct {
	Tool     string
	ExitCode int // -1 when the process did not start
	Output   string
	Err      error
}

func (e *ToolError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("cannot run %s: %v", e.Tool, e.Err)
	}
	msg := fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ":\n" + out
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// Is lets callers match any ToolError with jpagen.ErrToolFailed.
func (e *ToolError) Is(target error) bool { return target == jpagen.ErrToolFailed }

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner for real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, &ToolError{Tool: name, ExitCode: exitErr.ExitCode(), Output: string(out), Err: err}
	}
	return out, &ToolError{Tool: name, ExitCode: -1, Err: err}
}

var _ Runner = (*ExecRunner)(nil)
