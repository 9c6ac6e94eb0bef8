// Package edulint runs the edulint linter as a subprocess.
package edulint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/hashicorp/go-hclog"
)

// Runner executes commands and captures their output. Stderr is also
// streamed to the logger.
type Runner struct {
	logger hclog.Logger
}

// NewRunner creates a runner logging to logger.
func NewRunner(logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{logger: logger}
}

// Output is what a finished command wrote.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Run executes argv and blocks until it exits or ctx is done. A non-zero
// exit status is reported as an error together with the captured output.
func (r *Runner) Run(ctx context.Context, argv []string) (Output, error) {
	if len(argv) == 0 {
		return Output{}, errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	r.logger.Debug("running command", "cmd", cmd.Args)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(r.logger.StandardWriter(&hclog.StandardLoggerOptions{
		ForceLevel: hclog.Warn,
	}), &stderr)

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, fmt.Errorf("%s exited with status %d: %w", argv[0], exitErr.ExitCode(), err)
		}
		return out, fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return out, nil
}
