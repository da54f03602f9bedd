// Package compose invokes the external container-compose binary. It is
// the only place the application shells out; everything downstream
// consumes captured stdout/stderr.
package compose

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/nleclerc/dockhand/internal/status"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Runner executes compose subcommands against one topology file.
type Runner struct {
	Bin  []string // e.g. ["docker", "compose"] or ["docker-compose"]
	File string   // topology file passed via -f
}

// Result captures one finished invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ErrComposeNotFound means neither the plugin form nor the standalone
// binary is on PATH.
var ErrComposeNotFound = errors.New("compose binary not found in PATH")

// NewRunner probes for the compose binary. The docker CLI plugin form
// is preferred; the standalone docker-compose binary is the fallback
// for older installs.
func NewRunner(file, override string) (*Runner, error) {
	if override != "" {
		return &Runner{Bin: []string{override}, File: file}, nil
	}
	if _, err := lookPath("docker"); err == nil {
		return &Runner{Bin: []string{"docker", "compose"}, File: file}, nil
	}
	if _, err := lookPath("docker-compose"); err == nil {
		return &Runner{Bin: []string{"docker-compose"}, File: file}, nil
	}
	return nil, ErrComposeNotFound
}

// Run executes one compose subcommand and captures its output. A
// non-zero exit is reported through Result.ExitCode, not as an error;
// the error return covers failures to start the process at all.
func (r *Runner) Run(ctx context.Context, args ...string) (Result, error) {
	full := append([]string{}, r.Bin[1:]...)
	if r.File != "" {
		full = append(full, "-f", r.File)
	}
	full = append(full, args...)

	cmd := exec.CommandContext(ctx, r.Bin[0], full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}

// RunAttached executes a compose subcommand wired to the terminal, for
// long-lived verbs like up and logs where streaming output matters.
func (r *Runner) RunAttached(ctx context.Context, args ...string) error {
	full := append([]string{}, r.Bin[1:]...)
	if r.File != "" {
		full = append(full, "-f", r.File)
	}
	full = append(full, args...)

	cmd := exec.CommandContext(ctx, r.Bin[0], full...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

// PS captures service status output, preferring the JSON format of
// newer binaries and falling back to the plain table of older ones.
// The returned hint tells the normalizer which shape it got.
func (r *Runner) PS(ctx context.Context) (string, status.FormatHint, error) {
	res, err := r.Run(ctx, "ps", "-a", "--format", "json")
	if err == nil && res.ExitCode == 0 {
		return res.Stdout, status.HintJSONLines, nil
	}

	res, err = r.Run(ctx, "ps", "-a")
	if err != nil {
		return "", status.HintNone, err
	}
	return res.Stdout, status.HintTable, nil
}
