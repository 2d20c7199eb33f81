package system

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=runner.go -package=system -destination=runner_mock.go

// Runner executes commands on the host. Every provisioning step talks
// to the host through this interface so tests can run without one.
type Runner interface {
	// Run executes the command and waits for it to finish.
	// A non-zero exit status is an error carrying the captured stderr.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the command and returns its trimmed stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports where the named binary lives, if anywhere.
	LookPath(name string) (string, error)
}

// DefaultTimeout bounds a single external command. Package installation
// and image pulls are the slow ones.
const DefaultTimeout = 10 * time.Minute

// ExecRunner is the exec-backed Runner used outside of tests.
type ExecRunner struct {
	logger  *zap.Logger
	timeout time.Duration
}

// NewExecRunner returns an ExecRunner with the default per-command timeout.
func NewExecRunner(logger *zap.Logger) ExecRunner {
	return ExecRunner{logger: logger, timeout: DefaultTimeout}
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.Debug("running command", zap.String("cmd", name), zap.Strings("args", args))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", commandLine(name, args), err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// Output implements Runner.
func (r ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.Debug("running command", zap.String("cmd", name), zap.Strings("args", args))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", commandLine(name, args), err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}

// LookPath implements Runner.
func (r ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
