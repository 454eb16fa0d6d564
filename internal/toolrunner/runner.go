package toolrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Runner executes an external command in dir and returns its trimmed stdout.
// Every call names its working directory; nothing depends on the process cwd.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// execRunner runs commands through os/exec.
type execRunner struct {
	logger   *slog.Logger
	stream   io.Writer
	timeout  time.Duration
	lookPath func(file string) (string, error)
}

// Compile-time interface compliance check.
var _ Runner = (*execRunner)(nil)

// Option configures the exec runner.
type Option func(*execRunner)

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *execRunner) { r.logger = logger }
}

// WithStream copies child stdout and stderr to w while the command runs.
// Used by --verbose.
func WithStream(w io.Writer) Option {
	return func(r *execRunner) { r.stream = w }
}

// WithTimeout bounds every command. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *execRunner) { r.timeout = d }
}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner(opts ...Option) Runner {
	r := &execRunner{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes name with args in dir. Cancelling ctx kills the child.
func (r *execRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	bin, err := r.lookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if r.stream != nil {
		cmd.Stdout = io.MultiWriter(&stdout, r.stream)
		cmd.Stderr = io.MultiWriter(&stderr, r.stream)
	}

	line := commandLine(name, args)
	r.logger.Debug("running command", "cmd", line, "dir", dir)
	start := time.Now()

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(err, ctxErr)
		}
		r.logger.Debug("command failed", "cmd", line, "duration", time.Since(start), "error", errMsg)
		return "", fmt.Errorf("%s: %s: %w: %w", line, errMsg, ErrCommandFailed, err)
	}

	r.logger.Debug("command finished", "cmd", line, "duration", time.Since(start))
	return strings.TrimRight(stdout.String(), "\n\r"), nil
}

// commandLine formats the command for logs and error messages.
func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
