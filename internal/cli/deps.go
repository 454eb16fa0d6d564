// Package cli provides the Cobra command tree and dependency injection
// wiring for the nestforge CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/modu-ai/nestforge/internal/cli/wizard"
	"github.com/modu-ai/nestforge/internal/connectivity"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/internal/toolrunner"
	"github.com/modu-ai/nestforge/internal/ui"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Runner   toolrunner.Runner
	Renderer template.Renderer
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Asker    wizard.Asker
	Checker  *connectivity.Checker
	Logger   *slog.Logger
}

// Settings are the global flags that shape the dependencies.
type Settings struct {
	// Verbose streams child output and debug logs to Stderr.
	Verbose bool

	// Timeout bounds each external command. Zero means no limit.
	Timeout time.Duration

	NoColor bool
	Stderr  io.Writer
}

// deps is the global dependencies instance, initialized by InitDependencies.
// CLI commands access this through the package-level variable.
var deps *Dependencies

// @MX:ANCHOR: [AUTO] InitDependencies is the Composition Root that wires all domain modules
// @MX:REASON: [AUTO] called from the root command's pre-run; tests replace it with SetDeps
// InitDependencies creates and wires all domain dependencies.
func InitDependencies(s Settings) {
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}

	// Logs are off unless --verbose; user-facing output goes through ui.Console.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runnerOpts := []toolrunner.Option{toolrunner.WithTimeout(s.Timeout)}
	if s.Verbose {
		logger = slog.New(slog.NewTextHandler(s.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		runnerOpts = append(runnerOpts, toolrunner.WithStream(s.Stderr))
	}
	runnerOpts = append(runnerOpts, toolrunner.WithLogger(logger))

	timeout := s.Timeout
	if timeout == 0 {
		timeout = connectivity.DefaultTimeout
	}

	theme := ui.NewTheme(ui.ThemeConfig{NoColor: s.NoColor || os.Getenv("NO_COLOR") != ""})
	deps = &Dependencies{
		Runner:   toolrunner.NewExecRunner(runnerOpts...),
		Renderer: template.NewRenderer(template.EmbeddedTemplates()),
		Theme:    theme,
		Headless: ui.NewHeadlessManager(),
		Asker:    wizard.HuhAsker(theme),
		Checker:  connectivity.NewChecker(timeout),
		Logger:   logger,
	}
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// console creates the progress reporter for one command.
func (d *Dependencies) console(out io.Writer) *ui.Console {
	return ui.NewConsole(d.Theme, d.Headless, out)
}
