package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/defs"
	"github.com/modu-ai/nestforge/internal/feature"
	"github.com/modu-ai/nestforge/internal/patch"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/internal/toolrunner"
)

// Collector supplies the configuration for a run.
type Collector interface {
	// ProjectName asks for the name of the project directory.
	ProjectName(ctx context.Context) (string, error)

	// Collect gathers every remaining setting for the named project.
	Collect(ctx context.Context, projectName string) (*config.Record, error)
}

// Reporter receives user-facing progress.
type Reporter interface {
	feature.Reporter

	// Info prints a plain message.
	Info(msg string)

	// Begin marks the start of a step.
	Begin(step string)

	// End marks the end of a step; err is nil on success.
	End(step string, err error)
}

// Options describe one run.
type Options struct {
	// ParentDir is where the project directory is created.
	ParentDir string

	// ProjectName, when set, skips the name prompt and lets the existence
	// check run before any external command.
	ProjectName string

	SkipTooling bool

	// Force overwrites generated files whose content differs.
	Force bool
}

// StepResult records the outcome of one best-effort step.
type StepResult struct {
	Name string
	Err  error
}

// Result summarizes a completed run.
type Result struct {
	ProjectRoot string
	Record      *config.Record
	Steps       []StepResult
}

// Failed returns the steps that returned an error.
func (r *Result) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

// Orchestrator runs the generation steps in a fixed order.
type Orchestrator struct {
	pnpm      *toolrunner.PNPM
	nest      *toolrunner.Nest
	collector Collector
	reporter  Reporter
	renderer  template.Renderer
	logger    *slog.Logger
}

// New creates an Orchestrator. A nil logger discards output.
func New(runner toolrunner.Runner, collector Collector, reporter Reporter, renderer template.Renderer, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		pnpm:      toolrunner.NewPNPM(runner),
		nest:      toolrunner.NewNest(runner),
		collector: collector,
		reporter:  reporter,
		renderer:  renderer,
		logger:    logger,
	}
}

// @MX:ANCHOR: [AUTO] Run is the single entry point of a generation run.
// @MX:REASON: [AUTO] step order and the terminal/best-effort split live here only
// Run executes the full sequence. It returns an error only for terminal
// failures: an existing target, an invalid name or record, a failed
// generation, a cancelled prompt or an interrupted context. Installer
// failures are recorded in the Result and the run continues.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Result, error) {
	parent, err := filepath.Abs(opts.ParentDir)
	if err != nil {
		return nil, fmt.Errorf("resolve parent directory: %w", err)
	}

	name := opts.ProjectName
	if name != "" {
		if err := checkTarget(parent, name); err != nil {
			return nil, err
		}
	}

	if !opts.SkipTooling {
		o.verifyTooling(ctx)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	if name == "" {
		if name, err = o.collector.ProjectName(ctx); err != nil {
			return nil, err
		}
		if err := checkTarget(parent, name); err != nil {
			return nil, err
		}
	}

	root := filepath.Join(parent, name)
	if err := o.generate(ctx, parent, name); err != nil {
		return nil, err
	}

	rec, err := o.collector.Collect(ctx, name)
	if err != nil {
		return nil, err
	}
	rec.ProjectName = name
	config.ApplyDefaults(rec)
	rec.Normalize()
	if err := config.Validate(rec); err != nil {
		return nil, err
	}

	res := &Result{ProjectRoot: root, Record: rec}
	env := o.newEnv(root, rec, opts.Force, true)

	installers := append([]feature.Installer{feature.Base()}, feature.Installers()...)
	installers = append(installers, feature.LintPass())
	for _, inst := range installers {
		if !inst.Enabled(rec) {
			continue
		}
		res.Steps = append(res.Steps, o.runStep(ctx, inst, env))
		if err := ctx.Err(); err != nil {
			return res, err
		}
	}

	o.reporter.Begin("Saving project record")
	err = config.SaveProjectRecord(root, rec)
	o.reporter.End("Saving project record", err)
	res.Steps = append(res.Steps, StepResult{Name: "record", Err: err})

	return res, nil
}

// Add runs a single installer against an existing project.
func (o *Orchestrator) Add(ctx context.Context, root string, rec *config.Record, inst feature.Installer, force bool) error {
	env := o.newEnv(root, rec, force, false)
	step := o.runStep(ctx, inst, env)
	return step.Err
}

func (o *Orchestrator) newEnv(root string, rec *config.Record, force, fresh bool) *feature.Env {
	return &feature.Env{
		ProjectRoot: root,
		Record:      rec,
		PNPM:        o.pnpm,
		Emitter: template.NewEmitter(o.renderer, root,
			template.WithForce(force),
			template.WithFreshProject(fresh),
			template.WithLogger(o.logger),
		),
		Patcher:  patch.New(o.logger),
		Logger:   o.logger,
		Reporter: o.reporter,
	}
}

func (o *Orchestrator) runStep(ctx context.Context, inst feature.Installer, env *feature.Env) StepResult {
	title := "Installing " + inst.Name()
	o.reporter.Begin(title)
	err := inst.Install(ctx, env)
	o.reporter.End(title, err)
	if err != nil {
		o.logger.Error("step failed", "step", inst.Name(), "error", err)
	}
	return StepResult{Name: inst.Name(), Err: err}
}

// generate runs the NestJS generator in parent. A run that leaves no
// package.json behind is terminal.
func (o *Orchestrator) generate(ctx context.Context, parent, name string) error {
	title := "Generating NestJS project " + name
	o.reporter.Begin(title)
	err := o.pnpm.Dlx(ctx, parent, "@nestjs/cli", "new", name, "--package-manager", "pnpm")
	if _, statErr := os.Stat(filepath.Join(parent, name, defs.PackageJSON)); statErr != nil {
		if err == nil {
			err = statErr
		}
		err = fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	} else if err != nil {
		// The generator can fail after writing the project, e.g. during
		// its own git init. The project is usable.
		o.reporter.Warn(fmt.Sprintf("generator reported an error: %v", err))
		err = nil
	}
	o.reporter.End(title, err)
	return err
}

// checkTarget rejects invalid names and existing directories.
func checkTarget(parent, name string) error {
	if !config.IsValidProjectName(name) {
		return fmt.Errorf("%w: project name %q", config.ErrInvalidConfig, name)
	}
	target := filepath.Join(parent, name)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrProjectExists, target)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", target, err)
	}
	return nil
}
