package template

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/modu-ai/nestforge/internal/fsutil"
	"github.com/modu-ai/nestforge/internal/textdiff"
)

// Artifact is a generated file: the embedded template that produces it and
// its target path relative to the project root, in slash form.
type Artifact struct {
	Template string
	Target   string
	// GeneratorOwned marks targets the NestJS generator itself creates.
	// In a freshly generated project they may be replaced.
	GeneratorOwned bool
}

// Action records what Emit did with the target file.
type Action string

const (
	ActionCreated     Action = "created"
	ActionUnchanged   Action = "unchanged"
	ActionOverwritten Action = "overwritten"
)

// EmitResult describes a single emitted artifact.
type EmitResult struct {
	Path   string
	Action Action
}

// Emitter renders artifacts and writes them under a project root.
type Emitter struct {
	renderer Renderer
	root     string
	force    bool
	fresh    bool
	logger   *slog.Logger
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithForce makes Emit overwrite targets whose content differs.
func WithForce(force bool) EmitterOption {
	return func(e *Emitter) { e.force = force }
}

// WithFreshProject marks the root as generated during this run, so
// generator-owned targets may be replaced.
func WithFreshProject(fresh bool) EmitterOption {
	return func(e *Emitter) { e.fresh = fresh }
}

// WithLogger sets the emitter's logger.
func WithLogger(logger *slog.Logger) EmitterOption {
	return func(e *Emitter) { e.logger = logger }
}

// NewEmitter creates an Emitter writing under projectRoot.
func NewEmitter(r Renderer, projectRoot string, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		renderer: r,
		root:     filepath.Clean(projectRoot),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the project root the emitter writes under.
func (e *Emitter) Root() string {
	return e.root
}

// Render renders an artifact's template without writing it.
func (e *Emitter) Render(a Artifact, data any) ([]byte, error) {
	return e.renderer.Render(a.Template, data)
}

// @MX:NOTE: [AUTO] one overwrite policy for every generated file: identical content is a no-op, differing content is a conflict unless forced.
// Emit renders the artifact and writes it. The whole file is written or
// nothing is. A target that already holds the same bytes is left alone;
// a target with different bytes yields ErrFileConflict unless the emitter
// was created with WithForce(true), or the artifact is generator-owned and
// the project is fresh.
func (e *Emitter) Emit(a Artifact, data any) (*EmitResult, error) {
	if err := validateDeployPath(e.root, a.Target); err != nil {
		return nil, err
	}

	content, err := e.renderer.Render(a.Template, data)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", a.Target, err)
	}

	dest := filepath.Join(e.root, filepath.FromSlash(a.Target))
	action := ActionCreated

	existing, err := os.ReadFile(dest)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			e.logger.Debug("artifact unchanged", "path", a.Target)
			return &EmitResult{Path: dest, Action: ActionUnchanged}, nil
		}
		if !e.force && !(a.GeneratorOwned && e.fresh) {
			ins, del := textdiff.Stat(existing, content)
			e.logger.Debug("artifact conflict", "path", a.Target, "diff", textdiff.Unified(a.Target, existing, content))
			return nil, fmt.Errorf("%w: %s (+%d -%d lines, use --force to overwrite)", ErrFileConflict, a.Target, ins, del)
		}
		action = ActionOverwritten
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", a.Target, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", a.Target, err)
	}
	if err := fsutil.WriteFile(dest, content, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", a.Target, err)
	}

	e.logger.Debug("artifact written", "path", a.Target, "action", action)
	return &EmitResult{Path: dest, Action: action}, nil
}

// validateDeployPath ensures relPath stays under projectRoot.
func validateDeployPath(projectRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	absPath := filepath.Join(absProjectRoot, cleaned)
	if !strings.HasPrefix(absPath, absProjectRoot+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q escapes project root", ErrPathTraversal, relPath)
	}

	return nil
}
