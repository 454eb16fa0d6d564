package feature

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/defs"
	"github.com/modu-ai/nestforge/internal/envfile"
	"github.com/modu-ai/nestforge/internal/patch"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/internal/toolrunner"
)

// Installer sets up one integration in a project.
type Installer interface {
	// Name identifies the installer in logs and reports.
	Name() string

	// Enabled reports whether the record selects this installer.
	Enabled(rec *config.Record) bool

	// Install runs the installer. A returned error abandons this feature
	// only; files already written are kept.
	Install(ctx context.Context, env *Env) error
}

// Reporter receives user-facing warnings raised while installing.
type Reporter interface {
	Warn(msg string)
}

// Env is everything an installer needs. All paths are resolved against
// ProjectRoot; nothing depends on the process working directory.
type Env struct {
	ProjectRoot string
	Record      *config.Record
	PNPM        *toolrunner.PNPM
	Emitter     *template.Emitter
	Patcher     *patch.Patcher
	Logger      *slog.Logger
	Reporter    Reporter
}

func (e *Env) log() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func (e *Env) path(rel string) string {
	return filepath.Join(e.ProjectRoot, filepath.FromSlash(rel))
}

func (e *Env) data() *template.Data {
	return template.NewData(e.Record)
}

func (e *Env) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.log().Warn(msg)
	if e.Reporter != nil {
		e.Reporter.Warn(msg)
	}
}

// add installs packages into the project.
func (e *Env) add(ctx context.Context, dev bool, pkgs ...string) error {
	if err := e.PNPM.Add(ctx, e.ProjectRoot, dev, pkgs...); err != nil {
		return fmt.Errorf("install packages: %w", err)
	}
	return nil
}

// emit writes artifacts in order and stops at the first failure.
func (e *Env) emit(artifacts ...template.Artifact) error {
	data := e.data()
	for _, a := range artifacts {
		res, err := e.Emitter.Emit(a, data)
		if err != nil {
			return err
		}
		e.log().Debug("emitted", "path", a.Target, "action", res.Action)
	}
	return nil
}

// render returns an artifact's rendered text for use in a patch.
func (e *Env) render(a template.Artifact) (string, error) {
	b, err := e.Emitter.Render(a, e.data())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// patch edits a project file. A missing anchor skips the patch with a
// warning; the file is left as it was.
func (e *Env) patch(rel string, edits ...patch.Edit) error {
	_, err := e.Patcher.Apply(e.path(rel), edits...)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, patch.ErrAnchorNotFound), errors.Is(err, patch.ErrFileNotFound):
		e.warnf("%s left unchanged: %v", rel, err)
		return nil
	}
	return err
}

// setEnv merges entries into the project's .env file.
func (e *Env) setEnv(entries ...envfile.Entry) error {
	return envfile.Update(e.path(defs.EnvFile), entries...)
}
