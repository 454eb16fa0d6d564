package feature

import (
	"context"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/envfile"
	"github.com/modu-ai/nestforge/internal/template"
)

// baseInstaller writes the settings every project gets: the server port,
// the runtime environment and the config helpers that read them.
type baseInstaller struct{}

// Base returns the installer for the base env and config files.
func Base() Installer { return baseInstaller{} }

func (baseInstaller) Name() string { return "base" }

func (baseInstaller) Enabled(*config.Record) bool { return true }

func (baseInstaller) Install(_ context.Context, env *Env) error {
	rec := env.Record
	if err := env.setEnv(
		envfile.E("PORT", rec.Port),
		envfile.E("ENVIRONMENT", string(rec.Environment)),
	); err != nil {
		return err
	}
	return env.emit(template.EnvConfig, template.AppConfig)
}
