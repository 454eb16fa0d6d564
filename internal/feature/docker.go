package feature

import (
	"context"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/pkg/models"
)

type dockerInstaller struct{}

// Docker returns the container build files installer.
func Docker() Installer { return dockerInstaller{} }

func (dockerInstaller) Name() string { return string(models.FeatureDocker) }

func (dockerInstaller) Enabled(rec *config.Record) bool { return rec.Enabled(models.FeatureDocker) }

func (dockerInstaller) Install(_ context.Context, env *Env) error {
	return env.emit(template.Dockerfile, template.DockerIgnore)
}
