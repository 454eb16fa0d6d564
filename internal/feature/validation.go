package feature

import (
	"context"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/defs"
	"github.com/modu-ai/nestforge/internal/patch"
	"github.com/modu-ai/nestforge/pkg/models"
)

type validationInstaller struct{}

// Validation returns the installer for the global request validation pipe.
func Validation() Installer { return validationInstaller{} }

func (validationInstaller) Name() string { return string(models.FeatureValidation) }

func (validationInstaller) Enabled(rec *config.Record) bool {
	return rec.Enabled(models.FeatureValidation)
}

func (validationInstaller) Install(ctx context.Context, env *Env) error {
	if err := env.add(ctx, false, "class-validator", "class-transformer"); err != nil {
		return err
	}
	return env.patch(defs.MainTS,
		patch.Import("ValidationPipe", "@nestjs/common"),
		patch.InsertBefore{
			Anchor: listenAnchor,
			Text:   "app.useGlobalPipes(new ValidationPipe());",
			Marker: "new ValidationPipe(",
		},
	)
}
