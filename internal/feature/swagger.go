package feature

import (
	"context"
	"errors"
	"os"
	"regexp"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/defs"
	"github.com/modu-ai/nestforge/internal/patch"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/pkg/models"
)

// listenAnchor matches the bootstrap line statements are inserted before.
var listenAnchor = regexp.MustCompile(`await\s+app\.listen\(`)

type swaggerInstaller struct{}

// Swagger returns the OpenAPI documentation installer.
func Swagger() Installer { return swaggerInstaller{} }

func (swaggerInstaller) Name() string { return string(models.FeatureSwagger) }

func (swaggerInstaller) Enabled(rec *config.Record) bool { return rec.Enabled(models.FeatureSwagger) }

func (swaggerInstaller) Install(ctx context.Context, env *Env) error {
	if err := env.add(ctx, false, "@nestjs/swagger", "swagger-ui-express"); err != nil {
		return err
	}
	if err := writeSwaggerInfo(env); err != nil {
		return err
	}

	setup, err := env.render(template.SwaggerSetup)
	if err != nil {
		return err
	}
	return env.patch(defs.MainTS,
		patch.Import("DocumentBuilder, SwaggerModule", "@nestjs/swagger"),
		patch.Import("swaggerInfo", "./constants/app-constants"),
		patch.InsertBefore{Anchor: listenAnchor, Text: setup, Marker: "SwaggerModule.setup"},
	)
}

// writeSwaggerInfo creates the constants file, or appends the swaggerInfo
// block when the file already holds other constants.
func writeSwaggerInfo(env *Env) error {
	_, err := os.Stat(env.path(defs.AppConstantsTS))
	if errors.Is(err, os.ErrNotExist) {
		return env.emit(template.SwaggerInfo)
	}
	if err != nil {
		return err
	}
	block, err := env.render(template.SwaggerInfo)
	if err != nil {
		return err
	}
	return env.patch(defs.AppConstantsTS, patch.AppendBlock{Text: block, Marker: "swaggerInfo"})
}
