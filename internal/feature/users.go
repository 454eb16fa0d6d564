package feature

import (
	"context"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/defs"
	"github.com/modu-ai/nestforge/internal/patch"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/pkg/models"
)

type userModuleInstaller struct{}

// UserModule returns the starter users module installer.
func UserModule() Installer { return userModuleInstaller{} }

func (userModuleInstaller) Name() string { return string(models.FeatureUserModule) }

func (userModuleInstaller) Enabled(rec *config.Record) bool {
	return rec.Enabled(models.FeatureUserModule)
}

func (userModuleInstaller) Install(_ context.Context, env *Env) error {
	if !env.Record.UserModuleSupported() {
		env.warnf("user module skipped: it needs TypeORM on PostgreSQL or MySQL")
		return nil
	}
	if err := env.emit(
		template.BaseEntity,
		template.UserEntity,
		template.UserService,
		template.UserController,
		template.UserModule,
	); err != nil {
		return err
	}
	return env.patch(defs.AppModuleTS,
		patch.Import("UserModule", defs.UserModuleImport),
		patch.ListEntry{List: "imports", Entry: "UserModule"},
	)
}
