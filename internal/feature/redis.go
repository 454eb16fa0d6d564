package feature

import (
	"context"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/defs"
	"github.com/modu-ai/nestforge/internal/envfile"
	"github.com/modu-ai/nestforge/internal/patch"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/pkg/models"
)

type redisInstaller struct{}

// Redis returns the Redis client module installer.
func Redis() Installer { return redisInstaller{} }

func (redisInstaller) Name() string { return string(models.FeatureRedis) }

func (redisInstaller) Enabled(rec *config.Record) bool { return rec.Enabled(models.FeatureRedis) }

func (redisInstaller) Install(ctx context.Context, env *Env) error {
	if err := env.add(ctx, false, "@liaoliaots/nestjs-redis", "ioredis"); err != nil {
		return err
	}
	if err := env.emit(template.RedisConfig); err != nil {
		return err
	}

	entry, err := env.render(template.RedisModuleEntry)
	if err != nil {
		return err
	}
	if err := env.patch(defs.AppModuleTS,
		patch.Import("RedisModule", "@liaoliaots/nestjs-redis"),
		patch.Import("redisConfig", defs.RedisConfigImport),
		patch.ListEntry{List: "imports", Entry: entry, Marker: "RedisModule"},
	); err != nil {
		return err
	}

	r := env.Record.Redis
	return env.setEnv(
		envfile.E("REDIS_HOST", r.Host),
		envfile.E("REDIS_PORT", r.Port),
		envfile.E("REDIS_PASSWORD", r.Password),
	)
}
