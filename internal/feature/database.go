package feature

import (
	"context"
	"fmt"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/defs"
	"github.com/modu-ai/nestforge/internal/envfile"
	"github.com/modu-ai/nestforge/internal/patch"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/pkg/models"
)

// databaseKey selects one row of the database table.
type databaseKey struct {
	engine models.DatabaseEngine
	orm    bool
}

// databaseVariant is one engine and ORM mode combination.
type databaseVariant struct {
	name      string
	packages  []string
	artifacts []template.Artifact
	// symbol is the class wired into app.module.ts, imported from source.
	symbol string
	source string
	// module variants go into imports; plain services into providers and exports.
	module bool
}

// @MX:ANCHOR: [AUTO] the only place engine and ORM mode turn into an installer.
// @MX:REASON: [AUTO] exactly one database variant runs per project
var databaseVariants = map[databaseKey]databaseVariant{
	{models.EnginePostgreSQL, true}: {
		name:      "postgres-typeorm",
		packages:  []string{"@nestjs/typeorm", "typeorm", "pg", "dotenv"},
		artifacts: []template.Artifact{template.DatabaseModule, template.DatabaseConfig},
		symbol:    "DatabaseModule",
		source:    defs.DatabaseModuleImport,
		module:    true,
	},
	{models.EngineMySQL, true}: {
		name:      "mysql-typeorm",
		packages:  []string{"@nestjs/typeorm", "typeorm", "mysql2", "dotenv"},
		artifacts: []template.Artifact{template.DatabaseModule, template.DatabaseConfig},
		symbol:    "DatabaseModule",
		source:    defs.DatabaseModuleImport,
		module:    true,
	},
	{models.EngineMongoDB, true}: {
		name:      "mongodb-typeorm",
		packages:  []string{"@nestjs/typeorm", "typeorm", "mongodb", "dotenv"},
		artifacts: []template.Artifact{template.DatabaseModule, template.DatabaseConfig},
		symbol:    "DatabaseModule",
		source:    defs.DatabaseModuleImport,
		module:    true,
	},
	{models.EnginePostgreSQL, false}: {
		name:      "postgres",
		packages:  []string{"pg", "dotenv"},
		artifacts: []template.Artifact{template.PostgresService},
		symbol:    "PostgresService",
		source:    "./modules/database/postgres.service",
	},
	{models.EngineMySQL, false}: {
		name:      "mysql",
		packages:  []string{"mysql2", "dotenv"},
		artifacts: []template.Artifact{template.MySQLService},
		symbol:    "MySQLService",
		source:    "./modules/database/mysql.service",
	},
	{models.EngineMongoDB, false}: {
		name:      "mongodb",
		packages:  []string{"mongoose", "dotenv"},
		artifacts: []template.Artifact{template.MongoDBService},
		symbol:    "MongoDBService",
		source:    "./modules/database/mongodb.service",
	},
}

// selectDatabase returns the variant for the configured engine and ORM mode.
func selectDatabase(db config.DatabaseConfig) (databaseVariant, error) {
	v, ok := databaseVariants[databaseKey{db.Engine, db.UseTypeORM}]
	if !ok {
		return databaseVariant{}, fmt.Errorf("%w: %q (typeorm=%t)", ErrUnsupportedDatabase, db.Engine, db.UseTypeORM)
	}
	return v, nil
}

// DatabaseVariant names the variant that would run for db.
func DatabaseVariant(db config.DatabaseConfig) (string, error) {
	v, err := selectDatabase(db)
	if err != nil {
		return "", err
	}
	return v.name, nil
}

func (v databaseVariant) edits() []patch.Edit {
	edits := []patch.Edit{patch.Import(v.symbol, v.source)}
	if v.module {
		return append(edits, patch.ListEntry{List: "imports", Entry: v.symbol})
	}
	return append(edits,
		patch.ListEntry{List: "providers", Entry: v.symbol},
		patch.ListEntry{List: "exports", Entry: v.symbol, Optional: true},
	)
}

// envEntries lists the variables the variant's generated code reads.
func (v databaseVariant) envEntries(db config.DatabaseConfig) []envfile.Entry {
	if db.Engine.IsDocument() {
		return []envfile.Entry{envfile.E("DATABASE_URI", db.URI)}
	}
	entries := []envfile.Entry{
		envfile.E("DATABASE_HOST", db.Host),
		envfile.E("DATABASE_PORT", db.Port),
		envfile.E("DATABASE_NAME", db.Name),
		envfile.E("DATABASE_USER", db.User),
		envfile.E("DATABASE_PASSWORD", db.Password),
	}
	if v.module {
		entries = append(entries,
			envfile.E("DATABASE_SSL", db.SSL),
			envfile.E("DATABASE_SYNCHRONIZE", db.Synchronize),
			envfile.E("DATABASE_LOGGING", db.Logging),
		)
	}
	return entries
}

type databaseInstaller struct{}

// Database returns the installer that dispatches on engine and ORM mode.
func Database() Installer { return databaseInstaller{} }

func (databaseInstaller) Name() string { return string(models.FeatureDatabase) }

func (databaseInstaller) Enabled(*config.Record) bool { return true }

func (databaseInstaller) Install(ctx context.Context, env *Env) error {
	db := env.Record.Database
	v, err := selectDatabase(db)
	if err != nil {
		return err
	}
	env.log().Debug("database variant selected", "variant", v.name)

	if err := env.add(ctx, false, v.packages...); err != nil {
		return err
	}
	if err := env.emit(v.artifacts...); err != nil {
		return err
	}
	if err := env.patch(defs.AppModuleTS, v.edits()...); err != nil {
		return err
	}
	return env.setEnv(v.envEntries(db)...)
}
