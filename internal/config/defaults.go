package config

import (
	"github.com/modu-ai/nestforge/pkg/models"
)

// Default value constants to avoid magic numbers and strings.
const (
	DefaultPort        = "3000"
	DefaultEnvironment = models.EnvDevelopment
	DefaultEngine      = models.EnginePostgreSQL
	DefaultUseTypeORM  = true

	DefaultDatabaseHost = "localhost"
	DefaultMongoURI     = "mongodb://localhost:27017/mydatabase"

	DefaultRedisHost = "localhost"
	DefaultRedisPort = "6379"

	DefaultSonarServerURL = "http://localhost:9000"

	// ProjectRecordFile is written at the project root for `nestforge add`.
	ProjectRecordFile = ".nestforge.yaml"
)

// NewDefaultRecord returns a Record with every default applied and an empty project name.
func NewDefaultRecord() *Record {
	r := &Record{
		Port:        DefaultPort,
		Environment: DefaultEnvironment,
		Database: DatabaseConfig{
			Engine:     DefaultEngine,
			UseTypeORM: DefaultUseTypeORM,
		},
		Features: FeatureFlags{
			Lint:       true,
			Swagger:    true,
			Validation: true,
		},
	}
	ApplyDefaults(r)
	return r
}

// ApplyDefaults fills empty fields with defaults for the selected engine and features.
func ApplyDefaults(r *Record) {
	if r.Port == "" {
		r.Port = DefaultPort
	}
	if r.Environment == "" {
		r.Environment = DefaultEnvironment
	}
	db := &r.Database
	if db.Engine == "" {
		db.Engine = DefaultEngine
	}
	if db.Engine.IsSQL() {
		if db.Host == "" {
			db.Host = DefaultDatabaseHost
		}
		if db.Port == "" {
			db.Port = db.Engine.DefaultPort()
		}
		if db.User == "" {
			db.User = db.Engine.DefaultUser()
		}
	}
	if db.Engine.IsDocument() && db.URI == "" {
		db.URI = DefaultMongoURI
	}
	if r.Features.Redis {
		if r.Redis.Host == "" {
			r.Redis.Host = DefaultRedisHost
		}
		if r.Redis.Port == "" {
			r.Redis.Port = DefaultRedisPort
		}
	}
	if r.SonarQube.Enabled && r.SonarQube.ServerURL == "" {
		r.SonarQube.ServerURL = DefaultSonarServerURL
	}
}
