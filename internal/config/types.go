package config

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/modu-ai/nestforge/pkg/models"
)

// Record is the configuration collected for one scaffolding run.
// It is built once, validated, and treated as read-only afterwards.
type Record struct {
	ProjectName string             `yaml:"project_name" validate:"required,max=214,projectname"`
	Port        string             `yaml:"port" validate:"required,numeric"`
	Environment models.Environment `yaml:"environment" validate:"required,oneof=development production local"`
	Database    DatabaseConfig     `yaml:"database"`
	Features    FeatureFlags       `yaml:"features"`
	Redis       RedisConfig        `yaml:"redis"`
	SonarQube   SonarConfig        `yaml:"sonarqube"`
}

// DatabaseConfig holds the engine choice and its connection settings.
// Host, Port, Name, User and Password apply to SQL engines; URI applies to MongoDB.
// SSL, Synchronize and Logging only apply when UseTypeORM is set.
type DatabaseConfig struct {
	Engine      models.DatabaseEngine `yaml:"engine" validate:"required,oneof=PostgreSQL MongoDB MySQL"`
	UseTypeORM  bool                  `yaml:"use_typeorm"`
	Host        string                `yaml:"host,omitempty"`
	Port        string                `yaml:"port,omitempty" validate:"omitempty,numeric"`
	Name        string                `yaml:"name,omitempty"`
	User        string                `yaml:"user,omitempty"`
	Password    string                `yaml:"password,omitempty"`
	SSL         bool                  `yaml:"ssl,omitempty"`
	Synchronize bool                  `yaml:"synchronize,omitempty"`
	Logging     bool                  `yaml:"logging,omitempty"`
	URI         string                `yaml:"uri,omitempty"`
}

// FeatureFlags toggles the optional integrations.
type FeatureFlags struct {
	Lint       bool `yaml:"lint"`
	Swagger    bool `yaml:"swagger"`
	Validation bool `yaml:"validation"`
	Docker     bool `yaml:"docker"`
	UserModule bool `yaml:"user_module"`
	Redis      bool `yaml:"redis"`
}

// RedisConfig holds the Redis connection written to .env.
type RedisConfig struct {
	Host     string `yaml:"host,omitempty"`
	Port     string `yaml:"port,omitempty" validate:"omitempty,numeric"`
	Password string `yaml:"password,omitempty"`
}

// SonarConfig holds the quality-gate analysis service credentials.
type SonarConfig struct {
	Enabled   bool   `yaml:"enabled"`
	ServerURL string `yaml:"server_url,omitempty" validate:"omitempty,url"`
	Token     string `yaml:"token,omitempty"`
}

// Enabled reports whether the given feature is selected in the record.
// The database feature is always enabled.
func (r *Record) Enabled(f models.Feature) bool {
	switch f {
	case models.FeatureLint:
		return r.Features.Lint
	case models.FeatureSwagger:
		return r.Features.Swagger
	case models.FeatureValidation:
		return r.Features.Validation
	case models.FeatureDatabase:
		return true
	case models.FeatureDocker:
		return r.Features.Docker
	case models.FeatureUserModule:
		return r.Features.UserModule
	case models.FeatureRedis:
		return r.Features.Redis
	case models.FeatureQualityGate:
		return r.SonarQube.Enabled
	}
	return false
}

// Enable turns on the given feature. Enabling the database feature is a no-op.
func (r *Record) Enable(f models.Feature) {
	switch f {
	case models.FeatureLint:
		r.Features.Lint = true
	case models.FeatureSwagger:
		r.Features.Swagger = true
	case models.FeatureValidation:
		r.Features.Validation = true
	case models.FeatureDocker:
		r.Features.Docker = true
	case models.FeatureUserModule:
		r.Features.UserModule = true
	case models.FeatureRedis:
		r.Features.Redis = true
	case models.FeatureQualityGate:
		r.SonarQube.Enabled = true
	}
}

// UserModuleSupported reports whether the starter user module can be generated.
// Its entity and service are built on TypeORM repositories over a SQL engine.
func (r *Record) UserModuleSupported() bool {
	return r.Database.UseTypeORM && r.Database.Engine.IsSQL()
}

// Normalize composes the project name to NFC and clears fields that have
// no meaning for the selected engine, ORM mode or feature set.
func (r *Record) Normalize() {
	r.ProjectName = norm.NFC.String(strings.TrimSpace(r.ProjectName))
	db := &r.Database
	if db.Engine.IsDocument() {
		db.Host, db.Port, db.Name, db.User, db.Password = "", "", "", "", ""
	} else {
		db.URI = ""
	}
	if !db.UseTypeORM || db.Engine.IsDocument() {
		db.SSL, db.Synchronize, db.Logging = false, false, false
	}
	if !r.Features.Redis {
		r.Redis = RedisConfig{}
	}
	if !r.SonarQube.Enabled {
		r.SonarQube = SonarConfig{}
	}
}

// Redacted returns a copy with passwords, tokens and URI credentials removed,
// suitable for writing into the project directory.
func (r *Record) Redacted() Record {
	c := *r
	c.Database.Password = ""
	c.Redis.Password = ""
	c.SonarQube.Token = ""
	if c.Database.URI != "" {
		if u, err := url.Parse(c.Database.URI); err == nil && u.User != nil {
			u.User = url.User(u.User.Username())
			c.Database.URI = u.String()
		}
	}
	return c
}
