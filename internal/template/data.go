package template

import (
	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/pkg/models"
)

// Data is the substitution context shared by all templates.
type Data struct {
	ProjectName string
	Port        string
	Environment string

	// DatabaseType is the TypeORM driver name: postgres, mysql or mongodb.
	DatabaseType string
	SSL          bool
	Synchronize  bool
	Logging      bool

	Features config.FeatureFlags
	Database models.DatabaseEngine
	UseORM   bool
	Sonar    bool
}

// NewData builds the template context for a record.
func NewData(r *config.Record) *Data {
	return &Data{
		ProjectName:  r.ProjectName,
		Port:         r.Port,
		Environment:  string(r.Environment),
		DatabaseType: typeORMDriver(r.Database.Engine),
		SSL:          r.Database.SSL,
		Synchronize:  r.Database.Synchronize,
		Logging:      r.Database.Logging,
		Features:     r.Features,
		Database:     r.Database.Engine,
		UseORM:       r.Database.UseTypeORM,
		Sonar:        r.SonarQube.Enabled,
	}
}

func typeORMDriver(e models.DatabaseEngine) string {
	switch e {
	case models.EnginePostgreSQL:
		return "postgres"
	case models.EngineMySQL:
		return "mysql"
	case models.EngineMongoDB:
		return "mongodb"
	}
	return ""
}
