package models

// DatabaseEngine identifies the database a generated project talks to.
type DatabaseEngine string

const (
	// EnginePostgreSQL selects PostgreSQL via the pg driver.
	EnginePostgreSQL DatabaseEngine = "PostgreSQL"

	// EngineMongoDB selects MongoDB. Connection is a single URI.
	EngineMongoDB DatabaseEngine = "MongoDB"

	// EngineMySQL selects MySQL via the mysql2 driver.
	EngineMySQL DatabaseEngine = "MySQL"
)

// ValidDatabaseEngines returns all supported engines in prompt order.
func ValidDatabaseEngines() []DatabaseEngine {
	return []DatabaseEngine{EnginePostgreSQL, EngineMongoDB, EngineMySQL}
}

// IsValid checks if the engine is a supported value.
func (e DatabaseEngine) IsValid() bool {
	switch e {
	case EnginePostgreSQL, EngineMongoDB, EngineMySQL:
		return true
	}
	return false
}

// IsSQL reports whether the engine is configured with host/port/user fields.
func (e DatabaseEngine) IsSQL() bool {
	return e == EnginePostgreSQL || e == EngineMySQL
}

// IsDocument reports whether the engine is configured with a connection URI.
func (e DatabaseEngine) IsDocument() bool {
	return e == EngineMongoDB
}

// DefaultPort returns the conventional port for SQL engines, or "" for MongoDB.
func (e DatabaseEngine) DefaultPort() string {
	switch e {
	case EnginePostgreSQL:
		return "5432"
	case EngineMySQL:
		return "3306"
	}
	return ""
}

// DefaultUser returns the conventional superuser name for SQL engines.
func (e DatabaseEngine) DefaultUser() string {
	switch e {
	case EnginePostgreSQL:
		return "postgres"
	case EngineMySQL:
		return "root"
	}
	return ""
}

// Environment is the runtime environment written to ENVIRONMENT in .env.
type Environment string

const (
	// EnvDevelopment is the default environment.
	EnvDevelopment Environment = "development"
	// EnvProduction is the production environment.
	EnvProduction Environment = "production"
	// EnvLocal is a local-only environment.
	EnvLocal Environment = "local"
)

// ValidEnvironments returns all supported environments in prompt order.
func ValidEnvironments() []Environment {
	return []Environment{EnvDevelopment, EnvProduction, EnvLocal}
}

// IsValid checks if the environment is a supported value.
func (e Environment) IsValid() bool {
	switch e {
	case EnvDevelopment, EnvProduction, EnvLocal:
		return true
	}
	return false
}
