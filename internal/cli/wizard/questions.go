package wizard

import (
	"errors"
	"strconv"
	"strings"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/pkg/models"
)

// DefaultProjectName is offered when the user has not named the project yet.
const DefaultProjectName = "my-nest-app"

// ProjectNameQuestion asks for the directory name of the new project.
func ProjectNameQuestion() Question {
	return Question{
		ID:          "project_name",
		Type:        QuestionTypeInput,
		Title:       "Project name",
		Description: "Directory created in the current folder.",
		Default:     DefaultProjectName,
		Required:    true,
		Validate: func(v string) error {
			if !config.IsValidProjectName(v) {
				return errors.New("must be a single directory name")
			}
			return nil
		},
	}
}

// DefaultQuestions returns every configuration question in prompt order.
// Conditions read the answers given so far, so engine and feature choices
// come before the settings that depend on them.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:       "port",
			Type:     QuestionTypeInput,
			Title:    "Application port",
			Default:  config.DefaultPort,
			Required: true,
			Validate: numeric,
		},
		{
			ID:       "environment",
			Type:     QuestionTypeSelect,
			Title:    "Environment",
			Options:  environmentOptions(),
			Default:  string(config.DefaultEnvironment),
			Required: true,
		},
		{
			ID:    "database_engine",
			Type:  QuestionTypeSelect,
			Title: "Database",
			// Default option must be first, see buildSelectField.
			Options: []Option{
				{Label: "PostgreSQL", Value: string(models.EnginePostgreSQL)},
				{Label: "MongoDB", Value: string(models.EngineMongoDB)},
				{Label: "MySQL", Value: string(models.EngineMySQL)},
			},
			Default:  string(config.DefaultEngine),
			Required: true,
		},
		{
			ID:          "use_typeorm",
			Type:        QuestionTypeConfirm,
			Title:       "Use TypeORM?",
			Description: "Without it a plain driver connection is provided.",
			Default:     strconv.FormatBool(config.DefaultUseTypeORM),
		},
		{
			ID:        "database_host",
			Type:      QuestionTypeInput,
			Title:     "Database host",
			Default:   config.DefaultDatabaseHost,
			Required:  true,
			Condition: isSQL,
		},
		{
			ID:          "database_port",
			Type:        QuestionTypeInput,
			Title:       "Database port",
			DefaultFunc: func(r *config.Record) string { return r.Database.Engine.DefaultPort() },
			Required:    true,
			Validate:    numeric,
			Condition:   isSQL,
		},
		{
			ID:          "database_name",
			Type:        QuestionTypeInput,
			Title:       "Database name",
			DefaultFunc: func(r *config.Record) string { return strings.ReplaceAll(r.ProjectName, "-", "_") },
			Required:    true,
			Condition:   isSQL,
		},
		{
			ID:          "database_user",
			Type:        QuestionTypeInput,
			Title:       "Database user",
			DefaultFunc: func(r *config.Record) string { return r.Database.Engine.DefaultUser() },
			Required:    true,
			Condition:   isSQL,
		},
		{
			ID:        "database_password",
			Type:      QuestionTypePassword,
			Title:     "Database password",
			Condition: isSQL,
		},
		{
			ID:        "database_ssl",
			Type:      QuestionTypeConfirm,
			Title:     "Connect with SSL?",
			Default:   "false",
			Condition: usesORM,
		},
		{
			ID:          "database_synchronize",
			Type:        QuestionTypeConfirm,
			Title:       "Synchronize schema on startup?",
			Description: "Convenient in development, unsafe in production.",
			Default:     "false",
			Condition:   usesORM,
		},
		{
			ID:        "database_logging",
			Type:      QuestionTypeConfirm,
			Title:     "Log SQL queries?",
			Default:   "false",
			Condition: usesORM,
		},
		{
			ID:        "database_uri",
			Type:      QuestionTypeInput,
			Title:     "MongoDB connection URI",
			Default:   config.DefaultMongoURI,
			Required:  true,
			Condition: func(r *config.Record) bool { return r.Database.Engine.IsDocument() },
		},
		{ID: "lint", Type: QuestionTypeConfirm, Title: "Set up ESLint, Prettier and a pre-commit hook?", Default: "true"},
		{ID: "swagger", Type: QuestionTypeConfirm, Title: "Add Swagger API docs?", Default: "true"},
		{ID: "validation", Type: QuestionTypeConfirm, Title: "Add request validation?", Default: "true"},
		{ID: "docker", Type: QuestionTypeConfirm, Title: "Add a Dockerfile?", Default: "false"},
		{
			ID:        "user_module",
			Type:      QuestionTypeConfirm,
			Title:     "Generate a starter user module?",
			Default:   "false",
			Condition: (*config.Record).UserModuleSupported,
		},
		{ID: "redis", Type: QuestionTypeConfirm, Title: "Add Redis?", Default: "false"},
		{
			ID:        "redis_host",
			Type:      QuestionTypeInput,
			Title:     "Redis host",
			Default:   config.DefaultRedisHost,
			Required:  true,
			Condition: usesRedis,
		},
		{
			ID:        "redis_port",
			Type:      QuestionTypeInput,
			Title:     "Redis port",
			Default:   config.DefaultRedisPort,
			Required:  true,
			Validate:  numeric,
			Condition: usesRedis,
		},
		{
			ID:        "redis_password",
			Type:      QuestionTypePassword,
			Title:     "Redis password",
			Condition: usesRedis,
		},
		{
			ID:      "sonarqube",
			Type:    QuestionTypeConfirm,
			Title:   "Add a SonarQube quality gate?",
			Default: "false",
		},
		{
			ID:        "sonar_server_url",
			Type:      QuestionTypeInput,
			Title:     "SonarQube server URL",
			Default:   config.DefaultSonarServerURL,
			Required:  true,
			Condition: usesSonar,
		},
		{
			ID:        "sonar_token",
			Type:      QuestionTypePassword,
			Title:     "SonarQube token",
			Condition: usesSonar,
		},
	}
}

func environmentOptions() []Option {
	envs := models.ValidEnvironments()
	opts := make([]Option, len(envs))
	for i, e := range envs {
		opts[i] = Option{Label: string(e), Value: string(e)}
	}
	return opts
}

func isSQL(r *config.Record) bool { return r.Database.Engine.IsSQL() }

func usesORM(r *config.Record) bool { return r.Database.UseTypeORM && r.Database.Engine.IsSQL() }

func usesRedis(r *config.Record) bool { return r.Features.Redis }

func usesSonar(r *config.Record) bool { return r.SonarQube.Enabled }

func numeric(v string) error {
	if _, err := strconv.ParseUint(v, 10, 16); err != nil {
		return errors.New("must be a port number")
	}
	return nil
}
