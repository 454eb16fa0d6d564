package template

// Base project configuration.
var (
	EnvConfig = Artifact{Template: "base/env.config.ts.tmpl", Target: "src/config/env.config.ts"}
	AppConfig = Artifact{Template: "base/app.config.ts.tmpl", Target: "src/config/app.config.ts"}
)

// Database integration with TypeORM.
var (
	DatabaseModule = Artifact{Template: "database/database.module.ts.tmpl", Target: "src/modules/database/database.module.ts"}
	DatabaseConfig = Artifact{Template: "database/database.config.ts.tmpl", Target: "src/config/database.config.ts"}
)

// Database integration with plain drivers.
var (
	PostgresService = Artifact{Template: "database/postgres.service.ts.tmpl", Target: "src/modules/database/postgres.service.ts"}
	MySQLService    = Artifact{Template: "database/mysql.service.ts.tmpl", Target: "src/modules/database/mysql.service.ts"}
	MongoDBService  = Artifact{Template: "database/mongodb.service.ts.tmpl", Target: "src/modules/database/mongodb.service.ts"}
)

// Linting.
var (
	ESLintConfig   = Artifact{Template: "lint/eslintrc.js.tmpl", Target: ".eslintrc.js", GeneratorOwned: true}
	ESLintIgnore   = Artifact{Template: "lint/eslintignore.tmpl", Target: ".eslintignore"}
	HuskyPreCommit = Artifact{Template: "lint/pre-commit.tmpl", Target: ".husky/pre-commit"}
)

// Swagger. SwaggerSetup is inserted into main.ts rather than written as a file.
var (
	SwaggerInfo  = Artifact{Template: "swagger/swagger-info.ts.tmpl", Target: "src/constants/app-constants.ts"}
	SwaggerSetup = Artifact{Template: "swagger/swagger-setup.ts.tmpl"}
)

// Docker.
var (
	Dockerfile   = Artifact{Template: "docker/Dockerfile.tmpl", Target: "Dockerfile"}
	DockerIgnore = Artifact{Template: "docker/dockerignore.tmpl", Target: ".dockerignore"}
)

// Starter user module.
var (
	BaseEntity     = Artifact{Template: "users/base-entity.ts.tmpl", Target: "src/modules/database/base-entity.ts"}
	UserEntity     = Artifact{Template: "users/user.entity.ts.tmpl", Target: "src/modules/users/user.entity.ts"}
	UserModule     = Artifact{Template: "users/user.module.ts.tmpl", Target: "src/modules/users/user.module.ts"}
	UserController = Artifact{Template: "users/user.controller.ts.tmpl", Target: "src/modules/users/user.controller.ts"}
	UserService    = Artifact{Template: "users/user.service.ts.tmpl", Target: "src/modules/users/user.service.ts"}
)

// Redis.
var (
	RedisConfig = Artifact{Template: "redis/redis-config.ts.tmpl", Target: "src/config/redis-config.ts"}
	// RedisModuleEntry is the imports entry added to the composition root.
	RedisModuleEntry = Artifact{Template: "redis/redis-module-entry.ts.tmpl"}
)

// Quality gate.
var (
	SonarProperties = Artifact{Template: "sonar/sonar-project.properties.tmpl", Target: "sonar-project.properties"}
)

// NextSteps is the markdown summary shown after a run.
var NextSteps = Artifact{Template: "summary/next-steps.md.tmpl"}
