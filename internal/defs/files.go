package defs

// Files of the generated NestJS project, relative to its root.
const (
	// EnvFile holds the KEY=VALUE pairs read by the generated project at runtime.
	EnvFile = ".env"

	// PackageJSON is the project's package manifest.
	PackageJSON = "package.json"

	// AppModuleTS is the composition root that declares wired modules and providers.
	AppModuleTS = "src/app.module.ts"

	// MainTS is the bootstrap file that starts the server.
	MainTS = "src/main.ts"

	// AppConstantsTS holds shared constants such as the Swagger info block.
	AppConstantsTS = "src/constants/app-constants.ts"
)

// Import specifiers used when wiring generated files into the composition root.
const (
	DatabaseModuleImport = "./modules/database/database.module"
	UserModuleImport     = "./modules/users/user.module"
	RedisConfigImport    = "./config/redis-config"
)
