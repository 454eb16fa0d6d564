// Package models provides shared enums used across nestforge packages.
//
// # Database Engines
//
// A generated project uses exactly one [DatabaseEngine]:
//   - PostgreSQL and MySQL are configured with host, port, name, user and password
//   - MongoDB is configured with a single connection URI
//
//	engine := models.EngineMongoDB
//	if engine.IsDocument() {
//	    fmt.Println("needs DATABASE_URI")
//	}
//
// # Features
//
// Optional integrations are named by [Feature] values, which double as the
// argument of `nestforge add`:
//
//	f, ok := models.ParseFeature("redis")
package models
