// Package feature installs optional integrations into a generated NestJS
// project. Each installer adds packages, emits files, wires them into the
// composition root and records settings in .env.
package feature

import "errors"

// ErrUnsupportedDatabase indicates no installer exists for the engine and ORM mode.
var ErrUnsupportedDatabase = errors.New("feature: unsupported database")
