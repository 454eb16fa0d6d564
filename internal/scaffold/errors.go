// Package scaffold drives a full project generation run: tooling checks,
// the NestJS generator, configuration collection and every installer.
package scaffold

import "errors"

// Sentinel errors for the generation run.
var (
	// ErrProjectExists indicates the target project directory already exists.
	ErrProjectExists = errors.New("scaffold: project directory already exists")

	// ErrGenerateFailed indicates the NestJS generator did not produce a project.
	ErrGenerateFailed = errors.New("scaffold: project generation failed")
)
