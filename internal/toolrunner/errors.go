// Package toolrunner runs the external tools a scaffolding run depends on:
// the pnpm package manager and the NestJS CLI.
package toolrunner

import "errors"

// Sentinel errors for external command execution.
var (
	// ErrToolNotFound indicates the executable is not on PATH.
	ErrToolNotFound = errors.New("toolrunner: tool not found")

	// ErrCommandFailed indicates the command exited non-zero or was interrupted.
	ErrCommandFailed = errors.New("toolrunner: command failed")
)
