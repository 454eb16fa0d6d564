// Package patch applies idempotent structural text edits to generated
// TypeScript sources: import lines, entries in decorator list literals,
// statements before an anchor line and appended blocks.
package patch

import "errors"

// Sentinel errors for patch operations.
var (
	// ErrFileNotFound indicates the file to patch does not exist.
	ErrFileNotFound = errors.New("patch: file not found")

	// ErrAnchorNotFound indicates a required list literal or anchor line is missing.
	// The file is left unmodified when this is returned.
	ErrAnchorNotFound = errors.New("patch: anchor not found")
)
