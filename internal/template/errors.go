// Package template renders the embedded TypeScript and configuration
// templates and writes them under a project root.
package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates the named template is not embedded.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrMissingTemplateKey indicates the template referenced a missing field.
	ErrMissingTemplateKey = errors.New("template: missing key")

	// ErrUnexpandedToken indicates template syntax survived rendering.
	ErrUnexpandedToken = errors.New("template: unexpanded token")

	// ErrPathTraversal indicates a target path escapes the project root.
	ErrPathTraversal = errors.New("template: path traversal")

	// ErrFileConflict indicates the target exists with different content.
	ErrFileConflict = errors.New("template: existing file differs")
)
