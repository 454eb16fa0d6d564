package toolrunner

import (
	"context"
	"fmt"
)

// Nest wraps the NestJS CLI.
type Nest struct {
	runner Runner
}

// NewNest creates a NestJS CLI wrapper over runner.
func NewNest(runner Runner) *Nest {
	return &Nest{runner: runner}
}

// Version returns the canonical installed CLI version.
func (n *Nest) Version(ctx context.Context) (string, error) {
	out, err := n.runner.Run(ctx, "", "nest", "--version")
	if err != nil {
		return "", err
	}
	v := normalizeVersion(out)
	if v == "" {
		return "", fmt.Errorf("nest --version: unexpected output %q", out)
	}
	return v, nil
}
