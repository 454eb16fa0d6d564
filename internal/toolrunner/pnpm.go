package toolrunner

import (
	"context"
	"fmt"
)

// PNPM wraps the pnpm package manager.
type PNPM struct {
	runner Runner
}

// NewPNPM creates a pnpm wrapper over runner.
func NewPNPM(runner Runner) *PNPM {
	return &PNPM{runner: runner}
}

// Version returns the canonical installed version, e.g. "v9.1.0".
func (p *PNPM) Version(ctx context.Context) (string, error) {
	out, err := p.runner.Run(ctx, "", "pnpm", "--version")
	if err != nil {
		return "", err
	}
	v := normalizeVersion(out)
	if v == "" {
		return "", fmt.Errorf("pnpm --version: unexpected output %q", out)
	}
	return v, nil
}

// InstallViaNPM installs pnpm globally with npm.
func (p *PNPM) InstallViaNPM(ctx context.Context) error {
	_, err := p.runner.Run(ctx, "", "npm", "install", "-g", "pnpm")
	return err
}

// StorePath returns the content-addressable store location.
func (p *PNPM) StorePath(ctx context.Context) (string, error) {
	return p.runner.Run(ctx, "", "pnpm", "store", "path")
}

// SetStoreDir pins the global store directory.
func (p *PNPM) SetStoreDir(ctx context.Context, path string) error {
	_, err := p.runner.Run(ctx, "", "pnpm", "config", "set", "store-dir", path, "--global")
	return err
}

// Add installs packages into the project at dir. dev adds them as devDependencies.
func (p *PNPM) Add(ctx context.Context, dir string, dev bool, pkgs ...string) error {
	args := []string{"add"}
	if dev {
		args = append(args, "-D")
	}
	_, err := p.runner.Run(ctx, dir, "pnpm", append(args, pkgs...)...)
	return err
}

// AddGlobal installs packages globally.
func (p *PNPM) AddGlobal(ctx context.Context, pkgs ...string) error {
	_, err := p.runner.Run(ctx, "", "pnpm", append([]string{"add", "-g"}, pkgs...)...)
	return err
}

// Dlx runs a package binary without installing it, in dir.
func (p *PNPM) Dlx(ctx context.Context, dir string, args ...string) error {
	_, err := p.runner.Run(ctx, dir, "pnpm", append([]string{"dlx"}, args...)...)
	return err
}

// Exec runs a locally installed binary in dir.
func (p *PNPM) Exec(ctx context.Context, dir string, args ...string) error {
	_, err := p.runner.Run(ctx, dir, "pnpm", append([]string{"exec"}, args...)...)
	return err
}

// RunScript runs a package.json script in dir.
func (p *PNPM) RunScript(ctx context.Context, dir, script string) error {
	_, err := p.runner.Run(ctx, dir, "pnpm", script)
	return err
}
