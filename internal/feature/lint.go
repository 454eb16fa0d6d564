package feature

import (
	"context"
	"fmt"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/defs"
	"github.com/modu-ai/nestforge/internal/pkgjson"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/pkg/models"
)

// lintPackages are pinned to the ESLint 8 line the generated .eslintrc.js targets.
var lintPackages = []string{
	"eslint@~8.48.0",
	"@typescript-eslint/parser@^5.62.0",
	"@typescript-eslint/eslint-plugin@^5.62.0",
	"eslint-config-prettier@^9.1.0",
	"eslint-plugin-import@^2.31.0",
	"eslint-plugin-prettier@^5.2.1",
	"eslint-plugin-unused-imports@^4.1.4",
	"prettier",
	"husky",
}

// Package scripts written by the lint installer.
const (
	LintScript    = "eslint --fix ."
	PrepareScript = "husky"
)

type lintInstaller struct{}

// Lint returns the ESLint, Prettier and pre-commit hook installer.
func Lint() Installer { return lintInstaller{} }

func (lintInstaller) Name() string { return string(models.FeatureLint) }

func (lintInstaller) Enabled(rec *config.Record) bool { return rec.Enabled(models.FeatureLint) }

func (lintInstaller) Install(ctx context.Context, env *Env) error {
	if err := env.add(ctx, true, lintPackages...); err != nil {
		return err
	}
	if err := env.emit(template.ESLintConfig, template.ESLintIgnore, template.HuskyPreCommit); err != nil {
		return err
	}

	manifest := env.path(defs.PackageJSON)
	for _, s := range [][2]string{{"lint", LintScript}, {"prepare", PrepareScript}} {
		if _, err := pkgjson.SetScript(manifest, s[0], s[1]); err != nil {
			return fmt.Errorf("set %s script: %w", s[0], err)
		}
	}

	// The hook only activates inside a git repository.
	if err := env.PNPM.Exec(ctx, env.ProjectRoot, "husky"); err != nil {
		env.warnf("pre-commit hook not enabled: %v", err)
	}
	return nil
}

type lintPass struct{}

// LintPass returns the final `pnpm lint` run over the generated project.
func LintPass() Installer { return lintPass{} }

func (lintPass) Name() string { return "lint-pass" }

func (lintPass) Enabled(rec *config.Record) bool { return rec.Enabled(models.FeatureLint) }

func (lintPass) Install(ctx context.Context, env *Env) error {
	if err := env.PNPM.RunScript(ctx, env.ProjectRoot, "lint"); err != nil {
		env.warnf("lint reported problems: %v", err)
	}
	return nil
}
