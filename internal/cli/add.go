package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/defs"
	"github.com/modu-ai/nestforge/internal/envfile"
	"github.com/modu-ai/nestforge/internal/feature"
	"github.com/modu-ai/nestforge/internal/scaffold"
	"github.com/modu-ai/nestforge/pkg/models"
)

func newAddCmd() *cobra.Command {
	var (
		root  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "add <feature>",
		Short: "Install one feature into an existing project",
		Long: fmt.Sprintf(`Install one feature into a project created by nestforge.

Settings come from .nestforge.yaml; secrets are read back from .env.
Running it twice changes nothing.

Features: %s`, strings.Join(models.FeatureNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0], root, force)
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Project root directory (default: current directory)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite generated files whose content differs")
	return cmd
}

func runAdd(cmd *cobra.Command, name, root string, force bool) error {
	f, ok := models.ParseFeature(name)
	if !ok {
		return fmt.Errorf("%w: unknown feature %q (one of: %s)",
			config.ErrInvalidConfig, name, strings.Join(models.FeatureNames(), ", "))
	}

	root, err := projectRoot(root)
	if err != nil {
		return err
	}
	rec, _, err := loadProject(root)
	if err != nil {
		return err
	}

	rec.Enable(f)
	config.ApplyDefaults(rec)
	rec.Normalize()
	if err := config.Validate(rec); err != nil {
		return err
	}

	inst, err := feature.ForFeature(f)
	if err != nil {
		return err
	}

	console := deps.console(cmd.OutOrStdout())
	defer console.Close()

	orch := scaffold.New(deps.Runner, nil, console, deps.Renderer, deps.Logger)
	if err := orch.Add(cmd.Context(), root, rec, inst, force); err != nil {
		return err
	}
	return config.SaveProjectRecord(root, rec)
}

// projectRoot resolves --root, defaulting to the working directory.
func projectRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		root = wd
	}
	return filepath.Abs(root)
}

// loadProject reads the project record and its .env, and restores the
// secrets the record omits.
func loadProject(root string) (*config.Record, map[string]string, error) {
	rec, err := config.LoadProjectRecord(root)
	if err != nil {
		return nil, nil, err
	}
	env, err := envfile.Read(filepath.Join(root, defs.EnvFile))
	if err != nil {
		return nil, nil, err
	}
	restoreSecrets(rec, env)
	return rec, env, nil
}

// restoreSecrets copies credentials from the parsed .env into rec.
func restoreSecrets(rec *config.Record, env map[string]string) {
	if v, ok := env["DATABASE_PASSWORD"]; ok {
		rec.Database.Password = v
	}
	if v := env["DATABASE_URI"]; v != "" && rec.Database.Engine.IsDocument() {
		rec.Database.URI = v
	}
	if v, ok := env["REDIS_PASSWORD"]; ok {
		rec.Redis.Password = v
	}
	if v, ok := env["SONAR_TOKEN"]; ok {
		rec.SonarQube.Token = v
	}
}
