package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modu-ai/nestforge/internal/cli/wizard"
	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/scaffold"
)

// ErrNeedsAnswers is returned when no terminal is available for the wizard
// and no answers file was given.
var ErrNeedsAnswers = errors.New("no terminal for the wizard: pass --answers <file.yaml>")

type newOptions struct {
	answers        string
	nonInteractive bool
	force          bool
	skipTooling    bool
}

func newNewCmd() *cobra.Command {
	var o newOptions
	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new NestJS project",
		Long: `Create a new NestJS project in the current directory.

The wizard asks for the database and optional features after the base
project is generated. Use --answers to run from a YAML file instead.

Examples:
  nestforge new shop-api
  nestforge new --answers answers.yaml --non-interactive`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(*cobra.Command, []string) error {
			if o.nonInteractive && o.answers == "" {
				return errors.New("--non-interactive requires --answers")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args, o)
		},
	}

	cmd.Flags().StringVar(&o.answers, "answers", "", "YAML file with every answer; skips the wizard")
	cmd.Flags().BoolVar(&o.nonInteractive, "non-interactive", false, "Never prompt (requires --answers)")
	cmd.Flags().BoolVar(&o.force, "force", false, "Overwrite generated files whose content differs")
	cmd.Flags().BoolVar(&o.skipTooling, "skip-tooling", false, "Skip the pnpm and Nest CLI checks")
	return cmd
}

// @MX:NOTE: [AUTO] a cancelled wizard is a normal exit, every other terminal error exits 1
func runNew(cmd *cobra.Command, args []string, o newOptions) error {
	out := cmd.OutOrStdout()

	var name string
	if len(args) == 1 {
		name = args[0]
	}

	var collector scaffold.Collector
	switch {
	case o.answers != "":
		rec, err := config.LoadAnswers(o.answers)
		if err != nil {
			return err
		}
		if name == "" {
			name = rec.ProjectName
		}
		collector = wizard.NewAnswersCollector(rec)
	case deps.Headless.IsHeadless():
		return ErrNeedsAnswers
	default:
		collector = wizard.NewCollector(deps.Asker)
	}

	parent, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	console := deps.console(out)
	defer console.Close()

	orch := scaffold.New(deps.Runner, collector, console, deps.Renderer, deps.Logger)
	res, err := orch.Run(cmd.Context(), scaffold.Options{
		ParentDir:   parent,
		ProjectName: name,
		SkipTooling: o.skipTooling,
		Force:       o.force,
	})
	if errors.Is(err, wizard.ErrCancelled) {
		console.Close()
		_, _ = fmt.Fprintln(out, "Initialization cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	console.Close()
	summary, err := deps.renderSummary(res, console.Warnings())
	if err != nil {
		deps.Logger.Debug("render summary", "error", err)
		return nil
	}
	_, _ = fmt.Fprint(out, summary)
	return nil
}
