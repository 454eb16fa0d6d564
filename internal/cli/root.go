package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modu-ai/nestforge/pkg/version"
)

// NewRootCmd builds the nestforge command tree.
func NewRootCmd() *cobra.Command {
	var s Settings

	root := &cobra.Command{
		Use:   "nestforge",
		Short: "Scaffold a configured NestJS project",
		Long: `nestforge generates a NestJS project with pnpm and the Nest CLI, then
wires in the database, linting, API docs, validation, Docker, Redis,
a starter user module and a SonarQube quality gate you select.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if deps == nil {
				s.Stderr = cmd.ErrOrStderr()
				InitDependencies(s)
			}
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("nestforge %s\n", version.GetVersion()))

	root.PersistentFlags().BoolVarP(&s.Verbose, "verbose", "v", false, "Stream command output and debug logs to stderr")
	root.PersistentFlags().DurationVar(&s.Timeout, "timeout", 0, "Limit for each external command, e.g. 10m (default: no limit)")
	root.PersistentFlags().BoolVar(&s.NoColor, "no-color", false, "Disable colored output")

	root.AddCommand(newNewCmd(), newAddCmd(), newDoctorCmd(), newVersionCmd())
	return root
}

// @MX:ANCHOR: [AUTO] Execute is the main entry point for the nestforge CLI
// @MX:REASON: [AUTO] called from cmd/nestforge/main.go; its error decides the exit code
// Execute runs the root command with a context cancelled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
