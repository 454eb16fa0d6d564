package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/modu-ai/nestforge/internal/connectivity"
	"github.com/modu-ai/nestforge/internal/resilience"
	"github.com/modu-ai/nestforge/internal/toolrunner"
	"github.com/modu-ai/nestforge/internal/ui"
)

// ErrDoctorFailed is returned when at least one check failed.
var ErrDoctorFailed = errors.New("doctor: checks failed")

func newDoctorCmd() *cobra.Command {
	var (
		root        string
		connections bool
		retries     int
	)
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check tooling and, optionally, the project's services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, root, connections, retries)
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Project root directory (default: current directory)")
	cmd.Flags().BoolVar(&connections, "check-connections", false, "Ping the database and Redis configured in .env")
	cmd.Flags().IntVar(&retries, "retries", 0, "Retry each failed connection check, for services still starting")
	return cmd
}

func runDoctor(cmd *cobra.Command, root string, connections bool, retries int) error {
	ctx := cmd.Context()
	console := deps.console(cmd.OutOrStdout())
	defer console.Close()

	failed := 0
	report := func(step string, err error) {
		if err != nil {
			failed++
		}
		console.End(step, err)
	}

	pnpmVersion, err := toolrunner.NewPNPM(deps.Runner).Version(ctx)
	switch {
	case err != nil:
		report("pnpm", err)
	case !toolrunner.AtLeast(pnpmVersion, toolrunner.MinPNPMVersion):
		console.Warn(fmt.Sprintf("pnpm %s is older than %s", pnpmVersion, toolrunner.MinPNPMVersion))
	default:
		report("pnpm "+pnpmVersion, nil)
	}

	nestVersion, err := toolrunner.NewNest(deps.Runner).Version(ctx)
	if err != nil {
		report("nest", err)
	} else {
		report("nest "+nestVersion, nil)
	}

	if connections {
		if err := checkConnections(cmd, root, retries, console, report); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d", ErrDoctorFailed, failed)
	}
	return nil
}

func checkConnections(cmd *cobra.Command, root string, retries int, console *ui.Console, report func(string, error)) error {
	root, err := projectRoot(root)
	if err != nil {
		return err
	}
	rec, env, err := loadProject(root)
	if err != nil {
		return err
	}

	probes, err := connectivity.Plan(rec, env)
	if err != nil {
		return err
	}

	console.Begin("Checking connections")
	checker := deps.Checker.WithRetry(resilience.RetryPolicy{
		MaxRetries: retries,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		UseJitter:  true,
	})
	checks := checker.Run(cmd.Context(), probes)
	console.Close()
	for _, c := range checks {
		if c.OK() {
			report(fmt.Sprintf("%s %s (%s)", c.Probe.Name, c.Probe.Addr, c.Latency.Round(time.Millisecond)), nil)
			continue
		}
		report(fmt.Sprintf("%s %s", c.Probe.Name, c.Probe.Addr), c.Err)
	}
	return nil
}
