package scaffold

import (
	"context"
	"fmt"

	"github.com/modu-ai/nestforge/internal/toolrunner"
)

// verifyTooling makes sure pnpm and the NestJS CLI are usable. Missing tools
// are installed once; a second failure is reported and the run continues.
func (o *Orchestrator) verifyTooling(ctx context.Context) {
	o.reporter.Begin("Checking tooling")

	version, err := o.pnpm.Version(ctx)
	if err != nil {
		o.logger.Debug("pnpm unavailable", "error", err)
		o.reporter.Info("pnpm is not installed, installing with npm")
		if err := o.pnpm.InstallViaNPM(ctx); err != nil {
			o.reporter.Warn(fmt.Sprintf("could not install pnpm: %v", err))
		} else {
			version, err = o.pnpm.Version(ctx)
		}
	}
	if err == nil && !toolrunner.AtLeast(version, toolrunner.MinPNPMVersion) {
		o.reporter.Warn(fmt.Sprintf("pnpm %s is older than %s; generation may fail", version, toolrunner.MinPNPMVersion))
	}

	if store, err := o.pnpm.StorePath(ctx); err != nil {
		o.reporter.Warn(fmt.Sprintf("could not read the pnpm store path: %v", err))
	} else if err := o.pnpm.SetStoreDir(ctx, store); err != nil {
		o.reporter.Warn(fmt.Sprintf("could not set the pnpm store directory: %v", err))
	}

	if _, err := o.nest.Version(ctx); err != nil {
		o.logger.Debug("nest cli unavailable", "error", err)
		o.reporter.Info("NestJS CLI is not installed, installing with pnpm")
		if err := o.pnpm.AddGlobal(ctx, "@nestjs/cli"); err != nil {
			o.reporter.Warn(fmt.Sprintf("could not install the NestJS CLI: %v", err))
		}
	}

	o.reporter.End("Checking tooling", nil)
}
