package feature

import (
	"context"
	"fmt"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/defs"
	"github.com/modu-ai/nestforge/internal/envfile"
	"github.com/modu-ai/nestforge/internal/pkgjson"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/pkg/models"
)

// SonarScript runs the analysis with the scanner installed as a dev dependency.
const SonarScript = "sonar-scanner"

type qualityGateInstaller struct{}

// QualityGate returns the SonarQube analysis installer.
func QualityGate() Installer { return qualityGateInstaller{} }

func (qualityGateInstaller) Name() string { return string(models.FeatureQualityGate) }

func (qualityGateInstaller) Enabled(rec *config.Record) bool {
	return rec.Enabled(models.FeatureQualityGate)
}

func (qualityGateInstaller) Install(ctx context.Context, env *Env) error {
	if err := env.add(ctx, true, "sonarqube-scanner"); err != nil {
		return err
	}
	if err := env.emit(template.SonarProperties); err != nil {
		return err
	}
	if _, err := pkgjson.SetScript(env.path(defs.PackageJSON), "sonar", SonarScript); err != nil {
		return fmt.Errorf("set sonar script: %w", err)
	}
	s := env.Record.SonarQube
	return env.setEnv(
		envfile.E("SONAR_HOST_URL", s.ServerURL),
		envfile.E("SONAR_TOKEN", s.Token),
	)
}
