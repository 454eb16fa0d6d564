package feature

import (
	"fmt"

	"github.com/modu-ai/nestforge/pkg/models"
)

// Installers returns the feature installers in the order a run applies them.
func Installers() []Installer {
	return []Installer{
		Lint(),
		Swagger(),
		Validation(),
		Database(),
		Docker(),
		UserModule(),
		Redis(),
		QualityGate(),
	}
}

// ForFeature returns the installer for a single feature.
func ForFeature(f models.Feature) (Installer, error) {
	for _, inst := range Installers() {
		if inst.Name() == string(f) {
			return inst, nil
		}
	}
	return nil, fmt.Errorf("no installer for feature %q", f)
}
