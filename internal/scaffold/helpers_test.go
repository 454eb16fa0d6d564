package scaffold

import (
	"testing"

	"github.com/modu-ai/nestforge/internal/feature"
	"github.com/modu-ai/nestforge/pkg/models"
)

func mustInstaller(t *testing.T, f models.Feature) feature.Installer {
	t.Helper()
	inst, err := feature.ForFeature(f)
	if err != nil {
		t.Fatal(err)
	}
	return inst
}
