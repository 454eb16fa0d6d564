package wizard

import (
	"context"
	"fmt"

	"github.com/modu-ai/nestforge/internal/config"
)

// Collector gathers the configuration by asking questions.
type Collector struct {
	ask Asker
}

// NewCollector creates a Collector backed by ask.
func NewCollector(ask Asker) *Collector {
	return &Collector{ask: ask}
}

// ProjectName asks for the project directory name.
func (c *Collector) ProjectName(ctx context.Context) (string, error) {
	r := &config.Record{}
	if err := Run(ctx, []Question{ProjectNameQuestion()}, r, c.ask); err != nil {
		return "", err
	}
	return r.ProjectName, nil
}

// Collect asks every configuration question for the named project.
func (c *Collector) Collect(ctx context.Context, projectName string) (*config.Record, error) {
	r := config.NewDefaultRecord()
	r.ProjectName = projectName
	if err := Run(ctx, DefaultQuestions(), r, c.ask); err != nil {
		return nil, err
	}
	return r, nil
}

// AnswersCollector replays a record loaded from an answers file.
type AnswersCollector struct {
	rec *config.Record
}

// NewAnswersCollector wraps a loaded answers record.
func NewAnswersCollector(rec *config.Record) *AnswersCollector {
	return &AnswersCollector{rec: rec}
}

// ProjectName returns the name from the answers file.
func (a *AnswersCollector) ProjectName(context.Context) (string, error) {
	if a.rec.ProjectName == "" {
		return "", fmt.Errorf("answers: project_name: %w", config.ErrInvalidConfig)
	}
	return a.rec.ProjectName, nil
}

// Collect returns a copy of the answers for projectName.
func (a *AnswersCollector) Collect(_ context.Context, projectName string) (*config.Record, error) {
	r := *a.rec
	r.ProjectName = projectName
	return &r, nil
}
