package cli

import (
	"fmt"
	"strings"

	"github.com/modu-ai/nestforge/internal/scaffold"
	"github.com/modu-ai/nestforge/internal/template"
	"github.com/modu-ai/nestforge/internal/ui"
)

// nextSteps builds the markdown shown after a run: the rendered summary
// template followed by failed steps and warnings.
func nextSteps(r template.Renderer, res *scaffold.Result, warnings []string) (string, error) {
	body, err := r.Render(template.NextSteps.Template, template.NewData(res.Record))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Write(body)
	if failed := res.Failed(); len(failed) > 0 {
		b.WriteString("\n## Steps that failed\n\n")
		for _, s := range failed {
			fmt.Fprintf(&b, "- **%s**: %v\n", s.Name, s.Err)
		}
	}
	if len(warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String(), nil
}

func (d *Dependencies) renderSummary(res *scaffold.Result, warnings []string) (string, error) {
	md, err := nextSteps(d.Renderer, res, warnings)
	if err != nil {
		return "", err
	}
	return ui.RenderMarkdown(d.Theme, d.Headless, md)
}
