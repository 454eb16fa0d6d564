package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cast"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/ui"
	"github.com/modu-ai/nestforge/pkg/models"
)

// Run asks every question whose condition holds and stores the answers in r.
func Run(ctx context.Context, questions []Question, r *config.Record, ask Asker) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	for i := range questions {
		q := &questions[i]

		// Conditions see the answers stored so far.
		if q.Condition != nil && !q.Condition(r) {
			continue
		}

		def := q.defaultFor(r)
		v, err := ask(ctx, q, def)
		if err != nil {
			return err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			v = def
		}
		if err := check(q, v); err != nil {
			return fmt.Errorf("%s: %w: %w", q.ID, config.ErrInvalidConfig, err)
		}
		if err := saveAnswer(q.ID, v, r); err != nil {
			return fmt.Errorf("%s: %w: %w", q.ID, config.ErrInvalidConfig, err)
		}
	}
	return nil
}

func check(q *Question, v string) error {
	if q.Required && v == "" {
		return errors.New("a value is required")
	}
	if q.Validate != nil && v != "" {
		return q.Validate(v)
	}
	return nil
}

// HuhAsker returns an Asker that runs each question as its own huh.Form.
// One form per question avoids the huh v0.8.x YOffset scroll bug that occurs
// when multiple groups share a single viewport.
func HuhAsker(theme *ui.Theme) Asker {
	ht := newNestWizardTheme(theme)
	return func(ctx context.Context, q *Question, def string) (string, error) {
		var (
			field huh.Field
			value = def
			yes   = cast.ToBool(def)
		)

		switch q.Type {
		case QuestionTypeSelect:
			field = buildSelectField(q, &value)
		case QuestionTypeConfirm:
			field = huh.NewConfirm().
				Title(q.Title).
				Description(q.Description).
				Affirmative("Yes").
				Negative("No").
				Value(&yes)
		default:
			field = buildInputField(q, def, &value)
		}

		form := huh.NewForm(huh.NewGroup(field)).
			WithTheme(ht).
			WithAccessible(false)

		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return "", ErrCancelled
			}
			return "", fmt.Errorf("wizard error: %w", err)
		}

		if q.Type == QuestionTypeConfirm {
			return cast.ToString(yes), nil
		}
		return value, nil
	}
}

// buildSelectField creates a huh.Select with the default preselected.
// Options are static: huh v0.8.x OptionsFunc forces a fixed height, which
// resets the viewport YOffset on every update and hides options above the
// cursor.
func buildSelectField(q *Question, value *string) *huh.Select[string] {
	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
	}

	return huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(value)
}

// buildInputField creates a huh.Input; password questions mask their echo.
func buildInputField(q *Question, def string, value *string) *huh.Input {
	inp := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Value(value)

	if q.Type == QuestionTypePassword {
		inp = inp.EchoMode(huh.EchoModePassword)
	} else if def != "" {
		inp = inp.Placeholder(def)
	}

	return inp.Validate(func(val string) error {
		v := strings.TrimSpace(val)
		if v == "" {
			v = def
		}
		return check(q, v)
	})
}

// saveAnswer stores an answer in the record.
func saveAnswer(id, value string, r *config.Record) error {
	switch id {
	case "project_name":
		r.ProjectName = value
	case "port":
		r.Port = value
	case "environment":
		r.Environment = models.Environment(value)
	case "database_engine":
		r.Database.Engine = models.DatabaseEngine(value)
	case "database_host":
		r.Database.Host = value
	case "database_port":
		r.Database.Port = value
	case "database_name":
		r.Database.Name = value
	case "database_user":
		r.Database.User = value
	case "database_password":
		r.Database.Password = value
	case "database_uri":
		r.Database.URI = value
	case "redis_host":
		r.Redis.Host = value
	case "redis_port":
		r.Redis.Port = value
	case "redis_password":
		r.Redis.Password = value
	case "sonar_server_url":
		r.SonarQube.ServerURL = value
	case "sonar_token":
		r.SonarQube.Token = value
	default:
		return saveFlag(id, value, r)
	}
	return nil
}

func saveFlag(id, value string, r *config.Record) error {
	on, err := cast.ToBoolE(value)
	if err != nil {
		return fmt.Errorf("expected yes or no, got %q", value)
	}
	switch id {
	case "use_typeorm":
		r.Database.UseTypeORM = on
	case "database_ssl":
		r.Database.SSL = on
	case "database_synchronize":
		r.Database.Synchronize = on
	case "database_logging":
		r.Database.Logging = on
	case "lint":
		r.Features.Lint = on
	case "swagger":
		r.Features.Swagger = on
	case "validation":
		r.Features.Validation = on
	case "docker":
		r.Features.Docker = on
	case "user_module":
		r.Features.UserModule = on
	case "redis":
		r.Features.Redis = on
	case "sonarqube":
		r.SonarQube.Enabled = on
	default:
		return fmt.Errorf("unknown question %q", id)
	}
	return nil
}

// newNestWizardTheme creates a huh.Theme from the console palette.
func newNestWizardTheme(theme *ui.Theme) *huh.Theme {
	t := huh.ThemeBase()
	if theme == nil || theme.NoColor {
		return t
	}

	primary := lipgloss.Color(theme.Colors.Primary)
	secondary := lipgloss.Color(theme.Colors.Secondary)
	green := lipgloss.Color(theme.Colors.Success)
	red := lipgloss.Color(theme.Colors.Error)
	muted := lipgloss.Color(theme.Colors.Muted)

	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(primary)
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
