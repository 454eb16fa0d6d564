// Package wizard collects the scaffolding configuration, either through
// interactive huh prompts or from a previously loaded answers file.
package wizard

import (
	"context"
	"errors"

	"github.com/modu-ai/nestforge/internal/config"
)

// Sentinel errors for wizard operations.
var (
	// ErrCancelled is returned when the user aborts a prompt.
	ErrCancelled = errors.New("wizard: cancelled by user")

	// ErrNoQuestions is returned when Run receives an empty question list.
	ErrNoQuestions = errors.New("wizard: no questions")
)

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
	// QuestionTypeConfirm is a yes/no question. Answers are "true" or "false".
	QuestionTypeConfirm
	// QuestionTypePassword is a text input with masked echo.
	QuestionTypePassword
)

// Question defines a single wizard question.
type Question struct {
	ID          string                      // Unique identifier, see saveAnswer
	Type        QuestionType                // Select, Input, Confirm or Password
	Title       string                      // Question title
	Description string                      // Additional description
	Options     []Option                    // Options for select questions
	Default     string                      // Default value
	DefaultFunc func(*config.Record) string // Overrides Default from earlier answers
	Required    bool                        // Whether the field is required
	Validate    func(string) error          // Extra check on the final value
	Condition   func(*config.Record) bool   // Condition for showing this question
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Asker presents one question and returns the raw answer. An empty answer
// selects the question's default.
type Asker func(ctx context.Context, q *Question, def string) (string, error)

// defaultFor resolves the default for q against the answers so far.
func (q *Question) defaultFor(r *config.Record) string {
	if q.DefaultFunc != nil {
		return q.DefaultFunc(r)
	}
	return q.Default
}
