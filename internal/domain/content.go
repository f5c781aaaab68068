package domain

import "context"

// CompletionService defines the interface for the external AI completion
// provider. Generate posts a prompt with a JSON schema describing the
// expected response shape and decodes the structured result into out.
type CompletionService interface {
	Generate(ctx context.Context, prompt string, schema any, out any) error
}

// QuestionType enumerates the interactive practice-question formats
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeFillGap        QuestionType = "fill_gap"
	QuestionTypeMatching       QuestionType = "matching"
	QuestionTypeOrdering       QuestionType = "ordering"
)

// GeneratedQuestion is one AI-produced practice question. Content quality is
// the provider's concern; this service only carries the structure through.
type GeneratedQuestion struct {
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"prompt"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation,omitempty"`
}

// ContentUseCase defines the interface for AI-backed content generation
type ContentUseCase interface {
	GenerateQuestions(ctx context.Context, subject Subject, topic string, count int) ([]GeneratedQuestion, error)
}
