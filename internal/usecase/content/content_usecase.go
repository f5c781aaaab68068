package content

import (
	"context"
	"fmt"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const maxQuestionsPerBatch = 20

// ContentUseCase implements domain.ContentUseCase on top of the external
// completion provider
type ContentUseCase struct {
	completionSvc domain.CompletionService
	logger        *logger.Logger
}

// NewContentUseCase creates a new content usecase
func NewContentUseCase(completionSvc domain.CompletionService, logger *logger.Logger) domain.ContentUseCase {
	return &ContentUseCase{
		completionSvc: completionSvc,
		logger:        logger,
	}
}

// questionBatch is the schema-constrained shape the provider returns
type questionBatch struct {
	Questions []domain.GeneratedQuestion `json:"questions"`
}

// questionSchema is the JSON schema handed to the provider so replies come
// back structurally valid
var questionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"questions": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"type":           map[string]interface{}{"type": "string", "enum": []string{"multiple_choice", "fill_gap", "matching", "ordering"}},
					"prompt":         map[string]interface{}{"type": "string"},
					"options":        map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
					"correct_answer": map[string]interface{}{"type": "string"},
					"explanation":    map[string]interface{}{"type": "string"},
				},
				"required":             []string{"type", "prompt", "correct_answer"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"questions"},
	"additionalProperties": false,
}

// GenerateQuestions asks the provider for count practice questions on a
// subject topic
func (uc *ContentUseCase) GenerateQuestions(ctx context.Context, subject domain.Subject, topic string, count int) ([]domain.GeneratedQuestion, error) {
	uc.logger.Info("Generating practice questions",
		zap.String("subject", string(subject)),
		zap.String("topic", topic),
		zap.Int("count", count))

	if !domain.IsValidSubject(subject) {
		return nil, domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Unknown subject")
	}
	if topic == "" {
		return nil, domain.NewBadRequestError(domain.ErrCodeRequiredField, "Topic is required")
	}
	if count < 1 || count > maxQuestionsPerBatch {
		return nil, domain.NewBadRequestError(domain.ErrCodeInvalidRange, fmt.Sprintf("Count must be between 1 and %d", maxQuestionsPerBatch))
	}

	prompt := fmt.Sprintf(
		"Generate %d exam practice questions for the %s section on the topic %q. "+
			"Mix question types where it makes sense. Keep prompts self-contained "+
			"and include a short explanation for each correct answer.",
		count, subject, topic,
	)

	var batch questionBatch
	if err := uc.completionSvc.Generate(ctx, prompt, questionSchema, &batch); err != nil {
		uc.logger.Error("Question generation failed",
			zap.String("subject", string(subject)),
			zap.String("topic", topic),
			zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeAIError, "Failed to generate questions", 502, err)
	}

	if len(batch.Questions) == 0 {
		return nil, domain.NewAppError(domain.ErrCodeAIError, "Provider returned no questions", 502, nil)
	}
	if len(batch.Questions) > count {
		batch.Questions = batch.Questions[:count]
	}

	uc.logger.Info("Questions generated",
		zap.String("subject", string(subject)),
		zap.Int("returned", len(batch.Questions)))
	return batch.Questions, nil
}
