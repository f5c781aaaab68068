package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/domain/mocks"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContent(t *testing.T) (*ContentUseCase, *mocks.MockCompletionService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	completionSvc := mocks.NewMockCompletionService(ctrl)
	uc := NewContentUseCase(completionSvc, logger.NewLogger("test", "debug")).(*ContentUseCase)
	return uc, completionSvc
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}

func TestGenerateQuestions(t *testing.T) {
	uc, completionSvc := setupContent(t)

	completionSvc.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ interface{}, out interface{}) error {
			payload := `{"questions":[
				{"type":"multiple_choice","prompt":"2+2?","options":["3","4"],"correct_answer":"4","explanation":"basic addition"},
				{"type":"fill_gap","prompt":"5*_=10","correct_answer":"2"}
			]}`
			return json.Unmarshal([]byte(payload), out)
		})

	questions, err := uc.GenerateQuestions(context.Background(), domain.SubjectMath, "arithmetic", 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, domain.QuestionTypeMultipleChoice, questions[0].Type)
	assert.Equal(t, "4", questions[0].CorrectAnswer)
}

func TestGenerateQuestionsTruncatesOverdelivery(t *testing.T) {
	uc, completionSvc := setupContent(t)

	completionSvc.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ interface{}, out interface{}) error {
			payload := `{"questions":[
				{"type":"fill_gap","prompt":"a","correct_answer":"1"},
				{"type":"fill_gap","prompt":"b","correct_answer":"2"},
				{"type":"fill_gap","prompt":"c","correct_answer":"3"}
			]}`
			return json.Unmarshal([]byte(payload), out)
		})

	questions, err := uc.GenerateQuestions(context.Background(), domain.SubjectScience, "cells", 2)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestGenerateQuestionsValidation(t *testing.T) {
	uc, _ := setupContent(t)
	ctx := context.Background()

	_, err := uc.GenerateQuestions(ctx, domain.Subject("history"), "topic", 2)
	assert.Equal(t, domain.ErrCodeInvalidFormat, appErrCode(t, err))

	_, err = uc.GenerateQuestions(ctx, domain.SubjectMath, "", 2)
	assert.Equal(t, domain.ErrCodeRequiredField, appErrCode(t, err))

	_, err = uc.GenerateQuestions(ctx, domain.SubjectMath, "topic", 0)
	assert.Equal(t, domain.ErrCodeInvalidRange, appErrCode(t, err))

	_, err = uc.GenerateQuestions(ctx, domain.SubjectMath, "topic", maxQuestionsPerBatch+1)
	assert.Equal(t, domain.ErrCodeInvalidRange, appErrCode(t, err))
}

func TestGenerateQuestionsProviderFailure(t *testing.T) {
	uc, completionSvc := setupContent(t)

	completionSvc.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("provider down"))

	_, err := uc.GenerateQuestions(context.Background(), domain.SubjectMath, "topic", 2)
	assert.Equal(t, domain.ErrCodeAIError, appErrCode(t, err))
}

func TestGenerateQuestionsEmptyBatch(t *testing.T) {
	uc, completionSvc := setupContent(t)

	completionSvc.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ interface{}, out interface{}) error {
			return json.Unmarshal([]byte(`{"questions":[]}`), out)
		})

	_, err := uc.GenerateQuestions(context.Background(), domain.SubjectMath, "topic", 2)
	assert.Equal(t, domain.ErrCodeAIError, appErrCode(t, err))
}
