package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepkingdom/kingdom-api/internal/domain"
)

// ContentHandler handles HTTP requests for AI-generated practice content
type ContentHandler struct {
	contentUseCase domain.ContentUseCase
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentUseCase domain.ContentUseCase) *ContentHandler {
	return &ContentHandler{contentUseCase: contentUseCase}
}

// GenerateQuestionsRequest represents the question generation request body
type GenerateQuestionsRequest struct {
	Subject domain.Subject `json:"subject" binding:"required" example:"math"`
	Topic   string         `json:"topic" binding:"required" example:"linear equations"`
	Count   int            `json:"count" binding:"required,min=1" example:"5"`
}

// GenerateQuestionsResponse represents the question generation response body
type GenerateQuestionsResponse struct {
	Questions []domain.GeneratedQuestion `json:"questions"`
}

// GenerateQuestions handles a practice-question generation request
// @Summary Generate practice questions
// @Description Produce a batch of structured practice questions for a subject and topic
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateQuestionsRequest true "Generation parameters"
// @Success 200 {object} GenerateQuestionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /questions/generate [post]
func (h *ContentHandler) GenerateQuestions(c *gin.Context) {
	var req GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	questions, err := h.contentUseCase.GenerateQuestions(c.Request.Context(), req.Subject, req.Topic, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateQuestionsResponse{Questions: questions})
}
