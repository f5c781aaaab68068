package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prepkingdom/kingdom-api/internal/domain"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid request"`
}

// getAuthenticatedUserID extracts and validates the authenticated user ID
// from the context
func getAuthenticatedUserID(c *gin.Context) (int64, bool) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, domain.NewUnauthorizedError("User not authenticated"))
		return 0, false
	}

	userID, err := strconv.ParseInt(userIDStr.(string), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid user ID format", 400, err))
		return 0, false
	}

	return userID, true
}

// respondError translates usecase errors into HTTP responses; AppErrors
// carry their own status, anything else is a 500
func respondError(c *gin.Context, err error) {
	if appErr, ok := domain.IsAppError(err); ok {
		appErr.Path = c.Request.URL.Path
		appErr.Method = c.Request.Method
		if requestID, exists := c.Get("request_id"); exists {
			appErr.RequestID = requestID.(string)
		}
		c.JSON(appErr.HTTPStatus, domain.NewErrorResponse(appErr))
		return
	}
	c.JSON(http.StatusInternalServerError, domain.NewErrorResponse(domain.NewInternalError("", err)))
}
