package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/auth"
)

// UserHandler handles HTTP requests for account operations
type UserHandler struct {
	userUseCase domain.UserUseCase
	jwtService  auth.JWTService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUseCase domain.UserUseCase, jwtService auth.JWTService) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		jwtService:  jwtService,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"student1"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"student1"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse represents the login response body
type LoginResponse struct {
	Token string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  UserInfo `json:"user"`
}

// UserInfo represents user information
type UserInfo struct {
	ID           int64      `json:"id" example:"123"`
	Username     string     `json:"username" example:"student1"`
	IsAdmin      bool       `json:"is_admin" example:"false"`
	HasOnboard   bool       `json:"has_onboard" example:"true"`
	CurrentScore *int       `json:"current_score,omitempty" example:"20"`
	TargetScore  *int       `json:"target_score,omitempty" example:"30"`
	ExamDate     *time.Time `json:"exam_date,omitempty"`
}

// OnboardRequest represents the onboarding request body
type OnboardRequest struct {
	Subjects     []domain.Subject `json:"subjects" binding:"required,min=1"`
	CurrentScore *int             `json:"current_score,omitempty" example:"20"`
	TargetScore  *int             `json:"target_score,omitempty" example:"30"`
	ExamDate     *time.Time       `json:"exam_date,omitempty"`
}

func newUserInfo(user *domain.User) UserInfo {
	return UserInfo{
		ID:           user.ID,
		Username:     user.Username,
		IsAdmin:      user.IsAdmin,
		HasOnboard:   user.HasOnboard,
		CurrentScore: user.CurrentScore,
		TargetScore:  user.TargetScore,
		ExamDate:     user.ExamDate,
	}
}

// Register handles account creation
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account credentials"
// @Success 201 {object} UserInfo
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userUseCase.Register(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserInfo(user))
}

// Login handles user authentication
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, err := h.userUseCase.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process token"})
		return
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID in token"})
		return
	}

	user, err := h.userUseCase.GetUserInfo(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user information"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  newUserInfo(user),
	})
}

// GetUserInfo handles getting user information
// @Summary Get user information
// @Description Get current user information from JWT token
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserInfo
// @Failure 401 {object} ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	user, err := h.userUseCase.GetUserInfo(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserInfo(user))
}

// Onboard handles the one-time onboarding flow
// @Summary Complete onboarding
// @Description Record the study profile and grant starting buildings
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OnboardRequest true "Study profile"
// @Success 200 {object} UserInfo
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/onboard [post]
func (h *UserHandler) Onboard(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.userUseCase.Onboard(userID, domain.OnboardInput{
		Subjects:     req.Subjects,
		CurrentScore: req.CurrentScore,
		TargetScore:  req.TargetScore,
		ExamDate:     req.ExamDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userUseCase.GetUserInfo(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserInfo(user))
}
