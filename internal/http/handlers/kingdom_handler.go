package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/http/middleware"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
)

// KingdomHandler handles HTTP requests for the treasure economy: castle
// and village status, collection, taps and tier upgrades
type KingdomHandler struct {
	collectorUseCase   domain.CollectorUseCase
	progressionUseCase domain.ProgressionUseCase
	logger             *logger.Logger
}

// NewKingdomHandler creates a new kingdom handler
func NewKingdomHandler(
	collectorUseCase domain.CollectorUseCase,
	progressionUseCase domain.ProgressionUseCase,
	logger *logger.Logger,
) *KingdomHandler {
	return &KingdomHandler{
		collectorUseCase:   collectorUseCase,
		progressionUseCase: progressionUseCase,
		logger:             logger,
	}
}

// TapRequest represents the tap batch request body; an omitted body or
// count means a single tap
type TapRequest struct {
	Count int64 `json:"count" binding:"omitempty,min=1" example:"3"`
}

// GetCastle handles the castle status read
// @Summary Get castle status
// @Description Projected treasure, production and tap allowance
// @Tags castle
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.CastleStatus
// @Failure 404 {object} ErrorResponse
// @Router /castle [get]
func (h *KingdomHandler) GetCastle(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	status, err := h.collectorUseCase.GetCastleStatus(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// CollectCastle handles castle treasure collection
// @Summary Collect castle treasure
// @Tags castle
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.CollectResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /castle/collect [post]
func (h *KingdomHandler) CollectCastle(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	result, err := h.collectorUseCase.CollectCastle(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.RecordTreasureCollected(string(result.FundType), result.CollectedAmount)
	c.JSON(http.StatusOK, result)
}

// Tap handles a castle tap batch
// @Summary Spend castle taps for coins
// @Tags castle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TapRequest false "Tap batch; defaults to a single tap"
// @Success 200 {object} domain.TapResult
// @Failure 400 {object} ErrorResponse
// @Router /castle/tap [post]
func (h *KingdomHandler) Tap(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	req := TapRequest{Count: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	result, err := h.collectorUseCase.Tap(userID, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.RecordTreasureCollected(string(domain.FundTypeCoin), result.CoinsCollected)
	c.JSON(http.StatusOK, result)
}

// GetCastleUpgrade handles the castle upgrade affordability read
// @Summary Get castle upgrade info
// @Tags castle
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UpgradeInfo
// @Failure 404 {object} ErrorResponse
// @Router /castle/upgrade [get]
func (h *KingdomHandler) GetCastleUpgrade(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	info, err := h.progressionUseCase.GetCastleUpgradeInfo(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpgradeCastle handles a castle tier advance
// @Summary Upgrade the castle
// @Tags castle
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UpgradeResult
// @Failure 400 {object} ErrorResponse
// @Router /castle/upgrade [post]
func (h *KingdomHandler) UpgradeCastle(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	result, err := h.progressionUseCase.UpgradeCastle(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetVillages handles the all-villages status read
// @Summary Get all village statuses
// @Tags villages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.VillageStatus
// @Router /villages [get]
func (h *KingdomHandler) GetVillages(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	statuses, err := h.collectorUseCase.GetAllVillageStatuses(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// GetVillage handles a single-subject village status read
// @Summary Get one village status
// @Tags villages
// @Produce json
// @Security BearerAuth
// @Param subject path string true "Subject" Enums(english, reading, science, math)
// @Success 200 {object} domain.VillageStatus
// @Failure 404 {object} ErrorResponse
// @Router /villages/{subject} [get]
func (h *KingdomHandler) GetVillage(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	status, err := h.collectorUseCase.GetVillageStatus(userID, domain.Subject(c.Param("subject")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// CollectVillage handles village treasure collection
// @Summary Collect village treasure
// @Tags villages
// @Produce json
// @Security BearerAuth
// @Param subject path string true "Subject" Enums(english, reading, science, math)
// @Success 200 {object} domain.CollectResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /villages/{subject}/collect [post]
func (h *KingdomHandler) CollectVillage(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	result, err := h.collectorUseCase.CollectVillage(userID, domain.Subject(c.Param("subject")))
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.RecordTreasureCollected(string(result.FundType), result.CollectedAmount)
	c.JSON(http.StatusOK, result)
}

// GetVillageUpgrade handles the village upgrade affordability read
// @Summary Get village upgrade info
// @Tags villages
// @Produce json
// @Security BearerAuth
// @Param subject path string true "Subject" Enums(english, reading, science, math)
// @Success 200 {object} domain.UpgradeInfo
// @Failure 404 {object} ErrorResponse
// @Router /villages/{subject}/upgrade [get]
func (h *KingdomHandler) GetVillageUpgrade(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	info, err := h.progressionUseCase.GetVillageUpgradeInfo(userID, domain.Subject(c.Param("subject")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpgradeVillage handles a village tier advance
// @Summary Upgrade a village
// @Tags villages
// @Produce json
// @Security BearerAuth
// @Param subject path string true "Subject" Enums(english, reading, science, math)
// @Success 200 {object} domain.UpgradeResult
// @Failure 400 {object} ErrorResponse
// @Router /villages/{subject}/upgrade [post]
func (h *KingdomHandler) UpgradeVillage(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	result, err := h.progressionUseCase.UpgradeVillage(userID, domain.Subject(c.Param("subject")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
