package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prepkingdom/kingdom-api/internal/domain"
)

// BuildingHandler handles HTTP requests for the admin building catalog
type BuildingHandler struct {
	buildingUseCase domain.BuildingUseCase
}

// NewBuildingHandler creates a new building handler
func NewBuildingHandler(buildingUseCase domain.BuildingUseCase) *BuildingHandler {
	return &BuildingHandler{buildingUseCase: buildingUseCase}
}

// BuildingRequest represents the catalog write request body. SVG carries
// raw SVG markup; it is uploaded to object storage and stored as a URL.
type BuildingRequest struct {
	Title            string              `json:"title" binding:"required" example:"Stone Castle"`
	Type             domain.BuildingType `json:"type" binding:"required" example:"castle"`
	Subject          *domain.Subject     `json:"subject,omitempty" example:"math"`
	SVG              string              `json:"svg,omitempty"`
	TreasureCapacity int64               `json:"treasure_capacity" binding:"required,gt=0" example:"600"`
	ProductionRate   int64               `json:"production_rate" example:"20"`
	Cost             *int64              `json:"cost,omitempty" example:"500"`
}

func (r BuildingRequest) toInput() domain.BuildingCreateInput {
	return domain.BuildingCreateInput{
		Title:            r.Title,
		Type:             r.Type,
		Subject:          r.Subject,
		SVG:              []byte(r.SVG),
		TreasureCapacity: r.TreasureCapacity,
		ProductionRate:   r.ProductionRate,
		Cost:             r.Cost,
	}
}

func parseBuildingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid building ID", 400, err))
		return 0, false
	}
	return id, true
}

// ListBuildings handles the catalog read
// @Summary List all buildings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Building
// @Router /admin/buildings [get]
func (h *BuildingHandler) ListBuildings(c *gin.Context) {
	buildings, err := h.buildingUseCase.GetBuildings()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildings)
}

// GetBuilding handles a single catalog read
// @Summary Get one building
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Success 200 {object} domain.Building
// @Failure 404 {object} ErrorResponse
// @Router /admin/buildings/{id} [get]
func (h *BuildingHandler) GetBuilding(c *gin.Context) {
	id, ok := parseBuildingID(c)
	if !ok {
		return
	}

	building, err := h.buildingUseCase.GetBuilding(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, building)
}

// CreateBuilding handles a catalog insert
// @Summary Create a building
// @Description Appends a tier to its scope's chain; the first tier of a scope becomes the free head
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BuildingRequest true "Building definition"
// @Success 201 {object} domain.Building
// @Failure 400 {object} ErrorResponse
// @Router /admin/buildings [post]
func (h *BuildingHandler) CreateBuilding(c *gin.Context) {
	var req BuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	building, err := h.buildingUseCase.CreateBuilding(req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, building)
}

// UpdateBuilding handles a catalog update
// @Summary Update a building
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Param request body BuildingRequest true "Building definition"
// @Success 200 {object} domain.Building
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/buildings/{id} [put]
func (h *BuildingHandler) UpdateBuilding(c *gin.Context) {
	id, ok := parseBuildingID(c)
	if !ok {
		return
	}

	var req BuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	building, err := h.buildingUseCase.UpdateBuilding(id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, building)
}

// DeleteBuilding handles a catalog delete with user migration
// @Summary Delete a building
// @Description Migrates bound users to a neighbour tier, rewires the chain and removes the row
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Building ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/buildings/{id} [delete]
func (h *BuildingHandler) DeleteBuilding(c *gin.Context) {
	id, ok := parseBuildingID(c)
	if !ok {
		return
	}

	if err := h.buildingUseCase.DeleteBuilding(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
