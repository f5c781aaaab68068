package building

import (
	"context"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildingUseCase implements domain.BuildingUseCase: the admin catalog
// surface, including chain wiring on create and the delete migration
// protocol.
type BuildingUseCase struct {
	buildingRepo domain.BuildingRepository
	castleRepo   domain.UserCastleRepository
	villageRepo  domain.UserVillageRepository
	objectStore  domain.ObjectStorage
	db           *gorm.DB
	logger       *logger.Logger
}

// NewBuildingUseCase creates a new building usecase
func NewBuildingUseCase(
	buildingRepo domain.BuildingRepository,
	castleRepo domain.UserCastleRepository,
	villageRepo domain.UserVillageRepository,
	objectStore domain.ObjectStorage,
	db *gorm.DB,
	logger *logger.Logger,
) domain.BuildingUseCase {
	return &BuildingUseCase{
		buildingRepo: buildingRepo,
		castleRepo:   castleRepo,
		villageRepo:  villageRepo,
		objectStore:  objectStore,
		db:           db,
		logger:       logger,
	}
}

// GetBuilding retrieves one catalog entry
func (uc *BuildingUseCase) GetBuilding(id int64) (*domain.Building, error) {
	building, err := uc.buildingRepo.GetByID(id)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get building", 500, err)
	}
	if building == nil {
		return nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Building not found", 404, nil)
	}
	return building, nil
}

// GetBuildings retrieves the whole catalog
func (uc *BuildingUseCase) GetBuildings() ([]*domain.Building, error) {
	buildings, err := uc.buildingRepo.GetAll()
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get buildings", 500, err)
	}
	return buildings, nil
}

// CreateBuilding inserts a catalog entry and appends it to its scope's
// chain tail. The first building in a scope becomes the chain head and has
// its cost dropped: heads are always free.
func (uc *BuildingUseCase) CreateBuilding(input domain.BuildingCreateInput) (*domain.Building, error) {
	uc.logger.Info("Creating building", zap.String("title", input.Title), zap.String("type", string(input.Type)))

	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	svgURL, err := uc.uploadSVG(input.Title, input.SVG)
	if err != nil {
		return nil, err
	}

	tx := uc.db.Begin()
	if tx.Error != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", 500, tx.Error)
	}
	txBuildingRepo := uc.buildingRepo.WithTransaction(tx)

	chain, err := txBuildingRepo.GetChain(input.Type, input.Subject)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to walk building chain", 500, err)
	}

	building := &domain.Building{
		Title:            input.Title,
		Type:             input.Type,
		Subject:          input.Subject,
		SVG:              svgURL,
		TreasureCapacity: input.TreasureCapacity,
		ProductionRate:   input.ProductionRate,
		Cost:             input.Cost,
	}
	if len(chain) == 0 {
		building.Cost = nil
	}

	if err := txBuildingRepo.Create(building); err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to create building", 500, err)
	}

	if len(chain) > 0 {
		tail := chain[len(chain)-1]
		if err := txBuildingRepo.SetNextBuilding(tail.ID, &building.ID); err != nil {
			tx.Rollback()
			return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to append building to chain", 500, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", 500, err)
	}

	uc.logger.Info("Building created", zap.Int64("buildingID", building.ID), zap.String("title", building.Title))
	return building, nil
}

// UpdateBuilding updates a catalog entry in place. Chain position, type and
// subject are immutable; use delete and create to restructure a chain.
func (uc *BuildingUseCase) UpdateBuilding(id int64, input domain.BuildingCreateInput) (*domain.Building, error) {
	uc.logger.Info("Updating building", zap.Int64("buildingID", id))

	building, err := uc.buildingRepo.GetByID(id)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get building", 500, err)
	}
	if building == nil {
		return nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Building not found", 404, nil)
	}

	if input.Title == "" {
		return nil, domain.NewBadRequestError(domain.ErrCodeRequiredField, "Title is required")
	}
	if input.TreasureCapacity <= 0 || input.ProductionRate < 0 {
		return nil, domain.NewBadRequestError(domain.ErrCodeInvalidRange, "Capacity must be positive and production rate non-negative")
	}

	oldSVG := building.SVG
	if len(input.SVG) > 0 {
		svgURL, err := uc.uploadSVG(input.Title, input.SVG)
		if err != nil {
			return nil, err
		}
		building.SVG = svgURL
	}

	building.Title = input.Title
	building.TreasureCapacity = input.TreasureCapacity
	building.ProductionRate = input.ProductionRate
	if building.Cost != nil && input.Cost != nil {
		building.Cost = input.Cost
	}

	if err := uc.buildingRepo.Update(building); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update building", 500, err)
	}

	// A replaced artwork leaves the old blob orphaned; clean it up once the
	// row is persisted
	if oldSVG != nil && building.SVG != nil && *oldSVG != *building.SVG {
		uc.deleteArtwork(&domain.Building{ID: building.ID, SVG: oldSVG})
	}

	uc.logger.Info("Building updated", zap.Int64("buildingID", building.ID))
	return building, nil
}

func (uc *BuildingUseCase) validateInput(input domain.BuildingCreateInput) error {
	if input.Title == "" {
		return domain.NewBadRequestError(domain.ErrCodeRequiredField, "Title is required")
	}
	switch input.Type {
	case domain.BuildingTypeCastle:
		if input.Subject != nil {
			return domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Castles have no subject")
		}
	case domain.BuildingTypeVillage:
		if input.Subject == nil || !domain.IsValidSubject(*input.Subject) {
			return domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Villages require a valid subject")
		}
	default:
		return domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Unknown building type")
	}
	if input.TreasureCapacity <= 0 || input.ProductionRate < 0 {
		return domain.NewBadRequestError(domain.ErrCodeInvalidRange, "Capacity must be positive and production rate non-negative")
	}
	if input.Cost != nil && *input.Cost < 0 {
		return domain.NewBadRequestError(domain.ErrCodeInvalidRange, "Cost cannot be negative")
	}
	return nil
}

// uploadSVG pushes artwork to object storage and returns its public URL;
// a building without artwork is fine
func (uc *BuildingUseCase) uploadSVG(title string, data []byte) (*string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	key := storage.BuildKey(title, "svg")
	url, err := uc.objectStore.Upload(context.Background(), key, data, "image/svg+xml")
	if err != nil {
		uc.logger.Error("Failed to upload building artwork", zap.String("key", key), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeStorageError, "Failed to upload artwork", 502, err)
	}
	return &url, nil
}
