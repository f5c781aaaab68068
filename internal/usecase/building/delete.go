package building

import (
	"context"
	"strings"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"go.uber.org/zap"
)

// DeleteBuilding removes a catalog entry while keeping every user on a
// valid tier. In one transaction it migrates bound users to the successor
// (or the predecessor at the tail), promotes the successor to free head
// when the head is deleted, rewires the predecessor pointer and deletes
// the row. The artwork blob is removed after commit; a failure there is
// logged, never surfaced.
func (uc *BuildingUseCase) DeleteBuilding(id int64) error {
	uc.logger.Info("Deleting building", zap.Int64("buildingID", id))

	building, err := uc.buildingRepo.GetByID(id)
	if err != nil {
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get building", 500, err)
	}
	if building == nil {
		return domain.NewAppError(domain.ErrCodeBuildingNotFound, "Building not found", 404, nil)
	}

	tx := uc.db.Begin()
	if tx.Error != nil {
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", 500, tx.Error)
	}
	txBuildingRepo := uc.buildingRepo.WithTransaction(tx)
	txCastleRepo := uc.castleRepo.WithTransaction(tx)
	txVillageRepo := uc.villageRepo.WithTransaction(tx)

	count, err := txBuildingRepo.CountInScope(building.Type, building.Subject)
	if err != nil {
		tx.Rollback()
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to count chain", 500, err)
	}
	if count <= 1 {
		tx.Rollback()
		uc.logger.Warn("Refusing to delete last building in scope", zap.Int64("buildingID", id))
		return domain.NewBadRequestError(domain.ErrCodeLastBuildingInScope, "Cannot delete the last building of its chain")
	}

	predecessor, err := txBuildingRepo.GetPredecessor(id)
	if err != nil {
		tx.Rollback()
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get predecessor", 500, err)
	}

	// Users move forward to the successor; at the tail they fall back to
	// the predecessor
	var target *domain.Building
	if building.NextBuildingID != nil {
		target, err = txBuildingRepo.GetByID(*building.NextBuildingID)
		if err != nil {
			tx.Rollback()
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get successor", 500, err)
		}
	}
	if target == nil {
		target = predecessor
	}
	if target == nil {
		tx.Rollback()
		uc.logger.Error("No migration target for building", zap.Int64("buildingID", id))
		return domain.NewAppError(domain.ErrCodeNoMigrationTarget, "No building to migrate users to", 409, nil)
	}

	switch building.Type {
	case domain.BuildingTypeCastle:
		err = txCastleRepo.MigrateUsers(id, target.ID)
	case domain.BuildingTypeVillage:
		err = txVillageRepo.MigrateUsers(id, target.ID)
	}
	if err != nil {
		tx.Rollback()
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to migrate users", 500, err)
	}

	if predecessor == nil && building.NextBuildingID != nil {
		// Deleting the head promotes the successor to the free starting tier
		if err := txBuildingRepo.ClearCost(*building.NextBuildingID); err != nil {
			tx.Rollback()
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to promote new chain head", 500, err)
		}
	}

	if predecessor != nil {
		if err := txBuildingRepo.SetNextBuilding(predecessor.ID, building.NextBuildingID); err != nil {
			tx.Rollback()
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to rewire chain", 500, err)
		}
	}

	if err := txBuildingRepo.Delete(id); err != nil {
		tx.Rollback()
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to delete building", 500, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", 500, err)
	}

	uc.deleteArtwork(building)

	uc.logger.Info("Building deleted",
		zap.Int64("buildingID", id),
		zap.Int64("migratedTo", target.ID))
	return nil
}

// deleteArtwork removes the blob behind a deleted building's SVG URL.
// Runs after commit: the catalog row is already gone, so an orphaned blob
// is only worth a log line.
func (uc *BuildingUseCase) deleteArtwork(building *domain.Building) {
	if building.SVG == nil {
		return
	}

	key := (*building.SVG)[strings.LastIndex(*building.SVG, "/")+1:]
	if key == "" {
		return
	}

	if err := uc.objectStore.Delete(context.Background(), key); err != nil {
		uc.logger.Warn("Failed to delete building artwork",
			zap.Int64("buildingID", building.ID),
			zap.String("key", key),
			zap.Error(err))
	}
}
