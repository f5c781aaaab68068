package progression

import (
	"context"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupTransaction sets up a database transaction with rebound repositories
func (uc *ProgressionUseCase) setupTransaction() (*gorm.DB, domain.UserCastleRepository, domain.UserVillageRepository, domain.BuildingRepository, domain.WalletRepository, error) {
	tx := uc.db.Begin()
	if tx.Error != nil {
		uc.logger.Error("Failed to start database transaction", zap.Error(tx.Error))
		return nil, nil, nil, nil, nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", 500, tx.Error)
	}
	return tx,
		uc.castleRepo.WithTransaction(tx),
		uc.villageRepo.WithTransaction(tx),
		uc.buildingRepo.WithTransaction(tx),
		uc.walletRepo.WithTransaction(tx),
		nil
}

// UpgradeCastle advances the user's castle to the next tier, debiting the
// tier cost in crystals. Affordability is revalidated inside the locked
// transaction; the pre-read info endpoint is advisory only.
func (uc *ProgressionUseCase) UpgradeCastle(userID int64) (*domain.UpgradeResult, error) {
	uc.logger.Info("Upgrading castle", zap.Int64("userID", userID))

	if err := uc.lockManager.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "User is busy, try again", 409, err)
	}
	defer uc.lockManager.Unlock(userID)

	tx, txCastleRepo, _, txBuildingRepo, txWalletRepo, err := uc.setupTransaction()
	if err != nil {
		return nil, err
	}

	binding, err := txCastleRepo.GetByUserIDForUpdate(userID)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get castle", 500, err)
	}
	if binding == nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeCastleNotFound, "Castle not found", 404, nil)
	}

	result, err := uc.advance(tx, txBuildingRepo, txWalletRepo, userID, binding.CastleID, func(newID int64) error {
		return txCastleRepo.Upgrade(binding.ID, newID)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Castle upgraded",
		zap.Int64("userID", userID),
		zap.Int("newLevel", result.NewLevel),
		zap.Int64("costPaid", result.CostPaid))
	return result, nil
}

// UpgradeVillage advances one subject village to the next tier, debiting
// the tier cost in coins
func (uc *ProgressionUseCase) UpgradeVillage(userID int64, subject domain.Subject) (*domain.UpgradeResult, error) {
	uc.logger.Info("Upgrading village", zap.Int64("userID", userID), zap.String("subject", string(subject)))

	if !domain.IsValidSubject(subject) {
		return nil, domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Unknown subject")
	}

	if err := uc.lockManager.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "User is busy, try again", 409, err)
	}
	defer uc.lockManager.Unlock(userID)

	tx, _, txVillageRepo, txBuildingRepo, txWalletRepo, err := uc.setupTransaction()
	if err != nil {
		return nil, err
	}

	binding, err := txVillageRepo.GetByUserAndSubjectForUpdate(userID, subject)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get village", 500, err)
	}
	if binding == nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeVillageNotFound, "Village not found", 404, nil)
	}

	result, err := uc.advance(tx, txBuildingRepo, txWalletRepo, userID, binding.VillageID, func(newID int64) error {
		return txVillageRepo.Upgrade(binding.ID, newID)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Village upgraded",
		zap.Int64("userID", userID),
		zap.String("subject", string(subject)),
		zap.Int("newLevel", result.NewLevel),
		zap.Int64("costPaid", result.CostPaid))
	return result, nil
}

// advance performs the shared debit-and-repoint sequence inside tx. The
// repoint closure writes the binding; treasure is zeroed with it so nothing
// accrued at the old tier carries over.
func (uc *ProgressionUseCase) advance(tx *gorm.DB, buildingRepo domain.BuildingRepository, walletRepo domain.WalletRepository, userID, currentBuildingID int64, repoint func(newID int64) error) (*domain.UpgradeResult, error) {
	building, err := buildingRepo.GetByID(currentBuildingID)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get building", 500, err)
	}
	if building == nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Building not found", 500, nil)
	}

	if building.NextBuildingID == nil {
		tx.Rollback()
		uc.logger.Warn("Upgrade rejected, already at top tier", zap.Int64("userID", userID), zap.Int64("buildingID", building.ID))
		return nil, domain.NewBadRequestError(domain.ErrCodeMaxTierReached, "Already at the highest tier")
	}

	next, err := buildingRepo.GetByID(*building.NextBuildingID)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get next building", 500, err)
	}
	if next == nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Next building not found", 500, nil)
	}

	level, err := uc.chainLevel(buildingRepo, building)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	fundType := building.FundType()
	cost := upgradeCost(next)

	if cost > 0 {
		ok, err := walletRepo.DeductFunds(userID, cost, fundType)
		if err != nil {
			tx.Rollback()
			return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to debit wallet", 500, err)
		}
		if !ok {
			tx.Rollback()
			uc.logger.Warn("Upgrade rejected, insufficient funds", zap.Int64("userID", userID), zap.Int64("cost", cost))
			return nil, domain.NewBadRequestError(domain.ErrCodeInsufficientFunds, "Insufficient funds for upgrade")
		}
	}

	if err := repoint(next.ID); err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to advance tier", 500, err)
	}

	newBalance, err := walletRepo.GetBalance(userID, fundType)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get balance", 500, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", 500, err)
	}
	uc.walletRepo.InvalidateBalance(userID, fundType)

	return &domain.UpgradeResult{
		Success:    true,
		NewLevel:   level + 1,
		CostPaid:   cost,
		NewBalance: newBalance,
	}, nil
}
