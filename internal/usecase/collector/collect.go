package collector

import (
	"context"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"go.uber.org/zap"
)

// CollectCastle projects the castle accrual, moves the projected amount into
// the wallet as crystals and zeroes the treasure. The whole sequence runs
// under the user lock inside one database transaction.
func (uc *CollectorUseCase) CollectCastle(userID int64) (*domain.CollectResult, error) {
	uc.logger.Info("Collecting castle treasure", zap.Int64("userID", userID))

	if err := uc.lockManager.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "User is busy, try again", 409, err)
	}
	defer uc.lockManager.Unlock(userID)

	tx, txCastleRepo, _, txWalletRepo, err := uc.setupTransaction()
	if err != nil {
		return nil, err
	}

	binding, castle, err := uc.getCastleWithBuildingForUpdate(txCastleRepo, userID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	accrued := domain.AccrueTreasure(binding.TreasureAmount, castle.TreasureCapacity, castle.ProductionRate, binding.LastCollectDate, timeNow())
	if accrued.Amount == 0 {
		tx.Rollback()
		uc.logger.Warn("Nothing to collect from castle", zap.Int64("userID", userID))
		return nil, domain.NewBadRequestError(domain.ErrCodeNothingToCollect, "No treasure to collect")
	}

	if err := txCastleRepo.UpdateTreasure(binding.ID, accrued.Amount); err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update treasure", 500, err)
	}

	collected, err := txCastleRepo.CollectTreasure(binding.ID)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to collect treasure", 500, err)
	}

	fundType := castle.FundType()
	if err := txWalletRepo.AddFunds(userID, collected, fundType); err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to credit wallet", 500, err)
	}

	newBalance, err := txWalletRepo.GetBalance(userID, fundType)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get balance", 500, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", 500, err)
	}
	uc.walletRepo.InvalidateBalance(userID, fundType)

	uc.logger.Info("Castle treasure collected",
		zap.Int64("userID", userID),
		zap.Int64("collected", collected),
		zap.Int64("newBalance", newBalance))

	return &domain.CollectResult{
		CollectedAmount:  collected,
		FundType:         fundType,
		NewWalletBalance: newBalance,
	}, nil
}

// CollectVillage is the per-subject village counterpart of CollectCastle;
// villages pay out coins
func (uc *CollectorUseCase) CollectVillage(userID int64, subject domain.Subject) (*domain.CollectResult, error) {
	uc.logger.Info("Collecting village treasure", zap.Int64("userID", userID), zap.String("subject", string(subject)))

	if !domain.IsValidSubject(subject) {
		return nil, domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Unknown subject")
	}

	if err := uc.lockManager.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "User is busy, try again", 409, err)
	}
	defer uc.lockManager.Unlock(userID)

	tx, _, txVillageRepo, txWalletRepo, err := uc.setupTransaction()
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

	village, err := uc.buildingRepo.GetByID(binding.VillageID)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get village building", 500, err)
	}
	if village == nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Village building not found", 500, nil)
	}

	accrued := domain.AccrueTreasure(binding.TreasureAmount, village.TreasureCapacity, village.ProductionRate, binding.LastCollectDate, timeNow())
	if accrued.Amount == 0 {
		tx.Rollback()
		uc.logger.Warn("Nothing to collect from village", zap.Int64("userID", userID), zap.String("subject", string(subject)))
		return nil, domain.NewBadRequestError(domain.ErrCodeNothingToCollect, "No treasure to collect")
	}

	if err := txVillageRepo.UpdateTreasure(binding.ID, accrued.Amount); err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update treasure", 500, err)
	}

	collected, err := txVillageRepo.CollectTreasure(binding.ID)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to collect treasure", 500, err)
	}

	fundType := village.FundType()
	if err := txWalletRepo.AddFunds(userID, collected, fundType); err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to credit wallet", 500, err)
	}

	newBalance, err := txWalletRepo.GetBalance(userID, fundType)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get balance", 500, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", 500, err)
	}
	uc.walletRepo.InvalidateBalance(userID, fundType)

	uc.logger.Info("Village treasure collected",
		zap.Int64("userID", userID),
		zap.String("subject", string(subject)),
		zap.Int64("collected", collected),
		zap.Int64("newBalance", newBalance))

	return &domain.CollectResult{
		CollectedAmount:  collected,
		FundType:         fundType,
		NewWalletBalance: newBalance,
	}, nil
}
