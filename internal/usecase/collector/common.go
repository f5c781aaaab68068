package collector

import (
	"time"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// timeNow is stubbed in tests to pin accrual projections
var timeNow = time.Now

// setupTransaction sets up a database transaction with rebound repositories
func (uc *CollectorUseCase) setupTransaction() (*gorm.DB, domain.UserCastleRepository, domain.UserVillageRepository, domain.WalletRepository, error) {
	tx := uc.db.Begin()
	if tx.Error != nil {
		uc.logger.Error("Failed to start database transaction", zap.Error(tx.Error))
		return nil, nil, nil, nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", 500, tx.Error)
	}
	return tx, uc.castleRepo.WithTransaction(tx), uc.villageRepo.WithTransaction(tx), uc.walletRepo.WithTransaction(tx), nil
}

// getCastleWithBuilding loads the user's castle binding and its tier
func (uc *CollectorUseCase) getCastleWithBuilding(castleRepo domain.UserCastleRepository, buildingRepo domain.BuildingRepository, userID int64) (*domain.UserCastle, *domain.Building, error) {
	binding, err := castleRepo.GetByUserID(userID)
	if err != nil {
		uc.logger.Error("Failed to get castle binding", zap.Int64("userID", userID), zap.Error(err))
		return nil, nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get castle", 500, err)
	}
	if binding == nil {
		uc.logger.Warn("User has no castle", zap.Int64("userID", userID))
		return nil, nil, domain.NewAppError(domain.ErrCodeCastleNotFound, "Castle not found", 404, nil)
	}

	castle, err := buildingRepo.GetByID(binding.CastleID)
	if err != nil {
		return nil, nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get castle building", 500, err)
	}
	if castle == nil {
		uc.logger.Error("Castle binding points at missing building", zap.Int64("userID", userID), zap.Int64("castleID", binding.CastleID))
		return nil, nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Castle building not found", 500, nil)
	}
	return binding, castle, nil
}

// getCastleWithBuildingForUpdate is the locked variant used by mutations
func (uc *CollectorUseCase) getCastleWithBuildingForUpdate(castleRepo domain.UserCastleRepository, userID int64) (*domain.UserCastle, *domain.Building, error) {
	binding, err := castleRepo.GetByUserIDForUpdate(userID)
	if err != nil {
		uc.logger.Error("Failed to get castle binding", zap.Int64("userID", userID), zap.Error(err))
		return nil, nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get castle", 500, err)
	}
	if binding == nil {
		return nil, nil, domain.NewAppError(domain.ErrCodeCastleNotFound, "Castle not found", 404, nil)
	}

	castle, err := uc.buildingRepo.GetByID(binding.CastleID)
	if err != nil {
		return nil, nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get castle building", 500, err)
	}
	if castle == nil {
		return nil, nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Castle building not found", 500, nil)
	}
	return binding, castle, nil
}

// getVillageWithBuilding loads a subject village binding and its tier
func (uc *CollectorUseCase) getVillageWithBuilding(villageRepo domain.UserVillageRepository, buildingRepo domain.BuildingRepository, userID int64, subject domain.Subject) (*domain.UserVillage, *domain.Building, error) {
	binding, err := villageRepo.GetByUserAndSubject(userID, subject)
	if err != nil {
		uc.logger.Error("Failed to get village binding", zap.Int64("userID", userID), zap.String("subject", string(subject)), zap.Error(err))
		return nil, nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get village", 500, err)
	}
	if binding == nil {
		uc.logger.Warn("User has no village for subject", zap.Int64("userID", userID), zap.String("subject", string(subject)))
		return nil, nil, domain.NewAppError(domain.ErrCodeVillageNotFound, "Village not found", 404, nil)
	}

	village, err := buildingRepo.GetByID(binding.VillageID)
	if err != nil {
		return nil, nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get village building", 500, err)
	}
	if village == nil {
		uc.logger.Error("Village binding points at missing building", zap.Int64("userID", userID), zap.Int64("villageID", binding.VillageID))
		return nil, nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Village building not found", 500, nil)
	}
	return binding, village, nil
}

// tapsRemaining computes today's remaining taps without persisting the
// lazy daily reset
func (uc *CollectorUseCase) tapsRemaining(binding *domain.UserCastle, now time.Time) int64 {
	if !sameUTCDate(binding.LastTapResetDate, now) {
		return uc.maxTapsPerDay
	}
	remaining := uc.maxTapsPerDay - binding.TapsUsedToday
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// sameUTCDate reports whether t falls on the same UTC calendar date as ref.
// A nil t (never tapped) is never the same date.
func sameUTCDate(t *time.Time, ref time.Time) bool {
	if t == nil {
		return false
	}
	y1, m1, d1 := t.UTC().Date()
	y2, m2, d2 := ref.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
