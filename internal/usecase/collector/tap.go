package collector

import (
	"context"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"go.uber.org/zap"
)

// Tap spends up to count of today's castle taps and credits coins for each
// tap spent. A batch larger than the remaining allowance is clamped, never
// rejected; only a fully exhausted allowance is an error. The daily counter
// resets lazily at UTC midnight.
func (uc *CollectorUseCase) Tap(userID int64, count int64) (*domain.TapResult, error) {
	uc.logger.Info("Processing taps", zap.Int64("userID", userID), zap.Int64("count", count))

	if count < 1 {
		return nil, domain.NewBadRequestError(domain.ErrCodeInvalidRange, "Tap count must be at least 1")
	}

	if err := uc.lockManager.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "User is busy, try again", 409, err)
	}
	defer uc.lockManager.Unlock(userID)

	tx, txCastleRepo, _, txWalletRepo, err := uc.setupTransaction()
	if err != nil {
		return nil, err
	}

	binding, _, err := uc.getCastleWithBuildingForUpdate(txCastleRepo, userID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := timeNow()
	remaining := uc.tapsRemaining(binding, now)
	if remaining == 0 {
		tx.Rollback()
		uc.logger.Warn("No taps remaining today", zap.Int64("userID", userID))
		return nil, domain.NewBadRequestError(domain.ErrCodeNoTapsRemaining, "No taps remaining today")
	}

	if count > remaining {
		count = remaining
	}
	coins := count * uc.coinsPerTap

	if err := txCastleRepo.RecordTaps(binding.ID, count, now); err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to record taps", 500, err)
	}

	if err := txWalletRepo.AddFunds(userID, coins, domain.FundTypeCoin); err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to credit wallet", 500, err)
	}

	newBalance, err := txWalletRepo.GetBalance(userID, domain.FundTypeCoin)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get balance", 500, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", 500, err)
	}
	uc.walletRepo.InvalidateBalance(userID, domain.FundTypeCoin)

	uc.logger.Info("Taps processed",
		zap.Int64("userID", userID),
		zap.Int64("tapsSpent", count),
		zap.Int64("coins", coins),
		zap.Int64("tapsRemaining", remaining-count))

	return &domain.TapResult{
		CoinsCollected:   coins,
		TapsRemaining:    remaining - count,
		NewWalletBalance: newBalance,
	}, nil
}
