package repository

import (
	"context"
	"time"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/cache"
	"gorm.io/gorm"
)

// WalletRepository implements domain.WalletRepository over the append-only
// wallet_entries ledger. Balances are derived by summation, optionally
// served from the balance cache outside transactions.
type WalletRepository struct {
	db    *gorm.DB
	cache *cache.BalanceCache
	inTx  bool
}

// NewWalletRepository creates a new wallet repository; cache may be nil
func NewWalletRepository(db *gorm.DB, balanceCache *cache.BalanceCache) domain.WalletRepository {
	return &WalletRepository{db: db, cache: balanceCache}
}

// GetBalance sums all signed entries for (user, fund type)
func (r *WalletRepository) GetBalance(userID int64, fundType domain.FundType) (int64, error) {
	// In-transaction reads must see the ledger, not the cache
	if !r.inTx && r.cache != nil {
		if balance, ok := r.cache.Get(context.Background(), userID, fundType); ok {
			return balance, nil
		}
	}

	var balance int64
	err := r.db.Model(&domain.WalletEntry{}).
		Select("COALESCE(SUM(fund), 0)").
		Where("user_id = ? AND fund_type = ?", userID, fundType).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}

	if !r.inTx && r.cache != nil {
		r.cache.Set(context.Background(), userID, fundType, balance)
	}
	return balance, nil
}

// GetBalances sums entries grouped by fund type, with zeros for absent funds
func (r *WalletRepository) GetBalances(userID int64) (map[domain.FundType]int64, error) {
	type row struct {
		FundType domain.FundType
		Total    int64
	}

	var rows []row
	err := r.db.Model(&domain.WalletEntry{}).
		Select("fund_type, COALESCE(SUM(fund), 0) AS total").
		Where("user_id = ?", userID).
		Group("fund_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	balances := map[domain.FundType]int64{
		domain.FundTypeCoin:    0,
		domain.FundTypeCrystal: 0,
	}
	for _, r := range rows {
		balances[r.FundType] = r.Total
	}
	return balances, nil
}

// AddFunds appends a signed entry; negative amounts are debits
func (r *WalletRepository) AddFunds(userID int64, amount int64, fundType domain.FundType) error {
	entry := &domain.WalletEntry{
		UserID:    userID,
		Amount:    amount,
		FundType:  fundType,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(entry).Error; err != nil {
		return err
	}

	r.InvalidateBalance(userID, fundType)
	return nil
}

// DeductFunds checks the summed balance and appends a negative entry.
// Returns false without writing when the balance is insufficient. Callers
// must already hold the user's lock inside a transaction.
func (r *WalletRepository) DeductFunds(userID int64, amount int64, fundType domain.FundType) (bool, error) {
	balance, err := r.GetBalance(userID, fundType)
	if err != nil {
		return false, err
	}
	if balance < amount {
		return false, nil
	}

	if err := r.AddFunds(userID, -amount, fundType); err != nil {
		return false, err
	}
	return true, nil
}

// InvalidateBalance drops the cached balance for (user, fund type). Usecases
// call this again after committing, so a read racing the transaction cannot
// leave a stale value behind.
func (r *WalletRepository) InvalidateBalance(userID int64, fundType domain.FundType) {
	if r.cache != nil {
		r.cache.Invalidate(context.Background(), userID, fundType)
	}
}

// WithTransaction returns a repository bound to tx; cached reads are
// disabled inside the transaction
func (r *WalletRepository) WithTransaction(tx *gorm.DB) domain.WalletRepository {
	return &WalletRepository{db: tx, cache: r.cache, inTx: true}
}
