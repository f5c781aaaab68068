package repository

import (
	"testing"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepositoryBalanceFromLedger(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "wallet_user")
	repo := NewWalletRepository(db, nil)

	balance, err := repo.GetBalance(user.ID, domain.FundTypeCoin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	require.NoError(t, repo.AddFunds(user.ID, 100, domain.FundTypeCoin))
	require.NoError(t, repo.AddFunds(user.ID, 50, domain.FundTypeCoin))
	require.NoError(t, repo.AddFunds(user.ID, -30, domain.FundTypeCoin))

	balance, err = repo.GetBalance(user.ID, domain.FundTypeCoin)
	require.NoError(t, err)
	assert.Equal(t, int64(120), balance)

	// Entries are never updated in place
	var count int64
	require.NoError(t, db.Model(&domain.WalletEntry{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestWalletRepositoryBalancesArePerFundType(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "wallet_user")
	repo := NewWalletRepository(db, nil)

	require.NoError(t, repo.AddFunds(user.ID, 100, domain.FundTypeCoin))
	require.NoError(t, repo.AddFunds(user.ID, 40, domain.FundTypeCrystal))

	coins, err := repo.GetBalance(user.ID, domain.FundTypeCoin)
	require.NoError(t, err)
	crystals, err := repo.GetBalance(user.ID, domain.FundTypeCrystal)
	require.NoError(t, err)
	assert.Equal(t, int64(100), coins)
	assert.Equal(t, int64(40), crystals)

	balances, err := repo.GetBalances(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balances[domain.FundTypeCoin])
	assert.Equal(t, int64(40), balances[domain.FundTypeCrystal])
}

func TestWalletRepositoryGetBalancesZeroFilled(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "wallet_user")
	repo := NewWalletRepository(db, nil)

	balances, err := repo.GetBalances(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balances[domain.FundTypeCoin])
	assert.Equal(t, int64(0), balances[domain.FundTypeCrystal])
}

func TestWalletRepositoryDeductFunds(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "wallet_user")
	repo := NewWalletRepository(db, nil)

	require.NoError(t, repo.AddFunds(user.ID, 100, domain.FundTypeCoin))

	ok, err := repo.DeductFunds(user.ID, 60, domain.FundTypeCoin)
	require.NoError(t, err)
	assert.True(t, ok)

	// Insufficient balance refuses without writing
	ok, err = repo.DeductFunds(user.ID, 60, domain.FundTypeCoin)
	require.NoError(t, err)
	assert.False(t, ok)

	balance, err := repo.GetBalance(user.ID, domain.FundTypeCoin)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)
}

func TestWalletRepositoryWithTransaction(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "wallet_user")
	repo := NewWalletRepository(db, nil)

	tx := db.Begin()
	require.NoError(t, tx.Error)
	txRepo := repo.WithTransaction(tx)

	require.NoError(t, txRepo.AddFunds(user.ID, 100, domain.FundTypeCoin))

	inTx, err := txRepo.GetBalance(user.ID, domain.FundTypeCoin)
	require.NoError(t, err)
	assert.Equal(t, int64(100), inTx)

	tx.Rollback()

	balance, err := repo.GetBalance(user.ID, domain.FundTypeCoin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}
