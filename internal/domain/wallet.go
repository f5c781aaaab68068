package domain

import (
	"time"

	"gorm.io/gorm"
)

// FundType represents a currency category; balances are kept per fund type
type FundType string

const (
	FundTypeCoin    FundType = "coin"
	FundTypeCrystal FundType = "crystal"
)

// WalletEntry is a single signed fund movement. The ledger is append-only:
// corrections and debits are new negative entries, never in-place updates.
type WalletEntry struct {
	ID        int64     `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"index:idx_wallet_user_fund;not null"`
	Amount    int64     `json:"amount" gorm:"column:fund;not null"`
	FundType  FundType  `json:"fund_type" gorm:"index:idx_wallet_user_fund;type:varchar(16);not null;default:'coin'"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for WalletEntry
func (w WalletEntry) TableName() string {
	return "wallet_entries"
}

// WalletRepository defines the interface for the fund ledger.
//
// DeductFunds performs the balance check and the negative insert in one
// read-check-write sequence; callers must run it inside a transaction that
// already serializes the user (see the usecase lock discipline).
type WalletRepository interface {
	GetBalance(userID int64, fundType FundType) (int64, error)
	GetBalances(userID int64) (map[FundType]int64, error)
	AddFunds(userID int64, amount int64, fundType FundType) error
	DeductFunds(userID int64, amount int64, fundType FundType) (bool, error)
	InvalidateBalance(userID int64, fundType FundType)
	WithTransaction(tx *gorm.DB) WalletRepository
}
