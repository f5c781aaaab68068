package domain

import (
	"time"

	"gorm.io/gorm"
)

// UserCastle binds a user to their current castle tier and carries all
// accrual and tap state. One row per user.
type UserCastle struct {
	ID               int64      `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	UserID           int64      `json:"user_id" gorm:"uniqueIndex;not null"`
	CastleID         int64      `json:"castle_id" gorm:"not null"`
	TreasureAmount   int64      `json:"treasure_amount" gorm:"not null;default:0"`
	LastCollectDate  *time.Time `json:"last_collect_date,omitempty"`
	TapsUsedToday    int64      `json:"taps_used_today" gorm:"not null;default:0"`
	LastTapResetDate *time.Time `json:"last_tap_reset_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"not null"`

	Castle Building `json:"-" gorm:"foreignKey:CastleID"`
}

// TableName specifies the table name for UserCastle
func (u UserCastle) TableName() string {
	return "user_castles"
}

// UserVillage binds a user to their current village tier for one subject.
// One row per user per subject.
type UserVillage struct {
	ID              int64      `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	UserID          int64      `json:"user_id" gorm:"uniqueIndex:idx_user_subject;not null"`
	Subject         Subject    `json:"subject" gorm:"uniqueIndex:idx_user_subject;type:varchar(16);not null"`
	VillageID       int64      `json:"village_id" gorm:"not null"`
	TreasureAmount  int64      `json:"treasure_amount" gorm:"not null;default:0"`
	LastCollectDate *time.Time `json:"last_collect_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"not null"`

	Village Building `json:"-" gorm:"foreignKey:VillageID"`
}

// TableName specifies the table name for UserVillage
func (u UserVillage) TableName() string {
	return "user_villages"
}

// UserCastleRepository defines the interface for castle bindings.
// The ForUpdate reader takes a row lock and must be called inside a
// transaction; it is the anchor for every mutating collector sequence.
type UserCastleRepository interface {
	GetByUserID(userID int64) (*UserCastle, error)
	GetByUserIDForUpdate(userID int64) (*UserCastle, error)
	Create(binding *UserCastle) error
	UpdateTreasure(id int64, amount int64) error
	// CollectTreasure zeroes the accumulated treasure and stamps the collect
	// time, returning the amount that was held.
	CollectTreasure(id int64) (int64, error)
	// RecordTaps resets the daily counter when the UTC date changed, then
	// adds count to it.
	RecordTaps(id int64, count int64, today time.Time) error
	// Upgrade repoints the binding to a new tier and zeroes its treasure
	Upgrade(id int64, newCastleID int64) error
	MigrateUsers(oldCastleID, newCastleID int64) error
	WithTransaction(tx *gorm.DB) UserCastleRepository
}

// UserVillageRepository defines the interface for village bindings
type UserVillageRepository interface {
	GetByUserAndSubject(userID int64, subject Subject) (*UserVillage, error)
	GetByUserAndSubjectForUpdate(userID int64, subject Subject) (*UserVillage, error)
	GetByUserID(userID int64) ([]*UserVillage, error)
	Create(binding *UserVillage) error
	UpdateTreasure(id int64, amount int64) error
	CollectTreasure(id int64) (int64, error)
	Upgrade(id int64, newVillageID int64) error
	MigrateUsers(oldVillageID, newVillageID int64) error
	WithTransaction(tx *gorm.DB) UserVillageRepository
}
