package repository

import (
	"errors"
	"time"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"gorm.io/gorm"
)

// UserCastleRepository implements domain.UserCastleRepository
type UserCastleRepository struct {
	db *gorm.DB
}

// NewUserCastleRepository creates a new user castle repository
func NewUserCastleRepository(db *gorm.DB) domain.UserCastleRepository {
	return &UserCastleRepository{db: db}
}

// GetByUserID retrieves a user's castle binding
func (r *UserCastleRepository) GetByUserID(userID int64) (*domain.UserCastle, error) {
	var binding domain.UserCastle
	result := r.db.Where("user_id = ?", userID).First(&binding)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &binding, nil
}

// GetByUserIDForUpdate retrieves a user's castle binding with a row lock
func (r *UserCastleRepository) GetByUserIDForUpdate(userID int64) (*domain.UserCastle, error) {
	var binding domain.UserCastle
	result := withRowLock(r.db).Where("user_id = ?", userID).First(&binding)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &binding, nil
}

// Create creates a new castle binding
func (r *UserCastleRepository) Create(binding *domain.UserCastle) error {
	binding.CreatedAt = time.Now()
	binding.UpdatedAt = time.Now()
	return r.db.Create(binding).Error
}

// UpdateTreasure persists a freshly projected treasure amount
func (r *UserCastleRepository) UpdateTreasure(id int64, amount int64) error {
	return r.db.Model(&domain.UserCastle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"treasure_amount": amount,
			"updated_at":      time.Now(),
		}).Error
}

// CollectTreasure zeroes the treasure and stamps the collect time,
// returning the amount that was held
func (r *UserCastleRepository) CollectTreasure(id int64) (int64, error) {
	var binding domain.UserCastle
	if err := r.db.Where("id = ?", id).First(&binding).Error; err != nil {
		return 0, err
	}

	collected := binding.TreasureAmount
	now := time.Now().UTC()
	err := r.db.Model(&domain.UserCastle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"treasure_amount":   0,
			"last_collect_date": now,
			"updated_at":        now,
		}).Error
	if err != nil {
		return 0, err
	}
	return collected, nil
}

// RecordTaps resets the daily counter when the UTC date changed, then
// increments it by count
func (r *UserCastleRepository) RecordTaps(id int64, count int64, today time.Time) error {
	var binding domain.UserCastle
	if err := r.db.Where("id = ?", id).First(&binding).Error; err != nil {
		return err
	}

	used := binding.TapsUsedToday
	if !sameUTCDate(binding.LastTapResetDate, today) {
		used = 0
	}

	resetDate := today.UTC().Truncate(24 * time.Hour)
	return r.db.Model(&domain.UserCastle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"taps_used_today":     used + count,
			"last_tap_reset_date": resetDate,
			"updated_at":          time.Now(),
		}).Error
}

// Upgrade repoints the binding to a new castle tier and zeroes its treasure
func (r *UserCastleRepository) Upgrade(id int64, newCastleID int64) error {
	return r.db.Model(&domain.UserCastle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"castle_id":       newCastleID,
			"treasure_amount": 0,
			"updated_at":      time.Now(),
		}).Error
}

// MigrateUsers repoints every binding on oldCastleID to newCastleID
func (r *UserCastleRepository) MigrateUsers(oldCastleID, newCastleID int64) error {
	return r.db.Model(&domain.UserCastle{}).
		Where("castle_id = ?", oldCastleID).
		Update("castle_id", newCastleID).Error
}

// WithTransaction returns a repository bound to tx
func (r *UserCastleRepository) WithTransaction(tx *gorm.DB) domain.UserCastleRepository {
	return &UserCastleRepository{db: tx}
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
