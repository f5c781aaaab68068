package repository

import (
	"errors"
	"time"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"gorm.io/gorm"
)

// UserVillageRepository implements domain.UserVillageRepository
type UserVillageRepository struct {
	db *gorm.DB
}

// NewUserVillageRepository creates a new user village repository
func NewUserVillageRepository(db *gorm.DB) domain.UserVillageRepository {
	return &UserVillageRepository{db: db}
}

// GetByUserAndSubject retrieves a user's village binding for one subject
func (r *UserVillageRepository) GetByUserAndSubject(userID int64, subject domain.Subject) (*domain.UserVillage, error) {
	var binding domain.UserVillage
	result := r.db.Where("user_id = ? AND subject = ?", userID, subject).First(&binding)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &binding, nil
}

// GetByUserAndSubjectForUpdate retrieves a village binding with a row lock
func (r *UserVillageRepository) GetByUserAndSubjectForUpdate(userID int64, subject domain.Subject) (*domain.UserVillage, error) {
	var binding domain.UserVillage
	result := withRowLock(r.db).Where("user_id = ? AND subject = ?", userID, subject).First(&binding)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &binding, nil
}

// GetByUserID retrieves all village bindings for a user ordered by subject
func (r *UserVillageRepository) GetByUserID(userID int64) ([]*domain.UserVillage, error) {
	var bindings []*domain.UserVillage
	result := r.db.Where("user_id = ?", userID).Order("subject ASC").Find(&bindings)
	if result.Error != nil {
		return nil, result.Error
	}
	return bindings, nil
}

// Create creates a new village binding
func (r *UserVillageRepository) Create(binding *domain.UserVillage) error {
	binding.CreatedAt = time.Now()
	binding.UpdatedAt = time.Now()
	return r.db.Create(binding).Error
}

// UpdateTreasure persists a freshly projected treasure amount
func (r *UserVillageRepository) UpdateTreasure(id int64, amount int64) error {
	return r.db.Model(&domain.UserVillage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"treasure_amount": amount,
			"updated_at":      time.Now(),
		}).Error
}

// CollectTreasure zeroes the treasure and stamps the collect time,
// returning the amount that was held
func (r *UserVillageRepository) CollectTreasure(id int64) (int64, error) {
	var binding domain.UserVillage
	if err := r.db.Where("id = ?", id).First(&binding).Error; err != nil {
		return 0, err
	}

	collected := binding.TreasureAmount
	now := time.Now().UTC()
	err := r.db.Model(&domain.UserVillage{}).
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

// Upgrade repoints the binding to a new village tier and zeroes its treasure
func (r *UserVillageRepository) Upgrade(id int64, newVillageID int64) error {
	return r.db.Model(&domain.UserVillage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"village_id":      newVillageID,
			"treasure_amount": 0,
			"updated_at":      time.Now(),
		}).Error
}

// MigrateUsers repoints every binding on oldVillageID to newVillageID
func (r *UserVillageRepository) MigrateUsers(oldVillageID, newVillageID int64) error {
	return r.db.Model(&domain.UserVillage{}).
		Where("village_id = ?", oldVillageID).
		Update("village_id", newVillageID).Error
}

// WithTransaction returns a repository bound to tx
func (r *UserVillageRepository) WithTransaction(tx *gorm.DB) domain.UserVillageRepository {
	return &UserVillageRepository{db: tx}
}
