package repository

import (
	"errors"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"gorm.io/gorm"
)

// maxChainLength bounds chain walks against a corrupted pointer loop
const maxChainLength = 64

// BuildingRepository implements domain.BuildingRepository. Progression
// chains are rows linked by next_building_id within a (type, subject)
// scope; all traversal is single-hop queries.
type BuildingRepository struct {
	db *gorm.DB
}

// NewBuildingRepository creates a new building repository
func NewBuildingRepository(db *gorm.DB) domain.BuildingRepository {
	return &BuildingRepository{db: db}
}

func (r *BuildingRepository) scoped(buildingType domain.BuildingType, subject *domain.Subject) *gorm.DB {
	q := r.db.Model(&domain.Building{}).Where("type = ?", buildingType)
	if subject == nil {
		return q.Where("subject IS NULL")
	}
	return q.Where("subject = ?", *subject)
}

// GetByID retrieves a building by ID
func (r *BuildingRepository) GetByID(id int64) (*domain.Building, error) {
	var building domain.Building
	result := r.db.Where("id = ?", id).First(&building)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &building, nil
}

// GetAll retrieves the whole catalog ordered by type, subject and id
func (r *BuildingRepository) GetAll() ([]*domain.Building, error) {
	var buildings []*domain.Building
	result := r.db.Order("type ASC, subject ASC, id ASC").Find(&buildings)
	if result.Error != nil {
		return nil, result.Error
	}
	return buildings, nil
}

// GetHead returns the chain head for a scope: the row no other row in the
// scope points to. Deterministic on id when the chain is corrupt.
func (r *BuildingRepository) GetHead(buildingType domain.BuildingType, subject *domain.Subject) (*domain.Building, error) {
	sub := r.scoped(buildingType, subject).
		Select("next_building_id").
		Where("next_building_id IS NOT NULL")

	var building domain.Building
	result := r.scoped(buildingType, subject).
		Where("id NOT IN (?)", sub).
		Order("id ASC").
		First(&building)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &building, nil
}

// GetChain walks a scope's chain from head to tail via single-hop lookups
func (r *BuildingRepository) GetChain(buildingType domain.BuildingType, subject *domain.Subject) ([]*domain.Building, error) {
	head, err := r.GetHead(buildingType, subject)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, nil
	}

	chain := []*domain.Building{head}
	current := head
	for current.NextBuildingID != nil && len(chain) < maxChainLength {
		next, err := r.GetByID(*current.NextBuildingID)
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}
		chain = append(chain, next)
		current = next
	}
	return chain, nil
}

// GetPredecessor returns the building pointing at id, or nil
func (r *BuildingRepository) GetPredecessor(id int64) (*domain.Building, error) {
	var building domain.Building
	result := r.db.Where("next_building_id = ?", id).First(&building)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &building, nil
}

// CountInScope counts the buildings in a (type, subject) scope
func (r *BuildingRepository) CountInScope(buildingType domain.BuildingType, subject *domain.Subject) (int64, error) {
	var count int64
	if err := r.scoped(buildingType, subject).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a building row; chain wiring is the usecase's concern
func (r *BuildingRepository) Create(building *domain.Building) error {
	return r.db.Create(building).Error
}

// Update saves an existing building row
func (r *BuildingRepository) Update(building *domain.Building) error {
	return r.db.Save(building).Error
}

// SetNextBuilding rewires a chain pointer; nil detaches the tail
func (r *BuildingRepository) SetNextBuilding(id int64, nextID *int64) error {
	return r.db.Model(&domain.Building{}).
		Where("id = ?", id).
		Update("next_building_id", nextID).Error
}

// ClearCost nulls a tier's cost, marking it a free starting tier
func (r *BuildingRepository) ClearCost(id int64) error {
	return r.db.Model(&domain.Building{}).
		Where("id = ?", id).
		Update("cost", nil).Error
}

// Delete removes a building row
func (r *BuildingRepository) Delete(id int64) error {
	return r.db.Delete(&domain.Building{}, id).Error
}

// WithTransaction returns a repository bound to tx
func (r *BuildingRepository) WithTransaction(tx *gorm.DB) domain.BuildingRepository {
	return &BuildingRepository{db: tx}
}
