package domain

import (
	"gorm.io/gorm"
)

// BuildingType distinguishes the castle chain from per-subject village chains
type BuildingType string

const (
	BuildingTypeCastle  BuildingType = "castle"
	BuildingTypeVillage BuildingType = "village"
)

// Building is one tier in a progression chain. Chains are singly linked
// through NextBuildingID and scoped by (type, subject); the castle chain has
// no subject. A nil Cost marks a free tier: the chain head and nothing else.
type Building struct {
	ID               int64        `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	Title            string       `json:"title" gorm:"not null;type:varchar(128)"`
	Type             BuildingType `json:"type" gorm:"type:varchar(16);not null;index:idx_building_scope"`
	Subject          *Subject     `json:"subject,omitempty" gorm:"type:varchar(16);index:idx_building_scope"`
	SVG              *string      `json:"svg,omitempty" gorm:"type:varchar(512)"`
	TreasureCapacity int64        `json:"treasure_capacity" gorm:"not null;default:300"`
	ProductionRate   int64        `json:"production_rate" gorm:"column:speed_production_treasure;not null;default:1"`
	Cost             *int64       `json:"cost,omitempty"`
	NextBuildingID   *int64       `json:"next_building_id,omitempty"`

	NextBuilding *Building `json:"-" gorm:"foreignKey:NextBuildingID"`
}

// TableName specifies the table name for Building
func (b Building) TableName() string {
	return "buildings"
}

// FundType returns the currency a chain of this type deals in
func (b Building) FundType() FundType {
	if b.Type == BuildingTypeCastle {
		return FundTypeCrystal
	}
	return FundTypeCoin
}

// BuildingRepository defines the interface for the building catalog.
// Chain traversal is single-hop: GetByID on NextBuildingID, never recursion.
type BuildingRepository interface {
	GetByID(id int64) (*Building, error)
	GetAll() ([]*Building, error)
	// GetHead returns the chain head for (buildingType, subject): the row in
	// scope that no other row points to. Subject is nil for the castle chain.
	GetHead(buildingType BuildingType, subject *Subject) (*Building, error)
	// GetChain walks the scope's chain head-to-tail
	GetChain(buildingType BuildingType, subject *Subject) ([]*Building, error)
	// GetPredecessor returns the row whose NextBuildingID is id, or nil
	GetPredecessor(id int64) (*Building, error)
	CountInScope(buildingType BuildingType, subject *Subject) (int64, error)
	Create(building *Building) error
	Update(building *Building) error
	SetNextBuilding(id int64, nextID *int64) error
	ClearCost(id int64) error
	Delete(id int64) error
	WithTransaction(tx *gorm.DB) BuildingRepository
}

// BuildingCreateInput carries admin catalog writes; SVG bytes are uploaded
// to object storage and replaced by a URL before persisting.
type BuildingCreateInput struct {
	Title            string
	Type             BuildingType
	Subject          *Subject
	SVG              []byte
	TreasureCapacity int64
	ProductionRate   int64
	Cost             *int64
}

// BuildingUseCase defines the interface for admin catalog management,
// including the delete/migration protocol.
type BuildingUseCase interface {
	CreateBuilding(input BuildingCreateInput) (*Building, error)
	GetBuilding(id int64) (*Building, error)
	GetBuildings() ([]*Building, error)
	UpdateBuilding(id int64, input BuildingCreateInput) (*Building, error)
	DeleteBuilding(id int64) error
}
