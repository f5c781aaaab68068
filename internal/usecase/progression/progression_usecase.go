package progression

import (
	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/lock"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressionUseCase implements domain.ProgressionUseCase: tier levels,
// upgrade affordability checks and the debit-and-advance sequence.
type ProgressionUseCase struct {
	castleRepo   domain.UserCastleRepository
	villageRepo  domain.UserVillageRepository
	buildingRepo domain.BuildingRepository
	walletRepo   domain.WalletRepository
	lockManager  *lock.UserLockManager
	db           *gorm.DB
	logger       *logger.Logger
}

// NewProgressionUseCase creates a new progression usecase
func NewProgressionUseCase(
	castleRepo domain.UserCastleRepository,
	villageRepo domain.UserVillageRepository,
	buildingRepo domain.BuildingRepository,
	walletRepo domain.WalletRepository,
	lockManager *lock.UserLockManager,
	db *gorm.DB,
	logger *logger.Logger,
) domain.ProgressionUseCase {
	return &ProgressionUseCase{
		castleRepo:   castleRepo,
		villageRepo:  villageRepo,
		buildingRepo: buildingRepo,
		walletRepo:   walletRepo,
		lockManager:  lockManager,
		db:           db,
		logger:       logger,
	}
}

// GetCastleUpgradeInfo reports the castle tier level and whether the next
// tier is affordable right now
func (uc *ProgressionUseCase) GetCastleUpgradeInfo(userID int64) (*domain.UpgradeInfo, error) {
	binding, err := uc.castleRepo.GetByUserID(userID)
	if err != nil {
		uc.logger.Error("Failed to get castle binding", zap.Int64("userID", userID), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get castle", 500, err)
	}
	if binding == nil {
		return nil, domain.NewAppError(domain.ErrCodeCastleNotFound, "Castle not found", 404, nil)
	}

	return uc.buildUpgradeInfo(uc.buildingRepo, uc.walletRepo, userID, binding.CastleID)
}

// GetVillageUpgradeInfo reports one subject village's tier level and whether
// the next tier is affordable right now
func (uc *ProgressionUseCase) GetVillageUpgradeInfo(userID int64, subject domain.Subject) (*domain.UpgradeInfo, error) {
	if !domain.IsValidSubject(subject) {
		return nil, domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Unknown subject")
	}

	binding, err := uc.villageRepo.GetByUserAndSubject(userID, subject)
	if err != nil {
		uc.logger.Error("Failed to get village binding", zap.Int64("userID", userID), zap.String("subject", string(subject)), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get village", 500, err)
	}
	if binding == nil {
		return nil, domain.NewAppError(domain.ErrCodeVillageNotFound, "Village not found", 404, nil)
	}

	return uc.buildUpgradeInfo(uc.buildingRepo, uc.walletRepo, userID, binding.VillageID)
}

// buildUpgradeInfo assembles the level, next-tier cost and affordability
// for whatever building the binding currently points at
func (uc *ProgressionUseCase) buildUpgradeInfo(buildingRepo domain.BuildingRepository, walletRepo domain.WalletRepository, userID, buildingID int64) (*domain.UpgradeInfo, error) {
	building, err := buildingRepo.GetByID(buildingID)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get building", 500, err)
	}
	if building == nil {
		return nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Building not found", 500, nil)
	}

	level, err := uc.chainLevel(buildingRepo, building)
	if err != nil {
		return nil, err
	}

	fundType := building.FundType()
	balance, err := walletRepo.GetBalance(userID, fundType)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get balance", 500, err)
	}

	info := &domain.UpgradeInfo{
		CurrentLevel:   level,
		CostFundType:   fundType,
		CurrentBalance: balance,
	}

	if building.NextBuildingID == nil {
		info.Reason = "Already at the highest tier"
		return info, nil
	}

	next, err := buildingRepo.GetByID(*building.NextBuildingID)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get next building", 500, err)
	}
	if next == nil {
		uc.logger.Error("Chain points at missing building", zap.Int64("buildingID", building.ID), zap.Int64("nextID", *building.NextBuildingID))
		return nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Next building not found", 500, nil)
	}

	nextLevel := level + 1
	cost := upgradeCost(next)
	info.NextLevel = &nextLevel
	info.UpgradeCost = &cost

	if balance >= cost {
		info.CanUpgrade = true
	} else {
		info.Reason = "Insufficient funds"
	}
	return info, nil
}

// chainLevel returns the 1-based position of building in its scope's chain
func (uc *ProgressionUseCase) chainLevel(buildingRepo domain.BuildingRepository, building *domain.Building) (int, error) {
	chain, err := buildingRepo.GetChain(building.Type, building.Subject)
	if err != nil {
		return 0, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to walk building chain", 500, err)
	}
	for i, b := range chain {
		if b.ID == building.ID {
			return i + 1, nil
		}
	}
	// Binding points outside the current chain; treat it as the head level
	uc.logger.Warn("Building not found in its chain", zap.Int64("buildingID", building.ID))
	return 1, nil
}

// upgradeCost reads a tier's cost; a nil cost (promoted head) is free
func upgradeCost(building *domain.Building) int64 {
	if building.Cost == nil {
		return 0
	}
	return *building.Cost
}
