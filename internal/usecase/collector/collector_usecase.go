package collector

import (
	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/lock"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CollectorUseCase implements domain.CollectorUseCase: lazy accrual
// projection, treasure collection and the castle tap mini-game.
type CollectorUseCase struct {
	castleRepo    domain.UserCastleRepository
	villageRepo   domain.UserVillageRepository
	buildingRepo  domain.BuildingRepository
	walletRepo    domain.WalletRepository
	lockManager   *lock.UserLockManager
	db            *gorm.DB
	logger        *logger.Logger
	maxTapsPerDay int64
	coinsPerTap   int64
}

// NewCollectorUseCase creates a new collector usecase
func NewCollectorUseCase(
	castleRepo domain.UserCastleRepository,
	villageRepo domain.UserVillageRepository,
	buildingRepo domain.BuildingRepository,
	walletRepo domain.WalletRepository,
	lockManager *lock.UserLockManager,
	db *gorm.DB,
	logger *logger.Logger,
	maxTapsPerDay int64,
	coinsPerTap int64,
) domain.CollectorUseCase {
	return &CollectorUseCase{
		castleRepo:    castleRepo,
		villageRepo:   villageRepo,
		buildingRepo:  buildingRepo,
		walletRepo:    walletRepo,
		lockManager:   lockManager,
		db:            db,
		logger:        logger,
		maxTapsPerDay: maxTapsPerDay,
		coinsPerTap:   coinsPerTap,
	}
}

// GetCastleStatus projects the castle treasure and tap state at read time.
// Nothing is persisted; the projection is recomputed on every read.
func (uc *CollectorUseCase) GetCastleStatus(userID int64) (*domain.CastleStatus, error) {
	binding, castle, err := uc.getCastleWithBuilding(uc.castleRepo, uc.buildingRepo, userID)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	accrued := domain.AccrueTreasure(binding.TreasureAmount, castle.TreasureCapacity, castle.ProductionRate, binding.LastCollectDate, now)

	return &domain.CastleStatus{
		CastleID:    castle.ID,
		CastleTitle: castle.Title,
		Treasure: domain.TreasureStatus{
			CurrentAmount:     accrued.Amount,
			Capacity:          castle.TreasureCapacity,
			ProductionRate:    castle.ProductionRate,
			LastCollectDate:   binding.LastCollectDate,
			TimeToFullMinutes: accrued.TimeToFullMinutes,
			FundType:          castle.FundType(),
		},
		TapsRemaining: uc.tapsRemaining(binding, now),
		MaxTapsPerDay: uc.maxTapsPerDay,
		CoinsPerTap:   uc.coinsPerTap,
	}, nil
}

// GetVillageStatus projects one subject village's treasure at read time
func (uc *CollectorUseCase) GetVillageStatus(userID int64, subject domain.Subject) (*domain.VillageStatus, error) {
	if !domain.IsValidSubject(subject) {
		uc.logger.Warn("Village status requested for unknown subject", zap.Int64("userID", userID), zap.String("subject", string(subject)))
		return nil, domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Unknown subject")
	}

	binding, village, err := uc.getVillageWithBuilding(uc.villageRepo, uc.buildingRepo, userID, subject)
	if err != nil {
		return nil, err
	}

	return uc.buildVillageStatus(binding, village), nil
}

// GetAllVillageStatuses projects every subject village the user has
func (uc *CollectorUseCase) GetAllVillageStatuses(userID int64) ([]*domain.VillageStatus, error) {
	bindings, err := uc.villageRepo.GetByUserID(userID)
	if err != nil {
		uc.logger.Error("Failed to get village bindings", zap.Int64("userID", userID), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get villages", 500, err)
	}

	statuses := make([]*domain.VillageStatus, 0, len(bindings))
	for _, binding := range bindings {
		village, err := uc.buildingRepo.GetByID(binding.VillageID)
		if err != nil {
			return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get village building", 500, err)
		}
		if village == nil {
			uc.logger.Error("Village binding points at missing building", zap.Int64("userID", userID), zap.Int64("villageID", binding.VillageID))
			return nil, domain.NewAppError(domain.ErrCodeBuildingNotFound, "Village building not found", 500, nil)
		}
		statuses = append(statuses, uc.buildVillageStatus(binding, village))
	}
	return statuses, nil
}

func (uc *CollectorUseCase) buildVillageStatus(binding *domain.UserVillage, village *domain.Building) *domain.VillageStatus {
	accrued := domain.AccrueTreasure(binding.TreasureAmount, village.TreasureCapacity, village.ProductionRate, binding.LastCollectDate, timeNow())
	return &domain.VillageStatus{
		VillageID:    village.ID,
		VillageTitle: village.Title,
		Subject:      binding.Subject,
		Treasure: domain.TreasureStatus{
			CurrentAmount:     accrued.Amount,
			Capacity:          village.TreasureCapacity,
			ProductionRate:    village.ProductionRate,
			LastCollectDate:   binding.LastCollectDate,
			TimeToFullMinutes: accrued.TimeToFullMinutes,
			FundType:          village.FundType(),
		},
	}
}
