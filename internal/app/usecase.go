package app

import (
	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/auth"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/lock"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"github.com/prepkingdom/kingdom-api/internal/usecase/building"
	"github.com/prepkingdom/kingdom-api/internal/usecase/collector"
	"github.com/prepkingdom/kingdom-api/internal/usecase/content"
	"github.com/prepkingdom/kingdom-api/internal/usecase/progression"
	"github.com/prepkingdom/kingdom-api/internal/usecase/user"
	"gorm.io/gorm"
)

const (
	defaultMaxTapsPerDay = 10
	defaultCoinsPerTap   = 5
)

func (a *application) InitUserUseCase(
	userRepo domain.UserRepository,
	castleRepo domain.UserCastleRepository,
	villageRepo domain.UserVillageRepository,
	buildingRepo domain.BuildingRepository,
	jwt auth.JWTService,
	db *gorm.DB,
	log *logger.Logger,
) domain.UserUseCase {
	return user.NewUserUseCase(userRepo, castleRepo, villageRepo, buildingRepo, jwt, db, log)
}

func (a *application) InitCollectorUseCase(
	castleRepo domain.UserCastleRepository,
	villageRepo domain.UserVillageRepository,
	buildingRepo domain.BuildingRepository,
	walletRepo domain.WalletRepository,
	lockManager *lock.UserLockManager,
	db *gorm.DB,
	log *logger.Logger,
) domain.CollectorUseCase {
	maxTaps := a.config.Game.MaxTapsPerDay
	if maxTaps <= 0 {
		maxTaps = defaultMaxTapsPerDay
	}
	coinsPerTap := a.config.Game.CoinsPerTap
	if coinsPerTap <= 0 {
		coinsPerTap = defaultCoinsPerTap
	}
	return collector.NewCollectorUseCase(castleRepo, villageRepo, buildingRepo, walletRepo, lockManager, db, log, maxTaps, coinsPerTap)
}

func (a *application) InitProgressionUseCase(
	castleRepo domain.UserCastleRepository,
	villageRepo domain.UserVillageRepository,
	buildingRepo domain.BuildingRepository,
	walletRepo domain.WalletRepository,
	lockManager *lock.UserLockManager,
	db *gorm.DB,
	log *logger.Logger,
) domain.ProgressionUseCase {
	return progression.NewProgressionUseCase(castleRepo, villageRepo, buildingRepo, walletRepo, lockManager, db, log)
}

func (a *application) InitBuildingUseCase(
	buildingRepo domain.BuildingRepository,
	castleRepo domain.UserCastleRepository,
	villageRepo domain.UserVillageRepository,
	objectStore domain.ObjectStorage,
	db *gorm.DB,
	log *logger.Logger,
) domain.BuildingUseCase {
	return building.NewBuildingUseCase(buildingRepo, castleRepo, villageRepo, objectStore, db, log)
}

func (a *application) InitContentUseCase(
	completionSvc domain.CompletionService,
	log *logger.Logger,
) domain.ContentUseCase {
	return content.NewContentUseCase(completionSvc, log)
}
