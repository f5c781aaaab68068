package app

import (
	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/cache"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func (a *application) InitRepositories(db *gorm.DB, balanceCache *cache.BalanceCache) (
	domain.UserRepository,
	domain.BuildingRepository,
	domain.UserCastleRepository,
	domain.UserVillageRepository,
	domain.WalletRepository,
) {
	return repository.NewUserRepository(db),
		repository.NewBuildingRepository(db),
		repository.NewUserCastleRepository(db),
		repository.NewUserVillageRepository(db),
		repository.NewWalletRepository(db, balanceCache)
}
