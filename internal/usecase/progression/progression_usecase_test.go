package progression

import (
	"testing"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/lock"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type progressionFixture struct {
	db          *gorm.DB
	uc          *ProgressionUseCase
	walletRepo  domain.WalletRepository
	castleRepo  domain.UserCastleRepository
	villageRepo domain.UserVillageRepository
	user        *domain.User
	castles     []*domain.Building
	villages    []*domain.Building
}

func int64Ptr(v int64) *int64 { return &v }

func setupProgression(t *testing.T) *progressionFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Building{},
		&domain.WalletEntry{},
		&domain.UserCastle{},
		&domain.UserVillage{},
	))

	user := &domain.User{Username: "student", Password: "hash"}
	require.NoError(t, db.Create(user).Error)

	castles := createChain(t, db, domain.BuildingTypeCastle, nil, []int64{0, 500, 2000})
	subject := domain.SubjectMath
	villages := createChain(t, db, domain.BuildingTypeVillage, &subject, []int64{0, 400})

	testLogger := logger.NewLogger("test", "debug")
	castleRepo := repository.NewUserCastleRepository(db)
	villageRepo := repository.NewUserVillageRepository(db)
	buildingRepo := repository.NewBuildingRepository(db)
	walletRepo := repository.NewWalletRepository(db, nil)

	uc := NewProgressionUseCase(
		castleRepo, villageRepo, buildingRepo, walletRepo,
		lock.NewUserLockManager(testLogger),
		db, testLogger,
	).(*ProgressionUseCase)

	return &progressionFixture{
		db:          db,
		uc:          uc,
		walletRepo:  walletRepo,
		castleRepo:  castleRepo,
		villageRepo: villageRepo,
		user:        user,
		castles:     castles,
		villages:    villages,
	}
}

// createChain inserts tiers tail-first; costs[0] is ignored, heads are free
func createChain(t *testing.T, db *gorm.DB, buildingType domain.BuildingType, subject *domain.Subject, costs []int64) []*domain.Building {
	t.Helper()

	buildings := make([]*domain.Building, len(costs))
	var nextID *int64
	for i := len(costs) - 1; i >= 0; i-- {
		var cost *int64
		if i > 0 {
			cost = int64Ptr(costs[i])
		}
		b := &domain.Building{
			Title:            "tier",
			Type:             buildingType,
			Subject:          subject,
			TreasureCapacity: 300,
			ProductionRate:   10,
			Cost:             cost,
			NextBuildingID:   nextID,
		}
		require.NoError(t, db.Create(b).Error)
		buildings[i] = b
		nextID = int64Ptr(b.ID)
	}
	return buildings
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}

func TestGetCastleUpgradeInfo(t *testing.T) {
	f := setupProgression(t)
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{UserID: f.user.ID, CastleID: f.castles[0].ID}))
	require.NoError(t, f.walletRepo.AddFunds(f.user.ID, 600, domain.FundTypeCrystal))

	info, err := f.uc.GetCastleUpgradeInfo(f.user.ID)
	require.NoError(t, err)

	assert.True(t, info.CanUpgrade)
	assert.Equal(t, 1, info.CurrentLevel)
	require.NotNil(t, info.NextLevel)
	assert.Equal(t, 2, *info.NextLevel)
	require.NotNil(t, info.UpgradeCost)
	assert.Equal(t, int64(500), *info.UpgradeCost)
	assert.Equal(t, domain.FundTypeCrystal, info.CostFundType)
	assert.Equal(t, int64(600), info.CurrentBalance)
}

func TestGetCastleUpgradeInfoInsufficientFunds(t *testing.T) {
	f := setupProgression(t)
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{UserID: f.user.ID, CastleID: f.castles[0].ID}))
	require.NoError(t, f.walletRepo.AddFunds(f.user.ID, 100, domain.FundTypeCrystal))

	info, err := f.uc.GetCastleUpgradeInfo(f.user.ID)
	require.NoError(t, err)

	assert.False(t, info.CanUpgrade)
	assert.Equal(t, "Insufficient funds", info.Reason)
}

func TestGetCastleUpgradeInfoAtTopTier(t *testing.T) {
	f := setupProgression(t)
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{UserID: f.user.ID, CastleID: f.castles[2].ID}))

	info, err := f.uc.GetCastleUpgradeInfo(f.user.ID)
	require.NoError(t, err)

	assert.False(t, info.CanUpgrade)
	assert.Equal(t, 3, info.CurrentLevel)
	assert.Nil(t, info.NextLevel)
	assert.Equal(t, "Already at the highest tier", info.Reason)
}

func TestUpgradeCastleDebitsAndAdvances(t *testing.T) {
	f := setupProgression(t)
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{UserID: f.user.ID, CastleID: f.castles[0].ID, TreasureAmount: 77}))
	require.NoError(t, f.walletRepo.AddFunds(f.user.ID, 600, domain.FundTypeCrystal))

	result, err := f.uc.UpgradeCastle(f.user.ID)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, int64(500), result.CostPaid)
	assert.Equal(t, int64(100), result.NewBalance)

	binding, err := f.castleRepo.GetByUserID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, f.castles[1].ID, binding.CastleID)
	// Treasure never carries across tiers
	assert.Equal(t, int64(0), binding.TreasureAmount)

	balance, err := f.walletRepo.GetBalance(f.user.ID, domain.FundTypeCrystal)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestUpgradeCastleInsufficientFundsRollsBack(t *testing.T) {
	f := setupProgression(t)
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{UserID: f.user.ID, CastleID: f.castles[0].ID}))
	require.NoError(t, f.walletRepo.AddFunds(f.user.ID, 499, domain.FundTypeCrystal))

	_, err := f.uc.UpgradeCastle(f.user.ID)
	assert.Equal(t, domain.ErrCodeInsufficientFunds, appErrCode(t, err))

	binding, err := f.castleRepo.GetByUserID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, f.castles[0].ID, binding.CastleID)

	balance, err := f.walletRepo.GetBalance(f.user.ID, domain.FundTypeCrystal)
	require.NoError(t, err)
	assert.Equal(t, int64(499), balance)
}

func TestUpgradeCastleAtTopTier(t *testing.T) {
	f := setupProgression(t)
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{UserID: f.user.ID, CastleID: f.castles[2].ID}))

	_, err := f.uc.UpgradeCastle(f.user.ID)
	assert.Equal(t, domain.ErrCodeMaxTierReached, appErrCode(t, err))
}

func TestUpgradeVillageUsesCoins(t *testing.T) {
	f := setupProgression(t)
	require.NoError(t, f.villageRepo.Create(&domain.UserVillage{UserID: f.user.ID, Subject: domain.SubjectMath, VillageID: f.villages[0].ID}))
	require.NoError(t, f.walletRepo.AddFunds(f.user.ID, 1000, domain.FundTypeCoin))

	result, err := f.uc.UpgradeVillage(f.user.ID, domain.SubjectMath)
	require.NoError(t, err)

	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, int64(400), result.CostPaid)
	assert.Equal(t, int64(600), result.NewBalance)

	binding, err := f.villageRepo.GetByUserAndSubject(f.user.ID, domain.SubjectMath)
	require.NoError(t, err)
	assert.Equal(t, f.villages[1].ID, binding.VillageID)
}

func TestUpgradeVillageWithoutBinding(t *testing.T) {
	f := setupProgression(t)

	_, err := f.uc.UpgradeVillage(f.user.ID, domain.SubjectScience)
	assert.Equal(t, domain.ErrCodeVillageNotFound, appErrCode(t, err))
}

func TestUpgradeToPromotedFreeTier(t *testing.T) {
	f := setupProgression(t)
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{UserID: f.user.ID, CastleID: f.castles[0].ID}))

	// A promoted head (cost cleared by the delete protocol) upgrades for free
	require.NoError(t, f.db.Model(&domain.Building{}).Where("id = ?", f.castles[1].ID).Update("cost", nil).Error)

	result, err := f.uc.UpgradeCastle(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.CostPaid)
	assert.Equal(t, 2, result.NewLevel)
}
