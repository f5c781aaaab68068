package collector

import (
	"fmt"
	"strings"
	"testing"
	"time"

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

const (
	testMaxTaps     = 10
	testCoinsPerTap = 5
)

type collectorFixture struct {
	db          *gorm.DB
	uc          *CollectorUseCase
	walletRepo  domain.WalletRepository
	castleRepo  domain.UserCastleRepository
	villageRepo domain.UserVillageRepository
	user        *domain.User
	castle      *domain.Building
	village     *domain.Building
}

func setupCollector(t *testing.T) *collectorFixture {
	t.Helper()

	// A plain ":memory:" DSN gives every pooled connection its own empty
	// database; a named shared-cache DSN keeps the transaction and the
	// catalog reads on the same schema.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
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

	castle := &domain.Building{Title: "Wooden Keep", Type: domain.BuildingTypeCastle, TreasureCapacity: 300, ProductionRate: 10}
	require.NoError(t, db.Create(castle).Error)

	subject := domain.SubjectMath
	village := &domain.Building{Title: "Hamlet", Type: domain.BuildingTypeVillage, Subject: &subject, TreasureCapacity: 200, ProductionRate: 8}
	require.NoError(t, db.Create(village).Error)

	testLogger := logger.NewLogger("test", "debug")
	castleRepo := repository.NewUserCastleRepository(db)
	villageRepo := repository.NewUserVillageRepository(db)
	buildingRepo := repository.NewBuildingRepository(db)
	walletRepo := repository.NewWalletRepository(db, nil)

	uc := NewCollectorUseCase(
		castleRepo, villageRepo, buildingRepo, walletRepo,
		lock.NewUserLockManager(testLogger),
		db, testLogger, testMaxTaps, testCoinsPerTap,
	).(*CollectorUseCase)

	return &collectorFixture{
		db:          db,
		uc:          uc,
		walletRepo:  walletRepo,
		castleRepo:  castleRepo,
		villageRepo: villageRepo,
		user:        user,
		castle:      castle,
		village:     village,
	}
}

func pinTime(t *testing.T, at time.Time) {
	t.Helper()
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = time.Now })
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}

func TestGetCastleStatusProjectsAccrual(t *testing.T) {
	f := setupCollector(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pinTime(t, now)

	lastCollect := now.Add(-3 * time.Hour)
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{
		UserID:          f.user.ID,
		CastleID:        f.castle.ID,
		LastCollectDate: &lastCollect,
	}))

	status, err := f.uc.GetCastleStatus(f.user.ID)
	require.NoError(t, err)

	assert.Equal(t, f.castle.ID, status.CastleID)
	assert.Equal(t, int64(30), status.Treasure.CurrentAmount)
	assert.Equal(t, int64(1620), status.Treasure.TimeToFullMinutes)
	assert.Equal(t, domain.FundTypeCrystal, status.Treasure.FundType)
	assert.Equal(t, int64(testMaxTaps), status.TapsRemaining)

	// Status reads persist nothing
	binding, err := f.castleRepo.GetByUserID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), binding.TreasureAmount)
}

func TestGetCastleStatusWithoutCastle(t *testing.T) {
	f := setupCollector(t)

	_, err := f.uc.GetCastleStatus(f.user.ID)
	assert.Equal(t, domain.ErrCodeCastleNotFound, appErrCode(t, err))
}

func TestCollectCastleCreditsWallet(t *testing.T) {
	f := setupCollector(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pinTime(t, now)

	lastCollect := now.Add(-3 * time.Hour)
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{
		UserID:          f.user.ID,
		CastleID:        f.castle.ID,
		LastCollectDate: &lastCollect,
	}))

	result, err := f.uc.CollectCastle(f.user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(30), result.CollectedAmount)
	assert.Equal(t, domain.FundTypeCrystal, result.FundType)
	assert.Equal(t, int64(30), result.NewWalletBalance)

	balance, err := f.walletRepo.GetBalance(f.user.ID, domain.FundTypeCrystal)
	require.NoError(t, err)
	assert.Equal(t, int64(30), balance)

	binding, err := f.castleRepo.GetByUserID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), binding.TreasureAmount)
	require.NotNil(t, binding.LastCollectDate)
}

func TestCollectCastleTwiceRejectsSecondCollect(t *testing.T) {
	f := setupCollector(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pinTime(t, now)

	lastCollect := now.Add(-3 * time.Hour)
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{
		UserID:          f.user.ID,
		CastleID:        f.castle.ID,
		LastCollectDate: &lastCollect,
	}))

	result, err := f.uc.CollectCastle(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), result.CollectedAmount)

	// Collecting stamps a fresh last_collect_date, so an immediate retry
	// finds nothing accrued
	_, err = f.uc.CollectCastle(f.user.ID)
	assert.Equal(t, domain.ErrCodeNothingToCollect, appErrCode(t, err))

	balance, err := f.walletRepo.GetBalance(f.user.ID, domain.FundTypeCrystal)
	require.NoError(t, err)
	assert.Equal(t, int64(30), balance)
}

func TestCollectCastleRejectsEmptyTreasure(t *testing.T) {
	f := setupCollector(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pinTime(t, now)

	// Never collected, nothing stored: the projection is zero
	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{
		UserID:   f.user.ID,
		CastleID: f.castle.ID,
	}))

	_, err := f.uc.CollectCastle(f.user.ID)
	assert.Equal(t, domain.ErrCodeNothingToCollect, appErrCode(t, err))

	balance, err := f.walletRepo.GetBalance(f.user.ID, domain.FundTypeCrystal)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestCollectVillageCreditsCoins(t *testing.T) {
	f := setupCollector(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pinTime(t, now)

	lastCollect := now.Add(-2 * time.Hour)
	require.NoError(t, f.villageRepo.Create(&domain.UserVillage{
		UserID:          f.user.ID,
		Subject:         domain.SubjectMath,
		VillageID:       f.village.ID,
		LastCollectDate: &lastCollect,
	}))

	result, err := f.uc.CollectVillage(f.user.ID, domain.SubjectMath)
	require.NoError(t, err)

	assert.Equal(t, int64(16), result.CollectedAmount)
	assert.Equal(t, domain.FundTypeCoin, result.FundType)
	assert.Equal(t, int64(16), result.NewWalletBalance)
}

func TestCollectVillageUnknownSubject(t *testing.T) {
	f := setupCollector(t)

	_, err := f.uc.CollectVillage(f.user.ID, domain.Subject("history"))
	assert.Equal(t, domain.ErrCodeInvalidFormat, appErrCode(t, err))
}

func TestGetAllVillageStatuses(t *testing.T) {
	f := setupCollector(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pinTime(t, now)

	subject := domain.SubjectScience
	scienceVillage := &domain.Building{Title: "Hamlet", Type: domain.BuildingTypeVillage, Subject: &subject, TreasureCapacity: 200, ProductionRate: 8}
	require.NoError(t, f.db.Create(scienceVillage).Error)

	require.NoError(t, f.villageRepo.Create(&domain.UserVillage{UserID: f.user.ID, Subject: domain.SubjectMath, VillageID: f.village.ID}))
	require.NoError(t, f.villageRepo.Create(&domain.UserVillage{UserID: f.user.ID, Subject: domain.SubjectScience, VillageID: scienceVillage.ID}))

	statuses, err := f.uc.GetAllVillageStatuses(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, statuses, 2)
}

func TestTapCreditsCoinsAndSpendsAllowance(t *testing.T) {
	f := setupCollector(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pinTime(t, now)

	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{UserID: f.user.ID, CastleID: f.castle.ID}))

	result, err := f.uc.Tap(f.user.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3*testCoinsPerTap), result.CoinsCollected)
	assert.Equal(t, int64(testMaxTaps-3), result.TapsRemaining)
	assert.Equal(t, int64(15), result.NewWalletBalance)
}

func TestTapClampsOversizedBatch(t *testing.T) {
	f := setupCollector(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pinTime(t, now)

	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{UserID: f.user.ID, CastleID: f.castle.ID}))

	_, err := f.uc.Tap(f.user.ID, 8)
	require.NoError(t, err)

	// Only 2 taps remain; a batch of 5 is clamped, not rejected
	result, err := f.uc.Tap(f.user.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2*testCoinsPerTap), result.CoinsCollected)
	assert.Equal(t, int64(0), result.TapsRemaining)

	_, err = f.uc.Tap(f.user.ID, 1)
	assert.Equal(t, domain.ErrCodeNoTapsRemaining, appErrCode(t, err))
}

func TestTapAllowanceResetsAtUTCMidnight(t *testing.T) {
	f := setupCollector(t)
	day1 := time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)
	pinTime(t, day1)

	require.NoError(t, f.castleRepo.Create(&domain.UserCastle{UserID: f.user.ID, CastleID: f.castle.ID}))

	_, err := f.uc.Tap(f.user.ID, testMaxTaps)
	require.NoError(t, err)

	_, err = f.uc.Tap(f.user.ID, 1)
	assert.Equal(t, domain.ErrCodeNoTapsRemaining, appErrCode(t, err))

	// Two hours later it is a new UTC day
	pinTime(t, day1.Add(2*time.Hour))
	result, err := f.uc.Tap(f.user.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(testMaxTaps-4), result.TapsRemaining)
}

func TestTapRejectsNonPositiveCount(t *testing.T) {
	f := setupCollector(t)

	_, err := f.uc.Tap(f.user.ID, 0)
	assert.Equal(t, domain.ErrCodeInvalidRange, appErrCode(t, err))
}
