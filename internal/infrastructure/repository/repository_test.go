package repository

import (
	"testing"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Building{},
		&domain.WalletEntry{},
		&domain.UserCastle{},
		&domain.UserVillage{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func int64Ptr(v int64) *int64 { return &v }

func subjectPtr(s domain.Subject) *domain.Subject { return &s }

// createTestChain inserts a linked chain tail-first and returns it in
// head-to-tail order
func createTestChain(t *testing.T, db *gorm.DB, buildingType domain.BuildingType, subject *domain.Subject, tiers int) []*domain.Building {
	t.Helper()

	buildings := make([]*domain.Building, tiers)
	var nextID *int64
	for i := tiers - 1; i >= 0; i-- {
		var cost *int64
		if i > 0 {
			cost = int64Ptr(int64(i) * 100)
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
