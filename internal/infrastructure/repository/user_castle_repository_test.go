package repository

import (
	"testing"
	"time"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCastleRepositoryCollectTreasure(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "castle_user")
	chain := createTestChain(t, db, domain.BuildingTypeCastle, nil, 1)
	repo := NewUserCastleRepository(db)

	binding := &domain.UserCastle{UserID: user.ID, CastleID: chain[0].ID, TreasureAmount: 120}
	require.NoError(t, repo.Create(binding))

	collected, err := repo.CollectTreasure(binding.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), collected)

	reread, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, reread)
	assert.Equal(t, int64(0), reread.TreasureAmount)
	require.NotNil(t, reread.LastCollectDate)
	assert.WithinDuration(t, time.Now().UTC(), reread.LastCollectDate.UTC(), 5*time.Second)
}

func TestUserCastleRepositoryRecordTaps(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "castle_user")
	chain := createTestChain(t, db, domain.BuildingTypeCastle, nil, 1)
	repo := NewUserCastleRepository(db)

	binding := &domain.UserCastle{UserID: user.ID, CastleID: chain[0].ID}
	require.NoError(t, repo.Create(binding))

	today := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.RecordTaps(binding.ID, 3, today))
	reread, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), reread.TapsUsedToday)

	// Same day accumulates
	require.NoError(t, repo.RecordTaps(binding.ID, 2, today.Add(4*time.Hour)))
	reread, err = repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), reread.TapsUsedToday)

	// A new UTC day resets the counter before adding
	require.NoError(t, repo.RecordTaps(binding.ID, 1, today.Add(24*time.Hour)))
	reread, err = repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reread.TapsUsedToday)
}

func TestUserCastleRepositoryUpgradeZeroesTreasure(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "castle_user")
	chain := createTestChain(t, db, domain.BuildingTypeCastle, nil, 2)
	repo := NewUserCastleRepository(db)

	binding := &domain.UserCastle{UserID: user.ID, CastleID: chain[0].ID, TreasureAmount: 80}
	require.NoError(t, repo.Create(binding))

	require.NoError(t, repo.Upgrade(binding.ID, chain[1].ID))

	reread, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, chain[1].ID, reread.CastleID)
	assert.Equal(t, int64(0), reread.TreasureAmount)
}

func TestUserCastleRepositoryMigrateUsers(t *testing.T) {
	db := setupTestDB(t)
	chain := createTestChain(t, db, domain.BuildingTypeCastle, nil, 2)
	repo := NewUserCastleRepository(db)

	userA := createTestUser(t, db, "user_a")
	userB := createTestUser(t, db, "user_b")
	userC := createTestUser(t, db, "user_c")
	require.NoError(t, repo.Create(&domain.UserCastle{UserID: userA.ID, CastleID: chain[0].ID}))
	require.NoError(t, repo.Create(&domain.UserCastle{UserID: userB.ID, CastleID: chain[0].ID}))
	require.NoError(t, repo.Create(&domain.UserCastle{UserID: userC.ID, CastleID: chain[1].ID}))

	require.NoError(t, repo.MigrateUsers(chain[0].ID, chain[1].ID))

	for _, id := range []int64{userA.ID, userB.ID, userC.ID} {
		binding, err := repo.GetByUserID(id)
		require.NoError(t, err)
		assert.Equal(t, chain[1].ID, binding.CastleID)
	}
}

func TestUserVillageRepositoryPerSubjectBindings(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "village_user")
	mathChain := createTestChain(t, db, domain.BuildingTypeVillage, subjectPtr(domain.SubjectMath), 1)
	scienceChain := createTestChain(t, db, domain.BuildingTypeVillage, subjectPtr(domain.SubjectScience), 1)
	repo := NewUserVillageRepository(db)

	require.NoError(t, repo.Create(&domain.UserVillage{UserID: user.ID, Subject: domain.SubjectMath, VillageID: mathChain[0].ID}))
	require.NoError(t, repo.Create(&domain.UserVillage{UserID: user.ID, Subject: domain.SubjectScience, VillageID: scienceChain[0].ID}))

	math, err := repo.GetByUserAndSubject(user.ID, domain.SubjectMath)
	require.NoError(t, err)
	require.NotNil(t, math)
	assert.Equal(t, mathChain[0].ID, math.VillageID)

	missing, err := repo.GetByUserAndSubject(user.ID, domain.SubjectEnglish)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
