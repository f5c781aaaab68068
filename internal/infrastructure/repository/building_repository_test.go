package repository

import (
	"testing"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildingRepositoryGetHead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildingRepository(db)

	chain := createTestChain(t, db, domain.BuildingTypeCastle, nil, 3)

	head, err := repo.GetHead(domain.BuildingTypeCastle, nil)
	require.NoError(t, err)
	require.NotNil(t, head)
	assert.Equal(t, chain[0].ID, head.ID)
	assert.Nil(t, head.Cost)
}

func TestBuildingRepositoryGetHeadEmptyScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildingRepository(db)

	head, err := repo.GetHead(domain.BuildingTypeCastle, nil)
	require.NoError(t, err)
	assert.Nil(t, head)
}

func TestBuildingRepositoryScopesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildingRepository(db)

	createTestChain(t, db, domain.BuildingTypeCastle, nil, 2)
	mathChain := createTestChain(t, db, domain.BuildingTypeVillage, subjectPtr(domain.SubjectMath), 2)
	scienceChain := createTestChain(t, db, domain.BuildingTypeVillage, subjectPtr(domain.SubjectScience), 2)

	mathHead, err := repo.GetHead(domain.BuildingTypeVillage, subjectPtr(domain.SubjectMath))
	require.NoError(t, err)
	require.NotNil(t, mathHead)
	assert.Equal(t, mathChain[0].ID, mathHead.ID)

	scienceHead, err := repo.GetHead(domain.BuildingTypeVillage, subjectPtr(domain.SubjectScience))
	require.NoError(t, err)
	require.NotNil(t, scienceHead)
	assert.Equal(t, scienceChain[0].ID, scienceHead.ID)

	count, err := repo.CountInScope(domain.BuildingTypeVillage, subjectPtr(domain.SubjectMath))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestBuildingRepositoryGetChainOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildingRepository(db)

	created := createTestChain(t, db, domain.BuildingTypeCastle, nil, 3)

	chain, err := repo.GetChain(domain.BuildingTypeCastle, nil)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	for i, b := range chain {
		assert.Equal(t, created[i].ID, b.ID)
	}
}

func TestBuildingRepositoryGetPredecessor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildingRepository(db)

	chain := createTestChain(t, db, domain.BuildingTypeCastle, nil, 3)

	pred, err := repo.GetPredecessor(chain[1].ID)
	require.NoError(t, err)
	require.NotNil(t, pred)
	assert.Equal(t, chain[0].ID, pred.ID)

	// The head has no predecessor
	pred, err = repo.GetPredecessor(chain[0].ID)
	require.NoError(t, err)
	assert.Nil(t, pred)
}

func TestBuildingRepositorySetNextAndClearCost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildingRepository(db)

	chain := createTestChain(t, db, domain.BuildingTypeCastle, nil, 3)

	// Unlink the middle tier the way the delete protocol does
	require.NoError(t, repo.SetNextBuilding(chain[0].ID, chain[1].NextBuildingID))
	require.NoError(t, repo.Delete(chain[1].ID))

	walked, err := repo.GetChain(domain.BuildingTypeCastle, nil)
	require.NoError(t, err)
	require.Len(t, walked, 2)
	assert.Equal(t, chain[0].ID, walked[0].ID)
	assert.Equal(t, chain[2].ID, walked[1].ID)

	require.NoError(t, repo.ClearCost(chain[2].ID))
	promoted, err := repo.GetByID(chain[2].ID)
	require.NoError(t, err)
	assert.Nil(t, promoted.Cost)
}
