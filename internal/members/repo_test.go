package members

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/robertocantu/ironclub-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMembersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:members_repo_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Member{}))
	return db
}

func sampleMember(email string) *models.Member {
	return &models.Member{
		FullName:         "Ana Torres",
		Email:            email,
		Phone:            "555-0142",
		Age:              30,
		Gender:           "female",
		HeightCM:         174,
		WeightKG:         70,
		BMI:              23.1,
		BMICategory:      "Normal weight",
		EmergencyContact: "Marta Torres 555-0143",
		MembershipPlan:   "premium",
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupMembersTestDB(t))
	ctx := context.Background()

	member := sampleMember("ana.torres@example.com")
	require.NoError(t, repo.Create(ctx, member))
	require.NotZero(t, member.ID)

	found, err := repo.FindByID(ctx, member.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "ana.torres@example.com", found.Email)

	missing, err := repo.FindByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoryCreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupMembersTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleMember("ana.torres@example.com")))
	err := repo.Create(ctx, sampleMember("ana.torres@example.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestRepositoryUpdateAndDelete(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupMembersTestDB(t))
	ctx := context.Background()

	member := sampleMember("ana.torres@example.com")
	require.NoError(t, repo.Create(ctx, member))

	member.WeightKG = 75
	member.BMI = 24.8
	updated, err := repo.Update(ctx, member)
	require.NoError(t, err)
	assert.True(t, updated)

	found, err := repo.FindByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, 24.8, found.BMI)

	deleted, err := repo.Delete(ctx, member.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, member.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepositoryAggregateStats(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupMembersTestDB(t))
	ctx := context.Background()

	first := sampleMember("ana.torres@example.com")
	first.Goal = "weight_loss"
	second := sampleMember("luis.vega@example.com")
	second.Age = 40
	second.Goal = "strength"
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	stats, goals, categories, err := repo.AggregateStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalMembers)
	assert.InDelta(t, 35.0, stats.AverageAge, 0.001)
	assert.Len(t, goals, 2)
	assert.Len(t, categories, 1)
}
