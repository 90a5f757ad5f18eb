package repository

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/fossecrm/fosse/internal/rolesetting/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.RoleSetting{}))
	return db
}

func TestRoleSettingRepository(t *testing.T) {
	db := openTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := New(db, node)
	ctx := context.Background()

	t.Run("GetByRoleMissing", func(t *testing.T) {
		_, err := repo.GetByRole(ctx, "r-absent")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UpsertCreatesAndAssignsID", func(t *testing.T) {
		status := "s1"
		created, err := repo.Upsert(ctx, domain.RoleSetting{
			RoleID:        "r1",
			ForcedColumns: []string{"email", "status"},
			ForcedFilters: domain.FilterSet{
				"status": {Type: domain.FilterDefined, Values: []string{"New", "Working"}},
				"created_at": {Type: domain.FilterDefined, DateRange: domain.DateRange{
					From: "2026-01-01", To: "2026-02-01",
				}},
			},
			DefaultOrder:    domain.OrderEmailAsc,
			DefaultStatusID: &status,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := repo.GetByRole(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, []string{"email", "status"}, []string(got.ForcedColumns))
		assert.Equal(t, []string{"New", "Working"}, got.ForcedFilters["status"].Values)
		assert.Equal(t, "2026-01-01", got.ForcedFilters["created_at"].DateRange.From)
		assert.Equal(t, "2026-02-01", got.ForcedFilters["created_at"].DateRange.To)
		assert.Equal(t, domain.OrderEmailAsc, got.DefaultOrder)
		require.NotNil(t, got.DefaultStatusID)
		assert.Equal(t, "s1", *got.DefaultStatusID)
	})

	t.Run("UpsertUpdatesInPlace", func(t *testing.T) {
		first, err := repo.GetByRole(ctx, "r1")
		require.NoError(t, err)

		updated, err := repo.Upsert(ctx, domain.RoleSetting{
			RoleID:        "r1",
			ForcedColumns: []string{"phone"},
			ForcedFilters: domain.FilterSet{
				"source": {Type: domain.FilterOpen, Values: []string{"Web"}},
			},
			DefaultOrder: domain.OrderRandom,
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)

		got, err := repo.GetByRole(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, []string{"phone"}, []string(got.ForcedColumns))
		assert.Equal(t, domain.FilterOpen, got.ForcedFilters["source"].Type)
		assert.Equal(t, domain.OrderRandom, got.DefaultOrder)
		// Clearing the default status persists as NULL.
		assert.Nil(t, got.DefaultStatusID)

		var count int64
		require.NoError(t, db.Model(&domain.RoleSetting{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ListAllOrdersByRole", func(t *testing.T) {
		_, err := repo.Upsert(ctx, domain.RoleSetting{RoleID: "r0", DefaultOrder: domain.OrderCreatedAtDesc})
		require.NoError(t, err)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "r0", all[0].RoleID)
		assert.Equal(t, "r1", all[1].RoleID)
	})
}
