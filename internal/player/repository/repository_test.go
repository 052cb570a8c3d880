package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	playerModel "github.com/festy23/fantasy_roster/internal/player/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&playerModel.Player{}, &playerModel.Game{})
	require.NoError(t, err)

	return db
}

func batter(id, positions string) playerModel.Player {
	return playerModel.Player{
		PlayerID:   id,
		Name:       "Player " + id,
		Team:       "Dragons",
		Identity:   "local",
		PlayerType: "batter",
		Positions:  positions,
		Status:     "MAJOR",
	}
}

func TestRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("insert then update", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db, zap.NewNop().Sugar())

		require.NoError(t, repo.Upsert(ctx, []playerModel.Player{batter("p1", "SS"), batter("p2", "C")}))

		updated := batter("p1", "2B,SS")
		updated.Status = "MINOR"
		require.NoError(t, repo.Upsert(ctx, []playerModel.Player{updated}))

		var count int64
		db.Model(&playerModel.Player{}).Count(&count)
		assert.Equal(t, int64(2), count)

		p, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "2B,SS", p.Positions)
		assert.Equal(t, "MINOR", p.Status)
	})

	t.Run("empty batch", func(t *testing.T) {
		repo := New(setupTestDB(t), zap.NewNop().Sugar())
		assert.NoError(t, repo.Upsert(ctx, nil))
	})
}

func TestRepository_GetByID(t *testing.T) {
	repo := New(setupTestDB(t), zap.NewNop().Sugar())

	p, err := repo.GetByID(context.Background(), "missing")

	assert.Nil(t, p)
	assert.ErrorIs(t, err, playerModel.ErrPlayerNotFound)
}

func TestRepository_GetByIDs(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t), zap.NewNop().Sugar())
	require.NoError(t, repo.Upsert(ctx, []playerModel.Player{batter("p1", "SS"), batter("p2", "C"), batter("p3", "OF")}))

	found, err := repo.GetByIDs(ctx, []string{"p1", "p3", "missing"})

	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "OF", found["p3"].Positions)

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_Games(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t), zap.NewNop().Sugar())

	first := time.Date(2026, 5, 10, 10, 35, 0, 0, time.UTC)
	moved := first.Add(time.Hour)

	require.NoError(t, repo.UpsertGames(ctx, []playerModel.Game{{Team: "Dragons", GameDate: "2026-05-10", StartTime: first}}))
	require.NoError(t, repo.UpsertGames(ctx, []playerModel.Game{{Team: "Dragons", GameDate: "2026-05-10", StartTime: moved}}))

	game, err := repo.GetGame(ctx, "Dragons", "2026-05-10")
	require.NoError(t, err)
	assert.True(t, moved.Equal(game.StartTime))

	_, err = repo.GetGame(ctx, "Dragons", "2026-05-11")
	assert.ErrorIs(t, err, playerModel.ErrGameNotFound)
}
