package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	waiverModel "github.com/festy23/fantasy_roster/internal/waiver/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&waiverModel.WaiverClaim{})
	require.NoError(t, err)

	return db
}

func claim(id, managerID, date string, priority int, status string) *waiverModel.WaiverClaim {
	return &waiverModel.WaiverClaim{
		ClaimID:          id,
		LeagueID:         "l1",
		ManagerID:        managerID,
		AddPlayerID:      "p-" + id,
		OffWaiverDate:    date,
		PersonalPriority: priority,
		Status:           status,
	}
}

func seed(t *testing.T, repo Repository) {
	ctx := context.Background()
	for _, c := range []*waiverModel.WaiverClaim{
		claim("c3", "alice", "2026-05-12", 3, waiverModel.StatusPending),
		claim("c1", "alice", "2026-05-12", 1, waiverModel.StatusPending),
		claim("c5", "alice", "2026-05-12", 5, waiverModel.StatusCancelled),
		claim("c2", "alice", "2026-05-13", 1, waiverModel.StatusPending),
		claim("c4", "bob", "2026-05-12", 7, waiverModel.StatusPending),
	} {
		require.NoError(t, repo.Create(ctx, c))
	}
}

func TestRepository_MaxPriority(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t), clockwork.NewRealClock(), zap.NewNop().Sugar())
	seed(t, repo)

	highest, err := repo.MaxPriority(ctx, "l1", "alice", "2026-05-12")
	require.NoError(t, err)
	assert.Equal(t, 3, highest, "cancelled claims do not count")

	highest, err = repo.MaxPriority(ctx, "l1", "carol", "2026-05-12")
	require.NoError(t, err)
	assert.Zero(t, highest)
}

func TestRepository_ListGroup(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t), clockwork.NewRealClock(), zap.NewNop().Sugar())
	seed(t, repo)

	group, err := repo.ListGroup(ctx, "l1", "alice", "2026-05-12")
	require.NoError(t, err)
	require.Len(t, group, 2)
	assert.Equal(t, "c1", group[0].ClaimID)
	assert.Equal(t, "c3", group[1].ClaimID)

	pending, err := repo.ListPending(ctx, "l1", "alice")
	require.NoError(t, err)
	ids := make([]string, 0, len(pending))
	for _, c := range pending {
		ids = append(ids, c.ClaimID)
	}
	assert.Equal(t, []string{"c1", "c3", "c2"}, ids)
}

func TestRepository_Updates(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t), clockwork.NewRealClock(), zap.NewNop().Sugar())
	seed(t, repo)

	require.NoError(t, repo.UpdatePriority(ctx, "c3", 2))
	require.NoError(t, repo.UpdateStatus(ctx, "c1", waiverModel.StatusProcessed))

	stored, err := repo.GetByID(ctx, "c3")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.PersonalPriority)

	stored, err = repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, stored.IsPending())

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", waiverModel.StatusCancelled), waiverModel.ErrClaimNotFound)
	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, waiverModel.ErrClaimNotFound)
}

func TestRepository_TimestampsFollowClock(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC))
	repo := New(setupTestDB(t), clock, zap.NewNop().Sugar())
	seed(t, repo)

	stored, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, clock.Now().Equal(stored.CreatedAt), stored.CreatedAt)

	clock.Advance(90 * time.Minute)
	require.NoError(t, repo.UpdatePriority(ctx, "c1", 5))

	stored, err = repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, clock.Now().Equal(stored.UpdatedAt), stored.UpdatedAt)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
}
