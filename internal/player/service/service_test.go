package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	leagueModel "github.com/festy23/fantasy_roster/internal/league/model"
	leagueRepository "github.com/festy23/fantasy_roster/internal/league/repository"
	playerModel "github.com/festy23/fantasy_roster/internal/player/model"
	"github.com/festy23/fantasy_roster/internal/player/repository"
	"github.com/festy23/fantasy_roster/internal/rules"
)

func setupService(t *testing.T) (Service, repository.Repository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&leagueModel.League{}, &leagueModel.LeagueSlot{},
		&playerModel.Player{}, &playerModel.Game{},
	))

	logger := zap.NewNop().Sugar()
	leagues := leagueRepository.New(db, logger)
	league := &leagueModel.League{LeagueID: "l1", Name: "Dragons"}
	league.SetSlots(rules.SlotConfig{
		{Name: "C", Capacity: 1},
		{Name: "SS", Capacity: 1},
		{Name: "Util", Capacity: 1},
		{Name: "BN", Capacity: 3},
		{Name: "NA", Capacity: 2},
	})
	require.NoError(t, leagues.Create(context.Background(), league))

	repo := repository.New(db, logger)
	return New(repo, leagues, db, logger), repo
}

func TestService_UpsertPlayers(t *testing.T) {
	ctx := context.Background()

	t.Run("translates raw values", func(t *testing.T) {
		svc, repo := setupService(t)

		resp, err := svc.UpsertPlayers(ctx, &playerModel.UpsertPlayersRequest{
			Players: []playerModel.PlayerInput{
				{PlayerID: "p1", Name: "Lin", Identity: "Foreigner", PlayerType: "B", Positions: []string{" SS ", "", "2B"}, Status: "MN"},
				{PlayerID: "p2", Name: "Chen", PlayerType: "pitcher", Status: "Deregistered player"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Upserted)

		p1, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "foreigner", p1.Identity)
		assert.Equal(t, "batter", p1.PlayerType)
		assert.Equal(t, "SS,2B", p1.Positions)
		assert.Equal(t, "MINOR", p1.Status)

		p2, err := repo.GetByID(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, "local", p2.Identity)
		assert.Equal(t, "DEREGISTERED", p2.Status)
	})

	tests := []struct {
		name  string
		input playerModel.PlayerInput
	}{
		{"unknown status", playerModel.PlayerInput{PlayerID: "p1", Name: "x", PlayerType: "batter", Status: "retired?"}},
		{"unknown identity", playerModel.PlayerInput{PlayerID: "p1", Name: "x", PlayerType: "batter", Identity: "alien"}},
		{"unknown type", playerModel.PlayerInput{PlayerID: "p1", Name: "x", PlayerType: "catcher"}},
		{"comma in position", playerModel.PlayerInput{PlayerID: "p1", Name: "x", PlayerType: "batter", Positions: []string{"SS,2B"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setupService(t)
			_, err := svc.UpsertPlayers(ctx, &playerModel.UpsertPlayersRequest{Players: []playerModel.PlayerInput{tt.input}})
			assert.ErrorIs(t, err, rules.ErrInvalidRequest)
		})
	}

	t.Run("duplicate ids", func(t *testing.T) {
		svc, _ := setupService(t)
		in := playerModel.PlayerInput{PlayerID: "p1", Name: "x", PlayerType: "batter"}
		_, err := svc.UpsertPlayers(ctx, &playerModel.UpsertPlayersRequest{Players: []playerModel.PlayerInput{in, in}})
		assert.ErrorIs(t, err, rules.ErrInvalidRequest)
	})
}

func TestService_GetPlayer(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	_, err := svc.UpsertPlayers(ctx, &playerModel.UpsertPlayersRequest{
		Players: []playerModel.PlayerInput{
			{PlayerID: "ss", Name: "Lin", PlayerType: "batter", Positions: []string{"SS", "2B"}},
			{PlayerID: "prospect", Name: "Wu", PlayerType: "batter", Positions: []string{"1B"}, Status: "MINOR"},
			{PlayerID: "ace", Name: "Chen", PlayerType: "pitcher"},
		},
	})
	require.NoError(t, err)

	t.Run("without league", func(t *testing.T) {
		resp, err := svc.GetPlayer(ctx, "ss", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"SS", "2B"}, resp.Positions)
		assert.Nil(t, resp.EligibleSlots)
	})

	t.Run("league eligibility", func(t *testing.T) {
		resp, err := svc.GetPlayer(ctx, "ss", "l1")
		require.NoError(t, err)
		assert.Equal(t, []string{"SS", "BN"}, resp.EligibleSlots)
		assert.Equal(t, "SS", resp.Eligibility)
	})

	t.Run("minor leaguer without a league position", func(t *testing.T) {
		resp, err := svc.GetPlayer(ctx, "prospect", "l1")
		require.NoError(t, err)
		assert.Equal(t, []string{"BN", "NA"}, resp.EligibleSlots)
		assert.Equal(t, rules.NoPositionLabel, resp.Eligibility)
	})

	t.Run("pitcher in a league without pitcher slots", func(t *testing.T) {
		resp, err := svc.GetPlayer(ctx, "ace", "l1")
		require.NoError(t, err)
		assert.Equal(t, []string{"BN"}, resp.EligibleSlots)
		assert.Equal(t, rules.NoPositionLabel, resp.Eligibility)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := svc.GetPlayer(ctx, "", "")
		assert.ErrorIs(t, err, rules.ErrInvalidRequest)

		_, err = svc.GetPlayer(ctx, "missing", "")
		assert.ErrorIs(t, err, playerModel.ErrPlayerNotFound)

		_, err = svc.GetPlayer(ctx, "ss", "missing")
		assert.ErrorIs(t, err, leagueModel.ErrLeagueNotFound)
	})
}

func TestService_UpsertSchedule(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupService(t)
	start := time.Date(2026, 5, 10, 18, 35, 0, 0, time.FixedZone("CST", 8*3600))

	resp, err := svc.UpsertSchedule(ctx, &playerModel.UpsertScheduleRequest{
		Games: []playerModel.GameInput{{Team: "Dragons", GameDate: "2026-05-10", StartTime: start}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Upserted)

	game, err := repo.GetGame(ctx, "Dragons", "2026-05-10")
	require.NoError(t, err)
	assert.True(t, start.Equal(game.StartTime))

	_, err = svc.UpsertSchedule(ctx, &playerModel.UpsertScheduleRequest{
		Games: []playerModel.GameInput{{Team: "Dragons", GameDate: "05/10/2026", StartTime: start}},
	})
	assert.ErrorIs(t, err, rules.ErrInvalidRequest)
}
