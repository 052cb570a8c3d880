// Package service provides business logic layer for player module.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	leagueRepository "github.com/festy23/fantasy_roster/internal/league/repository"
	playerModel "github.com/festy23/fantasy_roster/internal/player/model"
	"github.com/festy23/fantasy_roster/internal/player/repository"
	"github.com/festy23/fantasy_roster/internal/rules"
)

// Service defines the interface for player business logic operations.
type Service interface {
	// UpsertPlayers translates and stores a batch of catalog players.
	UpsertPlayers(ctx context.Context, req *playerModel.UpsertPlayersRequest) (*playerModel.UpsertPlayersResponse, error)

	// GetPlayer returns a player. When leagueID is set the response carries the
	// player's eligible slots and display label in that league.
	GetPlayer(ctx context.Context, playerID, leagueID string) (*playerModel.PlayerResponse, error)

	// UpsertSchedule stores game start times.
	UpsertSchedule(ctx context.Context, req *playerModel.UpsertScheduleRequest) (*playerModel.UpsertScheduleResponse, error)
}

type service struct {
	repo    repository.Repository
	leagues leagueRepository.Repository
	db      *gorm.DB
	logger  *zap.SugaredLogger
}

// New creates a new player service instance.
func New(
	repo repository.Repository,
	leagues leagueRepository.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:    repo,
		leagues: leagues,
		db:      db,
		logger:  logger,
	}
}

// UpsertPlayers translates and stores a batch of catalog players.
func (s *service) UpsertPlayers(
	ctx context.Context,
	req *playerModel.UpsertPlayersRequest,
) (*playerModel.UpsertPlayersResponse, error) {
	players := make([]playerModel.Player, 0, len(req.Players))
	seen := make(map[string]bool, len(req.Players))

	for _, in := range req.Players {
		player, err := translate(in)
		if err != nil {
			return nil, err
		}
		if seen[player.PlayerID] {
			return nil, fmt.Errorf("%w: player %s listed twice", rules.ErrInvalidRequest, player.PlayerID)
		}
		seen[player.PlayerID] = true
		players = append(players, player)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.New(tx, s.logger).Upsert(ctx, players)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("players upserted", "count", len(players))
	return &playerModel.UpsertPlayersResponse{Upserted: len(players)}, nil
}

// translate converts raw feed values into canonical columns.
func translate(in playerModel.PlayerInput) (playerModel.Player, error) {
	id := strings.TrimSpace(in.PlayerID)
	if id == "" {
		return playerModel.Player{}, fmt.Errorf("%w: player_id is required", rules.ErrInvalidRequest)
	}

	identity, err := rules.ParseIdentity(in.Identity)
	if err != nil {
		return playerModel.Player{}, fmt.Errorf("player %s: %w", id, err)
	}
	playerType, err := rules.ParsePlayerType(in.PlayerType)
	if err != nil {
		return playerModel.Player{}, fmt.Errorf("player %s: %w", id, err)
	}
	status, err := rules.ParseRealLifeStatus(in.Status)
	if err != nil {
		return playerModel.Player{}, fmt.Errorf("player %s: %w", id, err)
	}

	positions := make([]string, 0, len(in.Positions))
	for _, pos := range in.Positions {
		if pos = strings.TrimSpace(pos); pos != "" {
			if strings.Contains(pos, ",") {
				return playerModel.Player{}, fmt.Errorf("%w: position %q contains a comma", rules.ErrInvalidRequest, pos)
			}
			positions = append(positions, pos)
		}
	}

	return playerModel.Player{
		PlayerID:   id,
		Name:       strings.TrimSpace(in.Name),
		Team:       strings.TrimSpace(in.Team),
		Identity:   string(identity),
		PlayerType: string(playerType),
		Positions:  strings.Join(positions, ","),
		Status:     string(status),
	}, nil
}

// GetPlayer returns a player, with league eligibility when leagueID is set.
func (s *service) GetPlayer(ctx context.Context, playerID, leagueID string) (*playerModel.PlayerResponse, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: player_id is required", rules.ErrInvalidRequest)
	}

	player, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	resp := playerModel.NewPlayerResponse(player)

	if leagueID != "" {
		league, err := s.leagues.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		slots := league.SlotConfig()
		resp.EligibleSlots = rules.EligibleSlots(player.Rules(), slots)
		resp.Eligibility = rules.DisplayEligibility(player.Rules(), slots)
	}

	return resp, nil
}

// UpsertSchedule stores game start times.
func (s *service) UpsertSchedule(
	ctx context.Context,
	req *playerModel.UpsertScheduleRequest,
) (*playerModel.UpsertScheduleResponse, error) {
	games := make([]playerModel.Game, 0, len(req.Games))
	for _, in := range req.Games {
		if _, err := rules.ParseDate(in.GameDate, nil); err != nil {
			return nil, err
		}
		if strings.TrimSpace(in.Team) == "" {
			return nil, fmt.Errorf("%w: team is required", rules.ErrInvalidRequest)
		}
		games = append(games, playerModel.Game{
			Team:      strings.TrimSpace(in.Team),
			GameDate:  in.GameDate,
			StartTime: in.StartTime.UTC(),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.New(tx, s.logger).UpsertGames(ctx, games)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("schedule upserted", "count", len(games))
	return &playerModel.UpsertScheduleResponse{Upserted: len(games)}, nil
}
