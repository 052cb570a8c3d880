package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/events"
	leagueModel "github.com/festy23/fantasy_roster/internal/league/model"
	leagueRepository "github.com/festy23/fantasy_roster/internal/league/repository"
	"github.com/festy23/fantasy_roster/internal/lock"
	playerModel "github.com/festy23/fantasy_roster/internal/player/model"
	rosterModel "github.com/festy23/fantasy_roster/internal/roster/model"
	"github.com/festy23/fantasy_roster/internal/rules"
	tradeModel "github.com/festy23/fantasy_roster/internal/trade/model"
	"github.com/festy23/fantasy_roster/internal/trade/repository"
	"github.com/festy23/fantasy_roster/internal/txn"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) last() events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type fixture struct {
	svc       Service
	db        *gorm.DB
	publisher *recordingPublisher
}

func intPtr(v int) *int {
	return &v
}

func setup(t *testing.T, activeForeigners *int) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&leagueModel.League{}, &leagueModel.LeagueSlot{},
		&playerModel.Player{},
		&rosterModel.RosterEntry{}, &rosterModel.Transaction{},
		&tradeModel.TradeProposal{}, &tradeModel.TradePlayer{},
	))

	logger := zap.NewNop().Sugar()
	league := &leagueModel.League{
		LeagueID:             "l1",
		Name:                 "Dragons",
		ForeignerActiveLimit: activeForeigners,
		WaiverDays:           2,
	}
	league.SetSlots(rules.SlotConfig{
		{Name: "SS", Capacity: 1},
		{Name: "Util", Capacity: 1},
		{Name: "BN", Capacity: 2},
	})
	leagues := leagueRepository.New(db, logger)
	require.NoError(t, leagues.Create(context.Background(), league))

	publisher := &recordingPublisher{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC))
	rt := txn.NewRuntime(db, lock.NewLocal(), publisher, clock, time.UTC, logger)

	return &fixture{
		svc:       New(repository.New(db, clock, logger), leagues, rt, logger),
		db:        db,
		publisher: publisher,
	}
}

func (f *fixture) rostered(t *testing.T, managerID, playerID, identity, slot string) {
	t.Helper()
	require.NoError(t, f.db.Create(&playerModel.Player{
		PlayerID:   playerID,
		Name:       "Player " + playerID,
		Team:       "TA",
		Identity:   identity,
		PlayerType: "batter",
		Positions:  "SS,Util",
		Status:     "MAJOR",
	}).Error)
	require.NoError(t, f.db.Create(&rosterModel.RosterEntry{
		LeagueID:  "l1",
		PlayerID:  playerID,
		ManagerID: managerID,
		Slot:      slot,
		Status:    rosterModel.StatusOnTeam,
	}).Error)
}

func (f *fixture) owner(t *testing.T, playerID string) (string, string) {
	t.Helper()
	var entry rosterModel.RosterEntry
	require.NoError(t, f.db.Where("league_id = ? AND player_id = ?", "l1", playerID).First(&entry).Error)
	return entry.ManagerID, entry.Slot
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *fixture) propose(t *testing.T, initiatorPlayers, recipientPlayers []string) *tradeModel.TradeResponse {
	t.Helper()
	resp, err := f.svc.Propose(context.Background(), &tradeModel.ProposeTradeRequest{
		LeagueID:           "l1",
		InitiatorManagerID: "alice",
		RecipientManagerID: "bob",
		InitiatorPlayerIDs: initiatorPlayers,
		RecipientPlayerIDs: recipientPlayers,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	return resp.Trade
}

func TestService_Propose_RecipientActiveForeignerLimit(t *testing.T) {
	f := setup(t, intPtr(1))
	f.rostered(t, "alice", "a-foreign", "foreigner", "Util")
	f.rostered(t, "alice", "a-local", "local", "SS")
	f.rostered(t, "bob", "b-foreign", "foreigner", "SS")
	f.rostered(t, "bob", "b-local", "local", "BN")

	resp, err := f.svc.Propose(context.Background(), &tradeModel.ProposeTradeRequest{
		LeagueID:           "l1",
		InitiatorManagerID: "alice",
		RecipientManagerID: "bob",
		InitiatorPlayerIDs: []string{"a-foreign"},
		RecipientPlayerIDs: []string{"b-local"},
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Trade)
	assert.Empty(t, resp.Initiator.Violations)
	require.Len(t, resp.Recipient.Violations, 1)
	assert.Equal(t, rules.ViolationForeignerActive, resp.Recipient.Violations[0].Kind)
	assert.Equal(t, "Foreigner Active Limit Exceeded (Limit: 1)", resp.Recipient.Violations[0].Message)
	assert.Equal(t, 2, resp.Recipient.Summary.ActiveForeignerCount)

	assert.Zero(t, f.count(t, &tradeModel.TradeProposal{}))
	manager, slot := f.owner(t, "a-foreign")
	assert.Equal(t, "alice", manager)
	assert.Equal(t, "Util", slot)
}

func TestService_Propose_Validation(t *testing.T) {
	f := setup(t, nil)
	f.rostered(t, "alice", "a1", "local", "SS")
	f.rostered(t, "bob", "b1", "local", "SS")

	tests := []struct {
		name    string
		req     tradeModel.ProposeTradeRequest
		wantErr error
	}{
		{
			name:    "self trade",
			req:     tradeModel.ProposeTradeRequest{LeagueID: "l1", InitiatorManagerID: "alice", RecipientManagerID: "alice", InitiatorPlayerIDs: []string{"a1"}, RecipientPlayerIDs: []string{"b1"}},
			wantErr: tradeModel.ErrSelfTrade,
		},
		{
			name:    "empty side",
			req:     tradeModel.ProposeTradeRequest{LeagueID: "l1", InitiatorManagerID: "alice", RecipientManagerID: "bob", InitiatorPlayerIDs: []string{"a1"}},
			wantErr: tradeModel.ErrEmptySide,
		},
		{
			name:    "duplicate player",
			req:     tradeModel.ProposeTradeRequest{LeagueID: "l1", InitiatorManagerID: "alice", RecipientManagerID: "bob", InitiatorPlayerIDs: []string{"a1", "a1"}, RecipientPlayerIDs: []string{"b1"}},
			wantErr: tradeModel.ErrDuplicatePlayer,
		},
		{
			name:    "player not on the initiator roster",
			req:     tradeModel.ProposeTradeRequest{LeagueID: "l1", InitiatorManagerID: "alice", RecipientManagerID: "bob", InitiatorPlayerIDs: []string{"b1"}, RecipientPlayerIDs: []string{"a1"}},
			wantErr: rules.ErrNotFound,
		},
		{
			name:    "unknown league",
			req:     tradeModel.ProposeTradeRequest{LeagueID: "nope", InitiatorManagerID: "alice", RecipientManagerID: "bob", InitiatorPlayerIDs: []string{"a1"}, RecipientPlayerIDs: []string{"b1"}},
			wantErr: leagueModel.ErrLeagueNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Propose(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Zero(t, f.count(t, &tradeModel.TradeProposal{}))
}

func TestService_Propose_LocksPlayers(t *testing.T) {
	f := setup(t, nil)
	f.rostered(t, "alice", "a1", "local", "SS")
	f.rostered(t, "bob", "b1", "local", "SS")
	f.rostered(t, "bob", "b2", "local", "BN")

	trade := f.propose(t, []string{"a1"}, []string{"b1"})
	assert.Equal(t, tradeModel.StatusPending, trade.Status)
	assert.Equal(t, events.KindTradeProposed, f.publisher.last().Kind)
	assert.Equal(t, trade.TradeID, f.publisher.last().ReferenceID)

	_, err := f.svc.Propose(context.Background(), &tradeModel.ProposeTradeRequest{
		LeagueID:           "l1",
		InitiatorManagerID: "alice",
		RecipientManagerID: "bob",
		InitiatorPlayerIDs: []string{"a1"},
		RecipientPlayerIDs: []string{"b2"},
	})

	assert.ErrorIs(t, err, rules.ErrPlayerLocked)
	assert.Equal(t, int64(1), f.count(t, &tradeModel.TradeProposal{}))
}

func TestService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("flips ownership of every player", func(t *testing.T) {
		f := setup(t, nil)
		f.rostered(t, "alice", "a1", "local", "SS")
		f.rostered(t, "alice", "a2", "local", "BN")
		f.rostered(t, "bob", "b1", "local", "SS")

		trade := f.propose(t, []string{"a1", "a2"}, []string{"b1"})

		resp, err := f.svc.Accept(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "bob"})

		require.NoError(t, err)
		assert.Equal(t, tradeModel.StatusAccepted, resp.Status)
		assert.NotEmpty(t, resp.ExecutedAt)

		for _, id := range []string{"a1", "a2"} {
			manager, slot := f.owner(t, id)
			assert.Equal(t, "bob", manager, id)
			assert.Equal(t, "BN", slot, id)
		}
		manager, slot := f.owner(t, "b1")
		assert.Equal(t, "alice", manager)
		assert.Equal(t, "BN", slot)

		var logged []rosterModel.Transaction
		require.NoError(t, f.db.Where("trade_id = ?", trade.TradeID).Find(&logged).Error)
		assert.Len(t, logged, 3)
		for _, row := range logged {
			assert.Equal(t, rosterModel.KindTrade, row.Kind)
		}

		stored, err := f.svc.Get(ctx, trade.TradeID)
		require.NoError(t, err)
		assert.Equal(t, tradeModel.StatusAccepted, stored.Status)
		assert.Equal(t, events.KindTradeAccepted, f.publisher.last().Kind)
	})

	t.Run("only the recipient accepts", func(t *testing.T) {
		f := setup(t, nil)
		f.rostered(t, "alice", "a1", "local", "SS")
		f.rostered(t, "bob", "b1", "local", "SS")
		trade := f.propose(t, []string{"a1"}, []string{"b1"})

		_, err := f.svc.Accept(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "alice"})

		assert.ErrorIs(t, err, tradeModel.ErrNotRecipient)
		manager, _ := f.owner(t, "a1")
		assert.Equal(t, "alice", manager)
	})

	t.Run("roster changed after the proposal", func(t *testing.T) {
		f := setup(t, nil)
		f.rostered(t, "alice", "a1", "local", "SS")
		f.rostered(t, "alice", "a2", "local", "BN")
		f.rostered(t, "bob", "b1", "local", "SS")
		f.rostered(t, "bob", "b2", "local", "Util")
		f.rostered(t, "bob", "b3", "local", "BN")
		trade := f.propose(t, []string{"a1", "a2"}, []string{"b1"})

		// Bob fills his last spot with a player outside the trade.
		f.rostered(t, "bob", "b4", "local", "BN")

		_, err := f.svc.Accept(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "bob"})

		require.ErrorIs(t, err, rules.ErrStaleState)
		assert.NotEmpty(t, rules.ViolationsOf(err))
		manager, slot := f.owner(t, "a1")
		assert.Equal(t, "alice", manager)
		assert.Equal(t, "SS", slot)

		stored, err := f.svc.Get(ctx, trade.TradeID)
		require.NoError(t, err)
		assert.Equal(t, tradeModel.StatusPending, stored.Status)
	})

	t.Run("accepted trade cannot be accepted again", func(t *testing.T) {
		f := setup(t, nil)
		f.rostered(t, "alice", "a1", "local", "SS")
		f.rostered(t, "bob", "b1", "local", "SS")
		trade := f.propose(t, []string{"a1"}, []string{"b1"})

		_, err := f.svc.Accept(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "bob"})
		require.NoError(t, err)

		_, err = f.svc.Accept(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "bob"})
		assert.ErrorIs(t, err, tradeModel.ErrTradeNotPending)
	})

	t.Run("unknown trade", func(t *testing.T) {
		f := setup(t, nil)

		_, err := f.svc.Accept(ctx, &tradeModel.TradeActionRequest{TradeID: "missing", ManagerID: "bob"})

		assert.ErrorIs(t, err, tradeModel.ErrTradeNotFound)
	})
}

func TestService_RejectAndCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("reject releases the lock", func(t *testing.T) {
		f := setup(t, nil)
		f.rostered(t, "alice", "a1", "local", "SS")
		f.rostered(t, "bob", "b1", "local", "SS")
		trade := f.propose(t, []string{"a1"}, []string{"b1"})

		_, err := f.svc.Reject(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "alice"})
		require.ErrorIs(t, err, tradeModel.ErrNotRecipient)

		resp, err := f.svc.Reject(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "bob"})
		require.NoError(t, err)
		assert.Equal(t, tradeModel.StatusRejected, resp.Status)
		assert.Empty(t, resp.ExecutedAt)
		assert.Equal(t, events.KindTradeRejected, f.publisher.last().Kind)

		again := f.propose(t, []string{"a1"}, []string{"b1"})
		assert.NotEqual(t, trade.TradeID, again.TradeID)
	})

	t.Run("cancel by the initiator", func(t *testing.T) {
		f := setup(t, nil)
		f.rostered(t, "alice", "a1", "local", "SS")
		f.rostered(t, "bob", "b1", "local", "SS")
		trade := f.propose(t, []string{"a1"}, []string{"b1"})

		_, err := f.svc.Cancel(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "bob"})
		require.ErrorIs(t, err, tradeModel.ErrNotInitiator)

		resp, err := f.svc.Cancel(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "alice"})
		require.NoError(t, err)
		assert.Equal(t, tradeModel.StatusCancelled, resp.Status)
		assert.Equal(t, events.KindTradeCanceled, f.publisher.last().Kind)

		_, err = f.svc.Accept(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "bob"})
		assert.ErrorIs(t, err, tradeModel.ErrTradeNotPending)
		manager, _ := f.owner(t, "a1")
		assert.Equal(t, "alice", manager)
	})

	t.Run("closed trade stays closed", func(t *testing.T) {
		f := setup(t, nil)
		f.rostered(t, "alice", "a1", "local", "SS")
		f.rostered(t, "bob", "b1", "local", "SS")
		trade := f.propose(t, []string{"a1"}, []string{"b1"})

		_, err := f.svc.Cancel(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "alice"})
		require.NoError(t, err)

		_, err = f.svc.Reject(ctx, &tradeModel.TradeActionRequest{TradeID: trade.TradeID, ManagerID: "bob"})
		assert.ErrorIs(t, err, tradeModel.ErrTradeNotPending)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	f := setup(t, nil)
	f.rostered(t, "alice", "a1", "local", "SS")
	f.rostered(t, "alice", "a2", "local", "BN")
	f.rostered(t, "bob", "b1", "local", "SS")
	f.rostered(t, "bob", "b2", "local", "BN")

	first := f.propose(t, []string{"a1"}, []string{"b1"})
	_, err := f.svc.Cancel(ctx, &tradeModel.TradeActionRequest{TradeID: first.TradeID, ManagerID: "alice"})
	require.NoError(t, err)
	second := f.propose(t, []string{"a2"}, []string{"b2"})

	all, err := f.svc.List(ctx, "l1", "bob", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := f.svc.List(ctx, "l1", "alice", tradeModel.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.TradeID, pending[0].TradeID)
	assert.Equal(t, []string{"a2"}, pending[0].InitiatorPlayerIDs)
	assert.Equal(t, []string{"b2"}, pending[0].RecipientPlayerIDs)

	none, err := f.svc.List(ctx, "l1", "carol", "")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.svc.List(ctx, "l1", "alice", "bogus")
	assert.ErrorIs(t, err, rules.ErrInvalidRequest)
}
