// Package service provides business logic layer for trade module.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/apierror"
	"github.com/festy23/fantasy_roster/internal/events"
	leagueModel "github.com/festy23/fantasy_roster/internal/league/model"
	leagueRepository "github.com/festy23/fantasy_roster/internal/league/repository"
	"github.com/festy23/fantasy_roster/internal/lock"
	rosterModel "github.com/festy23/fantasy_roster/internal/roster/model"
	rosterRepository "github.com/festy23/fantasy_roster/internal/roster/repository"
	"github.com/festy23/fantasy_roster/internal/rules"
	tradeModel "github.com/festy23/fantasy_roster/internal/trade/model"
	"github.com/festy23/fantasy_roster/internal/trade/repository"
	"github.com/festy23/fantasy_roster/internal/txn"
)

// Service defines the interface for trade business logic operations.
type Service interface {
	// Propose validates both rosters as if the trade executed and stores a pending
	// proposal when both sides are legal. A failing side yields Success false with
	// the per-side violations and nothing stored.
	Propose(ctx context.Context, req *tradeModel.ProposeTradeRequest) (*tradeModel.ProposeTradeResponse, error)

	// Accept re-validates both live rosters and flips ownership of every named player.
	Accept(ctx context.Context, req *tradeModel.TradeActionRequest) (*tradeModel.TradeResponse, error)

	// Reject closes a pending trade on behalf of the recipient.
	Reject(ctx context.Context, req *tradeModel.TradeActionRequest) (*tradeModel.TradeResponse, error)

	// Cancel closes a pending trade on behalf of the initiator.
	Cancel(ctx context.Context, req *tradeModel.TradeActionRequest) (*tradeModel.TradeResponse, error)

	// Get returns a trade by id.
	Get(ctx context.Context, tradeID string) (*tradeModel.TradeResponse, error)

	// List returns a manager's trades in a league.
	List(ctx context.Context, leagueID, managerID, status string) ([]*tradeModel.TradeResponse, error)
}

type service struct {
	repo    repository.Repository
	leagues leagueRepository.Repository
	rt      *txn.Runtime
	logger  *zap.SugaredLogger
}

// New creates a new trade service instance.
func New(repo repository.Repository, leagues leagueRepository.Repository, rt *txn.Runtime, logger *zap.SugaredLogger) Service {
	return &service{
		repo:    repo,
		leagues: leagues,
		rt:      rt,
		logger:  logger,
	}
}

// evaluation is both sides of a trade projected onto the live rosters.
type evaluation struct {
	initiator tradeModel.SideResult
	recipient tradeModel.SideResult
	// entries maps every traded player to its current roster entry.
	entries map[string]*rosterModel.RosterEntry
}

func (e *evaluation) legal() bool {
	return len(e.initiator.Violations) == 0 && len(e.recipient.Violations) == 0
}

func (e *evaluation) violations() []rules.Violation {
	all := make([]rules.Violation, 0, len(e.initiator.Violations)+len(e.recipient.Violations))
	all = append(all, e.initiator.Violations...)
	return append(all, e.recipient.Violations...)
}

// evaluate projects the exchange onto both live rosters. Incoming players land on the
// bench. Every outgoing player must be on its manager's roster.
func evaluate(
	ctx context.Context,
	roster rosterRepository.Repository,
	league *leagueModel.League,
	initiatorID, recipientID string,
	initiatorPlayers, recipientPlayers []string,
) (*evaluation, error) {
	initiatorRoster, err := roster.Snapshot(ctx, league.LeagueID, initiatorID)
	if err != nil {
		return nil, err
	}
	recipientRoster, err := roster.Snapshot(ctx, league.LeagueID, recipientID)
	if err != nil {
		return nil, err
	}

	result := &evaluation{entries: make(map[string]*rosterModel.RosterEntry)}
	collect := func(snapshot *rosterModel.Snapshot, ids []string) ([]rules.Occupant, error) {
		moving := make([]rules.Occupant, 0, len(ids))
		for _, id := range ids {
			entry := snapshot.Find(id)
			if entry == nil {
				return nil, fmt.Errorf("%w: %s is not on the roster of %s", rules.ErrNotFound, id, snapshot.ManagerID)
			}
			result.entries[id] = entry
			moving = append(moving, rules.Occupant{Player: snapshot.Player(id), Slot: rules.SlotBench})
		}
		return moving, nil
	}

	outgoing, err := collect(initiatorRoster, initiatorPlayers)
	if err != nil {
		return nil, err
	}
	incoming, err := collect(recipientRoster, recipientPlayers)
	if err != nil {
		return nil, err
	}

	cfg := league.Rules()
	result.initiator = side(initiatorRoster, initiatorPlayers, incoming, cfg)
	result.recipient = side(recipientRoster, recipientPlayers, outgoing, cfg)
	return result, nil
}

func side(snapshot *rosterModel.Snapshot, removed []string, added []rules.Occupant, cfg rules.League) tradeModel.SideResult {
	base := snapshot.Occupants()
	return tradeModel.SideResult{
		ManagerID:  snapshot.ManagerID,
		Violations: rules.Check(base, rules.Change{Removed: removed, Added: added}, cfg.Slots, cfg.Limits),
		Summary:    rules.Summarize(rules.Project(base, removed, added), cfg.Slots, cfg.Limits),
	}
}

func validateProposal(req *tradeModel.ProposeTradeRequest) error {
	if req.InitiatorManagerID == req.RecipientManagerID {
		return tradeModel.ErrSelfTrade
	}
	if len(req.InitiatorPlayerIDs) == 0 || len(req.RecipientPlayerIDs) == 0 {
		return tradeModel.ErrEmptySide
	}

	seen := make(map[string]bool, len(req.InitiatorPlayerIDs)+len(req.RecipientPlayerIDs))
	for _, ids := range [][]string{req.InitiatorPlayerIDs, req.RecipientPlayerIDs} {
		for _, id := range ids {
			if strings.TrimSpace(id) == "" {
				return fmt.Errorf("%w: player id must not be empty", rules.ErrInvalidRequest)
			}
			if seen[id] {
				return fmt.Errorf("%w: %s", tradeModel.ErrDuplicatePlayer, id)
			}
			seen[id] = true
		}
	}
	return nil
}

func tradeKeys(leagueID, initiatorID, recipientID string) []string {
	return []string{lock.RosterKey(leagueID, initiatorID), lock.RosterKey(leagueID, recipientID)}
}

// Propose validates both rosters and stores a pending proposal when both are legal.
func (s *service) Propose(ctx context.Context, req *tradeModel.ProposeTradeRequest) (*tradeModel.ProposeTradeResponse, error) {
	s.logger.Debugw("proposing trade",
		"league_id", req.LeagueID,
		"initiator_manager_id", req.InitiatorManagerID,
		"recipient_manager_id", req.RecipientManagerID,
	)

	if err := validateProposal(req); err != nil {
		return nil, err
	}

	league, err := s.leagues.GetByID(ctx, req.LeagueID)
	if err != nil {
		return nil, err
	}

	var resp *tradeModel.ProposeTradeResponse
	keys := tradeKeys(req.LeagueID, req.InitiatorManagerID, req.RecipientManagerID)
	err = s.rt.Run(ctx, "trade_propose", keys, func(tx *gorm.DB) error {
		roster := rosterRepository.New(tx, s.logger)

		allPlayers := append(append([]string{}, req.InitiatorPlayerIDs...), req.RecipientPlayerIDs...)
		if err := rosterRepository.EnsureUnlocked(ctx, roster, req.LeagueID, allPlayers...); err != nil {
			return err
		}

		eval, err := evaluate(ctx, roster, league, req.InitiatorManagerID, req.RecipientManagerID, req.InitiatorPlayerIDs, req.RecipientPlayerIDs)
		if err != nil {
			return err
		}

		resp = &tradeModel.ProposeTradeResponse{
			Success:   eval.legal(),
			Initiator: eval.initiator,
			Recipient: eval.recipient,
		}
		if !resp.Success {
			return rules.RejectViolations(eval.violations())
		}

		trade := &tradeModel.TradeProposal{
			TradeID:            uuid.NewString(),
			LeagueID:           req.LeagueID,
			InitiatorManagerID: req.InitiatorManagerID,
			RecipientManagerID: req.RecipientManagerID,
			Status:             tradeModel.StatusPending,
		}
		for _, id := range req.InitiatorPlayerIDs {
			trade.Players = append(trade.Players, tradeModel.TradePlayer{PlayerID: id, FromManagerID: req.InitiatorManagerID})
		}
		for _, id := range req.RecipientPlayerIDs {
			trade.Players = append(trade.Players, tradeModel.TradePlayer{PlayerID: id, FromManagerID: req.RecipientManagerID})
		}
		if err := repository.New(tx, s.rt.Clock, s.logger).Create(ctx, trade); err != nil {
			return err
		}

		resp.Trade = tradeModel.NewTradeResponse(trade)
		return nil
	})
	if err != nil {
		if resp != nil && !resp.Success && errors.Is(err, rules.ErrLimitViolation) {
			s.logger.Warnw("trade proposal breaches roster limits",
				"league_id", req.LeagueID,
				"initiator_violations", len(resp.Initiator.Violations),
				"recipient_violations", len(resp.Recipient.Violations),
			)
			return resp, nil
		}
		s.logFailure("trade proposal rejected", err, "league_id", req.LeagueID, "initiator_manager_id", req.InitiatorManagerID)
		return nil, err
	}

	s.logger.Infow("trade proposed", "trade_id", resp.Trade.TradeID, "league_id", req.LeagueID)

	event := events.New(events.KindTradeProposed, req.LeagueID, req.InitiatorManagerID, s.rt.Now(), append(append([]string{}, req.InitiatorPlayerIDs...), req.RecipientPlayerIDs...)...)
	event.ReferenceID = resp.Trade.TradeID
	s.rt.Emit(ctx, event)

	return resp, nil
}

// Accept re-validates both live rosters and flips ownership of every named player.
func (s *service) Accept(ctx context.Context, req *tradeModel.TradeActionRequest) (*tradeModel.TradeResponse, error) {
	s.logger.Debugw("accepting trade", "trade_id", req.TradeID, "manager_id", req.ManagerID)

	trade, err := s.repo.GetByID(ctx, req.TradeID)
	if err != nil {
		return nil, err
	}
	if trade.RecipientManagerID != req.ManagerID {
		return nil, tradeModel.ErrNotRecipient
	}
	league, err := s.leagues.GetByID(ctx, trade.LeagueID)
	if err != nil {
		return nil, err
	}

	var accepted *tradeModel.TradeProposal
	keys := tradeKeys(trade.LeagueID, trade.InitiatorManagerID, trade.RecipientManagerID)
	err = s.rt.Run(ctx, "trade_accept", keys, func(tx *gorm.DB) error {
		trades := repository.New(tx, s.rt.Clock, s.logger)
		roster := rosterRepository.New(tx, s.logger)

		current, err := trades.GetByID(ctx, req.TradeID)
		if err != nil {
			return err
		}
		if !current.IsPending() {
			return tradeModel.ErrTradeNotPending
		}

		initiatorPlayers := current.PlayersFrom(current.InitiatorManagerID)
		recipientPlayers := current.PlayersFrom(current.RecipientManagerID)
		eval, err := evaluate(ctx, roster, league, current.InitiatorManagerID, current.RecipientManagerID, initiatorPlayers, recipientPlayers)
		if err != nil {
			if errors.Is(err, rules.ErrNotFound) {
				return rules.RejectStale(err.Error(), nil)
			}
			return err
		}
		if !eval.legal() {
			return rules.RejectStale("trade is no longer legal for the current rosters", eval.violations())
		}

		for _, p := range current.Players {
			entry := eval.entries[p.PlayerID]
			fromSlot := entry.Slot
			entry.ManagerID = current.Counterparty(p.FromManagerID)
			entry.Slot = rules.SlotBench
			if err := roster.Save(ctx, entry); err != nil {
				return err
			}

			logRow := rosterModel.NewTransaction(current.LeagueID, entry.ManagerID, rosterModel.KindTrade, p.PlayerID)
			logRow.FromSlot = fromSlot
			logRow.ToSlot = entry.Slot
			logRow.TradeID = current.TradeID
			if err := roster.LogTransaction(ctx, logRow); err != nil {
				return err
			}
		}

		executedAt := s.rt.Now().UTC()
		if err := trades.UpdateStatus(ctx, current.TradeID, tradeModel.StatusAccepted, &executedAt); err != nil {
			return err
		}
		current.Status = tradeModel.StatusAccepted
		current.ExecutedAt = &executedAt
		accepted = current
		return nil
	})
	if err != nil {
		s.logFailure("trade accept rejected", err, "trade_id", req.TradeID)
		return nil, err
	}

	s.logger.Infow("trade executed", "trade_id", accepted.TradeID, "league_id", accepted.LeagueID, "players", len(accepted.Players))

	playerIDs := make([]string, 0, len(accepted.Players))
	for _, p := range accepted.Players {
		playerIDs = append(playerIDs, p.PlayerID)
	}
	event := events.New(events.KindTradeAccepted, accepted.LeagueID, req.ManagerID, s.rt.Now(), playerIDs...)
	event.ReferenceID = accepted.TradeID
	s.rt.Emit(ctx, event)

	return tradeModel.NewTradeResponse(accepted), nil
}

// Reject closes a pending trade on behalf of the recipient.
func (s *service) Reject(ctx context.Context, req *tradeModel.TradeActionRequest) (*tradeModel.TradeResponse, error) {
	return s.close(ctx, req, tradeModel.StatusRejected, events.KindTradeRejected, func(t *tradeModel.TradeProposal) error {
		if t.RecipientManagerID != req.ManagerID {
			return tradeModel.ErrNotRecipient
		}
		return nil
	})
}

// Cancel closes a pending trade on behalf of the initiator.
func (s *service) Cancel(ctx context.Context, req *tradeModel.TradeActionRequest) (*tradeModel.TradeResponse, error) {
	return s.close(ctx, req, tradeModel.StatusCancelled, events.KindTradeCanceled, func(t *tradeModel.TradeProposal) error {
		if t.InitiatorManagerID != req.ManagerID {
			return tradeModel.ErrNotInitiator
		}
		return nil
	})
}

// close moves a pending trade into a terminal status, which releases its locks.
func (s *service) close(
	ctx context.Context,
	req *tradeModel.TradeActionRequest,
	status string,
	kind events.Kind,
	authorize func(t *tradeModel.TradeProposal) error,
) (*tradeModel.TradeResponse, error) {
	s.logger.Debugw("closing trade", "trade_id", req.TradeID, "manager_id", req.ManagerID, "status", status)

	trade, err := s.repo.GetByID(ctx, req.TradeID)
	if err != nil {
		return nil, err
	}
	if err := authorize(trade); err != nil {
		return nil, err
	}

	keys := tradeKeys(trade.LeagueID, trade.InitiatorManagerID, trade.RecipientManagerID)
	err = s.rt.Run(ctx, "trade_"+status, keys, func(tx *gorm.DB) error {
		trades := repository.New(tx, s.rt.Clock, s.logger)
		current, err := trades.GetByID(ctx, req.TradeID)
		if err != nil {
			return err
		}
		if !current.IsPending() {
			return tradeModel.ErrTradeNotPending
		}
		if err := trades.UpdateStatus(ctx, current.TradeID, status, nil); err != nil {
			return err
		}
		current.Status = status
		trade = current
		return nil
	})
	if err != nil {
		s.logFailure("trade close rejected", err, "trade_id", req.TradeID, "status", status)
		return nil, err
	}

	s.logger.Infow("trade closed", "trade_id", trade.TradeID, "status", status)

	event := events.New(kind, trade.LeagueID, req.ManagerID, s.rt.Now())
	event.ReferenceID = trade.TradeID
	s.rt.Emit(ctx, event)

	return tradeModel.NewTradeResponse(trade), nil
}

// Get returns a trade by id.
func (s *service) Get(ctx context.Context, tradeID string) (*tradeModel.TradeResponse, error) {
	trade, err := s.repo.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	return tradeModel.NewTradeResponse(trade), nil
}

// List returns a manager's trades in a league.
func (s *service) List(ctx context.Context, leagueID, managerID, status string) ([]*tradeModel.TradeResponse, error) {
	switch status {
	case "", tradeModel.StatusPending, tradeModel.StatusAccepted, tradeModel.StatusRejected, tradeModel.StatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown trade status %q", rules.ErrInvalidRequest, status)
	}

	trades, err := s.repo.List(ctx, leagueID, managerID, status)
	if err != nil {
		return nil, err
	}

	resp := make([]*tradeModel.TradeResponse, 0, len(trades))
	for i := range trades {
		resp = append(resp, tradeModel.NewTradeResponse(&trades[i]))
	}
	return resp, nil
}

// logFailure logs rejections as warnings and store failures as errors.
func (s *service) logFailure(msg string, err error, keysAndValues ...interface{}) {
	keysAndValues = append(keysAndValues, "error", err)
	if status, _ := apierror.Classify(err); status == http.StatusInternalServerError {
		s.logger.Errorw(msg, keysAndValues...)
		return
	}
	s.logger.Warnw(msg, keysAndValues...)
}
