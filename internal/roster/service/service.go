// Package service provides business logic layer for roster module: the add, add with
// drop, drop and move processors.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/apierror"
	"github.com/festy23/fantasy_roster/internal/database/database"
	"github.com/festy23/fantasy_roster/internal/events"
	leagueModel "github.com/festy23/fantasy_roster/internal/league/model"
	leagueRepository "github.com/festy23/fantasy_roster/internal/league/repository"
	"github.com/festy23/fantasy_roster/internal/lock"
	playerModel "github.com/festy23/fantasy_roster/internal/player/model"
	playerRepository "github.com/festy23/fantasy_roster/internal/player/repository"
	rosterModel "github.com/festy23/fantasy_roster/internal/roster/model"
	"github.com/festy23/fantasy_roster/internal/roster/repository"
	"github.com/festy23/fantasy_roster/internal/rules"
	"github.com/festy23/fantasy_roster/internal/txn"
)

// Service defines the interface for roster business logic operations.
type Service interface {
	// CheckAdd reports, without mutating anything, where a player would land and
	// which limits the add would breach.
	CheckAdd(ctx context.Context, req *rosterModel.CheckAddRequest) (*rosterModel.CheckAddResponse, error)

	// Add commits an add, or an add with drop. The roster is re-read and re-validated
	// under the manager's lock; violations reject the whole request.
	Add(ctx context.Context, req *rosterModel.AddRequest) (*rosterModel.TransactionResponse, error)

	// Drop releases a player to waivers, or to free agency when the league has no
	// waiver period.
	Drop(ctx context.Context, req *rosterModel.DropRequest) (*rosterModel.TransactionResponse, error)

	// Move puts a player into another slot, optionally swapping with its occupant.
	Move(ctx context.Context, req *rosterModel.MoveRequest) (*rosterModel.TransactionResponse, error)

	// GetRoster returns a manager's roster with its limit summary.
	GetRoster(ctx context.Context, leagueID, managerID string) (*rosterModel.RosterResponse, error)
}

type service struct {
	repo    repository.Repository
	leagues leagueRepository.Repository
	players playerRepository.Repository
	rt      *txn.Runtime
	logger  *zap.SugaredLogger
}

// New creates a new roster service instance.
func New(
	repo repository.Repository,
	leagues leagueRepository.Repository,
	players playerRepository.Repository,
	rt *txn.Runtime,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:    repo,
		leagues: leagues,
		players: players,
		rt:      rt,
		logger:  logger,
	}
}

// addPlan is the validated outcome of an add before it is written.
type addPlan struct {
	snapshot   *rosterModel.Snapshot
	entry      *rosterModel.RosterEntry
	drop       *rosterModel.RosterEntry
	slot       string
	violations []rules.Violation
	summary    rules.Summary
}

// planAdd validates an add against the roster read through roster and players.
func (s *service) planAdd(
	ctx context.Context,
	roster repository.Repository,
	players playerRepository.Repository,
	league *leagueModel.League,
	managerID, playerID, dropID string,
) (*addPlan, error) {
	if dropID == playerID {
		return nil, fmt.Errorf("%w: cannot add and drop the same player", rules.ErrInvalidRequest)
	}

	player, err := players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	entry, err := roster.GetEntry(ctx, league.LeagueID, playerID)
	switch {
	case errors.Is(err, rosterModel.ErrEntryNotFound):
		entry = nil
	case err != nil:
		return nil, err
	case entry.Status == rosterModel.StatusOnTeam:
		return nil, rosterModel.ErrAlreadyRostered
	case entry.Status == rosterModel.StatusWaiver && entry.OffWaiverDate >= s.rt.Today():
		return nil, rosterModel.ErrOnWaivers
	}

	snapshot, err := roster.Snapshot(ctx, league.LeagueID, managerID)
	if err != nil {
		return nil, err
	}

	plan := &addPlan{snapshot: snapshot, entry: entry}
	var removed []string
	if dropID != "" {
		plan.drop = snapshot.Find(dropID)
		if plan.drop == nil {
			return nil, fmt.Errorf("%w: %s", rosterModel.ErrNotOnRoster, dropID)
		}
		if err := repository.EnsureUnlocked(ctx, roster, league.LeagueID, dropID); err != nil {
			return nil, err
		}
		removed = []string{dropID}
	}

	cfg := league.Rules()
	base := snapshot.Occupants()
	candidate := player.Rules()

	plan.slot = rules.AssignSlot(candidate, rules.Project(base, removed, nil), cfg.Slots, cfg.Limits)
	change := rules.Change{
		Removed: removed,
		Added:   []rules.Occupant{{Player: candidate, Slot: plan.slot}},
	}
	plan.violations = rules.Check(base, change, cfg.Slots, cfg.Limits)
	plan.summary = rules.Summarize(rules.Project(base, change.Removed, change.Added), cfg.Slots, cfg.Limits)

	return plan, nil
}


// CheckAdd reports where a player would land and which limits the add would breach.
func (s *service) CheckAdd(ctx context.Context, req *rosterModel.CheckAddRequest) (*rosterModel.CheckAddResponse, error) {
	league, err := s.leagues.GetByID(ctx, req.LeagueID)
	if err != nil {
		return nil, err
	}

	plan, err := s.planAdd(ctx, s.repo, s.players, league, req.ManagerID, req.PlayerID, req.DropPlayerID)
	if err != nil {
		s.logFailure("add check failed", err, "league_id", req.LeagueID, "player_id", req.PlayerID)
		return nil, err
	}

	return &rosterModel.CheckAddResponse{
		Legal:      len(plan.violations) == 0,
		TargetSlot: plan.slot,
		Violations: plan.violations,
		Summary:    plan.summary,
		Version:    plan.snapshot.Version(),
	}, nil
}

// Add commits an add, or an add with drop.
func (s *service) Add(ctx context.Context, req *rosterModel.AddRequest) (*rosterModel.TransactionResponse, error) {
	s.logger.Debugw("adding player",
		"league_id", req.LeagueID,
		"manager_id", req.ManagerID,
		"player_id", req.PlayerID,
		"drop_player_id", req.DropPlayerID,
	)

	league, err := s.leagues.GetByID(ctx, req.LeagueID)
	if err != nil {
		return nil, err
	}

	kind := events.KindAdd
	if req.DropPlayerID != "" {
		kind = events.KindAddDrop
	}

	var slot string
	err = s.rt.Run(ctx, string(kind), []string{lock.RosterKey(req.LeagueID, req.ManagerID)}, func(tx *gorm.DB) error {
		roster := repository.New(tx, s.logger)
		plan, err := s.planAdd(ctx, roster, playerRepository.New(tx, s.logger), league, req.ManagerID, req.PlayerID, req.DropPlayerID)
		if err != nil {
			return err
		}

		if len(plan.violations) > 0 {
			if req.Version != "" && req.Version != plan.snapshot.Version() {
				return rules.RejectStale("roster changed since it was checked", plan.violations)
			}
			return rules.RejectViolations(plan.violations)
		}

		if plan.drop != nil {
			if err := s.release(ctx, roster, league, plan.drop, req.PlayerID); err != nil {
				return err
			}
		}

		entry := plan.entry
		if entry == nil {
			entry = &rosterModel.RosterEntry{LeagueID: req.LeagueID, PlayerID: req.PlayerID}
		}
		entry.ManagerID = req.ManagerID
		entry.Slot = plan.slot
		entry.Status = rosterModel.StatusOnTeam
		entry.OffWaiverDate = ""
		if err := roster.Save(ctx, entry); err != nil {
			if database.IsDuplicateError(err) {
				return rules.RejectStale("player "+req.PlayerID+" was added to another roster", nil)
			}
			return err
		}

		logRow := rosterModel.NewTransaction(req.LeagueID, req.ManagerID, rosterModel.KindAdd, req.PlayerID)
		logRow.RelatedPlayerID = req.DropPlayerID
		logRow.ToSlot = plan.slot
		if err := roster.LogTransaction(ctx, logRow); err != nil {
			return err
		}

		slot = plan.slot
		return nil
	})
	if err != nil {
		s.logFailure("add rejected", err, "league_id", req.LeagueID, "manager_id", req.ManagerID, "player_id", req.PlayerID)
		return nil, err
	}

	s.logger.Infow("player added",
		"league_id", req.LeagueID,
		"manager_id", req.ManagerID,
		"player_id", req.PlayerID,
		"slot", slot,
		"drop_player_id", req.DropPlayerID,
	)

	playerIDs := []string{req.PlayerID}
	if req.DropPlayerID != "" {
		playerIDs = append(playerIDs, req.DropPlayerID)
	}
	event := events.New(kind, req.LeagueID, req.ManagerID, s.rt.Now(), playerIDs...)
	event.Slot = slot
	s.rt.Emit(ctx, event)

	return s.respond(ctx, &rosterModel.TransactionResponse{
		Kind:          string(kind),
		PlayerID:      req.PlayerID,
		Slot:          slot,
		RelatedPlayer: req.DropPlayerID,
	}, req.LeagueID, req.ManagerID)
}

// release moves a rostered entry to waivers, or to free agency when the league has
// no waiver period, and logs the drop.
func (s *service) release(
	ctx context.Context,
	roster repository.Repository,
	league *leagueModel.League,
	entry *rosterModel.RosterEntry,
	relatedPlayerID string,
) error {
	managerID, fromSlot := entry.ManagerID, entry.Slot

	entry.ManagerID = ""
	entry.Slot = ""
	if league.WaiverDays > 0 {
		entry.Status = rosterModel.StatusWaiver
		entry.OffWaiverDate = s.rt.DateAfter(league.WaiverDays)
	} else {
		entry.Status = rosterModel.StatusFreeAgent
		entry.OffWaiverDate = ""
	}
	if err := roster.Save(ctx, entry); err != nil {
		return err
	}

	logRow := rosterModel.NewTransaction(league.LeagueID, managerID, rosterModel.KindDrop, entry.PlayerID)
	logRow.RelatedPlayerID = relatedPlayerID
	logRow.FromSlot = fromSlot
	return roster.LogTransaction(ctx, logRow)
}

// Drop releases a player from a roster.
func (s *service) Drop(ctx context.Context, req *rosterModel.DropRequest) (*rosterModel.TransactionResponse, error) {
	s.logger.Debugw("dropping player", "league_id", req.LeagueID, "manager_id", req.ManagerID, "player_id", req.PlayerID)

	league, err := s.leagues.GetByID(ctx, req.LeagueID)
	if err != nil {
		return nil, err
	}

	var offWaiverDate string
	err = s.rt.Run(ctx, string(events.KindDrop), []string{lock.RosterKey(req.LeagueID, req.ManagerID)}, func(tx *gorm.DB) error {
		roster := repository.New(tx, s.logger)

		entry, err := roster.GetEntry(ctx, req.LeagueID, req.PlayerID)
		if err != nil {
			if errors.Is(err, rosterModel.ErrEntryNotFound) {
				return fmt.Errorf("%w: %s", rosterModel.ErrNotOnRoster, req.PlayerID)
			}
			return err
		}
		if !entry.OnTeamOf(req.ManagerID) {
			return fmt.Errorf("%w: %s", rosterModel.ErrNotOnRoster, req.PlayerID)
		}
		if err := repository.EnsureUnlocked(ctx, roster, req.LeagueID, req.PlayerID); err != nil {
			return err
		}

		if err := s.release(ctx, roster, league, entry, ""); err != nil {
			return err
		}
		offWaiverDate = entry.OffWaiverDate
		return nil
	})
	if err != nil {
		s.logFailure("drop rejected", err, "league_id", req.LeagueID, "manager_id", req.ManagerID, "player_id", req.PlayerID)
		return nil, err
	}

	s.logger.Infow("player dropped",
		"league_id", req.LeagueID,
		"manager_id", req.ManagerID,
		"player_id", req.PlayerID,
		"off_waiver_date", offWaiverDate,
	)
	s.rt.Emit(ctx, events.New(events.KindDrop, req.LeagueID, req.ManagerID, s.rt.Now(), req.PlayerID))

	return s.respond(ctx, &rosterModel.TransactionResponse{
		Kind:          string(events.KindDrop),
		PlayerID:      req.PlayerID,
		OffWaiverDate: offWaiverDate,
	}, req.LeagueID, req.ManagerID)
}

// Move puts a player into another slot, optionally swapping with its occupant.
func (s *service) Move(ctx context.Context, req *rosterModel.MoveRequest) (*rosterModel.TransactionResponse, error) {
	target := strings.TrimSpace(req.TargetSlot)
	s.logger.Debugw("moving player",
		"league_id", req.LeagueID,
		"manager_id", req.ManagerID,
		"player_id", req.PlayerID,
		"target_slot", target,
		"swap_player_id", req.SwapPlayerID,
	)

	date := req.Date
	if date == "" {
		date = s.rt.Today()
	}
	selected, err := rules.ParseDate(date, s.rt.Location)
	if err != nil {
		return nil, err
	}

	league, err := s.leagues.GetByID(ctx, req.LeagueID)
	if err != nil {
		return nil, err
	}
	target = league.SlotConfig().Canonical(target)

	err = s.rt.Run(ctx, string(events.KindMove), []string{lock.RosterKey(req.LeagueID, req.ManagerID)}, func(tx *gorm.DB) error {
		roster := repository.New(tx, s.logger)
		players := playerRepository.New(tx, s.logger)

		snapshot, err := roster.Snapshot(ctx, req.LeagueID, req.ManagerID)
		if err != nil {
			return err
		}
		entry := snapshot.Find(req.PlayerID)
		if entry == nil {
			return fmt.Errorf("%w: %s", rosterModel.ErrNotOnRoster, req.PlayerID)
		}
		if entry.Slot == target {
			return rosterModel.ErrSameSlot
		}

		cfg := league.Rules()
		mover := snapshot.Player(entry.PlayerID)
		if err := s.checkWindow(ctx, players, mover, selected, entry.Slot); err != nil {
			return err
		}
		if !rules.IsEligible(mover, cfg.Slots, target) {
			return rules.Reject(rules.ErrIneligibleSlot, fmt.Sprintf("player %s is not eligible for slot %s", mover.ID, target))
		}

		fromSlot := entry.Slot
		removed := []string{entry.PlayerID}
		added := []rules.Occupant{{Player: mover, Slot: target}}
		activates := rules.IsInactiveSlot(fromSlot) && !rules.IsInactiveSlot(target)

		var partner *rosterModel.RosterEntry
		if req.SwapPlayerID != "" {
			partner = snapshot.Find(req.SwapPlayerID)
			if partner == nil {
				return fmt.Errorf("%w: %s", rosterModel.ErrNotOnRoster, req.SwapPlayerID)
			}
			if partner.PlayerID == entry.PlayerID {
				return fmt.Errorf("%w: cannot swap a player with itself", rules.ErrInvalidRequest)
			}
			if partner.Slot != target {
				return fmt.Errorf("%w: swap partner %s is not in slot %s", rules.ErrInvalidRequest, partner.PlayerID, target)
			}

			other := snapshot.Player(partner.PlayerID)
			if err := s.checkWindow(ctx, players, other, selected, partner.Slot); err != nil {
				return err
			}
			if !rules.IsEligible(other, cfg.Slots, fromSlot) {
				return rules.Reject(rules.ErrIneligibleSlot, fmt.Sprintf("player %s is not eligible for slot %s", other.ID, fromSlot))
			}

			removed = append(removed, partner.PlayerID)
			added = append(added, rules.Occupant{Player: other, Slot: fromSlot})
			activates = activates || (rules.IsInactiveSlot(partner.Slot) && !rules.IsInactiveSlot(fromSlot))
		} else if rules.SlotOccupancy(snapshot.Occupants())[target] >= cfg.Slots.Capacity(target) {
			return rules.Reject(rules.ErrIneligibleSlot, "slot "+target+" is full")
		}

		// Moves between active slots cannot change any count.
		if activates {
			violations := rules.Check(snapshot.Occupants(), rules.Change{Removed: removed, Added: added}, cfg.Slots, cfg.Limits)
			if len(violations) > 0 {
				return rules.RejectViolations(violations)
			}
		}

		entry.Slot = target
		if err := s.saveMove(ctx, roster, entry, fromSlot, req.SwapPlayerID); err != nil {
			return err
		}
		if partner != nil {
			partner.Slot = fromSlot
			if err := s.saveMove(ctx, roster, partner, target, entry.PlayerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logFailure("move rejected", err, "league_id", req.LeagueID, "manager_id", req.ManagerID, "player_id", req.PlayerID)
		return nil, err
	}

	s.logger.Infow("player moved",
		"league_id", req.LeagueID,
		"manager_id", req.ManagerID,
		"player_id", req.PlayerID,
		"slot", target,
	)

	playerIDs := []string{req.PlayerID}
	if req.SwapPlayerID != "" {
		playerIDs = append(playerIDs, req.SwapPlayerID)
	}
	event := events.New(events.KindMove, req.LeagueID, req.ManagerID, s.rt.Now(), playerIDs...)
	event.Slot = target
	s.rt.Emit(ctx, event)

	return s.respond(ctx, &rosterModel.TransactionResponse{
		Kind:          string(events.KindMove),
		PlayerID:      req.PlayerID,
		Slot:          target,
		RelatedPlayer: req.SwapPlayerID,
	}, req.LeagueID, req.ManagerID)
}

// checkWindow applies the lineup lock to one player.
func (s *service) checkWindow(
	ctx context.Context,
	players playerRepository.Repository,
	p rules.Player,
	selected time.Time,
	currentSlot string,
) error {
	var gameStart *time.Time
	if p.Team != "" {
		game, err := players.GetGame(ctx, p.Team, selected.Format(rules.DateLayout))
		switch {
		case err == nil:
			gameStart = &game.StartTime
		case !errors.Is(err, playerModel.ErrGameNotFound):
			return err
		}
	}
	return rules.CheckMoveWindow(s.rt.Now(), selected, gameStart, currentSlot, s.rt.Location)
}

func (s *service) saveMove(
	ctx context.Context,
	roster repository.Repository,
	entry *rosterModel.RosterEntry,
	fromSlot, relatedPlayerID string,
) error {
	if err := roster.Save(ctx, entry); err != nil {
		return err
	}
	logRow := rosterModel.NewTransaction(entry.LeagueID, entry.ManagerID, rosterModel.KindMove, entry.PlayerID)
	logRow.FromSlot = fromSlot
	logRow.ToSlot = entry.Slot
	logRow.RelatedPlayerID = relatedPlayerID
	return roster.LogTransaction(ctx, logRow)
}

// GetRoster returns a manager's roster with its limit summary.
func (s *service) GetRoster(ctx context.Context, leagueID, managerID string) (*rosterModel.RosterResponse, error) {
	if leagueID == "" || managerID == "" {
		return nil, fmt.Errorf("%w: league_id and manager_id are required", rules.ErrInvalidRequest)
	}

	league, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.repo.Snapshot(ctx, leagueID, managerID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(snapshot.Entries))
	for _, e := range snapshot.Entries {
		ids = append(ids, e.PlayerID)
	}
	locked, err := s.repo.LockedPlayerIDs(ctx, leagueID, ids)
	if err != nil {
		return nil, err
	}

	cfg := league.Rules()
	entries := make([]rosterModel.EntryView, 0, len(snapshot.Entries))
	for _, e := range snapshot.Entries {
		p := snapshot.Player(e.PlayerID)
		entries = append(entries, rosterModel.EntryView{
			PlayerID:      e.PlayerID,
			Name:          p.Name,
			Team:          p.Team,
			Identity:      string(p.Identity),
			Status:        string(p.Status),
			Slot:          e.Slot,
			EligibleSlots: rules.EligibleSlots(p, cfg.Slots),
			Eligibility:   rules.DisplayEligibility(p, cfg.Slots),
			Locked:        locked[e.PlayerID],
		})
	}

	return &rosterModel.RosterResponse{
		LeagueID:  leagueID,
		ManagerID: managerID,
		Version:   snapshot.Version(),
		Entries:   entries,
		Summary:   rules.Summarize(snapshot.Occupants(), cfg.Slots, cfg.Limits),
	}, nil
}

// respond attaches the committed roster to a transaction response.
func (s *service) respond(
	ctx context.Context,
	resp *rosterModel.TransactionResponse,
	leagueID, managerID string,
) (*rosterModel.TransactionResponse, error) {
	roster, err := s.GetRoster(ctx, leagueID, managerID)
	if err != nil {
		return nil, err
	}
	resp.Roster = roster
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
