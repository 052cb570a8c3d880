// Package service provides business logic layer for waiver module: claim submission
// and the per-manager priority queue consumed by the waiver batch processor.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/apierror"
	"github.com/festy23/fantasy_roster/internal/events"
	leagueRepository "github.com/festy23/fantasy_roster/internal/league/repository"
	"github.com/festy23/fantasy_roster/internal/lock"
	rosterModel "github.com/festy23/fantasy_roster/internal/roster/model"
	rosterRepository "github.com/festy23/fantasy_roster/internal/roster/repository"
	"github.com/festy23/fantasy_roster/internal/rules"
	"github.com/festy23/fantasy_roster/internal/txn"
	waiverModel "github.com/festy23/fantasy_roster/internal/waiver/model"
	"github.com/festy23/fantasy_roster/internal/waiver/repository"
)

// Service defines the interface for waiver business logic operations.
type Service interface {
	// Submit appends a claim at the end of its (manager, off-waiver date) group.
	// Rosters are not touched and limits are not checked.
	Submit(ctx context.Context, req *waiverModel.SubmitClaimRequest) (*waiverModel.ClaimResponse, error)

	// Cancel withdraws a pending claim. Remaining priorities keep their values.
	Cancel(ctx context.Context, req *waiverModel.CancelClaimRequest) (*waiverModel.ClaimResponse, error)

	// Reorder swaps a claim with its immediate neighbour in the group.
	Reorder(ctx context.Context, req *waiverModel.ReorderClaimRequest) (*waiverModel.ListClaimsResponse, error)

	// ListGroup returns pending claims by ascending priority. An empty date lists
	// every pending claim of the manager.
	ListGroup(ctx context.Context, leagueID, managerID, offWaiverDate string) (*waiverModel.ListClaimsResponse, error)
}

type service struct {
	repo    repository.Repository
	leagues leagueRepository.Repository
	rt      *txn.Runtime
	logger  *zap.SugaredLogger
}

// New creates a new waiver service instance.
func New(repo repository.Repository, leagues leagueRepository.Repository, rt *txn.Runtime, logger *zap.SugaredLogger) Service {
	return &service{
		repo:    repo,
		leagues: leagues,
		rt:      rt,
		logger:  logger,
	}
}

// Submit appends a claim at the end of its group.
func (s *service) Submit(ctx context.Context, req *waiverModel.SubmitClaimRequest) (*waiverModel.ClaimResponse, error) {
	s.logger.Debugw("submitting waiver claim",
		"league_id", req.LeagueID,
		"manager_id", req.ManagerID,
		"add_player_id", req.AddPlayerID,
		"drop_player_id", req.DropPlayerID,
	)

	if req.AddPlayerID == req.DropPlayerID {
		return nil, fmt.Errorf("%w: cannot claim and drop the same player", rules.ErrInvalidRequest)
	}
	if _, err := s.leagues.GetByID(ctx, req.LeagueID); err != nil {
		return nil, err
	}

	var claim *waiverModel.WaiverClaim
	err := s.rt.Run(ctx, "waiver_submit", []string{lock.RosterKey(req.LeagueID, req.ManagerID)}, func(tx *gorm.DB) error {
		roster := rosterRepository.New(tx, s.logger)
		claims := repository.New(tx, s.rt.Clock, s.logger)

		entry, err := roster.GetEntry(ctx, req.LeagueID, req.AddPlayerID)
		if err != nil {
			if errors.Is(err, rosterModel.ErrEntryNotFound) {
				return waiverModel.ErrNotOnWaivers
			}
			return err
		}
		if entry.Status != rosterModel.StatusWaiver || entry.OffWaiverDate < s.rt.Today() {
			return waiverModel.ErrNotOnWaivers
		}

		if req.DropPlayerID != "" {
			drop, err := roster.GetEntry(ctx, req.LeagueID, req.DropPlayerID)
			if err != nil && !errors.Is(err, rosterModel.ErrEntryNotFound) {
				return err
			}
			if drop == nil || !drop.OnTeamOf(req.ManagerID) {
				return fmt.Errorf("%w: %s", rosterModel.ErrNotOnRoster, req.DropPlayerID)
			}
			if err := rosterRepository.EnsureUnlocked(ctx, roster, req.LeagueID, req.DropPlayerID); err != nil {
				return err
			}
		}

		group, err := claims.ListGroup(ctx, req.LeagueID, req.ManagerID, entry.OffWaiverDate)
		if err != nil {
			return err
		}
		for _, c := range group {
			if c.AddPlayerID == req.AddPlayerID && c.DropPlayerID == req.DropPlayerID {
				return waiverModel.ErrDuplicateClaim
			}
		}

		highest, err := claims.MaxPriority(ctx, req.LeagueID, req.ManagerID, entry.OffWaiverDate)
		if err != nil {
			return err
		}

		claim = &waiverModel.WaiverClaim{
			ClaimID:          uuid.NewString(),
			LeagueID:         req.LeagueID,
			ManagerID:        req.ManagerID,
			AddPlayerID:      req.AddPlayerID,
			DropPlayerID:     req.DropPlayerID,
			OffWaiverDate:    entry.OffWaiverDate,
			PersonalPriority: highest + 1,
			Status:           waiverModel.StatusPending,
		}
		return claims.Create(ctx, claim)
	})
	if err != nil {
		s.logFailure("waiver claim rejected", err, "league_id", req.LeagueID, "manager_id", req.ManagerID, "add_player_id", req.AddPlayerID)
		return nil, err
	}

	s.logger.Infow("waiver claim submitted",
		"claim_id", claim.ClaimID,
		"off_waiver_date", claim.OffWaiverDate,
		"priority", claim.PersonalPriority,
	)

	playerIDs := []string{req.AddPlayerID}
	if req.DropPlayerID != "" {
		playerIDs = append(playerIDs, req.DropPlayerID)
	}
	event := events.New(events.KindWaiverClaimed, req.LeagueID, req.ManagerID, s.rt.Now(), playerIDs...)
	event.ReferenceID = claim.ClaimID
	s.rt.Emit(ctx, event)

	resp := waiverModel.NewClaimResponse(claim)
	return &resp, nil
}

// ownedClaim loads a claim and hides claims of other managers.
func (s *service) ownedClaim(ctx context.Context, claims repository.Repository, claimID, managerID string) (*waiverModel.WaiverClaim, error) {
	claim, err := claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.ManagerID != managerID {
		return nil, waiverModel.ErrClaimNotFound
	}
	return claim, nil
}

// Cancel withdraws a pending claim.
func (s *service) Cancel(ctx context.Context, req *waiverModel.CancelClaimRequest) (*waiverModel.ClaimResponse, error) {
	s.logger.Debugw("cancelling waiver claim", "claim_id", req.ClaimID, "manager_id", req.ManagerID)

	claim, err := s.ownedClaim(ctx, s.repo, req.ClaimID, req.ManagerID)
	if err != nil {
		return nil, err
	}

	err = s.rt.Run(ctx, "waiver_cancel", []string{lock.RosterKey(claim.LeagueID, claim.ManagerID)}, func(tx *gorm.DB) error {
		claims := repository.New(tx, s.rt.Clock, s.logger)
		current, err := s.ownedClaim(ctx, claims, req.ClaimID, req.ManagerID)
		if err != nil {
			return err
		}
		if !current.IsPending() {
			return waiverModel.ErrClaimNotPending
		}
		if err := claims.UpdateStatus(ctx, current.ClaimID, waiverModel.StatusCancelled); err != nil {
			return err
		}
		current.Status = waiverModel.StatusCancelled
		claim = current
		return nil
	})
	if err != nil {
		s.logFailure("waiver cancel rejected", err, "claim_id", req.ClaimID)
		return nil, err
	}

	s.logger.Infow("waiver claim cancelled", "claim_id", claim.ClaimID)

	event := events.New(events.KindWaiverCancel, claim.LeagueID, claim.ManagerID, s.rt.Now(), claim.AddPlayerID)
	event.ReferenceID = claim.ClaimID
	s.rt.Emit(ctx, event)

	resp := waiverModel.NewClaimResponse(claim)
	return &resp, nil
}

// Reorder swaps a claim with its immediate neighbour in the group.
func (s *service) Reorder(ctx context.Context, req *waiverModel.ReorderClaimRequest) (*waiverModel.ListClaimsResponse, error) {
	s.logger.Debugw("reordering waiver claim", "claim_id", req.ClaimID, "direction", req.Direction)

	var step int
	switch req.Direction {
	case waiverModel.DirectionUp:
		step = -1
	case waiverModel.DirectionDown:
		step = 1
	default:
		return nil, waiverModel.ErrInvalidDirection
	}

	claim, err := s.ownedClaim(ctx, s.repo, req.ClaimID, req.ManagerID)
	if err != nil {
		return nil, err
	}

	var group []waiverModel.WaiverClaim
	err = s.rt.Run(ctx, "waiver_reorder", []string{lock.RosterKey(claim.LeagueID, claim.ManagerID)}, func(tx *gorm.DB) error {
		claims := repository.New(tx, s.rt.Clock, s.logger)
		current, err := s.ownedClaim(ctx, claims, req.ClaimID, req.ManagerID)
		if err != nil {
			return err
		}
		if !current.IsPending() {
			return waiverModel.ErrClaimNotPending
		}

		group, err = claims.ListGroup(ctx, current.LeagueID, current.ManagerID, current.OffWaiverDate)
		if err != nil {
			return err
		}

		idx := -1
		for i := range group {
			if group[i].ClaimID == current.ClaimID {
				idx = i
				break
			}
		}
		other := idx + step
		if idx < 0 || other < 0 || other >= len(group) {
			return waiverModel.ErrCannotMove
		}

		a, b := &group[idx], &group[other]
		a.PersonalPriority, b.PersonalPriority = b.PersonalPriority, a.PersonalPriority
		if err := claims.UpdatePriority(ctx, a.ClaimID, a.PersonalPriority); err != nil {
			return err
		}
		if err := claims.UpdatePriority(ctx, b.ClaimID, b.PersonalPriority); err != nil {
			return err
		}
		group[idx], group[other] = group[other], group[idx]
		return nil
	})
	if err != nil {
		s.logFailure("waiver reorder rejected", err, "claim_id", req.ClaimID, "direction", req.Direction)
		return nil, err
	}

	s.logger.Infow("waiver claim reordered", "claim_id", req.ClaimID, "direction", req.Direction)

	event := events.New(events.KindWaiverReorder, claim.LeagueID, claim.ManagerID, s.rt.Now(), claim.AddPlayerID)
	event.ReferenceID = claim.ClaimID
	s.rt.Emit(ctx, event)

	return groupResponse(claim.LeagueID, claim.ManagerID, claim.OffWaiverDate, group), nil
}

// ListGroup returns pending claims by ascending priority.
func (s *service) ListGroup(ctx context.Context, leagueID, managerID, offWaiverDate string) (*waiverModel.ListClaimsResponse, error) {
	if leagueID == "" || managerID == "" {
		return nil, fmt.Errorf("%w: league_id and manager_id are required", rules.ErrInvalidRequest)
	}

	var (
		claims []waiverModel.WaiverClaim
		err    error
	)
	if offWaiverDate == "" {
		claims, err = s.repo.ListPending(ctx, leagueID, managerID)
	} else {
		if _, err := rules.ParseDate(offWaiverDate, s.rt.Location); err != nil {
			return nil, err
		}
		claims, err = s.repo.ListGroup(ctx, leagueID, managerID, offWaiverDate)
	}
	if err != nil {
		return nil, err
	}

	return groupResponse(leagueID, managerID, offWaiverDate, claims), nil
}

func groupResponse(leagueID, managerID, offWaiverDate string, claims []waiverModel.WaiverClaim) *waiverModel.ListClaimsResponse {
	resp := &waiverModel.ListClaimsResponse{
		LeagueID:      leagueID,
		ManagerID:     managerID,
		OffWaiverDate: offWaiverDate,
		Claims:        make([]waiverModel.ClaimResponse, 0, len(claims)),
	}
	for i := range claims {
		resp.Claims = append(resp.Claims, waiverModel.NewClaimResponse(&claims[i]))
	}
	return resp
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
