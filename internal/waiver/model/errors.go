package model

import (
	"fmt"

	"github.com/festy23/fantasy_roster/internal/rules"
)

var (
	// ErrClaimNotFound indicates that waiver claim was not found.
	ErrClaimNotFound = fmt.Errorf("waiver claim %w", rules.ErrNotFound)
	// ErrClaimNotPending indicates an action on a processed or cancelled claim.
	ErrClaimNotPending = fmt.Errorf("%w: waiver claim is no longer pending", rules.ErrInvalidRequest)
	// ErrNotOnWaivers indicates a claim for a player whose waiver period is not running.
	ErrNotOnWaivers = fmt.Errorf("%w: player is not on waivers", rules.ErrInvalidRequest)
	// ErrDuplicateClaim indicates the same add and drop pair is already claimed.
	ErrDuplicateClaim = fmt.Errorf("%w: an identical claim is already pending", rules.ErrInvalidRequest)
	// ErrCannotMove indicates a reorder past either end of the group.
	ErrCannotMove = fmt.Errorf("%w: claim cannot move further in that direction", rules.ErrInvalidRequest)
	// ErrInvalidDirection indicates a reorder direction other than up or down.
	ErrInvalidDirection = fmt.Errorf("%w: direction must be up or down", rules.ErrInvalidRequest)
)
