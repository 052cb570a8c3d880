package model

import (
	"fmt"

	"github.com/festy23/fantasy_roster/internal/rules"
)

var (
	// ErrEntryNotFound indicates that the player has no roster entry in the league.
	ErrEntryNotFound = fmt.Errorf("roster entry %w", rules.ErrNotFound)
	// ErrNotOnRoster indicates that the player is not on the manager's roster.
	ErrNotOnRoster = fmt.Errorf("%w: player is not on the roster", rules.ErrNotFound)
	// ErrAlreadyRostered indicates an add of a player another roster already holds.
	ErrAlreadyRostered = fmt.Errorf("%w: player is already on a roster", rules.ErrInvalidRequest)
	// ErrOnWaivers indicates an add of a player who must be claimed through waivers.
	ErrOnWaivers = fmt.Errorf("%w: player is on waivers, submit a claim instead", rules.ErrInvalidRequest)
	// ErrSameSlot indicates a move to the slot the player already holds.
	ErrSameSlot = fmt.Errorf("%w: player already occupies the target slot", rules.ErrInvalidRequest)
)
