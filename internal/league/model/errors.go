package model

import (
	"fmt"

	"github.com/festy23/fantasy_roster/internal/rules"
)

var (
	// ErrLeagueNotFound indicates that the requested league does not exist.
	ErrLeagueNotFound = fmt.Errorf("league %w", rules.ErrNotFound)
	// ErrLeagueExists indicates that a league with the given id already exists.
	ErrLeagueExists = fmt.Errorf("%w: league already exists", rules.ErrInvalidRequest)
	// ErrUnknownPreset indicates that the named preset is not configured.
	ErrUnknownPreset = fmt.Errorf("%w: unknown league preset", rules.ErrInvalidRequest)
	// ErrNoSlots indicates that a league was requested without any slots.
	ErrNoSlots = fmt.Errorf("%w: league needs at least one slot with capacity", rules.ErrInvalidRequest)
	// ErrNegativeLimit indicates a negative foreigner limit or waiver period.
	ErrNegativeLimit = fmt.Errorf("%w: limits must not be negative", rules.ErrInvalidRequest)
)
