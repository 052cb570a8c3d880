package model

import (
	"fmt"

	"github.com/festy23/fantasy_roster/internal/rules"
)

var (
	// ErrPlayerNotFound indicates that the requested player does not exist.
	ErrPlayerNotFound = fmt.Errorf("player %w", rules.ErrNotFound)
	// ErrGameNotFound indicates that the team has no game on the date.
	ErrGameNotFound = fmt.Errorf("game %w", rules.ErrNotFound)
)
