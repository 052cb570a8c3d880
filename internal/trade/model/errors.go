package model

import (
	"fmt"

	"github.com/festy23/fantasy_roster/internal/rules"
)

var (
	// ErrTradeNotFound indicates that trade proposal was not found.
	ErrTradeNotFound = fmt.Errorf("trade %w", rules.ErrNotFound)
	// ErrTradeNotPending indicates an action on a trade that was already resolved.
	ErrTradeNotPending = fmt.Errorf("%w: trade is no longer pending", rules.ErrInvalidRequest)
	// ErrNotRecipient indicates that only the recipient may accept or reject.
	ErrNotRecipient = fmt.Errorf("%w: only the recipient can accept or reject a trade", rules.ErrInvalidRequest)
	// ErrNotInitiator indicates that only the initiator may cancel.
	ErrNotInitiator = fmt.Errorf("%w: only the initiator can cancel a trade", rules.ErrInvalidRequest)
	// ErrEmptySide indicates a proposal where one manager gives up nothing.
	ErrEmptySide = fmt.Errorf("%w: both sides of a trade must include players", rules.ErrInvalidRequest)
	// ErrSelfTrade indicates a proposal between a manager and itself.
	ErrSelfTrade = fmt.Errorf("%w: cannot trade with yourself", rules.ErrInvalidRequest)
	// ErrDuplicatePlayer indicates a player named more than once in a proposal.
	ErrDuplicatePlayer = fmt.Errorf("%w: player appears more than once in the trade", rules.ErrInvalidRequest)
)
