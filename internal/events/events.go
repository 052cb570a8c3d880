// Package events publishes committed roster transactions to downstream consumers.
// Publishing happens after the database commit; a failed publish is logged and never
// rolls back the roster change.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind names a committed transaction.
type Kind string

// Kind values.
const (
	KindAdd           Kind = "add"
	KindAddDrop       Kind = "add_drop"
	KindDrop          Kind = "drop"
	KindMove          Kind = "move"
	KindTradeProposed Kind = "trade.proposed"
	KindTradeAccepted Kind = "trade.accepted"
	KindTradeRejected Kind = "trade.rejected"
	KindTradeCanceled Kind = "trade.cancelled"
	KindWaiverClaimed Kind = "waiver.submitted"
	KindWaiverCancel  Kind = "waiver.cancelled"
	KindWaiverReorder Kind = "waiver.reordered"
)

// Event is the message body sent for every committed transaction.
type Event struct {
	EventID     string    `json:"event_id"`
	Kind        Kind      `json:"kind"`
	LeagueID    string    `json:"league_id"`
	ManagerID   string    `json:"manager_id"`
	PlayerIDs   []string  `json:"player_ids,omitempty"`
	Slot        string    `json:"slot,omitempty"`
	ReferenceID string    `json:"reference_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// New builds an event with a fresh id.
func New(kind Kind, leagueID, managerID string, at time.Time, playerIDs ...string) Event {
	return Event{
		EventID:    uuid.NewString(),
		Kind:       kind,
		LeagueID:   leagueID,
		ManagerID:  managerID,
		PlayerIDs:  playerIDs,
		OccurredAt: at.UTC(),
	}
}

// RoutingKey returns the topic routing key for the event.
func (e Event) RoutingKey() string {
	return "roster." + string(e.Kind)
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Emit publishes the event and logs instead of failing.
func Emit(ctx context.Context, publisher Publisher, logger *zap.SugaredLogger, event Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Errorw("failed to publish roster event",
			"event_id", event.EventID,
			"kind", string(event.Kind),
			"league_id", event.LeagueID,
			"error", err,
		)
	}
}

// LogPublisher writes events to the log. It is used when no broker is configured.
type LogPublisher struct {
	logger *zap.SugaredLogger
}

// NewLogPublisher creates a log-only publisher.
func NewLogPublisher(logger *zap.SugaredLogger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish implements Publisher.
func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.logger.Infow("roster event",
		"event_id", event.EventID,
		"kind", string(event.Kind),
		"league_id", event.LeagueID,
		"manager_id", event.ManagerID,
		"player_ids", event.PlayerIDs,
	)
	return nil
}

// Close implements Publisher.
func (p *LogPublisher) Close() error {
	return nil
}
