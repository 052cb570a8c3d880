// Package txn runs roster transactions as isolated units: per-manager locks are held
// around a database transaction, the outcome is counted, and events are published
// only after the commit succeeded.
package txn

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/events"
	"github.com/festy23/fantasy_roster/internal/lock"
	"github.com/festy23/fantasy_roster/internal/metrics"
	"github.com/festy23/fantasy_roster/internal/rules"
)

// Runtime carries the collaborators shared by every transaction processor.
type Runtime struct {
	DB        *gorm.DB
	Locker    lock.Locker
	Publisher events.Publisher
	Clock     clockwork.Clock
	Location  *time.Location
	Logger    *zap.SugaredLogger
}

// NewRuntime fills unset collaborators with in-process defaults.
func NewRuntime(db *gorm.DB, locker lock.Locker, publisher events.Publisher, clock clockwork.Clock, loc *time.Location, logger *zap.SugaredLogger) *Runtime {
	if locker == nil {
		locker = lock.NewLocal()
	}
	if publisher == nil {
		publisher = events.NewLogPublisher(logger)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Runtime{
		DB:        db,
		Locker:    locker,
		Publisher: publisher,
		Clock:     clock,
		Location:  loc,
		Logger:    logger,
	}
}

// Run holds the locks for keys while fn runs inside one database transaction.
// Any error from fn rolls the transaction back. The outcome is recorded under kind.
func (rt *Runtime) Run(ctx context.Context, kind string, keys []string, fn func(tx *gorm.DB) error) error {
	err := lock.Run(ctx, rt.Locker, keys, func(ctx context.Context) error {
		return rt.DB.WithContext(ctx).Transaction(fn)
	})
	metrics.RecordTransaction(kind, err)
	return err
}

// Now returns the current time.
func (rt *Runtime) Now() time.Time {
	return rt.Clock.Now()
}

// Today returns the current calendar date in the league timezone.
func (rt *Runtime) Today() string {
	return rules.Today(rt.Clock.Now(), rt.Location)
}

// DateAfter returns the calendar date days after today in the league timezone.
func (rt *Runtime) DateAfter(days int) string {
	return rules.Today(rt.Clock.Now().In(rt.Location).AddDate(0, 0, days), rt.Location)
}

// Emit publishes event; failures are logged and never undo the commit.
func (rt *Runtime) Emit(ctx context.Context, event events.Event) {
	events.Emit(ctx, rt.Publisher, rt.Logger, event)
}
