package txn

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/lock"
	"github.com/festy23/fantasy_roster/internal/rules"
)

type counter struct {
	ID    int `gorm:"primaryKey"`
	Value int
}

func setupRuntime(t *testing.T, clock clockwork.Clock, loc *time.Location) *Runtime {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&counter{}))
	require.NoError(t, db.Create(&counter{ID: 1}).Error)

	return NewRuntime(db, nil, nil, clock, loc, zap.NewNop().Sugar())
}

func TestRuntime_Defaults(t *testing.T) {
	rt := NewRuntime(nil, nil, nil, nil, nil, zap.NewNop().Sugar())

	assert.NotNil(t, rt.Locker)
	assert.NotNil(t, rt.Publisher)
	assert.NotNil(t, rt.Clock)
	assert.Equal(t, time.UTC, rt.Location)
}

func TestRuntime_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("commits", func(t *testing.T) {
		rt := setupRuntime(t, nil, nil)

		err := rt.Run(ctx, "test", []string{lock.RosterKey("l1", "m1")}, func(tx *gorm.DB) error {
			return tx.Model(&counter{}).Where("id = 1").Update("value", 5).Error
		})

		require.NoError(t, err)
		var c counter
		require.NoError(t, rt.DB.First(&c, 1).Error)
		assert.Equal(t, 5, c.Value)
	})

	t.Run("rejection rolls back", func(t *testing.T) {
		rt := setupRuntime(t, nil, nil)

		err := rt.Run(ctx, "test", []string{lock.RosterKey("l1", "m1")}, func(tx *gorm.DB) error {
			if err := tx.Model(&counter{}).Where("id = 1").Update("value", 9).Error; err != nil {
				return err
			}
			return rules.Reject(rules.ErrLimitViolation, "Total Players: 26/25")
		})

		assert.ErrorIs(t, err, rules.ErrLimitViolation)
		var c counter
		require.NoError(t, rt.DB.First(&c, 1).Error)
		assert.Equal(t, 0, c.Value)
	})

	t.Run("serializes the same roster", func(t *testing.T) {
		rt := setupRuntime(t, nil, nil)
		var inside, maxInside int32
		var wg sync.WaitGroup

		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = rt.Run(ctx, "test", []string{lock.RosterKey("l1", "m1")}, func(tx *gorm.DB) error {
					n := atomic.AddInt32(&inside, 1)
					for {
						cur := atomic.LoadInt32(&maxInside)
						if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					atomic.AddInt32(&inside, -1)
					return nil
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), maxInside)
	})

	t.Run("store error is returned", func(t *testing.T) {
		rt := setupRuntime(t, nil, nil)
		boom := errors.New("boom")

		err := rt.Run(ctx, "test", nil, func(tx *gorm.DB) error { return boom })

		assert.ErrorIs(t, err, boom)
	})
}

func TestRuntime_Dates(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)

	// 17:00 UTC on May 9 is already May 10 in Taipei.
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 9, 17, 0, 0, 0, time.UTC))
	rt := NewRuntime(nil, nil, nil, clock, loc, zap.NewNop().Sugar())

	assert.Equal(t, "2026-05-10", rt.Today())
	assert.Equal(t, "2026-05-12", rt.DateAfter(2))
	assert.Equal(t, clock.Now(), rt.Now())
}
