// Package lock serializes roster mutations per manager so that the read-validate-write
// cycle of one transaction never interleaves with another on the same roster.
package lock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/festy23/fantasy_roster/internal/metrics"
	"github.com/festy23/fantasy_roster/internal/rules"
)

// ErrBusy is returned when a roster stays locked for longer than the caller waits.
// It is a stale-state rejection: the roster is changing underneath the request.
var ErrBusy = fmt.Errorf("%w: roster is being modified by another request", rules.ErrStaleState)

// Locker acquires exclusive ownership of a set of keys.
type Locker interface {
	// Acquire blocks until every key is held or ctx ends. The returned release
	// function frees all keys and is safe to call once.
	Acquire(ctx context.Context, keys ...string) (release func(), err error)
}

// RosterKey names the lock guarding one manager's roster in one league.
func RosterKey(leagueID, managerID string) string {
	return "roster-lock:" + leagueID + ":" + managerID
}

// Run acquires keys, runs fn and releases the keys afterwards.
func Run(ctx context.Context, locker Locker, keys []string, fn func(ctx context.Context) error) error {
	start := time.Now()
	release, err := locker.Acquire(ctx, keys...)
	metrics.ObserveLockWait(time.Since(start))
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}

// normalize sorts and deduplicates keys so that concurrent multi-key acquisitions
// always take locks in the same order.
func normalize(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			result = append(result, k)
		}
	}
	sort.Strings(result)
	return result
}
