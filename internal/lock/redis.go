package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/pkg/retry"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var errHeld = fmt.Errorf("lock is held: %w", retry.ErrRetryable)

// Redis is a Locker backed by SET NX PX, shared by every server instance.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	logger *zap.SugaredLogger
}

// NewRedis creates a Redis-backed locker. ttl bounds how long a crashed holder
// blocks the roster; wait bounds how long Acquire spins on a busy key.
func NewRedis(client *redis.Client, ttl, wait time.Duration, logger *zap.SugaredLogger) *Redis {
	return &Redis{client: client, ttl: ttl, wait: wait, logger: logger}
}

// Acquire implements Locker.
func (r *Redis) Acquire(ctx context.Context, keys ...string) (func(), error) {
	token := uuid.NewString()
	held := make([]string, 0, len(keys))

	waitCtx, cancel := context.WithTimeout(ctx, r.wait)
	defer cancel()

	for _, key := range normalize(keys) {
		err := retry.Do(waitCtx, retry.LockConfig(), func() error {
			ok, err := r.client.SetNX(waitCtx, key, token, r.ttl).Result()
			if err != nil {
				return err
			}
			if !ok {
				return errHeld
			}
			return nil
		})
		if err != nil {
			r.release(held, token)
			if errors.Is(err, errHeld) || (errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil) {
				r.logger.Warnw("roster lock busy", "key", key, "wait", r.wait)
				return nil, ErrBusy
			}
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		held = append(held, key)
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		r.release(held, token)
	}, nil
}

func (r *Redis) release(keys []string, token string) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for _, key := range keys {
		if err := releaseScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil {
			r.logger.Errorw("failed to release roster lock", "key", key, "error", err)
		}
	}
}
