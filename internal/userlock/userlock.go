package userlock

import (
	"context"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Locker serializes operations per user
type Locker interface {
	// Lock blocks until the user's lock is acquired or ctx is done
	Lock(ctx context.Context, userID string) (unlock func(), err error)
}

type ttlLocker struct {
	locks *ttlcache.Cache[string, chan struct{}]
}

// NewTTLLocker keeps one lock per user, dropping locks that have not been used within idleTTL
//
// idleTTL must be far longer than any critical section.
func NewTTLLocker(idleTTL time.Duration) (Locker, func()) {
	locks := ttlcache.New[string, chan struct{}](
		ttlcache.WithTTL[string, chan struct{}](idleTTL),
	)
	go locks.Start()

	return &ttlLocker{locks: locks}, locks.Stop
}

func (l *ttlLocker) Lock(ctx context.Context, userID string) (func(), error) {
	item, _ := l.locks.GetOrSetFunc(userID, func() chan struct{} {
		return make(chan struct{}, 1)
	})
	lock := item.Value()

	select {
	case lock <- struct{}{}:
		return func() { <-lock }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to acquire lock for user: %w", ctx.Err())
	}
}
