package shop

import (
	"context" // Cancellable waits
	"sync"    // Map guard
)

// userLocks hands out one lock per user id. Entries are dropped once no
// goroutine holds or waits for them.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*userLock
}

type userLock struct {
	held chan struct{} // Buffered with capacity 1, full while held
	refs int           // Holders plus waiters
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*userLock)}
}

// Lock blocks until the caller owns the lock for id or ctx is done.
// On success it returns the release func.
func (l *userLocks) Lock(ctx context.Context, id uint) (func(), error) {
	l.mu.Lock()
	ul, ok := l.locks[id]
	if !ok {
		ul = &userLock{held: make(chan struct{}, 1)}
		l.locks[id] = ul
	}
	ul.refs++
	l.mu.Unlock()

	select {
	case ul.held <- struct{}{}:
		return func() {
			<-ul.held
			l.release(id, ul)
		}, nil
	case <-ctx.Done():
		l.release(id, ul)
		return nil, ctx.Err()
	}
}

func (l *userLocks) release(id uint, ul *userLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ul.refs--
	if ul.refs == 0 {
		delete(l.locks, id)
	}
}

func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
