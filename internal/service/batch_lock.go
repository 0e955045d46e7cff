package service

import (
	"context"
	"sync"

	"github.com/alexanderramin/fundalloc/internal/domain"
)

// batchLocker serializes work per batch key. Different keys do not block
// each other. Entries are dropped once no caller holds or waits on them.
type batchLocker struct {
	mu    sync.Mutex
	locks map[domain.BatchKey]*batchLock
}

type batchLock struct {
	sem  chan struct{}
	refs int
}

func newBatchLocker() *batchLocker {
	return &batchLocker{locks: make(map[domain.BatchKey]*batchLock)}
}

// WithLock runs fn while holding the lock for key. It gives up with the
// context's error if ctx is done before the lock is acquired.
func (l *batchLocker) WithLock(ctx context.Context, key domain.BatchKey, fn func(ctx context.Context) error) error {
	lock := l.acquireRef(key)
	defer l.releaseRef(key, lock)

	select {
	case lock.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-lock.sem }()

	return fn(ctx)
}

func (l *batchLocker) acquireRef(key domain.BatchKey) *batchLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &batchLock{sem: make(chan struct{}, 1)}
		l.locks[key] = lock
	}
	lock.refs++
	return lock
}

func (l *batchLocker) releaseRef(key domain.BatchKey, lock *batchLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *batchLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
