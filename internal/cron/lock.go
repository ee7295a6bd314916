package cron

import (
	"context"
	"sync"
)

// Lock serializes job runs. Jobs tick on independent intervals but every
// run is a whole-document read-modify-write on the ledger, so two runs
// must never interleave.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// LocalLock is an in-process Lock. The dashboard is single-session by
// design, so there is no second instance to coordinate with.
type LocalLock struct {
	mu sync.Mutex
}

// NewLocalLock constructs an in-process lock.
func NewLocalLock() *LocalLock {
	return &LocalLock{}
}

// Acquire reports false when another job run currently holds the lock.
func (l *LocalLock) Acquire(ctx context.Context) (bool, error) {
	return l.mu.TryLock(), nil
}

// Release frees the lock.
func (l *LocalLock) Release(ctx context.Context) error {
	l.mu.Unlock()
	return nil
}
