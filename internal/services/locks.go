package services

import "sync"

// userLocks serializes cycles for the same user within this process. It does
// nothing across processes sharing a store.
type userLocks struct {
	enabled bool
	mu      sync.Mutex
	held    map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks(enabled bool) *userLocks {
	return &userLocks{enabled: enabled, held: map[string]*userLock{}}
}

// lock blocks until userID is free and returns the matching unlock.
func (l *userLocks) lock(userID string) func() {
	if l == nil || !l.enabled {
		return func() {}
	}

	l.mu.Lock()
	ul, ok := l.held[userID]
	if !ok {
		ul = &userLock{}
		l.held[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.held, userID)
		}
		l.mu.Unlock()
	}
}
