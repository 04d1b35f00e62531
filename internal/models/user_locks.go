package models

import (
	"sync"
)

// userLock is one user's mutex plus the number of goroutines holding or
// waiting for it.
type userLock struct {
	mu   sync.Mutex
	refs int
}

// UserLocks serializes profile mutations per user. An entry lives only
// while someone holds or waits for it.
type UserLocks struct {
	mapMutex sync.Mutex
	locks    map[string]*userLock // username → lock
}

// NewUserLocks creates an empty lock set
func NewUserLocks() *UserLocks {
	return &UserLocks{
		locks: make(map[string]*userLock),
	}
}

// Lock locks the profile of a specific user
func (ul *UserLocks) Lock(username string) {
	ul.mapMutex.Lock()
	l := ul.locks[username]
	if l == nil {
		l = &userLock{}
		ul.locks[username] = l
	}
	l.refs++
	ul.mapMutex.Unlock()

	l.mu.Lock()
}

// Unlock unlocks the profile of a specific user and drops the entry once
// nobody else is waiting on it.
func (ul *UserLocks) Unlock(username string) {
	ul.mapMutex.Lock()
	defer ul.mapMutex.Unlock()

	l := ul.locks[username]
	if l == nil {
		return
	}
	l.refs--
	if l.refs == 0 {
		delete(ul.locks, username)
	}
	l.mu.Unlock()
}
