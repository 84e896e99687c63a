package storage

import "sync"

// KeyMutex serializes read-modify-write cycles per user without a global
// lock: operations on different users never contend. Mutexes are created
// lazily and kept for the life of the process.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for the given user and returns its unlock func.
func (k *KeyMutex) Lock(userID int64) func() {
	k.mu.Lock()
	m, ok := k.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		k.locks[userID] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
