package keylock

import "sync"

// KeyLock provides an exclusive lock per string key. Holders of different
// keys never contend; the registry itself is only locked briefly to look up
// or release an entry. Entries are removed once the last holder releases,
// so the map does not grow with the number of keys ever seen.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyLock
func New() *KeyLock {
	return &KeyLock{
		entries: make(map[string]*entry),
	}
}

// Lock acquires the lock for key, blocking until it is available.
// It returns the function that releases the lock.
func (l *KeyLock) Lock(key string) (unlock func()) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}
