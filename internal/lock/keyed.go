// Package lock provides per-key exclusive locks for resource mutation.
//
// Every mutating path (stock decrement, coupon issuance, point movement,
// order transition) acquires the key for the resource it is about to change,
// so checks and mutations on one resource are linearized. Independent keys
// stay fully concurrent.
package lock

import "sync"

// Manager hands out one mutex per key. Entries are reference counted and
// removed once the last holder releases, so the key space can be unbounded.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewManager() *Manager {
	return &Manager{locks: make(map[string]*entry)}
}

// Acquire blocks until the caller holds the exclusive lock for key and
// returns the release function. Acquiring an uncontended key does not block.
//
//	release := m.Acquire(productID)
//	defer release()
func (m *Manager) Acquire(key string) (release func()) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			m.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(m.locks, key)
			}
			m.mu.Unlock()
		})
	}
}
