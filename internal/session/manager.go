// Package session owns the transient per-identity flow state.
//
// Sessions are not persisted: they exist from flow entry until completion or
// until the identity enters another flow (last entry wins). The manager also
// serializes event handling per identity so that step progression is never
// interleaved for one user, while distinct users proceed concurrently.
package session

import (
	"sync"

	"github.com/srchub/structbot/internal/flow"
)

// Manager keeps at most one active flow state per Telegram identity.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]flow.State

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

// NewManager constructs an empty in-memory manager. It is injected into the
// dispatcher rather than held as a process-wide singleton so tests can build
// isolated instances.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]flow.State),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Start unconditionally replaces any prior session for the identity with the
// initial state of the given flow kind.
func (m *Manager) Start(userID int64, kind flow.Kind) flow.State {
	st := flow.New(kind)
	m.mu.Lock()
	m.sessions[userID] = st
	m.mu.Unlock()
	return st
}

// Get returns the active state for the identity, if any.
func (m *Manager) Get(userID int64) (flow.State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.sessions[userID]
	return st, ok
}

// Put stores the state for the identity.
func (m *Manager) Put(userID int64, st flow.State) {
	m.mu.Lock()
	m.sessions[userID] = st
	m.mu.Unlock()
}

// Clear removes the session for the identity.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}

// InProgress reports whether the identity has an active flow.
func (m *Manager) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[userID]
	return ok
}

// Do runs fn while holding the identity's serialization lock. Events for one
// identity are processed in arrival order; other identities are unaffected.
func (m *Manager) Do(userID int64, fn func() error) error {
	l := m.userLock(userID)
	l.Lock()
	defer l.Unlock()
	return fn()
}

func (m *Manager) userLock(userID int64) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	l, ok := m.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[userID] = l
	}
	return l
}
