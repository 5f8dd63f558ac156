// Package session holds the single active authenticated session of the
// process and notifies registered observers when it changes. It replaces the
// mobile app's ambient auth-state global with an injected holder.
package session

import (
	"context"
	"log"
	"sync"

	"tipfit/internal/models"
)

// Session is the current authenticated user plus their access token.
type Session struct {
	UserID  string         `json:"userId"`
	Email   string         `json:"email"`
	Name    string         `json:"name"`
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

// Observer is called with the new session (nil on logout).
type Observer func(*Session)

// Manager replaces the session wholesale on login/logout and mirrors every
// change to the backing store so it survives process restarts.
type Manager struct {
	mu        sync.Mutex
	current   *Session
	observers []Observer
	nextID    int
	order     []int
	byID      map[int]Observer
	store     Store
}

func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		byID:  map[int]Observer{},
	}
}

// Restore loads the last-known session from the store. Called once at
// startup; a load failure just means starting logged out.
func (m *Manager) Restore(ctx context.Context) {
	if m.store == nil {
		return
	}
	s, err := m.store.Load(ctx)
	if err != nil {
		log.Printf("[session][restore] load failed: %v", err)
		return
	}
	if s != nil {
		m.Set(ctx, s)
	}
}

// Current returns the active session, or nil when logged out.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe registers an observer and returns its unsubscribe func.
// Observers run synchronously, in registration order, on every change.
func (m *Manager) Subscribe(obs Observer) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.order = append(m.order, id)
	m.byID[id] = obs
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.byID, id)
		for i, v := range m.order {
			if v == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
}

// Set replaces the session and persists it.
func (m *Manager) Set(ctx context.Context, s *Session) {
	m.mu.Lock()
	m.current = s
	observers := m.snapshotLocked()
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(ctx, s); err != nil {
			log.Printf("[session][set] store save failed: %v", err)
		}
	}
	for _, obs := range observers {
		obs(s)
	}
}

// Clear logs out: drops the session and wipes the store.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	m.current = nil
	observers := m.snapshotLocked()
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Clear(ctx); err != nil {
			log.Printf("[session][clear] store clear failed: %v", err)
		}
	}
	for _, obs := range observers {
		obs(nil)
	}
}

func (m *Manager) snapshotLocked() []Observer {
	out := make([]Observer, 0, len(m.order))
	for _, id := range m.order {
		if obs, ok := m.byID[id]; ok {
			out = append(out, obs)
		}
	}
	return out
}
