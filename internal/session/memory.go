package session

import (
	"context"
	"sync"
)

// Memory is a map-backed store for dev and tests. Nothing survives a restart.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]map[string]string)}
}

// Get returns the value for key, or ErrNotFound.
func (m *Memory) Get(ctx context.Context, sid, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vals, ok := m.sessions[sid]
	if !ok {
		return "", ErrNotFound
	}
	val, ok := vals[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

// Set stores value under key for the session.
func (m *Memory) Set(ctx context.Context, sid, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vals, ok := m.sessions[sid]
	if !ok {
		vals = make(map[string]string)
		m.sessions[sid] = vals
	}
	vals[key] = value
	return nil
}

// Remove deletes key for the session. Removing an absent key is not an error.
func (m *Memory) Remove(ctx context.Context, sid, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if vals, ok := m.sessions[sid]; ok {
		delete(vals, key)
		if len(vals) == 0 {
			delete(m.sessions, sid)
		}
	}
	return nil
}
