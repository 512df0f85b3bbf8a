package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process session store for tests and single-node
// development runs.
type MemoryStore struct {
	sessions sync.Map
	ttl      time.Duration
}

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl}
}

func (m *MemoryStore) Resolve(ctx context.Context, token string) (string, error) {
	val, ok := m.sessions.Load(token)
	if !ok {
		return "", ErrNoSession
	}
	entry := val.(memoryEntry)
	if time.Now().After(entry.expiresAt) {
		m.sessions.Delete(token)
		return "", ErrNoSession
	}
	return entry.userID, nil
}

func (m *MemoryStore) Put(ctx context.Context, token, userID string) error {
	m.sessions.Store(token, memoryEntry{userID: userID, expiresAt: time.Now().Add(m.ttl)})
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.sessions.Delete(token)
	return nil
}
