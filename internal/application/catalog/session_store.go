package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// SessionStore holds in-progress edit sessions between requests. Sessions
// are tenant-scoped: a lookup with the wrong tenant behaves like a miss.
type SessionStore interface {
	// Get returns the session with the given ID, or ErrSessionNotFound
	Get(ctx context.Context, tenantID, sessionID uuid.UUID) (*catalog.EditSession, error)

	// Put stores or replaces a session
	Put(ctx context.Context, session *catalog.EditSession) error

	// Delete removes a session; deleting a missing session is a no-op
	Delete(ctx context.Context, tenantID, sessionID uuid.UUID) error
}

// MemorySessionStore is a process-local SessionStore used in tests and
// single-node deployments. Multi-node deployments use the Redis-backed
// store so a session can be resumed on any node.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*catalog.EditSession
}

// NewMemorySessionStore creates an empty in-memory session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[uuid.UUID]*catalog.EditSession),
	}
}

// Get returns the session with the given ID
func (s *MemorySessionStore) Get(_ context.Context, tenantID, sessionID uuid.UUID) (*catalog.EditSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.TenantID != tenantID {
		return nil, shared.ErrSessionNotFound
	}
	return session, nil
}

// Put stores or replaces a session
func (s *MemorySessionStore) Put(_ context.Context, session *catalog.EditSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return nil
}

// Delete removes a session
func (s *MemorySessionStore) Delete(_ context.Context, tenantID, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if ok && session.TenantID == tenantID {
		delete(s.sessions, sessionID)
	}
	return nil
}
