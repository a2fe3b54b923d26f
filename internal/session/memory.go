package session

import (
	"context"
	"sync"

	"github.com/reserveaqui/webgateway/internal/domain"
)

// MemoryStore is an in-process Store for tests and single-node development.
// It applies no TTL.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
	users    map[string]*domain.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]map[string]string),
		users:    make(map[string]*domain.User),
	}
}

func (s *MemoryStore) fields(sid string) map[string]string {
	m, ok := s.sessions[sid]
	if !ok {
		m = make(map[string]string)
		s.sessions[sid] = m
	}
	return m
}

func (s *MemoryStore) Tokens(_ context.Context, sid string) (TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.fields(sid)
	access, refresh := m[fieldAccessToken], m[fieldRefreshToken]
	if access == "" && refresh == "" {
		return TokenPair{}, domain.ErrNoSession
	}
	if access == "" || refresh == "" {
		delete(m, fieldAccessToken)
		delete(m, fieldRefreshToken)
		delete(s.users, sid)
		return TokenPair{}, domain.ErrNoSession
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *MemoryStore) SaveTokens(_ context.Context, sid string, pair TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.fields(sid)
	m[fieldAccessToken] = pair.Access
	m[fieldRefreshToken] = pair.Refresh
	return nil
}

func (s *MemoryStore) SetAccess(_ context.Context, sid, access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields(sid)[fieldAccessToken] = access
	return nil
}

func (s *MemoryStore) Purge(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.fields(sid)
	delete(m, fieldAccessToken)
	delete(m, fieldRefreshToken)
	delete(s.users, sid)
	return nil
}

func (s *MemoryStore) User(_ context.Context, sid string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[sid], nil
}

func (s *MemoryStore) SaveUser(_ context.Context, sid string, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[sid] = u
	return nil
}

func (s *MemoryStore) LastError(_ context.Context, sid string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sid][fieldError], nil
}

func (s *MemoryStore) SaveLastError(_ context.Context, sid, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields(sid)[fieldError] = msg
	return nil
}

func (s *MemoryStore) ClearLastError(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fields(sid), fieldError)
	return nil
}
