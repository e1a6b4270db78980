package training

import (
	"context"
	"sync"
	"time"

	"github.com/rylessKechit/salesup/internal/domain"
)

const evictionInterval = time.Minute

// SessionStore keeps live roleplay sessions in memory with a TTL.
// Sessions are transient conversation state and are never persisted;
// anything older than its TTL is evicted by a background sweep.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	ttl      time.Duration
	now      func() time.Time
}

type storedSession struct {
	session  *domain.RoleplaySession
	deadline time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*storedSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// StartEviction runs the TTL sweep until the context is cancelled
func (s *SessionStore) StartEviction(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(evictionInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.evictExpired()
			}
		}
	}()
}

// Put stores the session and resets its TTL
func (s *SessionStore) Put(session *domain.RoleplaySession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = &storedSession{
		session:  session,
		deadline: s.now().Add(s.ttl),
	}
}

// Get returns the session or nil when unknown or expired
func (s *SessionStore) Get(id string) *domain.RoleplaySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if s.now().After(stored.deadline) {
		delete(s.sessions, id)
		return nil
	}

	return stored.session
}

// Delete removes the session, typically at the end of a conversation
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// Len reports the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s *SessionStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, stored := range s.sessions {
		if now.After(stored.deadline) {
			delete(s.sessions, id)
		}
	}
}
