package memory

import (
	"sync"

	"patriot-quiz-bot/internal/domain"
)

type sessionKey struct {
	userID int64
	kind   domain.QuizKind
}

// SessionStore is the in-memory implementation of app.SessionRepository.
// At most one session exists per (user, kind); Begin overwrites any
// unfinished session of that kind. Mutations run under the store lock so
// concurrent events for the same user are serialized.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[sessionKey]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[sessionKey]*domain.Session),
	}
}

func (s *SessionStore) Begin(session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey{session.UserID, session.Kind}] = session
}

func (s *SessionStore) Get(userID int64, kind domain.QuizKind) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionKey{userID, kind}]
	if !ok {
		return domain.Session{}, false
	}
	return *session, true
}

// Mutate applies fn to the session under the store lock and returns the
// updated copy. A missing session yields domain.ErrNotActive; an fn error
// leaves the session unchanged.
func (s *SessionStore) Mutate(userID int64, kind domain.QuizKind, fn func(*domain.Session) error) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionKey{userID, kind}]
	if !ok {
		return domain.Session{}, domain.ErrNotActive
	}
	scratch := *session
	if err := fn(&scratch); err != nil {
		return domain.Session{}, err
	}
	*session = scratch
	return scratch, nil
}

// End removes and returns the session for finalization.
func (s *SessionStore) End(userID int64, kind domain.QuizKind) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sessionKey{userID, kind}
	session, ok := s.sessions[key]
	if !ok {
		return domain.Session{}, false
	}
	delete(s.sessions, key)
	return *session, true
}
