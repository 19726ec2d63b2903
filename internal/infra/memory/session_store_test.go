package memory

import (
	"errors"
	"testing"

	"patriot-quiz-bot/internal/domain"
)

func TestSessionStoreKeysByUserAndKind(t *testing.T) {
	store := NewSessionStore()
	store.Begin(&domain.Session{UserID: 1, Kind: domain.KindPractice, Total: 5})
	store.Begin(&domain.Session{UserID: 1, Kind: domain.KindHero, Total: 3})

	practice, ok := store.Get(1, domain.KindPractice)
	if !ok || practice.Total != 5 {
		t.Fatalf("expected practice session, got %+v", practice)
	}
	hero, ok := store.Get(1, domain.KindHero)
	if !ok || hero.Total != 3 {
		t.Fatalf("expected hero session, got %+v", hero)
	}
	if _, ok := store.Get(2, domain.KindPractice); ok {
		t.Fatalf("expected no session for other user")
	}
}

func TestSessionStoreMutateFailureLeavesStateUnchanged(t *testing.T) {
	store := NewSessionStore()
	store.Begin(&domain.Session{UserID: 1, Kind: domain.KindPractice, Score: 2})

	boom := errors.New("boom")
	_, err := store.Mutate(1, domain.KindPractice, func(s *domain.Session) error {
		s.Score = 99
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	session, _ := store.Get(1, domain.KindPractice)
	if session.Score != 2 {
		t.Fatalf("expected score unchanged, got %d", session.Score)
	}
}

func TestSessionStoreMutateMissing(t *testing.T) {
	store := NewSessionStore()
	_, err := store.Mutate(1, domain.KindPractice, func(s *domain.Session) error { return nil })
	if !errors.Is(err, domain.ErrNotActive) {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
}

func TestSessionStoreEndRemoves(t *testing.T) {
	store := NewSessionStore()
	store.Begin(&domain.Session{UserID: 1, Kind: domain.KindCompetitive, Score: 4})

	ended, ok := store.End(1, domain.KindCompetitive)
	if !ok || ended.Score != 4 {
		t.Fatalf("expected ended session with score 4, got %+v", ended)
	}
	if _, ok := store.Get(1, domain.KindCompetitive); ok {
		t.Fatalf("expected session removed")
	}
	if _, ok := store.End(1, domain.KindCompetitive); ok {
		t.Fatalf("expected second end to miss")
	}
}
