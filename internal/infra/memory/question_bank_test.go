package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"patriot-quiz-bot/internal/domain"
)

func TestBankRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewStaticBankLoader(sampleBank()),
	}
	repo := NewBankRepository(loader, time.Minute)

	if _, err := repo.GetBank(context.Background()); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetBank(context.Background()); err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestBankRepositoryReloadsAfterTTL(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewStaticBankLoader(sampleBank()),
	}
	repo := NewBankRepository(loader, time.Minute)

	now := time.Now()
	repo.clock = func() time.Time { return now }
	if _, err := repo.GetBank(context.Background()); err != nil {
		t.Fatalf("get bank: %v", err)
	}

	// Jitter extends the TTL by at most 10%.
	now = now.Add(2 * time.Minute)
	if _, err := repo.GetBank(context.Background()); err != nil {
		t.Fatalf("get bank after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after TTL, loader calls %d", loader.calls)
	}
}

func TestStaticBankLoaderRejectsEmpty(t *testing.T) {
	loader := NewStaticBankLoader(domain.Bank{})
	if _, err := loader.LoadBank(context.Background()); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

type countingLoader struct {
	BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx)
}

func sampleBank() domain.Bank {
	return domain.Bank{
		Questions: []domain.Question{
			{ID: 1, Prompt: "Когда началась Великая Отечественная война?", Options: []string{"1941", "1939"}, Correct: 0},
		},
		HeroQuestions: map[int][]int{1: {0}},
	}
}
