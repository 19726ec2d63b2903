package redis

import (
	"context"

	"patriot-quiz-bot/internal/domain"
	"github.com/redis/go-redis/v9"
)

const completedKey = "bot:competitive:completed"

// CachedSink decorates a result sink with a Redis fast path for the
// one-attempt check, sparing a spreadsheet read on every quiz menu open.
// Markers are best-effort; the wrapped sink stays the source of truth.
type CachedSink struct {
	client *redis.Client
	next   Sink
}

// Sink mirrors app.ResultSink without importing app.
type Sink interface {
	HasCompleted(ctx context.Context, chatID int64) (bool, error)
	Save(ctx context.Context, result domain.CompetitiveResult) error
	AllResults(ctx context.Context) ([]domain.CompetitiveResult, error)
	Statistics(ctx context.Context) (domain.Statistics, error)
}

func NewCachedSink(client *redis.Client, next Sink) *CachedSink {
	return &CachedSink{client: client, next: next}
}

func (s *CachedSink) HasCompleted(ctx context.Context, chatID int64) (bool, error) {
	if hit, err := s.client.SIsMember(ctx, completedKey, chatID).Result(); err == nil && hit {
		return true, nil
	}
	completed, err := s.next.HasCompleted(ctx, chatID)
	if err != nil {
		return false, err
	}
	if completed {
		_ = s.client.SAdd(ctx, completedKey, chatID).Err()
	}
	return completed, nil
}

func (s *CachedSink) Save(ctx context.Context, result domain.CompetitiveResult) error {
	if err := s.next.Save(ctx, result); err != nil {
		return err
	}
	_ = s.client.SAdd(ctx, completedKey, result.ChatID).Err()
	return nil
}

func (s *CachedSink) AllResults(ctx context.Context) ([]domain.CompetitiveResult, error) {
	return s.next.AllResults(ctx)
}

func (s *CachedSink) Statistics(ctx context.Context) (domain.Statistics, error) {
	return s.next.Statistics(ctx)
}
