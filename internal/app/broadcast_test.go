package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"patriot-quiz-bot/internal/app"
	"patriot-quiz-bot/internal/infra/memory"
)

func TestBroadcastCountsFailures(t *testing.T) {
	ctx := context.Background()
	registry := memory.NewUserRegistry()
	for _, id := range []int64{10, 20, 30} {
		if err := registry.Register(ctx, id); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	sender := &fakeSender{failFor: map[int64]bool{20: true}}
	broadcaster := app.NewBroadcaster(registry, sender, 0)

	report, err := broadcaster.Broadcast(ctx, "привет", "")
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if report.Sent != 2 || report.Failed != 1 {
		t.Fatalf("expected 2 sent 1 failed, got %+v", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].ChatID != 20 {
		t.Fatalf("expected failure for chat 20, got %+v", report.Failures)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected delivery to 2 chats, got %d", len(sender.sent))
	}
}

func TestBroadcastSummaryTruncatesFailures(t *testing.T) {
	report := app.BroadcastReport{Sent: 1, Failed: 12}
	for i := 0; i < 12; i++ {
		report.Failures = append(report.Failures, app.BroadcastFailure{ChatID: int64(i), Reason: "blocked"})
	}
	summary := report.Summary()
	if !strings.Contains(summary, "… и еще 2") {
		t.Fatalf("expected truncation note, got %q", summary)
	}
	if strings.Count(summary, "blocked") != 10 {
		t.Fatalf("expected 10 listed failures, got %d", strings.Count(summary, "blocked"))
	}
}

func TestBroadcastStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	registry := memory.NewUserRegistry()
	_ = registry.Register(context.Background(), 1)
	broadcaster := app.NewBroadcaster(registry, &fakeSender{}, 0)

	if _, err := broadcaster.Broadcast(ctx, "привет", ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

type fakeSender struct {
	failFor map[int64]bool
	sent    []int64
}

func (s *fakeSender) SendBroadcast(chatID int64, text, photoURL string) error {
	if s.failFor[chatID] {
		return errors.New("blocked by user")
	}
	s.sent = append(s.sent, chatID)
	return nil
}
