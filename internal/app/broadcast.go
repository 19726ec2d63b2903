package app

import (
	"context"
	"fmt"
	"log"
	"time"
)

// UserRegistry is the append-only set of chats that ever started the bot.
type UserRegistry interface {
	Register(ctx context.Context, chatID int64) error
	ChatIDs(ctx context.Context) ([]int64, error)
}

// MessageSender delivers one broadcast message to one chat.
type MessageSender interface {
	SendBroadcast(chatID int64, text, photoURL string) error
}

// BroadcastFailure records one undeliverable recipient.
type BroadcastFailure struct {
	ChatID int64
	Reason string
}

// BroadcastReport accounts for a finished fan-out.
type BroadcastReport struct {
	Sent     int
	Failed   int
	Failures []BroadcastFailure
}

// Summary renders the report for admin delivery, listing at most the
// first ten failures.
func (r BroadcastReport) Summary() string {
	text := fmt.Sprintf("Рассылка завершена.\nДоставлено: %d\nОшибок: %d", r.Sent, r.Failed)
	for i, failure := range r.Failures {
		if i == 10 {
			text += fmt.Sprintf("\n… и еще %d", len(r.Failures)-10)
			break
		}
		text += fmt.Sprintf("\n%d: %s", failure.ChatID, failure.Reason)
	}
	return text
}

// Broadcaster fans one message out to every registered chat with a short
// pause between sends to respect transport rate limits.
type Broadcaster struct {
	registry UserRegistry
	sender   MessageSender
	pause    time.Duration
}

func NewBroadcaster(registry UserRegistry, sender MessageSender, pause time.Duration) *Broadcaster {
	return &Broadcaster{registry: registry, sender: sender, pause: pause}
}

// Broadcast delivers text (and an optional photo) to every registered
// chat. Per-recipient failures are counted and never abort the loop;
// only context cancellation stops it early.
func (b *Broadcaster) Broadcast(ctx context.Context, text, photoURL string) (BroadcastReport, error) {
	chatIDs, err := b.registry.ChatIDs(ctx)
	if err != nil {
		return BroadcastReport{}, fmt.Errorf("list recipients: %w", err)
	}

	report := BroadcastReport{}
	for i, chatID := range chatIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := b.sender.SendBroadcast(chatID, text, photoURL); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, BroadcastFailure{ChatID: chatID, Reason: err.Error()})
			log.Printf("broadcast to %d failed: %v", chatID, err)
		} else {
			report.Sent++
		}
		if b.pause > 0 && i < len(chatIDs)-1 {
			select {
			case <-time.After(b.pause):
			case <-ctx.Done():
				return report, ctx.Err()
			}
		}
	}
	return report, nil
}
