package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestUserRegistryDeduplicates(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	registry := NewUserRegistry(client)
	ctx := context.Background()

	for _, id := range []int64{10, 20, 10} {
		if err := registry.Register(ctx, id); err != nil {
			t.Fatalf("register %d: %v", id, err)
		}
	}

	ids, err := registry.ChatIDs(ctx)
	if err != nil {
		t.Fatalf("chat ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 distinct chats, got %v", ids)
	}
	if !mr.Exists("bot:users") {
		t.Fatalf("expected redis set to be written")
	}
}

func TestUserRegistrySkipsMalformedMembers(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	mr.SAdd("bot:users", "42", "not-a-number")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ids, err := NewUserRegistry(client).ChatIDs(context.Background())
	if err != nil {
		t.Fatalf("chat ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != 42 {
		t.Fatalf("expected only parsable chat id, got %v", ids)
	}
}
