package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const usersKey = "bot:users"

// UserRegistry keeps the append-only set of chats in Redis so the
// broadcast audience survives process restarts.
type UserRegistry struct {
	client *redis.Client
}

func NewUserRegistry(client *redis.Client) *UserRegistry {
	return &UserRegistry{client: client}
}

func (r *UserRegistry) Register(ctx context.Context, chatID int64) error {
	if err := r.client.SAdd(ctx, usersKey, chatID).Err(); err != nil {
		return fmt.Errorf("register chat %d: %w", chatID, err)
	}
	return nil
}

func (r *UserRegistry) ChatIDs(ctx context.Context) ([]int64, error) {
	members, err := r.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
