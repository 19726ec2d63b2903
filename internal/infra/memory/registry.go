package memory

import (
	"context"
	"sort"
	"sync"
)

// UserRegistry is the in-memory fallback for the chat registry; it does
// not survive restarts, so broadcasts reach only chats seen since start.
type UserRegistry struct {
	mu    sync.RWMutex
	chats map[int64]struct{}
}

func NewUserRegistry() *UserRegistry {
	return &UserRegistry{chats: make(map[int64]struct{})}
}

func (r *UserRegistry) Register(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[chatID] = struct{}{}
	return nil
}

func (r *UserRegistry) ChatIDs(_ context.Context) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.chats))
	for id := range r.chats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
