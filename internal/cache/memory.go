package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"airportbot/internal/domain/models"
)

type MemoryCache struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(ttl, 2*ttl)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]models.ChatMessage, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	msgs, ok := v.([]models.ChatMessage)
	if !ok {
		return nil, false
	}
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, true
}

func (m *MemoryCache) Set(_ context.Context, key string, msgs []models.ChatMessage) {
	stored := make([]models.ChatMessage, len(msgs))
	copy(stored, msgs)
	m.c.SetDefault(key, stored)
}
