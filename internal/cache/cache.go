package cache

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"airportbot/internal/domain/models"
)

// ReplyCache remembers assistant replies per (language, message).
type ReplyCache interface {
	Get(ctx context.Context, key string) ([]models.ChatMessage, bool)
	Set(ctx context.Context, key string, msgs []models.ChatMessage)
}

const defaultTTL = 10 * time.Minute

// Key hashes language and the whitespace/case normalized message under prefix.
func Key(prefix, language, message string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(message), " "))
	sum := blake2b.Sum256([]byte(strings.ToLower(strings.TrimSpace(language)) + "\x00" + norm))
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// SessionKey is Key scoped to one conversation; the session id is hashed
// verbatim.
func SessionKey(prefix, language, sessionID, message string) string {
	return Key(prefix+":"+sessionHash(sessionID), language, message)
}

func sessionHash(sessionID string) string {
	sum := blake2b.Sum256([]byte(sessionID))
	return hex.EncodeToString(sum[:8])
}

// New returns a Redis backed cache when rdb is set, otherwise an in-process one.
func New(rdb *redis.Client, ttl time.Duration) ReplyCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if rdb != nil {
		return NewRedis(rdb, ttl)
	}
	return NewMemory(ttl)
}
