package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	translationCachePrefix = "translation:"
	translationCacheTTL    = 24 * time.Hour
)

// TranslationCache caches translated strings in Redis so repeated
// phrases skip the translation service. It satisfies the language
// normalizer's cache interface; all failures read as cache misses.
type TranslationCache struct {
	client *Client
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache(client *Client) *TranslationCache {
	return &TranslationCache{client: client}
}

// key hashes the source text so arbitrary-length user input maps onto a
// bounded Redis key.
func (c *TranslationCache) key(direction, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s%s:%s", translationCachePrefix, direction, hex.EncodeToString(sum[:]))
}

// Get retrieves a cached translation
func (c *TranslationCache) Get(ctx context.Context, direction, text string) (string, bool) {
	translated, err := c.client.rdb.Get(ctx, c.key(direction, text)).Result()
	if err != nil {
		return "", false // Cache miss
	}
	return translated, true
}

// Set caches a translation. Write failures are dropped; caching is
// best effort.
func (c *TranslationCache) Set(ctx context.Context, direction, text, translated string) {
	c.client.rdb.Set(ctx, c.key(direction, text), translated, translationCacheTTL)
}
