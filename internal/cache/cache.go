package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores encoded decisions by document key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DocumentKey derives a cache key from the document text. Decisions are a
// pure function of text and configuration, so the key only needs the text
// while the configuration is fixed for the life of the cache.
func DocumentKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "claimroute:v1:" + hex.EncodeToString(hash[:])
}
