package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for response memoisation.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the raw incident payload bytes. Analysis is
// deterministic, so byte-identical payloads can share a response.
func Key(payload []byte) string {
	hash := sha256.Sum256(payload)
	return "triage:v1:" + hex.EncodeToString(hash[:])
}
