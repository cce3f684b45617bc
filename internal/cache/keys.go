package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// JobStatusKey builds the key mirroring an analysis job's status.
func JobStatusKey(jobID uuid.UUID) string {
	return fmt.Sprintf("brandtrack:job:%s:status", jobID)
}

// RateLimitKey builds the per-key request counter key. The window rolls via
// the key's TTL rather than a bucket suffix.
func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("brandtrack:ratelimit:%s", keyPrefix)
}

// TrendsKey builds the cached-trends key for a tenant and normalized URL.
// The URL is hashed so arbitrary input never produces an unbounded key.
func TrendsKey(tenantID uuid.UUID, normalizedURL string) string {
	sum := sha256.Sum256([]byte(normalizedURL))
	return fmt.Sprintf("brandtrack:trends:%s:%s", tenantID, hex.EncodeToString(sum[:8]))
}
