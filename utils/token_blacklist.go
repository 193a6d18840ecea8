package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Revoked tokens are stored by digest, not raw value, so neither Redis nor
// process memory ever holds a usable credential.
var (
	revoked   = map[string]time.Time{}
	revokedMu sync.RWMutex
)

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// BlacklistToken revokes a token until its natural expiry. Redis carries
// the entry when configured so revocation survives restarts and is shared
// across replicas; otherwise an in-process map serves a single instance.
func BlacklistToken(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = rc.Set(ctx, "auth:revoked:"+tokenDigest(token), "1", ttl).Err()
		return
	}

	revokedMu.Lock()
	revoked[tokenDigest(token)] = expiresAt
	revokedMu.Unlock()
}

// IsTokenBlacklisted reports whether a token was revoked before its expiry.
// A Redis error fails open; an unreachable cache must not lock every
// session out.
func IsTokenBlacklisted(token string) bool {
	digest := tokenDigest(token)

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		n, err := rc.Exists(ctx, "auth:revoked:"+digest).Result()
		if err == nil {
			return n > 0
		}
		return false
	}

	revokedMu.RLock()
	expiresAt, ok := revoked[digest]
	revokedMu.RUnlock()
	if !ok {
		return false
	}

	if time.Now().After(expiresAt) {
		revokedMu.Lock()
		delete(revoked, digest)
		revokedMu.Unlock()
		return false
	}
	return true
}
