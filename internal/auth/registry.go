// Package auth implements the in-memory bearer token registries that back
// user and admin sessions.  A token is an opaque random string whose only
// meaning is its registry entry; revoking the entry kills the session and
// the whole set is intentionally lost on process restart.  The service
// owns two independent Registry instances, one per principal kind, and a
// token valid in one has no meaning in the other.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
)

// tokenBytes is the entropy of an issued token: 32 bytes = 256 bits,
// encoded as 43 URL-safe characters.
const tokenBytes = 32

// Registry maps opaque bearer tokens to principal IDs.  All methods are
// safe for concurrent use.  A principal may hold any number of tokens at
// once; each is revocable independently.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]uint64)}
}

// Issue generates a fresh random token, maps it to the principal and
// returns it.  It only fails if the system random source does.
func (r *Registry) Issue(principalID uint64) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	r.mu.Lock()
	r.tokens[token] = principalID
	r.mu.Unlock()
	return token, nil
}

// Resolve returns the principal ID a token was issued to, or ok=false for
// a token this registry never issued or has since revoked.
func (r *Registry) Resolve(token string) (uint64, bool) {
	r.mu.RLock()
	id, ok := r.tokens[token]
	r.mu.RUnlock()
	return id, ok
}

// Revoke removes a token from the registry.  Revoking an absent token is
// a no-op, so Revoke is idempotent.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	delete(r.tokens, token)
	r.mu.Unlock()
}
