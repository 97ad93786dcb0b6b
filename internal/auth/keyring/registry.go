// Package keyring holds the per-owner grants of short-lived symmetric key
// material handed to clients before they submit encrypted credential
// payloads.
package keyring

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// KeySize is the number of random bytes behind one grant. The key travels
// hex-encoded and is used as a passphrase by the transport codec.
const KeySize = 16

type entry struct {
	key       string
	expiresAt time.Time
	timer     *time.Timer
}

// Registry maps a client-supplied owner id to its live key grant. A grant is
// replaced by a re-issue, removed when its TTL elapses, and never consumed by
// a read, so one key can decrypt any number of payloads until it expires.
type Registry struct {
	mu   sync.Mutex
	keys map[string]*entry
	ttl  time.Duration
	now  func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		keys: make(map[string]*entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Issue generates fresh key material for ownerID, replacing any prior grant
// and scheduling its removal after the TTL.
func (r *Registry) Issue(ownerID string) (string, error) {
	buf := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("failed to generate key material: %w", err)
	}
	key := hex.EncodeToString(buf)

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.keys[ownerID]; ok && old.timer != nil {
		old.timer.Stop()
	}

	e := &entry{key: key, expiresAt: r.now().Add(r.ttl)}
	e.timer = time.AfterFunc(r.ttl, func() {
		r.remove(ownerID, e)
	})
	r.keys[ownerID] = e

	return key, nil
}

// Resolve returns the live key material for ownerID. The second return is
// false when no grant exists or the grant has expired.
func (r *Registry) Resolve(ownerID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.keys[ownerID]
	if !ok {
		return "", false
	}
	if !r.now().Before(e.expiresAt) {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(r.keys, ownerID)
		return "", false
	}

	return e.key, true
}

// remove drops the entry only if it is still the one the timer was armed for,
// so an eviction never races a re-issue for the same owner.
func (r *Registry) remove(ownerID string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.keys[ownerID]; ok && cur == e {
		delete(r.keys, ownerID)
	}
}
