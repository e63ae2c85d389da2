// Package memory provides an in-process token revocation store used when
// Redis is not configured
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

// TokenStore keeps revoked token IDs in a map until they expire
type TokenStore struct {
	revoked map[string]time.Time
	mutex   sync.RWMutex
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

var _ outbound.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates a store that sweeps expired entries every interval.
// Close must be called to stop the sweeper.
func NewTokenStore(interval time.Duration) *TokenStore {
	if interval <= 0 {
		interval = time.Minute
	}
	s := &TokenStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go s.cleanup(interval)

	return s
}

// Revoke marks tokenID as revoked for ttl
func (s *TokenStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.revoked[tokenID] = s.now().Add(ttl)
	return nil
}

// IsRevoked reports whether tokenID was revoked and has not yet expired
func (s *TokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	expiresAt, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	return s.now().Before(expiresAt), nil
}

// Len returns the number of tracked entries, expired or not
func (s *TokenStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.revoked)
}

// Close stops the background sweeper
func (s *TokenStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

func (s *TokenStore) cleanup(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *TokenStore) sweep() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	for id, expiresAt := range s.revoked {
		if !now.Before(expiresAt) {
			delete(s.revoked, id)
		}
	}
}
