package gateway

import (
	"context"
	"sync"
	"time"
)

const (
	defaultRetryDelay = 2 * time.Second
	defaultCacheTTL   = 2 * time.Minute
)

// Loader serves the municipality list to the pages that need it. A
// failed fetch is retried exactly once after a fixed delay; a second
// failure is terminal rather than looping against a dead endpoint.
// Successful loads are cached briefly; the list changes rarely.
type Loader struct {
	client *Client

	// RetryDelay is the pause before the single retry. Tests shrink it.
	RetryDelay time.Duration

	mu      sync.RWMutex
	names   []string
	expires time.Time
	ttl     time.Duration
}

// NewLoader wraps a client with retry-once and caching semantics.
func NewLoader(c *Client) *Loader {
	return &Loader{
		client:     c,
		RetryDelay: defaultRetryDelay,
		ttl:        defaultCacheTTL,
	}
}

// SetCacheTTL overrides the cache duration (primarily for tests).
func (l *Loader) SetCacheTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	l.mu.Lock()
	l.ttl = d
	l.mu.Unlock()
}

// Load returns the municipality list. Callers must treat the result as
// read-only shared state.
func (l *Loader) Load(ctx context.Context) ([]string, error) {
	if names, ok := l.cached(); ok {
		return names, nil
	}

	names, err := l.client.Municipalities(ctx)
	if err != nil {
		select {
		case <-ctx.Done():
			return nil, &TransportError{Err: ctx.Err()}
		case <-time.After(l.RetryDelay):
		}
		names, err = l.client.Municipalities(ctx)
		if err != nil {
			return nil, err
		}
	}

	l.store(names)
	return names, nil
}

func (l *Loader) cached() ([]string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.names == nil || time.Now().After(l.expires) {
		return nil, false
	}
	return l.names, true
}

func (l *Loader) store(names []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = names
	l.expires = time.Now().Add(l.ttl)
}
