// File: internal/ui/registry.go
package ui

import (
	"context"
	"sync"
	"time"

	"weather_prediction_ui/internal/config"
	"weather_prediction_ui/internal/session"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// maxCleanupInterval caps how long evicted Clients linger in memory.
const maxCleanupInterval = 5 * time.Minute

// Registry keeps one Client per browser. Clients idle longer than the configured
// timeout are dropped; their persisted session is picked up again on the next request.
type Registry struct {
	mu       sync.Mutex
	cache    *cache.Cache
	api      Backend
	sessions session.Service
	logger   *zap.Logger
}

// NewRegistry creates a new in-memory Client registry.
func NewRegistry(cfg *config.Config, api Backend, sessions session.Service, logger *zap.Logger) *Registry {
	cleanup := cfg.ClientIdleTimeout
	if cleanup > maxCleanupInterval {
		cleanup = maxCleanupInterval
	}
	return &Registry{
		cache:    cache.New(cfg.ClientIdleTimeout, cleanup),
		api:      api,
		sessions: sessions,
		logger:   logger.Named("ui"),
	}
}

// Get returns the browser's Client, creating it on first use. Every call
// restarts the idle timer. A Client whose session could not be loaded is not
// cached, so the next request tries again.
func (r *Registry) Get(ctx context.Context, browserID string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, found := r.cache.Get(browserID); found {
		c := v.(*Client)
		r.cache.SetDefault(browserID, c)
		return c, nil
	}

	logger := r.logger.With(zap.String("browser", shortID(browserID)))
	c, err := NewClient(ctx, browserID, r.api, r.sessions, logger)
	if err != nil {
		logger.Error("Failed to load persisted session", zap.Error(err))
		return nil, err
	}
	r.cache.SetDefault(browserID, c)
	return c, nil
}

// Len returns the number of live Clients, including expired ones not yet cleaned up.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// shortID keeps browser identifiers out of logs in full.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
