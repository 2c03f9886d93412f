package realtime

import (
	"sync"

	"github.com/rs/zerolog"
)

// Registry maps a user identity to its live websocket connection. At most
// one connection is reachable per identity; a newer announce for the same
// identity replaces the previous entry without closing it.
//
// The map is only ever touched through Register, Unregister and Lookup.
type Registry struct {
	mu     sync.RWMutex
	conns  map[uint]*Client
	logger zerolog.Logger
}

func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		conns:  make(map[uint]*Client),
		logger: logger,
	}
}

// Register stores client as the connection for userID, overwriting any
// previous entry (last writer wins).
func (r *Registry) Register(userID uint, client *Client) {
	r.mu.Lock()
	r.conns[userID] = client
	total := len(r.conns)
	r.mu.Unlock()

	r.logger.Info().Uint("userId", userID).Int("total", total).Msg("Client registered")
}

// Unregister removes the entry for userID only if the stored connection
// is the same instance as client. A disconnect arriving after a newer
// registration for the same identity is a no-op.
func (r *Registry) Unregister(userID uint, client *Client) {
	r.mu.Lock()
	current, ok := r.conns[userID]
	if ok && current == client {
		delete(r.conns, userID)
	}
	total := len(r.conns)
	r.mu.Unlock()

	if ok && current == client {
		r.logger.Info().Uint("userId", userID).Int("total", total).Msg("Client unregistered")
	}
}

// Lookup returns the live connection for userID, if any.
func (r *Registry) Lookup(userID uint) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.conns[userID]
	return client, ok
}

// Count returns the number of registered connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}
