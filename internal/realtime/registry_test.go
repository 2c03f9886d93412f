package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id string, registry *Registry) *Client {
	return NewClient(id, registry, nil, zerolog.Nop())
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	client := newTestClient("a", registry)

	registry.Register(42, client)

	got, ok := registry.Lookup(42)
	require.True(t, ok)
	assert.Same(t, client, got)
	assert.Equal(t, 1, registry.Count())
}

func TestRegistry_LookupAbsent(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())

	_, ok := registry.Lookup(42)
	assert.False(t, ok)
}

func TestRegistry_LastRegisterWins(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	clientA := newTestClient("a", registry)
	clientB := newTestClient("b", registry)

	registry.Register(42, clientA)
	registry.Register(42, clientB)

	got, ok := registry.Lookup(42)
	require.True(t, ok)
	assert.Same(t, clientB, got)
	assert.Equal(t, 1, registry.Count())
}

func TestRegistry_UnregisterRemovesOwnEntry(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	client := newTestClient("a", registry)

	registry.Register(42, client)
	registry.Unregister(42, client)

	_, ok := registry.Lookup(42)
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Count())
}

// A disconnect for connection A arriving after connection B re-registered
// the same identity must not remove B.
func TestRegistry_StaleUnregisterIsNoop(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	clientA := newTestClient("a", registry)
	clientB := newTestClient("b", registry)

	registry.Register(42, clientA)
	registry.Register(42, clientB)
	registry.Unregister(42, clientA)

	got, ok := registry.Lookup(42)
	require.True(t, ok)
	assert.Same(t, clientB, got)
}

func TestRegistry_UnregisterUnknownIdentity(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	client := newTestClient("a", registry)

	// Must not panic or affect anything.
	registry.Unregister(99, client)
	assert.Equal(t, 0, registry.Count())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := uint(n%10 + 1)
			client := newTestClient(fmt.Sprintf("c%d", n), registry)
			registry.Register(userID, client)
			registry.Lookup(userID)
			registry.Unregister(userID, client)
		}(i)
	}
	wg.Wait()

	// Every goroutine unregistered its own connection; whatever entries
	// remain must be reachable ones that were overwritten before their
	// owner's unregister (compare-and-remove keeps them).
	for userID := uint(1); userID <= 10; userID++ {
		if c, ok := registry.Lookup(userID); ok {
			assert.NotNil(t, c)
		}
	}
}
