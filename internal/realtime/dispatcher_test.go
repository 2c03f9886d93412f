package realtime

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_SkipsDisconnectedRecipient(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	dispatcher := NewDispatcher(registry, zerolog.Nop())

	// No connection registered for user 7: must be a silent no-op.
	dispatcher.DispatchReload([]uint{7})
}

func TestDispatcher_SendsExactlyOnceToConnectedRecipient(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	dispatcher := NewDispatcher(registry, zerolog.Nop())

	client := newTestClient("a", registry)
	registry.Register(7, client)

	dispatcher.DispatchReload([]uint{7})

	require.Len(t, client.send, 1)
	assert.JSONEq(t, `{"msg":"reload"}`, string(<-client.send))
}

func TestDispatcher_MixedRecipients(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	dispatcher := NewDispatcher(registry, zerolog.Nop())

	connected := newTestClient("a", registry)
	registry.Register(1, connected)

	dispatcher.DispatchReload([]uint{1, 2})

	assert.Len(t, connected.send, 1)
	_, ok := registry.Lookup(1)
	assert.True(t, ok)
}

func TestDispatcher_FailedSendUnregisters(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	dispatcher := NewDispatcher(registry, zerolog.Nop())

	client := newTestClient("a", registry)
	client.markClosed() // peer gone between lookup and send
	registry.Register(7, client)

	dispatcher.DispatchReload([]uint{7})

	_, ok := registry.Lookup(7)
	assert.False(t, ok, "dead connection should be dropped from the registry")
}

// A stale connection failing its send must not evict the newer
// registration for the same identity.
func TestDispatcher_FailedSendDoesNotEvictNewerConnection(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	dispatcher := NewDispatcher(registry, zerolog.Nop())

	stale := newTestClient("a", registry)
	stale.markClosed()
	registry.Register(7, stale)

	// Push to the stale connection fails and unregisters it...
	dispatcher.DispatchReload([]uint{7})

	// ...a fresh connection takes over and pushes keep working.
	fresh := newTestClient("b", registry)
	registry.Register(7, fresh)
	dispatcher.DispatchReload([]uint{7})

	got, ok := registry.Lookup(7)
	require.True(t, ok)
	assert.Same(t, fresh, got)
	assert.Len(t, fresh.send, 1)
}

func TestClient_TrySendBufferFull(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	client := newTestClient("a", registry)

	payload := []byte(`{"msg":"reload"}`)
	for i := 0; i < sendBufSize; i++ {
		require.NoError(t, client.TrySend(payload))
	}

	err := client.TrySend(payload)
	assert.Error(t, err, "send into a full buffer must fail instead of blocking")
}
