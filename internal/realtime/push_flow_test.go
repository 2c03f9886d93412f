package realtime

import (
	"booking"
	"booking/internal/api/models"
	"booking/internal/api/repo"
	"booking/internal/api/service"
	"booking/pkg"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanupRealtimeNotifications(t *testing.T, userIDs ...uint) {
	for _, id := range userIDs {
		booking.DB.Unscoped().Where("user_id = ?", id).Delete(&models.Notification{})
	}
}

// Covers the full propagation chain: a status change persisted through
// the booking service reaches the change feed, the listener resolves the
// recipients and the connected client receives a reload push.
func TestStatusChange_PushesReloadToConnectedClient(t *testing.T) {
	setupRealtimeTestDB(t)

	client := createTestUser(t)
	defer cleanupRealtimeUser(t, client.ID)
	agentUser := createTestUser(t)
	defer cleanupRealtimeUser(t, agentUser.ID)
	agent := createTestAgent(t, agentUser.ID)
	defer cleanupRealtimeAgent(t, agent.ID)
	b := createTestBooking(t, client.ID, agent.ID)
	defer cleanupRealtimeBooking(t, b.ID)
	defer cleanupRealtimeNotifications(t, client.ID)

	registry := NewRegistry(zerolog.Nop())
	listener := NewListener(booking.Nats, registry, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listener.Run(ctx)

	require.Eventually(t, func() bool {
		return booking.Nats.NumSubscriptions() > 0
	}, 2*time.Second, 10*time.Millisecond, "listener never subscribed")

	conn := NewClient("push-flow-client", registry, nil, zerolog.Nop())
	registry.Register(client.ID, conn)

	svc := service.NewBookingService()
	text, err := svc.ChangeStatus(b.ID, string(models.StatusConfirmed), agentUser.ID, models.RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, "Your booking has been confirmed.", text)

	require.Eventually(t, func() bool {
		return len(conn.send) > 0
	}, 3*time.Second, 20*time.Millisecond, "no reload push delivered")
	assert.JSONEq(t, `{"msg":"reload"}`, string(<-conn.send))

	notifications, err := repo.NewNotificationRepository().FindByUser(client.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Your booking has been confirmed.", notifications[0].Text)
	assert.False(t, notifications[0].Read)

	// A rapid follow-up transition delivers its own push.
	_, err = svc.ChangeStatus(b.ID, string(models.StatusCompleted), agentUser.ID, models.RoleAgent)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(conn.send) > 0
	}, 3*time.Second, 20*time.Millisecond, "no reload push for the second transition")
}

// A status change with nobody connected is still a successful transition:
// the push is simply skipped.
func TestStatusChange_NoConnectedRecipients(t *testing.T) {
	setupRealtimeTestDB(t)

	client := createTestUser(t)
	defer cleanupRealtimeUser(t, client.ID)
	agentUser := createTestUser(t)
	defer cleanupRealtimeUser(t, agentUser.ID)
	agent := createTestAgent(t, agentUser.ID)
	defer cleanupRealtimeAgent(t, agent.ID)
	b := createTestBooking(t, client.ID, agent.ID)
	defer cleanupRealtimeBooking(t, b.ID)
	defer cleanupRealtimeNotifications(t, client.ID)

	registry := NewRegistry(zerolog.Nop())
	listener := NewListener(booking.Nats, registry, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listener.Run(ctx)

	require.Eventually(t, func() bool {
		return booking.Nats.NumSubscriptions() > 0
	}, 2*time.Second, 10*time.Millisecond, "listener never subscribed")

	_, err := service.NewBookingService().ChangeStatus(b.ID, string(models.StatusRejected), agentUser.ID, models.RoleAgent)
	require.NoError(t, err)

	// Give the listener time to process the event without anyone registered.
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, registry.Count())
}

// Deleting a booking drops its cached recipient set through the change feed.
func TestBookingDelete_DropsCachedRecipients(t *testing.T) {
	setupRealtimeTestDB(t)

	client := createTestUser(t)
	defer cleanupRealtimeUser(t, client.ID)
	agentUser := createTestUser(t)
	defer cleanupRealtimeUser(t, agentUser.ID)
	agent := createTestAgent(t, agentUser.ID)
	defer cleanupRealtimeAgent(t, agent.ID)
	b := createTestBooking(t, client.ID, agent.ID)
	defer cleanupRealtimeBooking(t, b.ID)

	registry := NewRegistry(zerolog.Nop())
	listener := NewListener(booking.Nats, registry, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listener.Run(ctx)

	require.Eventually(t, func() bool {
		return booking.Nats.NumSubscriptions() > 0
	}, 2*time.Second, 10*time.Millisecond, "listener never subscribed")

	resolver := NewResolver()
	require.NotEmpty(t, resolver.Resolve(b.ID), "expected the resolution to prime the cache")

	require.NoError(t, repo.NewBookingRepository().Delete(b.ID))

	require.Eventually(t, func() bool {
		var cached []uint
		return pkg.IsRedisNil(pkg.RedisGet(recipientCacheKey(b.ID), &cached))
	}, 3*time.Second, 20*time.Millisecond, "cached recipient set was not dropped")
}
