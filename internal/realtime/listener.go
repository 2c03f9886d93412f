package realtime

import (
	"context"
	"encoding/json"
	"time"

	"booking/internal/feed"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const (
	initialResubscribeWait = time.Second
	maxResubscribeWait     = time.Minute
	subscriptionCheckEvery = 5 * time.Second
)

// Listener consumes the booking mutation log and turns status updates
// into reload pushes. It runs for the lifetime of the process; losing the
// subscription triggers a resubscribe with exponential backoff instead of
// silently ending notification delivery.
type Listener struct {
	conn       *nats.Conn
	resolver   *Resolver
	dispatcher *Dispatcher
	logger     zerolog.Logger
}

func NewListener(conn *nats.Conn, registry *Registry, logger zerolog.Logger) *Listener {
	return &Listener{
		conn:       conn,
		resolver:   NewResolver(),
		dispatcher: NewDispatcher(registry, logger),
		logger:     logger,
	}
}

// Run blocks until ctx is cancelled, keeping a subscription on the
// booking change subjects alive.
func (l *Listener) Run(ctx context.Context) {
	wait := initialResubscribeWait

	for {
		sub, err := l.conn.Subscribe(feed.SubjectWildcard, l.handleMessage)
		if err != nil {
			l.logger.Error().Err(err).Dur("retryIn", wait).Msg("Change feed subscription failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			wait = nextWait(wait)
			continue
		}

		l.logger.Info().Str("subject", feed.SubjectWildcard).Msg("Change feed listener subscribed")
		wait = initialResubscribeWait

		if l.superviseSubscription(ctx, sub) {
			return
		}

		l.logger.Warn().Dur("retryIn", wait).Msg("Change feed subscription lost, resubscribing")
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
		wait = nextWait(wait)
	}
}

// superviseSubscription waits for ctx cancellation or subscription loss.
// It returns true when the listener should stop for good.
func (l *Listener) superviseSubscription(ctx context.Context, sub *nats.Subscription) bool {
	ticker := time.NewTicker(subscriptionCheckEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = sub.Unsubscribe()
			l.logger.Info().Msg("Change feed listener stopped")
			return true
		case <-ticker.C:
			if !sub.IsValid() || l.conn.IsClosed() {
				return false
			}
		}
	}
}

func nextWait(wait time.Duration) time.Duration {
	wait *= 2
	if wait > maxResubscribeWait {
		wait = maxResubscribeWait
	}
	return wait
}

// handleMessage processes a single mutation event. A malformed or
// unrelated event is logged and dropped; it never takes the listener
// down.
func (l *Listener) handleMessage(msg *nats.Msg) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().Interface("panic", r).Str("subject", msg.Subject).Msg("Panic while handling change event")
		}
	}()

	var event feed.ChangeEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		l.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("Discarding malformed change event")
		return
	}

	if event.BookingID == 0 {
		// Fall back to the subject when the payload lacks the key.
		id, err := feed.ParseSubject(msg.Subject)
		if err != nil {
			l.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("Discarding change event without booking id")
			return
		}
		event.BookingID = id
	}

	if event.Op == feed.OpDelete {
		l.resolver.Invalidate(event.BookingID)
		return
	}

	if !event.IsStatusUpdate() {
		return
	}

	recipients := l.resolver.Resolve(event.BookingID)
	if len(recipients) == 0 {
		return
	}

	l.dispatcher.DispatchReload(recipients)
}
