package feed

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Publisher emits the mutation log of the booking collection. The booking
// repository publishes one event per applied create/update/delete.
type Publisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

func NewPublisher(conn *nats.Conn, logger zerolog.Logger) *Publisher {
	return &Publisher{conn: conn, logger: logger}
}

// Publish sends a ChangeEvent on the per-booking subject. Publish failures
// are logged and returned; callers that sit on the write path treat them
// as non-fatal because the inbox write is the durable signal.
func (p *Publisher) Publish(op Operation, bookingID uint, changedFields ...string) error {
	event := ChangeEvent{
		Op:            op,
		BookingID:     bookingID,
		ChangedFields: changedFields,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}

	if err := p.conn.Publish(Subject(bookingID), data); err != nil {
		p.logger.Error().Err(err).Uint("bookingId", bookingID).Str("op", string(op)).Msg("Failed to publish change event")
		return fmt.Errorf("publish change event: %w", err)
	}

	p.logger.Debug().Uint("bookingId", bookingID).Str("op", string(op)).Strs("fields", changedFields).Msg("Published change event")
	return nil
}
