package realtime

import (
	"github.com/rs/zerolog"
)

// reloadPayload is the one-shot invalidation signal. It carries no detail;
// the client re-fetches authoritative state on receipt.
var reloadPayload = []byte(`{"msg":"reload"}`)

// Dispatcher pushes payloads to whichever recipients are currently
// connected. There is no retry, queueing or delivery guarantee; a
// recipient without a live connection observes the new state on its next
// ordinary request.
type Dispatcher struct {
	registry *Registry
	logger   zerolog.Logger
}

func NewDispatcher(registry *Registry, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, logger: logger}
}

// DispatchReload sends the reload signal to every connected recipient.
func (d *Dispatcher) DispatchReload(recipients []uint) {
	d.Dispatch(recipients, reloadPayload)
}

// Dispatch sends payload to each recipient that has a live connection.
// A failed send means the peer went away between lookup and send; the
// stale entry is removed via compare-and-remove and the failure is not
// propagated.
func (d *Dispatcher) Dispatch(recipients []uint, payload []byte) {
	for _, userID := range recipients {
		client, ok := d.registry.Lookup(userID)
		if !ok {
			d.logger.Debug().Uint("userId", userID).Msg("Recipient not connected, skipping push")
			continue
		}

		if err := client.TrySend(payload); err != nil {
			d.logger.Warn().Err(err).Uint("userId", userID).Msg("Push failed, dropping connection from registry")
			d.registry.Unregister(userID, client)
			continue
		}

		d.logger.Debug().Uint("userId", userID).Msg("Pushed reload signal")
	}
}
