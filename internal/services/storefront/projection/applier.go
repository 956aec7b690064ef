package projection

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
)

// ErrUnhandledEvent is returned for event types without a projection handler.
var ErrUnhandledEvent = errors.New("unhandled projection event")

// Applier applies event journal entries to the read model.
type Applier struct {
	// Store receives every projected write.
	Store *readmodel.Store
}

// NewApplier returns an applier writing to store.
func NewApplier(store *readmodel.Store) Applier {
	return Applier{Store: store}
}

// Apply projects one event. Each call runs inside a single store transaction.
func (a Applier) Apply(ctx context.Context, evt event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.Store == nil {
		return errors.New("read model store is not configured")
	}
	h, ok := handlers[evt.Type]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnhandledEvent, evt.Type)
	}
	return a.Store.Update(func(tx *readmodel.Tx) error {
		return h.apply(tx, evt)
	})
}

// Handle is the journal subscriber form of Apply. Failures are logged before
// being returned to the journal.
func (a Applier) Handle(ctx context.Context, evt event.Event) error {
	if err := a.Apply(ctx, evt); err != nil {
		log.Printf("projection apply failed seq=%d type=%s stream=%s err=%v", evt.Seq, evt.Type, evt.StreamID, err)
		return err
	}
	return nil
}

// skip records an event that referenced a record the store does not know.
func skip(tx *readmodel.Tx, evt event.Event, kind, id string) {
	log.Printf("projection skip seq=%d type=%s kind=%s id=%s", evt.Seq, evt.Type, kind, id)
	tx.Skip()
}

// eventTime normalizes timestamps to UTC so projections persist a stable
// representation.
func eventTime(evt event.Event) time.Time {
	return evt.Timestamp.UTC()
}
