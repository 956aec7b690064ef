package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// ErrStreamDomainUnknown indicates a stream id without a registered domain.
var ErrStreamDomainUnknown = errors.New("stream domain is not registered")

// StreamReader reads a single stream in append order.
type StreamReader interface {
	Query(ctx context.Context, streamID string) ([]event.Event, error)
}

// Hydrate rebuilds aggregate state for a stream by folding every event from
// the zero state. It returns the state and the stream version it reflects.
//
// State is never cached between calls; each command observes the full stream.
func Hydrate(ctx context.Context, store StreamReader, streamID string) (any, uint64, error) {
	domainName, _, ok := event.ParseStreamID(streamID)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", event.ErrStreamIDRequired, streamID)
	}
	domain, ok := DomainFor(domainName)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrStreamDomainUnknown, domainName)
	}
	return hydrate(ctx, store, domain, streamID)
}

func hydrate(ctx context.Context, store StreamReader, domain CoreDomain, streamID string) (any, uint64, error) {
	events, err := store.Query(ctx, streamID)
	if err != nil {
		return nil, 0, fmt.Errorf("load stream %s: %w", streamID, err)
	}
	var state any
	for _, evt := range events {
		state, err = domain.Fold(state, evt)
		if err != nil {
			return nil, 0, fmt.Errorf("fold %s seq=%d: %w", evt.Type, evt.Seq, err)
		}
	}
	return state, uint64(len(events)), nil
}
