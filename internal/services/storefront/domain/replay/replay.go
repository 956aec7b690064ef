// Package replay feeds the global event log, in sequence order, into an applier.
package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

const defaultPageSize = 200

var (
	// ErrEventStoreRequired indicates a missing event store.
	ErrEventStoreRequired = errors.New("event store is required")
	// ErrApplierRequired indicates a missing applier.
	ErrApplierRequired = errors.New("applier is required")
)

// EventStore lists events for replay.
type EventStore interface {
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error)
}

// Applier applies a domain event to projection state.
type Applier interface {
	Apply(ctx context.Context, evt event.Event) error
}

// Options configures replay behavior.
type Options struct {
	AfterSeq uint64
	UntilSeq uint64
	PageSize int
}

// Result captures replay outcomes.
type Result struct {
	LastSeq uint64
	Applied int
}

// Replay applies events after opts.AfterSeq in order, stopping after
// opts.UntilSeq when set. A hole in the sequence aborts the replay.
func Replay(ctx context.Context, store EventStore, applier Applier, opts Options) (Result, error) {
	if store == nil {
		return Result{}, ErrEventStoreRequired
	}
	if applier == nil {
		return Result{}, ErrApplierRequired
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	result := Result{LastSeq: opts.AfterSeq}
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		events, err := store.ListEvents(ctx, result.LastSeq, pageSize)
		if err != nil {
			return result, err
		}
		if len(events) == 0 {
			return result, nil
		}
		for _, evt := range events {
			if opts.UntilSeq > 0 && evt.Seq > opts.UntilSeq {
				return result, nil
			}
			expectedSeq := result.LastSeq + 1
			if evt.Seq != expectedSeq {
				return result, fmt.Errorf("event sequence gap: expected %d got %d", expectedSeq, evt.Seq)
			}
			if err := applier.Apply(ctx, evt); err != nil {
				return result, fmt.Errorf("apply seq=%d type=%s: %w", evt.Seq, evt.Type, err)
			}
			result.LastSeq = evt.Seq
			result.Applied++
		}
		if len(events) < pageSize {
			return result, nil
		}
	}
}
