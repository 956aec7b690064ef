// Package server wires the storefront core into a running process: event log,
// projector, command engine, snapshot sink, and the HTTP and gRPC listeners.
package server

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/engine"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/journal"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/replay"
	"github.com/louisbranch/storefront/internal/services/storefront/projection"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
)

// Runtime is the in-process write and read side: one log, one read model, and
// the projector subscribed between them.
type Runtime struct {
	Registries engine.Registries
	Journal    *journal.Memory
	Store      *readmodel.Store
	Applier    projection.Applier
	Commands   *engine.Handler
}

// NewRuntime builds validated registries and subscribes the projector to a
// fresh log.
func NewRuntime(opts ...journal.Option) (*Runtime, error) {
	registries, err := engine.BuildRegistries()
	if err != nil {
		return nil, fmt.Errorf("build registries: %w", err)
	}
	if err := engine.ValidateProjectionCoverage(registries.Events, projection.HandledTypes()); err != nil {
		return nil, fmt.Errorf("validate projection coverage: %w", err)
	}
	store := readmodel.NewStore()
	applier := projection.NewApplier(store)
	eventLog := journal.NewMemory(registries.Events, opts...)
	eventLog.Subscribe(applier.Handle)
	return &Runtime{
		Registries: registries,
		Journal:    eventLog,
		Store:      store,
		Applier:    applier,
		Commands: &engine.Handler{
			Commands: registries.Commands,
			Journal:  eventLog,
			Locks:    &engine.StreamLocks{},
		},
	}, nil
}

// Rebuild clears the read model and replays the whole log into it. Commands
// must not run while a rebuild is in progress.
func (r *Runtime) Rebuild(ctx context.Context) (replay.Result, error) {
	r.Store.Load(readmodel.NewState())
	result, err := replay.Replay(ctx, r.Journal, r.Applier, replay.Options{})
	if err != nil {
		return result, fmt.Errorf("rebuild read model: %w", err)
	}
	log.Printf("read model rebuilt last_seq=%d applied=%d", result.LastSeq, result.Applied)
	return result, nil
}
