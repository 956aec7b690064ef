package snapshot

import (
	"context"
	"errors"
	"log"
	"time"

	apperrors "github.com/louisbranch/storefront/internal/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/storefront/internal/services/storefront/snapshot"

// SequenceSource reports the last event sequence folded into the read model.
type SequenceSource interface {
	LastSeq() uint64
}

// settledSource is a SequenceSource that can hold appends while the store is
// exported, so the sequence and the state describe the same point in the log.
type settledSource interface {
	Settled(fn func(lastSeq uint64))
}

// Writer persists the read model through a sink.
type Writer struct {
	Store  *readmodel.Store
	Sink   Sink
	Log    SequenceSource
	Now    func() time.Time
	Tracer trace.Tracer
}

// Persist builds an artifact from the store and writes it. Sink failures are
// returned as SNAPSHOT_WRITE_FAILED and never touch the store.
func (w Writer) Persist(ctx context.Context) (artifact Artifact, err error) {
	if w.Store == nil || w.Sink == nil {
		return Artifact{}, errors.New("snapshot writer requires a store and a sink")
	}
	tracer := w.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	ctx, span := tracer.Start(ctx, "storefront.snapshot.persist")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	state, lastSeq := w.capture()
	artifact = Build(state, lastSeq, now())
	span.SetAttributes(
		attribute.Int64("storefront.snapshot.last_seq", int64(lastSeq)),
		attribute.Int("storefront.snapshot.orders", len(artifact.Orders)),
	)
	if err := w.Sink.Write(ctx, artifact); err != nil {
		log.Printf("snapshot persist failed last_seq=%d err=%v", lastSeq, err)
		return Artifact{}, apperrors.Wrap(apperrors.CodeSnapshotWriteFailed, "write snapshot", err)
	}
	log.Printf("snapshot persisted last_seq=%d inventory=%d clients=%d orders=%d devices=%d",
		lastSeq, len(artifact.Inventory), len(artifact.Clients), len(artifact.Orders), len(artifact.Devices))
	return artifact, nil
}

// capture exports the store together with the sequence it reflects. Sources
// without a hold are read after the export.
func (w Writer) capture() (readmodel.State, uint64) {
	switch src := w.Log.(type) {
	case nil:
		return w.Store.Export(), 0
	case settledSource:
		var (
			state readmodel.State
			seq   uint64
		)
		src.Settled(func(lastSeq uint64) {
			seq = lastSeq
			state = w.Store.Export()
		})
		return state, seq
	default:
		state := w.Store.Export()
		return state, src.LastSeq()
	}
}

// Bootstrap loads the latest artifact into store. A missing artifact leaves the
// store empty and reports loaded=false.
func Bootstrap(ctx context.Context, sink Sink, store *readmodel.Store) (artifact Artifact, loaded bool, err error) {
	if sink == nil || store == nil {
		return Artifact{}, false, errors.New("snapshot bootstrap requires a sink and a store")
	}
	artifact, err = sink.Read(ctx)
	if errors.Is(err, ErrNotFound) {
		log.Printf("snapshot bootstrap skipped reason=not_found")
		return Artifact{}, false, nil
	}
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return Artifact{}, false, err
		}
		return Artifact{}, false, apperrors.Wrap(apperrors.CodeSnapshotReadFailed, "read snapshot", err)
	}
	if err := artifact.Validate(); err != nil {
		return Artifact{}, false, err
	}
	store.Load(artifact.State())
	log.Printf("snapshot bootstrap loaded last_seq=%d generated_at=%s", artifact.LastSeq, artifact.GeneratedAt.Format(time.RFC3339))
	return artifact, true, nil
}
