package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/journal"
)

const tracerName = "github.com/louisbranch/storefront/internal/services/storefront/domain/engine"

var (
	// ErrCommandRegistryRequired indicates a missing command registry.
	ErrCommandRegistryRequired = errors.New("command registry is required")
	// ErrJournalRequired indicates a missing event journal.
	ErrJournalRequired = errors.New("event journal is required")
)

// EventJournal reads streams and appends events.
type EventJournal interface {
	StreamReader
	Append(ctx context.Context, evt event.Event) (event.Event, error)
}

// Handler validates, decides, and appends commands.
type Handler struct {
	Commands *command.Registry
	Journal  EventJournal
	Locks    *StreamLocks
	Now      func() time.Time
	Tracer   trace.Tracer
}

// Result captures execution outcomes.
type Result struct {
	Decision command.Decision
	// State is the aggregate state after folding the appended events.
	State any
	// Version is the stream version after the command.
	Version uint64
}

// Execute runs cmd end to end.
//
// A rejected decision returns a *RejectionError and appends nothing. When an
// event was appended but a subscriber failed, Execute returns the result along
// with a non-retryable error.
func (h *Handler) Execute(ctx context.Context, cmd command.Command) (result Result, err error) {
	if h.Commands == nil {
		return Result{}, ErrCommandRegistryRequired
	}
	if h.Journal == nil {
		return Result{}, ErrJournalRequired
	}
	validated, err := h.Commands.ValidateForDecision(cmd)
	if err != nil {
		return Result{}, err
	}
	cmd = validated

	domain, ok := DomainFor(cmd.Type.Domain())
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrStreamDomainUnknown, cmd.Type.Domain())
	}

	tracer := h.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	ctx, span := tracer.Start(ctx, "storefront.command", trace.WithAttributes(
		attribute.String("storefront.command_type", string(cmd.Type)),
		attribute.String("storefront.stream_id", cmd.StreamID),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if h.Locks != nil {
		unlock := h.Locks.Lock(cmd.StreamID)
		defer unlock()
	}

	state, version, err := hydrate(ctx, h.Journal, domain, cmd.StreamID)
	if err != nil {
		return Result{}, err
	}

	now := h.Now
	if now == nil {
		now = time.Now
	}
	decision := domain.Decide(state, cmd, now)
	if decision.Rejected() {
		log.Printf("command rejected type=%s stream=%s codes=%s", cmd.Type, cmd.StreamID, decision.Codes())
		span.SetAttributes(attribute.String("storefront.rejection_codes", decision.Codes()))
		return Result{Decision: decision, State: state, Version: version}, &RejectionError{
			CommandType: cmd.Type,
			StreamID:    cmd.StreamID,
			Rejections:  decision.Rejections,
		}
	}

	stored := make([]event.Event, 0, len(decision.Events))
	var subscriberErr error
	for _, evt := range decision.Events {
		evt.ExpectedVersion = version
		if version == 0 {
			evt.ExpectedVersion = event.ExpectNew
		}
		appended, appendErr := h.Journal.Append(ctx, evt)
		if appendErr != nil && !errors.Is(appendErr, journal.ErrSubscriberFailed) {
			if len(stored) > 0 {
				appendErr = wrapNonRetryable(appendErr)
			}
			log.Printf("command append failed type=%s stream=%s err=%v", cmd.Type, cmd.StreamID, appendErr)
			return Result{}, appendErr
		}
		if appendErr != nil {
			log.Printf("event subscribers failed type=%s seq=%d err=%v", appended.Type, appended.Seq, appendErr)
			subscriberErr = errors.Join(subscriberErr, appendErr)
		}
		stored = append(stored, appended)
		version = appended.StreamVersion
		state, err = domain.Fold(state, appended)
		if err != nil {
			return Result{}, wrapNonRetryable(fmt.Errorf("fold appended %s: %w", appended.Type, err))
		}
	}
	decision.Events = stored
	result = Result{Decision: decision, State: state, Version: version}
	if subscriberErr != nil {
		return result, wrapNonRetryable(subscriberErr)
	}
	return result, nil
}
