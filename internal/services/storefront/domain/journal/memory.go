package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/storefront/internal/platform/id"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

var (
	// ErrVersionConflict indicates the stream moved past the expected version.
	ErrVersionConflict = errors.New("stream version conflict")
	// ErrSubscriberFailed matches a *SubscriberError.
	ErrSubscriberFailed = errors.New("event subscriber failed")
)

// Subscriber receives every event appended after it subscribed.
type Subscriber func(ctx context.Context, evt event.Event) error

// SubscriberError reports subscriber failures for an event that was stored.
type SubscriberError struct {
	Seq    uint64
	Type   event.Type
	Errors []error
}

func (e *SubscriberError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d subscriber(s) failed for seq=%d type=%s: %s", len(e.Errors), e.Seq, e.Type, strings.Join(msgs, "; "))
}

// Unwrap exposes the individual subscriber errors.
func (e *SubscriberError) Unwrap() []error {
	return e.Errors
}

// Is matches ErrSubscriberFailed.
func (e *SubscriberError) Is(target error) bool {
	return target == ErrSubscriberFailed
}

// Option configures a Memory log.
type Option func(*Memory)

// WithClock overrides the clock used for events appended without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator overrides event id generation.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(m *Memory) {
		if newID != nil {
			m.newID = newID
		}
	}
}

type subscription struct {
	id uint64
	fn Subscriber
}

// Memory is an in-memory event log.
type Memory struct {
	registry *event.Registry
	now      func() time.Time
	newID    func() (string, error)

	// publishMu serializes append and notification.
	publishMu sync.Mutex

	mu          sync.RWMutex
	events      []event.Event
	streams     map[string][]int
	subscribers []subscription
	nextSubID   uint64
}

// NewMemory creates an empty log. A nil registry disables append validation.
func NewMemory(registry *event.Registry, opts ...Option) *Memory {
	m := &Memory{
		registry: registry,
		now:      time.Now,
		newID:    id.NewID,
		streams:  make(map[string][]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers fn for future appends and returns a function that removes it.
// Past events are not replayed to new subscribers.
func (m *Memory) Subscribe(fn Subscriber) func() {
	if fn == nil {
		return func() {}
	}
	m.mu.Lock()
	m.nextSubID++
	subID := m.nextSubID
	m.subscribers = append(m.subscribers, subscription{id: subID, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, sub := range m.subscribers {
				if sub.id == subID {
					m.subscribers = append(m.subscribers[:i:i], m.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// Append stores evt and notifies subscribers.
//
// The returned event is valid whenever the error is nil or a *SubscriberError.
// Subscribers must not append to the same log from within a notification.
func (m *Memory) Append(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	m.publishMu.Lock()
	defer m.publishMu.Unlock()

	stored, subs, err := m.store(evt)
	if err != nil {
		return event.Event{}, err
	}

	var failures []error
	for _, sub := range subs {
		if err := notify(ctx, sub.fn, stored); err != nil {
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		return stored, &SubscriberError{Seq: stored.Seq, Type: stored.Type, Errors: failures}
	}
	return stored, nil
}

func (m *Memory) store(evt event.Event) (event.Event, []subscription, error) {
	if m.registry != nil {
		validated, err := m.registry.ValidateForAppend(evt)
		if err != nil {
			return event.Event{}, nil, err
		}
		evt = validated
	} else if strings.TrimSpace(evt.StreamID) == "" {
		return event.Event{}, nil, event.ErrStreamIDRequired
	}

	eventID, err := m.newID()
	if err != nil {
		return event.Event{}, nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := uint64(len(m.streams[evt.StreamID]))
	switch expected := evt.ExpectedVersion; {
	case expected == event.ExpectNew && current != 0:
		return event.Event{}, nil, fmt.Errorf("%w: stream=%s expected new, at version %d", ErrVersionConflict, evt.StreamID, current)
	case expected != 0 && expected != event.ExpectNew && expected != current:
		return event.Event{}, nil, fmt.Errorf("%w: stream=%s expected version %d, at version %d", ErrVersionConflict, evt.StreamID, expected, current)
	}

	evt.ExpectedVersion = 0
	evt.ID = eventID
	evt.Seq = uint64(len(m.events)) + 1
	evt.StreamVersion = current + 1
	if evt.Timestamp.IsZero() {
		evt.Timestamp = m.now()
	}
	evt.Timestamp = evt.Timestamp.UTC()
	evt.PayloadJSON = append([]byte(nil), evt.PayloadJSON...)
	hash, err := event.EventHash(evt)
	if err != nil {
		return event.Event{}, nil, fmt.Errorf("compute event hash: %w", err)
	}
	evt.Hash = hash

	m.events = append(m.events, evt)
	m.streams[evt.StreamID] = append(m.streams[evt.StreamID], len(m.events)-1)
	subs := append([]subscription(nil), m.subscribers...)
	return clone(evt), subs, nil
}

func notify(ctx context.Context, fn Subscriber, evt event.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return fn(ctx, clone(evt))
}

// Query returns the events of a stream in append order.
func (m *Memory) Query(ctx context.Context, streamID string) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	indexes := m.streams[strings.TrimSpace(streamID)]
	events := make([]event.Event, 0, len(indexes))
	for _, i := range indexes {
		events = append(events, clone(m.events[i]))
	}
	return events, nil
}

// ListEvents returns up to limit events with Seq greater than afterSeq.
func (m *Memory) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if afterSeq >= uint64(len(m.events)) {
		return []event.Event{}, nil
	}
	end := afterSeq + uint64(limit)
	if end > uint64(len(m.events)) {
		end = uint64(len(m.events))
	}
	events := make([]event.Event, 0, end-afterSeq)
	for _, evt := range m.events[afterSeq:end] {
		events = append(events, clone(evt))
	}
	return events, nil
}

// StreamVersion returns the number of events in a stream.
func (m *Memory) StreamVersion(ctx context.Context, streamID string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.streams[strings.TrimSpace(streamID)])), nil
}

// LastSeq returns the sequence of the most recent event, or 0 when empty.
func (m *Memory) LastSeq() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.events))
}

// Settled runs fn with the last sequence while appends are held. Every event up
// to that sequence has finished notifying subscribers when fn runs, and none
// is added until it returns. fn must not append.
func (m *Memory) Settled(fn func(lastSeq uint64)) {
	m.publishMu.Lock()
	defer m.publishMu.Unlock()
	fn(m.LastSeq())
}

func clone(evt event.Event) event.Event {
	evt.PayloadJSON = append([]byte(nil), evt.PayloadJSON...)
	return evt
}
