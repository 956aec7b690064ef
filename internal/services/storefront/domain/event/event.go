package event

import (
	"math"
	"strings"
	"time"
)

// ExpectNew is the ExpectedVersion value requiring the stream to be empty.
const ExpectNew uint64 = math.MaxUint64

// Type identifies the type of a storefront event, e.g. "order.created".
type Type string

// Event represents an immutable event in the append-only log.
type Event struct {
	// ID is an opaque unique identifier assigned by the log on append.
	ID string
	// StreamID is the aggregate stream this event belongs to, e.g. "order:o-1".
	StreamID string
	// Seq is the global sequence number across all streams (starts at 1).
	// Assigned by the log on append.
	Seq uint64
	// StreamVersion is the position of the event within its stream (starts at 1).
	// Assigned by the log on append.
	StreamVersion uint64
	// Hash is the content-addressed identity (SHA-256 truncated to 128-bit).
	// Assigned by the log on append.
	Hash string
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// EntityType is the kind of entity affected (order, client, ...).
	EntityType string
	// EntityID is the ID of the entity affected.
	EntityID string
	// ActorID identifies who submitted the originating command, if known.
	ActorID string
	// RequestID correlates the event with the request that produced it.
	RequestID string
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
	// ExpectedVersion, when non-zero, is the stream version the log must be at
	// before this event is appended. Not part of the stored identity.
	ExpectedVersion uint64
}

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// Domain returns the domain prefix of the event type (e.g., "order", "client").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}

// StreamID builds the stream identifier for an entity of the given domain.
func StreamID(domain, entityID string) string {
	return strings.TrimSpace(domain) + ":" + strings.TrimSpace(entityID)
}

// ParseStreamID splits a stream identifier into its domain and entity id.
func ParseStreamID(streamID string) (domain string, entityID string, ok bool) {
	domain, entityID, ok = strings.Cut(strings.TrimSpace(streamID), ":")
	if !ok || domain == "" || entityID == "" {
		return "", "", false
	}
	return domain, entityID, true
}
