// Package journal provides the in-process append-only event log.
//
// Append assigns global sequence, stream version, id, timestamp and hash, stores
// the event, and then synchronously notifies every subscriber in registration
// order before returning. Appends are serialized end to end, so subscribers
// observe events strictly in sequence order.
//
// A failing or panicking subscriber never un-appends an event. The remaining
// subscribers still run and the failures are returned as a *SubscriberError
// alongside the stored event.
package journal
