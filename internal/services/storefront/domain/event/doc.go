// Package event defines the canonical event envelope and event-type registry used by
// the storefront write path.
//
// Events are immutable business facts emitted by accepted decisions. The registry
// checks addressing and payload validity before the log assigns sequence,
// version and integrity fields.
//
// Every projection handler and aggregate fold is keyed by the types declared here,
// so the registry doubles as the closed set of facts the system understands.
package event
