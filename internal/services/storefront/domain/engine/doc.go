// Package engine executes storefront commands.
//
// Execution validates the command envelope, serializes work per stream,
// hydrates aggregate state by folding the stream from the beginning, asks the
// owning domain to decide, and appends accepted events to the log with an
// expected-version check.
package engine
