// Package order models the order lifecycle.
//
// An order stream moves from NEW to CREATED on order.created, accumulates line
// items while CREATED, and becomes CONFIRMED on checkout. CONFIRMED is terminal:
// no further item or checkout commands are accepted.
//
// The decider enforces the lifecycle and the running total; the fold rebuilds
// that state from the stream on every command.
package order
