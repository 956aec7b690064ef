// Package command defines the storefront command envelope, the registry that
// validates commands before they reach a decider, and the Decision type deciders
// return.
//
// Deciders are pure: they receive folded aggregate state plus a validated
// command and return either events to append or rejections explaining which
// invariant was violated. A rejected decision never appends anything.
package command
