// Package inventory models catalog items and their stock level.
//
// Stock is a running sum of signed deltas. Removing stock is never floored at
// zero here; callers that present stock to shoppers clamp it themselves.
package inventory
