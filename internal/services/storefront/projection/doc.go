// Package projection builds read models from immutable event history.
//
// Command aggregates only hold what their deciders need. The projector turns
// the same events into query-friendly records (inventory, clients, devices,
// orders and the sales dashboard) held by a readmodel.Store.
//
// Events that reference records the store has never seen are skipped and
// counted instead of failing, so partial or out-of-order histories still
// produce a usable read model.
package projection
