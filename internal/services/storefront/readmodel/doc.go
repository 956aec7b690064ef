// Package readmodel holds the query side of the storefront: inventory, clients,
// devices, orders and the dashboard counters.
//
// A Store is an owned value. Projections mutate it through Update, which
// buffers writes and publishes them together, so readers never observe half of
// a multi-record change. Every accessor returns copies.
package readmodel
