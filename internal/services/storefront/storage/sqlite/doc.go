// Package sqlite persists read-model snapshots in a SQLite database.
//
// Every Write appends a row so earlier artifacts stay available for
// inspection; Read always returns the most recent one.
package sqlite
