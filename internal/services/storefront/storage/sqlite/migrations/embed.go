// Package migrations embeds the SQL migrations for the SQLite snapshot store.
package migrations

import "embed"

//go:embed snapshots/*.sql
var SnapshotsFS embed.FS
