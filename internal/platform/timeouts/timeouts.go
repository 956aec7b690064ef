// Package timeouts defines shared timeout constants used across the storefront
// binaries.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second

// SnapshotPersist caps the final snapshot write issued while stopping.
const SnapshotPersist = 10 * time.Second

// SinkDial caps the wait when connecting to a remote snapshot sink.
const SinkDial = 3 * time.Second

// Probe caps a health probe against a running gRPC endpoint.
const Probe = 3 * time.Second
