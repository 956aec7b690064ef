package server

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
	"github.com/louisbranch/storefront/internal/services/storefront/snapshot"
)

func TestOpenSinkBackends(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()
	cfg := SinkConfig{
		FilePath:   filepath.Join(dir, "snapshot.json"),
		SQLitePath: filepath.Join(dir, "storefront.db"),
		RedisAddr:  mr.Addr(),
		RedisKey:   "test:snapshot",
	}
	for _, backend := range []string{"", BackendFile, BackendSQLite, BackendRedis, " Redis "} {
		t.Run(backend, func(t *testing.T) {
			cfg := cfg
			cfg.Backend = backend
			sink, closeSink, err := OpenSink(context.Background(), cfg)
			if err != nil {
				t.Fatalf("open sink: %v", err)
			}
			defer func() {
				if err := closeSink(); err != nil {
					t.Fatalf("close sink: %v", err)
				}
			}()
			if _, err := sink.Read(context.Background()); err != nil && !errors.Is(err, snapshot.ErrNotFound) {
				t.Fatalf("read: %v", err)
			}
			state := readmodel.NewState()
			state.Inventory["i-1"] = readmodel.InventoryItem{ID: "i-1", Name: "Desk Lamp", Stock: 3}
			artifact := snapshot.Build(state, 4, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
			if err := sink.Write(context.Background(), artifact); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := sink.Read(context.Background())
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			if got.LastSeq != 4 || len(got.Inventory) != 1 || got.Inventory[0].Stock != 3 {
				t.Fatalf("artifact = %+v", got)
			}
		})
	}
}

func TestOpenSinkNoneReturnsNilSink(t *testing.T) {
	sink, closeSink, err := OpenSink(context.Background(), SinkConfig{Backend: BackendNone})
	if err != nil {
		t.Fatalf("open sink: %v", err)
	}
	if sink != nil {
		t.Fatalf("sink = %T, want nil", sink)
	}
	if err := closeSink(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenSinkRedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, _, err := OpenSink(context.Background(), SinkConfig{Backend: BackendRedis, RedisAddr: addr}); err == nil {
		t.Fatal("expected dial error")
	}
}
