package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	platformgrpc "github.com/louisbranch/storefront/internal/platform/grpc"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
	"github.com/louisbranch/storefront/internal/services/storefront/snapshot"
)

type running struct {
	srv    *Server
	cancel context.CancelFunc
	done   chan error
}

func start(t *testing.T, cfg Config) running {
	t.Helper()
	srv, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	return running{srv: srv, cancel: cancel, done: done}
}

func (r running) stop(t *testing.T) {
	t.Helper()
	r.cancel()
	select {
	case err := <-r.done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func (r running) url(path string) string {
	return "http://" + r.srv.HTTPAddr() + path
}

func (r running) post(t *testing.T, cmdType, entityID, payload string) {
	t.Helper()
	body := fmt.Sprintf(`{"type":%q,"entity_id":%q,"payload":%s}`, cmdType, entityID, payload)
	resp, err := http.Post(r.url("/v1/commands"), "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", cmdType, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("post %s status = %d, want %d", cmdType, resp.StatusCode, http.StatusOK)
	}
}

func (r running) getInventory(t *testing.T, id string) (readmodel.InventoryItem, int) {
	t.Helper()
	resp, err := http.Get(r.url("/v1/inventory/" + id))
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	defer resp.Body.Close()
	var item readmodel.InventoryItem
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
			t.Fatalf("decode inventory: %v", err)
		}
	}
	return item, resp.StatusCode
}

func localConfig(t *testing.T, backend string) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		HTTPAddr: "127.0.0.1:0",
		GRPCAddr: "127.0.0.1:0",
		Snapshot: SinkConfig{
			Backend:    backend,
			FilePath:   filepath.Join(dir, "snapshot.json"),
			SQLitePath: filepath.Join(dir, "storefront.db"),
		},
	}
}

func TestServerPersistsOnShutdownAndBootstrapsOnStart(t *testing.T) {
	for _, backend := range []string{BackendFile, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := localConfig(t, backend)

			first := start(t, cfg)
			first.post(t, "inventory.create", "i-1", `{"name":"Desk Lamp","cost":400}`)
			first.post(t, "inventory.add_stock", "i-1", `{"quantity":100}`)
			first.post(t, "client.register", "c-1", `{"age":30,"city":"Calgary"}`)
			first.post(t, "order.create", "o-1", `{"client_id":"c-1","order_type":"purchase"}`)
			first.post(t, "order.add_item", "o-1", `{"item_id":"i-1","quantity":1,"price":650}`)
			first.post(t, "order.checkout", "o-1", `{}`)
			first.stop(t)

			second := start(t, cfg)
			defer second.stop(t)
			item, status := second.getInventory(t, "i-1")
			if status != http.StatusOK {
				t.Fatalf("status = %d, want %d", status, http.StatusOK)
			}
			if item.Stock != 99 {
				t.Fatalf("stock = %d, want 99", item.Stock)
			}
			dash := second.srv.Runtime().Store.Dashboard()
			if dash.TotalRevenue != 650 || dash.TotalOrdersConfirmed != 1 {
				t.Fatalf("dashboard = %+v", dash)
			}
		})
	}
}

func TestServerFinalSnapshotMatchesReadModel(t *testing.T) {
	cfg := localConfig(t, BackendFile)
	r := start(t, cfg)
	r.post(t, "device.detect", "d-1", `{"browser":"firefox","device_name":"laptop","viewport_width":1280}`)
	want := r.srv.Runtime().Store.Export()
	r.stop(t)

	artifact, err := snapshot.FileSink{Path: cfg.Snapshot.FilePath}.Read(context.Background())
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if artifact.LastSeq != 1 {
		t.Fatalf("last seq = %d, want 1", artifact.LastSeq)
	}
	got := artifact.State()
	if len(got.Devices) != len(want.Devices) || got.Devices["d-1"].ViewportWidth != 1280 {
		t.Fatalf("devices = %+v, want %+v", got.Devices, want.Devices)
	}
}

func TestServerGRPCHealthServing(t *testing.T) {
	r := start(t, localConfig(t, BackendNone))
	defer r.stop(t)

	if err := platformgrpc.Probe(context.Background(), r.srv.GRPCAddr(), HealthServiceName, 3*time.Second, nil); err != nil {
		t.Fatalf("probe: %v", err)
	}
}

func TestServerWithoutSinkRejectsSnapshotRequests(t *testing.T) {
	cfg := localConfig(t, BackendNone)
	cfg.GRPCAddr = ""
	r := start(t, cfg)
	defer r.stop(t)

	if r.srv.GRPCAddr() != "" {
		t.Fatalf("grpc addr = %q, want empty", r.srv.GRPCAddr())
	}
	resp, err := http.Post(r.url("/v1/snapshot"), "application/json", nil)
	if err != nil {
		t.Fatalf("post snapshot: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
}

func TestServerRebuildOnStartIgnoresSnapshot(t *testing.T) {
	cfg := localConfig(t, BackendFile)
	first := start(t, cfg)
	first.post(t, "inventory.create", "i-1", `{"name":"Desk Lamp","cost":400}`)
	first.stop(t)

	cfg.RebuildOnStart = true
	second := start(t, cfg)
	defer second.stop(t)
	if _, status := second.getInventory(t, "i-1"); status != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", status, http.StatusNotFound)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing http addr", cfg: Config{Snapshot: SinkConfig{Backend: BackendNone}}},
		{name: "unknown backend", cfg: Config{HTTPAddr: "127.0.0.1:0", Snapshot: SinkConfig{Backend: "tape"}}},
		{name: "file without path", cfg: Config{HTTPAddr: "127.0.0.1:0", Snapshot: SinkConfig{Backend: BackendFile}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(context.Background(), tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
