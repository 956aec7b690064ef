package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/louisbranch/storefront/internal/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
	"github.com/louisbranch/storefront/internal/services/storefront/snapshot"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "storefront.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func artifactAt(seq uint64, revenue int64) snapshot.Artifact {
	state := readmodel.NewState()
	state.Inventory["i-1"] = readmodel.InventoryItem{ID: "i-1", SKU: "i-1", Name: "Lamp", Cost: 400, Stock: 99}
	state.Dashboard = readmodel.Dashboard{TotalRevenue: revenue, TotalOrdersConfirmed: 1, ItemsSold: 1}
	return snapshot.Build(state, seq, time.Date(2026, 7, 1, 0, 0, int(seq), 0, time.UTC))
}

func TestMillisHelpers(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("MST", -7*60*60)
	value := time.Date(2026, 2, 1, 9, 0, 0, 0, loc)
	if round := fromMillis(toMillis(value)); !round.Equal(value) {
		t.Fatalf("round trip = %v, want %v", round, value)
	}
}

func TestReadEmpty(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	if _, err := store.Read(context.Background()); !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestWriteReadLatest(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.Write(ctx, artifactAt(3, 650)); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := store.Write(ctx, artifactAt(8, 1300)); err != nil {
		t.Fatalf("write second: %v", err)
	}

	got, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.LastSeq != 8 || got.Dashboard.TotalRevenue != 1300 {
		t.Fatalf("artifact = %+v", got)
	}
	if item := got.Inventory[0]; item.Stock != 99 {
		t.Fatalf("inventory = %+v", got.Inventory)
	}

	history, err := store.History(ctx, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].LastSeq != 8 || history[1].LastSeq != 3 {
		t.Fatalf("history = %+v", history)
	}
	if history[0].Version != snapshot.FormatVersion {
		t.Fatalf("version = %d, want %d", history[0].Version, snapshot.FormatVersion)
	}

	limited, err := store.History(ctx, 1)
	if err != nil {
		t.Fatalf("history limit: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limited history = %d, want 1", len(limited))
	}
}

func TestReadRejectsUnsupportedVersion(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	_, err := store.sqlDB.Exec(
		`INSERT INTO snapshots (version, last_seq, generated_at, payload) VALUES (?, ?, ?, ?)`,
		7, 1, 0, []byte(`{"version":7}`),
	)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = store.Read(context.Background())
	if apperrors.CodeOf(err) != apperrors.CodeSnapshotVersionUnsupported {
		t.Fatalf("code = %s, want %s", apperrors.CodeOf(err), apperrors.CodeSnapshotVersionUnsupported)
	}
}

func TestReopenKeepsSnapshots(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "storefront.db")
	ctx := context.Background()
	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Write(ctx, artifactAt(4, 650)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	got, err := second.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.LastSeq != 4 {
		t.Fatalf("last seq = %d, want 4", got.LastSeq)
	}
}

func TestCloseNilStore(t *testing.T) {
	t.Parallel()
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
}
