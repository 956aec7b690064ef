package seed

import (
	"context"
	"errors"
	"testing"

	server "github.com/louisbranch/storefront/internal/services/storefront/app"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/engine"
)

func newRuntime(t *testing.T) *server.Runtime {
	t.Helper()
	rt, err := server.NewRuntime()
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	return rt
}

func TestScenariosSortedAndUnique(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	var prev string
	for _, sc := range Scenarios() {
		if seen[sc.Name] {
			t.Fatalf("duplicate scenario %q", sc.Name)
		}
		seen[sc.Name] = true
		if sc.Name < prev {
			t.Fatalf("scenario %q listed after %q", sc.Name, prev)
		}
		prev = sc.Name
		if len(sc.Steps) == 0 {
			t.Fatalf("scenario %q has no steps", sc.Name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	t.Parallel()
	if _, err := Lookup("nope"); !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("err = %v, want %v", err, ErrUnknownScenario)
	}
}

func TestPurchaseScenario(t *testing.T) {
	t.Parallel()
	rt := newRuntime(t)
	sc, err := Lookup("purchase")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	report, err := Run(context.Background(), rt.Commands, sc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Applied != 6 || report.Rejected != 0 || report.Events != 6 {
		t.Fatalf("report = %+v", report)
	}
	item, _ := rt.Store.Inventory("i-1")
	if item.Stock != 99 {
		t.Fatalf("stock = %d, want 99", item.Stock)
	}
	c, _ := rt.Store.Client("c-1")
	if c.TotalSpent != 650 {
		t.Fatalf("total spent = %d, want 650", c.TotalSpent)
	}
	dash := rt.Store.Dashboard()
	if dash.TotalRevenue != 650 || dash.TotalOrdersConfirmed != 1 || dash.ItemsSold != 1 {
		t.Fatalf("dashboard = %+v", dash)
	}
}

func TestEmptyCheckoutScenarioLeavesLogUnchangedOnRejection(t *testing.T) {
	t.Parallel()
	rt := newRuntime(t)
	sc, _ := Lookup("empty-checkout")
	report, err := Run(context.Background(), rt.Commands, sc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Applied != 1 || report.Rejected != 1 {
		t.Fatalf("report = %+v", report)
	}
	if rt.Journal.LastSeq() != 1 {
		t.Fatalf("last seq = %d, want 1", rt.Journal.LastSeq())
	}
}

func TestCatalogScenario(t *testing.T) {
	t.Parallel()
	rt := newRuntime(t)
	sc, _ := Lookup("catalog")
	report, err := Run(context.Background(), rt.Commands, sc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Rejected != 1 {
		t.Fatalf("rejected = %d, want 1", report.Rejected)
	}

	stocks := map[string]int64{"i-chair": 11, "i-desk": 4, "i-mug": 236, "i-plant": 27}
	for id, want := range stocks {
		item, ok := rt.Store.Inventory(id)
		if !ok {
			t.Fatalf("inventory %s missing", id)
		}
		if item.Stock != want {
			t.Fatalf("%s stock = %d, want %d", id, item.Stock, want)
		}
	}
	dash := rt.Store.Dashboard()
	if dash.TotalRevenue != 28400 || dash.TotalOrdersConfirmed != 2 || dash.ItemsSold != 8 {
		t.Fatalf("dashboard = %+v", dash)
	}
	ben, _ := rt.Store.Client("c-ben")
	if ben.City != "Montreal" || ben.TotalSpent != 8700 || !ben.HasDevice("d-phone") {
		t.Fatalf("client c-ben = %+v", ben)
	}
	laptop, _ := rt.Store.Device("d-laptop")
	if laptop.ViewportWidth != 1280 {
		t.Fatalf("laptop viewport = %d, want 1280", laptop.ViewportWidth)
	}
}

type failingExecutor struct{ err error }

func (f failingExecutor) Execute(context.Context, command.Command) (engine.Result, error) {
	return engine.Result{}, f.err
}

func TestRunStopsAtUnexpectedOutcome(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	sc := Scenario{Name: "x", Steps: []Step{{Type: "inventory.create", EntityID: "i-1"}}}
	if _, err := Run(context.Background(), failingExecutor{err: boom}, sc); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	sc.Steps[0].ExpectRejection = "INVENTORY_ALREADY_EXISTS"
	if _, err := Run(context.Background(), failingExecutor{}, sc); err == nil {
		t.Fatal("expected missing rejection to fail the run")
	}
	if _, err := Run(context.Background(), nil, sc); err == nil {
		t.Fatal("expected nil executor error")
	}
}
