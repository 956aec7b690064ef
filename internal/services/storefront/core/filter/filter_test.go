package filter

import (
	"errors"
	"testing"

	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
)

func TestClientPredicate(t *testing.T) {
	t.Parallel()
	calgary := readmodel.Client{ID: "c-1", City: "Calgary", Age: 30, IsRegistered: true, TotalSpent: 650}
	banff := readmodel.Client{ID: "c-2", City: "Banff", Age: 61}

	tests := []struct {
		filter string
		want   []bool
	}{
		{`city = "Calgary"`, []bool{true, false}},
		{`city != "Calgary"`, []bool{false, true}},
		{`age >= 30 AND age < 60`, []bool{true, false}},
		{`city = "Banff" OR total_spent > 600`, []bool{true, true}},
		{`is_registered = true`, []bool{true, false}},
	}
	for _, tc := range tests {
		pred, err := ClientPredicate(tc.filter)
		if err != nil {
			t.Fatalf("compile %q: %v", tc.filter, err)
		}
		for i, c := range []readmodel.Client{calgary, banff} {
			if got := pred(c); got != tc.want[i] {
				t.Fatalf("%q on %s = %v, want %v", tc.filter, c.ID, got, tc.want[i])
			}
		}
	}
}

func TestOrderPredicate(t *testing.T) {
	t.Parallel()
	pred, err := OrderPredicate(`client_id = "c-1" AND status = "CONFIRMED"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	confirmed := readmodel.Order{ID: "o-1", ClientID: "c-1", Status: readmodel.OrderStatusConfirmed}
	draft := readmodel.Order{ID: "o-2", ClientID: "c-1", Status: readmodel.OrderStatusDraft}
	other := readmodel.Order{ID: "o-3", ClientID: "c-2", Status: readmodel.OrderStatusConfirmed}
	if !pred(confirmed) || pred(draft) || pred(other) {
		t.Fatalf("predicate results = %v %v %v", pred(confirmed), pred(draft), pred(other))
	}

	countPred, err := OrderPredicate(`item_count > 1`)
	if err != nil {
		t.Fatalf("compile item_count: %v", err)
	}
	multi := readmodel.Order{Items: []readmodel.OrderItem{{ItemID: "i-1", Quantity: 2}}}
	if !countPred(multi) || countPred(draft) {
		t.Fatal("item_count predicate mismatch")
	}
}

func TestInventoryAndDevicePredicates(t *testing.T) {
	t.Parallel()
	low, err := InventoryPredicate(`stock < 10`)
	if err != nil {
		t.Fatalf("compile inventory: %v", err)
	}
	if !low(readmodel.InventoryItem{Stock: 3}) || low(readmodel.InventoryItem{Stock: 99}) {
		t.Fatal("stock predicate mismatch")
	}

	firefox, err := DevicePredicate(`browser = "firefox" AND viewport_width <= 1280`)
	if err != nil {
		t.Fatalf("compile device: %v", err)
	}
	if !firefox(readmodel.Device{Browser: "firefox", ViewportWidth: 1024}) {
		t.Fatal("expected firefox laptop to match")
	}
	if firefox(readmodel.Device{Browser: "safari", ViewportWidth: 1024}) {
		t.Fatal("expected safari to be filtered out")
	}
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	t.Parallel()
	pred, err := ClientPredicate("  ")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if pred != nil {
		t.Fatal("expected nil predicate for empty filter")
	}
}

func TestInvalidFilters(t *testing.T) {
	t.Parallel()
	for _, filterStr := range []string{
		`unknown = "x"`,
		`city = `,
		`age = "thirty"`,
		`city = 3`,
	} {
		if _, err := ClientPredicate(filterStr); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("%q: err = %v, want ErrInvalidFilter", filterStr, err)
		}
	}
}

func TestSchemaNamesSorted(t *testing.T) {
	t.Parallel()
	names := InventoryFields.Names()
	want := []string{"cost", "id", "name", "sku", "stock"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}
