package order

import (
	"testing"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

func TestFoldBuildsOrderLifecycle(t *testing.T) {
	events := []event.Event{
		{Type: EventTypeCreated, PayloadJSON: []byte(`{"order_id":"o-1","client_id":"c-1","order_type":"purchase"}`)},
		{Type: EventTypeItemAdded, PayloadJSON: []byte(`{"order_id":"o-1","item_id":"i-1","quantity":1,"price":650}`)},
		{Type: EventTypeItemAdded, PayloadJSON: []byte(`{"order_id":"o-1","item_id":"i-1","quantity":2,"price":650}`)},
		{Type: EventTypeConfirmed, PayloadJSON: []byte(`{"order_id":"o-1","order_total":1950,"item_count":3}`)},
	}
	state := State{}
	for _, evt := range events {
		var err error
		state, err = Fold(state, evt)
		if err != nil {
			t.Fatalf("fold %s: %v", evt.Type, err)
		}
	}
	if state.Status != StatusConfirmed {
		t.Fatalf("status = %q, want confirmed", state.Status)
	}
	if state.ClientID != "c-1" || state.OrderType != TypePurchase {
		t.Fatalf("state = %+v", state)
	}
	if len(state.Items) != 2 {
		t.Fatalf("items = %d, want 2 line items", len(state.Items))
	}
	var sum int64
	for _, item := range state.Items {
		sum += item.Price * item.Quantity
	}
	if state.Total != sum || state.Total != 1950 {
		t.Fatalf("total = %d, want %d", state.Total, sum)
	}
	if state.ItemCount() != 3 {
		t.Fatalf("item count = %d, want 3", state.ItemCount())
	}
}

func TestFoldDoesNotAliasItems(t *testing.T) {
	base, err := Fold(createdState(), event.Event{Type: EventTypeItemAdded, PayloadJSON: []byte(`{"item_id":"i-1","quantity":1,"price":1}`)})
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	a, _ := Fold(base, event.Event{Type: EventTypeItemAdded, PayloadJSON: []byte(`{"item_id":"a","quantity":1,"price":1}`)})
	b, _ := Fold(base, event.Event{Type: EventTypeItemAdded, PayloadJSON: []byte(`{"item_id":"b","quantity":1,"price":1}`)})
	if a.Items[1].ItemID != "a" || b.Items[1].ItemID != "b" {
		t.Fatalf("folds share item storage: a=%+v b=%+v", a.Items, b.Items)
	}
}

func TestFoldRejectsMalformedPayload(t *testing.T) {
	if _, err := Fold(State{}, event.Event{Type: EventTypeItemAdded, PayloadJSON: []byte(`{"quantity":"many"}`)}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRegisterEvents_CoversFold(t *testing.T) {
	registry := event.NewRegistry()
	if err := RegisterEvents(registry); err != nil {
		t.Fatalf("register events: %v", err)
	}
	handled := make(map[event.Type]bool)
	for _, typ := range FoldHandledTypes() {
		handled[typ] = true
	}
	for _, typ := range registry.Types() {
		if !handled[typ] {
			t.Fatalf("event type %s registered without fold handler", typ)
		}
	}
}
