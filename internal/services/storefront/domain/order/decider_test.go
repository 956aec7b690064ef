package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

var testNow = time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

func nowFunc() time.Time { return testNow }

func createdState() State {
	return State{Status: StatusCreated, OrderID: "o-1", ClientID: "c-1", OrderType: TypePurchase}
}

func TestDecideCreate_EmitsCreatedEvent(t *testing.T) {
	cmd := command.Command{
		StreamID:    "order:o-1",
		Type:        CommandTypeCreate,
		EntityID:    "o-1",
		PayloadJSON: []byte(`{"client_id":" c-1 "}`),
	}

	decision := Decide(State{}, cmd, nowFunc)
	if len(decision.Rejections) != 0 {
		t.Fatalf("expected no rejections, got %+v", decision.Rejections)
	}
	if len(decision.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(decision.Events))
	}
	evt := decision.Events[0]
	if evt.Type != EventTypeCreated {
		t.Fatalf("event type = %s, want %s", evt.Type, EventTypeCreated)
	}
	if evt.StreamID != "order:o-1" || evt.EntityType != "order" || evt.EntityID != "o-1" {
		t.Fatalf("event addressing = %s %s %s", evt.StreamID, evt.EntityType, evt.EntityID)
	}
	if !evt.Timestamp.Equal(testNow) {
		t.Fatalf("event timestamp = %s, want %s", evt.Timestamp, testNow)
	}
	var payload CreatePayload
	if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.OrderID != "o-1" || payload.ClientID != "c-1" || payload.OrderType != TypePurchase {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestDecideRejections(t *testing.T) {
	confirmed := createdState()
	confirmed.Status = StatusConfirmed
	confirmed.Items = []Item{{ItemID: "i-1", Quantity: 1, Price: 10}}

	tests := []struct {
		name    string
		state   State
		cmdType command.Type
		payload string
		want    string
	}{
		{"create twice", createdState(), CommandTypeCreate, `{"client_id":"c-1"}`, RejectionCodeOrderAlreadyExists},
		{"create without client", State{}, CommandTypeCreate, `{}`, RejectionCodeOrderClientIDRequired},
		{"create with bad type", State{}, CommandTypeCreate, `{"client_id":"c-1","order_type":"gift"}`, RejectionCodeOrderTypeInvalid},
		{"create for another order", State{}, CommandTypeCreate, `{"order_id":"o-2","client_id":"c-1"}`, RejectionCodeOrderIDMismatch},
		{"add item before create", State{}, CommandTypeAddItem, `{"item_id":"i-1","quantity":1,"price":5}`, RejectionCodeOrderNotCreated},
		{"add item after confirm", confirmed, CommandTypeAddItem, `{"item_id":"i-1","quantity":1,"price":5}`, RejectionCodeOrderAlreadyConfirmed},
		{"add item without id", createdState(), CommandTypeAddItem, `{"quantity":1,"price":5}`, RejectionCodeOrderItemIDRequired},
		{"add item zero quantity", createdState(), CommandTypeAddItem, `{"item_id":"i-1","quantity":0,"price":5}`, RejectionCodeOrderQuantityInvalid},
		{"add item negative price", createdState(), CommandTypeAddItem, `{"item_id":"i-1","quantity":1,"price":-1}`, RejectionCodeOrderPriceInvalid},
		{"checkout before create", State{}, CommandTypeCheckout, `{}`, RejectionCodeOrderNotCreated},
		{"checkout empty order", createdState(), CommandTypeCheckout, `{}`, RejectionCodeOrderEmpty},
		{"checkout twice", confirmed, CommandTypeCheckout, `{}`, RejectionCodeOrderAlreadyConfirmed},
		{"unknown command", createdState(), command.Type("order.refund"), `{}`, RejectionCodeCommandTypeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.state, command.Command{
				StreamID:    "order:o-1",
				Type:        tt.cmdType,
				EntityID:    "o-1",
				PayloadJSON: []byte(tt.payload),
			}, nowFunc)
			if len(decision.Events) != 0 {
				t.Fatalf("expected no events, got %d", len(decision.Events))
			}
			if len(decision.Rejections) != 1 {
				t.Fatalf("expected 1 rejection, got %d", len(decision.Rejections))
			}
			if decision.Rejections[0].Code != tt.want {
				t.Fatalf("rejection code = %s, want %s", decision.Rejections[0].Code, tt.want)
			}
		})
	}
}

func TestDecideCheckout_CarriesTotalAndCount(t *testing.T) {
	state := createdState()
	for _, evt := range []event.Event{
		{Type: EventTypeItemAdded, PayloadJSON: []byte(`{"item_id":"i-1","quantity":2,"price":650}`)},
		{Type: EventTypeItemAdded, PayloadJSON: []byte(`{"item_id":"i-2","quantity":3,"price":100}`)},
	} {
		var err error
		state, err = Fold(state, evt)
		if err != nil {
			t.Fatalf("fold: %v", err)
		}
	}

	decision := Decide(state, command.Command{StreamID: "order:o-1", Type: CommandTypeCheckout, EntityID: "o-1"}, nowFunc)
	if len(decision.Rejections) != 0 || len(decision.Events) != 1 {
		t.Fatalf("decision = %+v", decision)
	}
	var payload ConfirmedPayload
	if err := json.Unmarshal(decision.Events[0].PayloadJSON, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.OrderTotal != 1600 {
		t.Fatalf("order total = %d, want 1600", payload.OrderTotal)
	}
	if payload.ItemCount != 5 {
		t.Fatalf("item count = %d, want 5", payload.ItemCount)
	}
	if payload.ClientID != "c-1" || payload.OrderType != TypePurchase {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestDecideCreate_NormalizesQuoteType(t *testing.T) {
	decision := Decide(State{}, command.Command{
		StreamID:    "order:o-1",
		Type:        CommandTypeCreate,
		EntityID:    "o-1",
		PayloadJSON: []byte(`{"client_id":"c-1","order_type":" QUOTE "}`),
	}, nil)
	if len(decision.Events) != 1 {
		t.Fatalf("expected 1 event, got %+v", decision)
	}
	var payload CreatePayload
	_ = json.Unmarshal(decision.Events[0].PayloadJSON, &payload)
	if payload.OrderType != TypeQuote {
		t.Fatalf("order type = %q, want quote", payload.OrderType)
	}
}
