package command

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	registry := NewRegistry()
	if err := registry.Register(Definition{
		Type: Type("order.add_item"),
		ValidatePayload: func(raw json.RawMessage) error {
			var payload struct {
				Quantity int `json:"quantity"`
			}
			return json.Unmarshal(raw, &payload)
		},
	}); err != nil {
		t.Fatalf("register type: %v", err)
	}
	return registry
}

func TestRegistryValidateForDecision(t *testing.T) {
	registry := newTestRegistry(t)

	tests := []struct {
		name       string
		cmd        Command
		wantErr    error
		wantStream string
		wantEntity string
	}{
		{
			name:       "derives stream from entity",
			cmd:        Command{Type: "order.add_item", EntityID: " o-1 ", PayloadJSON: []byte(`{"quantity":1}`)},
			wantStream: "order:o-1",
			wantEntity: "o-1",
		},
		{
			name:       "derives entity from stream",
			cmd:        Command{Type: "order.add_item", StreamID: "order:o-2"},
			wantStream: "order:o-2",
			wantEntity: "o-2",
		},
		{
			name:    "missing type",
			cmd:     Command{EntityID: "o-1"},
			wantErr: ErrTypeRequired,
		},
		{
			name:    "unknown type",
			cmd:     Command{Type: "order.refund", EntityID: "o-1"},
			wantErr: ErrTypeUnknown,
		},
		{
			name:    "missing stream and entity",
			cmd:     Command{Type: "order.add_item"},
			wantErr: ErrStreamIDRequired,
		},
		{
			name:    "foreign domain stream",
			cmd:     Command{Type: "order.add_item", StreamID: "client:c-1"},
			wantErr: ErrStreamDomainMismatch,
		},
		{
			name:    "entity disagrees with stream",
			cmd:     Command{Type: "order.add_item", StreamID: "order:o-1", EntityID: "o-2"},
			wantErr: ErrEntityMismatch,
		},
		{
			name:    "malformed payload",
			cmd:     Command{Type: "order.add_item", EntityID: "o-1", PayloadJSON: []byte(`{"quantity":`)},
			wantErr: ErrPayloadInvalid,
		},
		{
			name:    "payload fails validator",
			cmd:     Command{Type: "order.add_item", EntityID: "o-1", PayloadJSON: []byte(`{"quantity":"x"}`)},
			wantErr: ErrPayloadInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.ValidateForDecision(tt.cmd)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if got.StreamID != tt.wantStream {
				t.Fatalf("stream = %q, want %q", got.StreamID, tt.wantStream)
			}
			if got.EntityID != tt.wantEntity {
				t.Fatalf("entity = %q, want %q", got.EntityID, tt.wantEntity)
			}
			if len(got.PayloadJSON) == 0 {
				t.Fatal("expected payload to default to {}")
			}
		})
	}
}

func TestRegistryRegister_Duplicate(t *testing.T) {
	registry := newTestRegistry(t)
	if err := registry.Register(Definition{Type: "order.add_item"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestRegistryListDefinitions_Sorted(t *testing.T) {
	registry := newTestRegistry(t)
	if err := registry.Register(Definition{Type: "client.register"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	defs := registry.ListDefinitions()
	if len(defs) != 2 || defs[0].Type != "client.register" || defs[1].Type != "order.add_item" {
		t.Fatalf("definitions = %+v", defs)
	}
}

func TestDecisionHelpers(t *testing.T) {
	accepted := Accept(event.Event{Type: "order.created"})
	if accepted.Rejected() || len(accepted.Events) != 1 {
		t.Fatalf("accept = %+v", accepted)
	}
	rejected := Reject(Rejection{Code: "A"}, Rejection{Code: "B"})
	if !rejected.Rejected() || rejected.Codes() != "A,B" {
		t.Fatalf("reject = %+v codes=%q", rejected, rejected.Codes())
	}
}

func TestNewEventCopiesEnvelope(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cmd := Command{StreamID: "order:o-1", Type: "order.checkout", ActorID: "clerk", RequestID: "req-1"}
	evt := NewEvent(cmd, "order.confirmed", "order", "o-1", []byte(`{}`), now)
	if evt.StreamID != "order:o-1" || evt.ActorID != "clerk" || evt.RequestID != "req-1" {
		t.Fatalf("envelope not copied: %+v", evt)
	}
	if !evt.Timestamp.Equal(now) || evt.EntityType != "order" || evt.Type != "order.confirmed" {
		t.Fatalf("event fields = %+v", evt)
	}
}

func TestResolveEntityID(t *testing.T) {
	tests := []struct {
		payload, entity string
		want            string
		ok              bool
	}{
		{"", "o-1", "o-1", true},
		{" o-1 ", "o-1", "o-1", true},
		{"o-1", "", "o-1", true},
		{"o-2", "o-1", "", false},
	}
	for _, tt := range tests {
		got, ok := ResolveEntityID(tt.payload, tt.entity)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ResolveEntityID(%q, %q) = %q, %v; want %q, %v", tt.payload, tt.entity, got, ok, tt.want, tt.ok)
		}
	}
}
