package event

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	registry := NewRegistry()
	if err := registry.Register(Definition{
		Type:       Type("order.created"),
		EntityType: "order",
		ValidatePayload: func(raw json.RawMessage) error {
			var payload struct {
				ClientID string `json:"client_id"`
			}
			if err := json.Unmarshal(raw, &payload); err != nil {
				return err
			}
			if payload.ClientID == "" {
				return errors.New("client_id is required")
			}
			return nil
		},
	}); err != nil {
		t.Fatalf("register type: %v", err)
	}
	return registry
}

func TestRegistryRegister_RejectsDuplicates(t *testing.T) {
	registry := newTestRegistry(t)
	err := registry.Register(Definition{Type: Type("order.created"), EntityType: "order"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRegistryRegister_RequiresEntityType(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(Definition{Type: Type("order.created")}); err == nil {
		t.Fatal("expected error for missing entity type")
	}
}

func TestRegistryValidateForAppend(t *testing.T) {
	registry := newTestRegistry(t)
	base := Event{
		StreamID:    "order:o-1",
		Type:        Type("order.created"),
		EntityID:    "o-1",
		PayloadJSON: []byte(`{"order_type":"purchase", "client_id":"c-1"}`),
	}

	tests := []struct {
		name    string
		mutate  func(*Event)
		wantErr error
	}{
		{name: "valid"},
		{name: "missing type", mutate: func(e *Event) { e.Type = " " }, wantErr: ErrTypeRequired},
		{name: "unknown type", mutate: func(e *Event) { e.Type = "order.deleted" }, wantErr: ErrTypeUnknown},
		{name: "missing stream", mutate: func(e *Event) { e.StreamID = "" }, wantErr: ErrStreamIDRequired},
		{name: "missing entity", mutate: func(e *Event) { e.EntityID = "" }, wantErr: ErrEntityIDRequired},
		{name: "wrong entity type", mutate: func(e *Event) { e.EntityType = "client" }, wantErr: ErrEntityTypeMismatch},
		{name: "bad json", mutate: func(e *Event) { e.PayloadJSON = []byte("{") }, wantErr: ErrPayloadInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := base
			if tt.mutate != nil {
				tt.mutate(&evt)
			}
			got, err := registry.ValidateForAppend(evt)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if got.EntityType != "order" {
				t.Fatalf("entity type = %q, want order", got.EntityType)
			}
			if string(got.PayloadJSON) != `{"client_id":"c-1","order_type":"purchase"}` {
				t.Fatalf("payload = %s, want canonical json", got.PayloadJSON)
			}
		})
	}
}

func TestRegistryValidateForAppend_RunsPayloadValidator(t *testing.T) {
	registry := newTestRegistry(t)
	_, err := registry.ValidateForAppend(Event{
		StreamID: "order:o-1",
		Type:     Type("order.created"),
		EntityID: "o-1",
	})
	if err == nil || !strings.Contains(err.Error(), "client_id is required") {
		t.Fatalf("expected payload validation error, got %v", err)
	}
}

func TestRegistryTypes_Sorted(t *testing.T) {
	registry := newTestRegistry(t)
	if err := registry.Register(Definition{Type: Type("client.registered"), EntityType: "client"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	types := registry.Types()
	if len(types) != 2 || types[0] != "client.registered" || types[1] != "order.created" {
		t.Fatalf("types = %v", types)
	}
}

func TestStreamIDRoundTrip(t *testing.T) {
	id := StreamID("order", " o-1 ")
	if id != "order:o-1" {
		t.Fatalf("StreamID = %q, want order:o-1", id)
	}
	domain, entityID, ok := ParseStreamID(id)
	if !ok || domain != "order" || entityID != "o-1" {
		t.Fatalf("ParseStreamID = %q %q %v", domain, entityID, ok)
	}
	for _, bad := range []string{"", "order", ":o-1", "order:"} {
		if _, _, ok := ParseStreamID(bad); ok {
			t.Fatalf("ParseStreamID(%q) ok = true, want false", bad)
		}
	}
}

func TestTypeDomain(t *testing.T) {
	if got := Type("order.item_added").Domain(); got != "order" {
		t.Fatalf("Domain = %q, want order", got)
	}
	if got := Type("plain").Domain(); got != "plain" {
		t.Fatalf("Domain = %q, want plain", got)
	}
}
