package device

import (
	"encoding/json"
	"testing"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

func TestDecideDetect_NormalizesBrowser(t *testing.T) {
	decision := Decide(State{}, command.Command{
		StreamID:    "device:d-1",
		Type:        CommandTypeDetect,
		EntityID:    "d-1",
		PayloadJSON: []byte(`{"browser":" Firefox ","device_name":"Pixel 8","viewport_width":412}`),
	}, nil)
	if len(decision.Events) != 1 {
		t.Fatalf("decision = %+v", decision)
	}
	var payload DetectPayload
	if err := json.Unmarshal(decision.Events[0].PayloadJSON, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Browser != "firefox" || payload.DeviceID != "d-1" || payload.ViewportWidth != 412 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestDecideRejections(t *testing.T) {
	detected := State{Detected: true, DeviceID: "d-1"}
	tests := []struct {
		name    string
		state   State
		cmdType command.Type
		payload string
		want    string
	}{
		{"detect twice", detected, CommandTypeDetect, `{}`, RejectionCodeDeviceAlreadyDetected},
		{"negative viewport", State{}, CommandTypeDetect, `{"viewport_width":-1}`, RejectionCodeDeviceViewportInvalid},
		{"other device", State{}, CommandTypeDetect, `{"device_id":"d-2"}`, RejectionCodeDeviceIDMismatch},
		{"resize undetected", State{}, CommandTypeResize, `{"viewport_width":800}`, RejectionCodeDeviceNotDetected},
		{"resize to zero", detected, CommandTypeResize, `{"viewport_width":0}`, RejectionCodeDeviceViewportInvalid},
		{"unsupported", detected, command.Type("device.forget"), `{}`, rejectionCodeCommandTypeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.state, command.Command{
				StreamID:    "device:d-1",
				Type:        tt.cmdType,
				EntityID:    "d-1",
				PayloadJSON: []byte(tt.payload),
			}, nil)
			if len(decision.Events) != 0 {
				t.Fatalf("expected no events, got %d", len(decision.Events))
			}
			if len(decision.Rejections) != 1 || decision.Rejections[0].Code != tt.want {
				t.Fatalf("rejections = %+v, want %s", decision.Rejections, tt.want)
			}
		})
	}
}

func TestFoldResizeOnlyChangesViewport(t *testing.T) {
	state, err := Fold(State{}, event.Event{Type: EventTypeDetected, PayloadJSON: []byte(`{"device_id":"d-1","browser":"safari","device_name":"iPad","viewport_width":1024}`)})
	if err != nil {
		t.Fatalf("fold detected: %v", err)
	}
	state, err = Fold(state, event.Event{Type: EventTypeViewportChanged, PayloadJSON: []byte(`{"device_id":"d-1","viewport_width":768}`)})
	if err != nil {
		t.Fatalf("fold resized: %v", err)
	}
	if state.ViewportWidth != 768 || state.Browser != "safari" || state.DeviceName != "iPad" {
		t.Fatalf("state = %+v", state)
	}
}
