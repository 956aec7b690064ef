package device

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

const (
	CommandTypeDetect        command.Type = "device.detect"
	CommandTypeResize        command.Type = "device.resize"
	EventTypeDetected        event.Type   = "device.detected"
	EventTypeViewportChanged event.Type   = "device.viewport_changed"

	entityType = "device"

	RejectionCodeDeviceAlreadyDetected  = "DEVICE_ALREADY_DETECTED"
	RejectionCodeDeviceNotDetected      = "DEVICE_NOT_DETECTED"
	RejectionCodeDeviceIDMismatch       = "DEVICE_ID_MISMATCH"
	RejectionCodeDeviceViewportInvalid  = "DEVICE_VIEWPORT_INVALID"
	rejectionCodeCommandTypeUnsupported = "COMMAND_TYPE_UNSUPPORTED"
)

// Decide returns the decision for a device command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	switch cmd.Type {
	case CommandTypeDetect:
		if state.Detected {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeDeviceAlreadyDetected,
				Message: "device already detected",
			})
		}
		var payload DetectPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		deviceID, ok := command.ResolveEntityID(payload.DeviceID, cmd.EntityID)
		if !ok {
			return command.Reject(idMismatch())
		}
		if payload.ViewportWidth < 0 {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeDeviceViewportInvalid,
				Message: "viewport width must not be negative",
			})
		}
		payloadJSON, _ := json.Marshal(DetectPayload{
			DeviceID:      deviceID,
			Browser:       strings.ToLower(strings.TrimSpace(payload.Browser)),
			DeviceName:    strings.TrimSpace(payload.DeviceName),
			ViewportWidth: payload.ViewportWidth,
		})
		return command.Accept(command.NewEvent(cmd, EventTypeDetected, entityType, deviceID, payloadJSON, now().UTC()))

	case CommandTypeResize:
		if !state.Detected {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeDeviceNotDetected,
				Message: "device not detected",
			})
		}
		var payload ResizePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		deviceID, ok := command.ResolveEntityID(payload.DeviceID, cmd.EntityID)
		if !ok {
			return command.Reject(idMismatch())
		}
		if payload.ViewportWidth <= 0 {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeDeviceViewportInvalid,
				Message: "viewport width must be positive",
			})
		}
		payloadJSON, _ := json.Marshal(ResizePayload{DeviceID: deviceID, ViewportWidth: payload.ViewportWidth})
		return command.Accept(command.NewEvent(cmd, EventTypeViewportChanged, entityType, deviceID, payloadJSON, now().UTC()))
	}
	return command.Reject(command.Rejection{
		Code:    rejectionCodeCommandTypeUnsupported,
		Message: "command type is not supported by device decider",
	})
}

func idMismatch() command.Rejection {
	return command.Rejection{
		Code:    RejectionCodeDeviceIDMismatch,
		Message: "payload device id does not match stream",
	}
}
