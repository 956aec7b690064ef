package device

// DetectPayload captures the payload for device.detect commands and device.detected events.
type DetectPayload struct {
	DeviceID      string `json:"device_id"`
	Browser       string `json:"browser"`
	DeviceName    string `json:"device_name"`
	ViewportWidth int    `json:"viewport_width"`
}

// ResizePayload captures the payload for device.resize commands and device.viewport_changed events.
type ResizePayload struct {
	DeviceID      string `json:"device_id"`
	ViewportWidth int    `json:"viewport_width"`
}
