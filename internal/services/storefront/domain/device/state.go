package device

// State captures device facts derived from domain events.
type State struct {
	Detected      bool
	DeviceID      string
	Browser       string
	DeviceName    string
	ViewportWidth int
}
