package client

// State captures client facts derived from domain events.
type State struct {
	Registered bool
	ClientID   string
	Age        int
	City       string
	DeviceIDs  []string
	NoteCount  int
}

// HasDevice reports whether the device id was linked.
func (s State) HasDevice(deviceID string) bool {
	for _, id := range s.DeviceIDs {
		if id == deviceID {
			return true
		}
	}
	return false
}
