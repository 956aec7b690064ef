package client

// RegisterPayload captures the payload for client.register commands and client.registered events.
type RegisterPayload struct {
	ClientID string `json:"client_id"`
	Age      int    `json:"age"`
	City     string `json:"city"`
}

// LinkDevicePayload captures the payload for client.link_device commands and client.device_linked events.
type LinkDevicePayload struct {
	ClientID string `json:"client_id"`
	DeviceID string `json:"device_id"`
}

// AddNotePayload captures the payload for client.add_note commands and client.note_added events.
type AddNotePayload struct {
	ClientID string `json:"client_id"`
	Note     string `json:"note"`
}

// MovePayload captures the payload for client.move commands and client.moved events.
type MovePayload struct {
	ClientID string `json:"client_id"`
	City     string `json:"city"`
}
