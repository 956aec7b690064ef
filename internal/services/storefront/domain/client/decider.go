package client

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

const (
	CommandTypeRegister   command.Type = "client.register"
	CommandTypeLinkDevice command.Type = "client.link_device"
	CommandTypeAddNote    command.Type = "client.add_note"
	CommandTypeMove       command.Type = "client.move"
	EventTypeRegistered   event.Type   = "client.registered"
	EventTypeDeviceLinked event.Type   = "client.device_linked"
	EventTypeNoteAdded    event.Type   = "client.note_added"
	EventTypeMoved        event.Type   = "client.moved"

	entityType = "client"

	RejectionCodeClientAlreadyRegistered = "CLIENT_ALREADY_REGISTERED"
	RejectionCodeClientNotRegistered     = "CLIENT_NOT_REGISTERED"
	RejectionCodeClientIDMismatch        = "CLIENT_ID_MISMATCH"
	RejectionCodeClientAgeInvalid        = "CLIENT_AGE_INVALID"
	RejectionCodeClientCityRequired      = "CLIENT_CITY_REQUIRED"
	RejectionCodeClientDeviceIDRequired  = "CLIENT_DEVICE_ID_REQUIRED"
	RejectionCodeClientNoteRequired      = "CLIENT_NOTE_REQUIRED"
	rejectionCodeCommandTypeUnsupported  = "COMMAND_TYPE_UNSUPPORTED"
)

// Decide returns the decision for a client command against current state.
//
// Linking the same device twice is accepted; the read model keeps device links
// as a set.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	switch cmd.Type {
	case CommandTypeRegister:
		if state.Registered {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeClientAlreadyRegistered,
				Message: "client already registered",
			})
		}
		var payload RegisterPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		clientID, ok := command.ResolveEntityID(payload.ClientID, cmd.EntityID)
		if !ok {
			return command.Reject(idMismatch())
		}
		if payload.Age < 0 {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeClientAgeInvalid,
				Message: "age must not be negative",
			})
		}
		payloadJSON, _ := json.Marshal(RegisterPayload{ClientID: clientID, Age: payload.Age, City: strings.TrimSpace(payload.City)})
		return command.Accept(command.NewEvent(cmd, EventTypeRegistered, entityType, clientID, payloadJSON, now().UTC()))

	case CommandTypeLinkDevice:
		var payload LinkDevicePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		clientID, ok := command.ResolveEntityID(payload.ClientID, cmd.EntityID)
		if !ok {
			return command.Reject(idMismatch())
		}
		deviceID := strings.TrimSpace(payload.DeviceID)
		if deviceID == "" {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeClientDeviceIDRequired,
				Message: "device id is required",
			})
		}
		payloadJSON, _ := json.Marshal(LinkDevicePayload{ClientID: clientID, DeviceID: deviceID})
		return command.Accept(command.NewEvent(cmd, EventTypeDeviceLinked, entityType, clientID, payloadJSON, now().UTC()))

	case CommandTypeAddNote:
		var payload AddNotePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		clientID, ok := command.ResolveEntityID(payload.ClientID, cmd.EntityID)
		if !ok {
			return command.Reject(idMismatch())
		}
		note := strings.TrimSpace(payload.Note)
		if note == "" {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeClientNoteRequired,
				Message: "note is required",
			})
		}
		payloadJSON, _ := json.Marshal(AddNotePayload{ClientID: clientID, Note: note})
		return command.Accept(command.NewEvent(cmd, EventTypeNoteAdded, entityType, clientID, payloadJSON, now().UTC()))

	case CommandTypeMove:
		if !state.Registered {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeClientNotRegistered,
				Message: "client not registered",
			})
		}
		var payload MovePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		clientID, ok := command.ResolveEntityID(payload.ClientID, cmd.EntityID)
		if !ok {
			return command.Reject(idMismatch())
		}
		city := strings.TrimSpace(payload.City)
		if city == "" {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeClientCityRequired,
				Message: "city is required",
			})
		}
		payloadJSON, _ := json.Marshal(MovePayload{ClientID: clientID, City: city})
		return command.Accept(command.NewEvent(cmd, EventTypeMoved, entityType, clientID, payloadJSON, now().UTC()))
	}
	return command.Reject(command.Rejection{
		Code:    rejectionCodeCommandTypeUnsupported,
		Message: "command type is not supported by client decider",
	})
}

func idMismatch() command.Rejection {
	return command.Rejection{
		Code:    RejectionCodeClientIDMismatch,
		Message: "payload client id does not match stream",
	}
}
