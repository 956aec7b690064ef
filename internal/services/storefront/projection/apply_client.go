package projection

import (
	"github.com/louisbranch/storefront/internal/services/storefront/domain/client"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
)

// clientRecord returns the existing client or a fresh unregistered one.
func clientRecord(tx *readmodel.Tx, id string) readmodel.Client {
	c, ok := tx.Client(id)
	if !ok {
		return readmodel.Client{ID: id, Devices: []string{}, CRMNotes: []string{}}
	}
	return c
}

func applyClientRegistered(tx *readmodel.Tx, evt event.Event, payload client.RegisterPayload) error {
	c := clientRecord(tx, payloadOrEntity(payload.ClientID, evt))
	c.Age = payload.Age
	c.City = payload.City
	c.IsRegistered = true
	tx.PutClient(c)
	return nil
}

func applyClientDeviceLinked(tx *readmodel.Tx, evt event.Event, payload client.LinkDevicePayload) error {
	c := clientRecord(tx, payloadOrEntity(payload.ClientID, evt))
	if !c.HasDevice(payload.DeviceID) {
		c.Devices = append(c.Devices, payload.DeviceID)
	}
	tx.PutClient(c)
	return nil
}

func applyClientNoteAdded(tx *readmodel.Tx, evt event.Event, payload client.AddNotePayload) error {
	c := clientRecord(tx, payloadOrEntity(payload.ClientID, evt))
	c.CRMNotes = append(c.CRMNotes, payload.Note)
	tx.PutClient(c)
	return nil
}

func applyClientMoved(tx *readmodel.Tx, evt event.Event, payload client.MovePayload) error {
	id := payloadOrEntity(payload.ClientID, evt)
	c, ok := tx.Client(id)
	if !ok {
		skip(tx, evt, "client", id)
		return nil
	}
	c.City = payload.City
	tx.PutClient(c)
	return nil
}
