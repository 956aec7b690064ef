package projection

import (
	"github.com/louisbranch/storefront/internal/services/storefront/domain/device"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
)

func applyDeviceDetected(tx *readmodel.Tx, evt event.Event, payload device.DetectPayload) error {
	id := payloadOrEntity(payload.DeviceID, evt)
	tx.PutDevice(readmodel.Device{
		ID:            id,
		Browser:       payload.Browser,
		DeviceName:    payload.DeviceName,
		ViewportWidth: payload.ViewportWidth,
		FirstSeen:     eventTime(evt),
	})
	return nil
}

func applyDeviceViewportChanged(tx *readmodel.Tx, evt event.Event, payload device.ResizePayload) error {
	id := payloadOrEntity(payload.DeviceID, evt)
	d, ok := tx.Device(id)
	if !ok {
		skip(tx, evt, "device", id)
		return nil
	}
	d.ViewportWidth = payload.ViewportWidth
	tx.PutDevice(d)
	return nil
}
