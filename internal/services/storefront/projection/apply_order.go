package projection

import (
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/order"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
)

func applyOrderCreated(tx *readmodel.Tx, evt event.Event, payload order.CreatePayload) error {
	id := payloadOrEntity(payload.OrderID, evt)
	tx.PutOrder(readmodel.Order{
		ID:        id,
		Type:      payload.OrderType,
		ClientID:  payload.ClientID,
		Status:    readmodel.OrderStatusDraft,
		Items:     []readmodel.OrderItem{},
		CreatedAt: eventTime(evt),
	})
	return nil
}

func applyOrderItemAdded(tx *readmodel.Tx, evt event.Event, payload order.AddItemPayload) error {
	id := payloadOrEntity(payload.OrderID, evt)
	o, ok := tx.Order(id)
	if !ok {
		skip(tx, evt, "order", id)
		return nil
	}
	o.Items = append(o.Items, readmodel.OrderItem{
		ItemID:   payload.ItemID,
		Quantity: payload.Quantity,
		Price:    payload.Price,
	})
	o.OrderTotal += payload.Price * payload.Quantity
	tx.PutOrder(o)
	return nil
}

// applyOrderConfirmed marks the order confirmed. Purchase orders also feed the
// dashboard, the owning client's spend and the stock of every line item.
func applyOrderConfirmed(tx *readmodel.Tx, evt event.Event, payload order.ConfirmedPayload) error {
	id := payloadOrEntity(payload.OrderID, evt)
	o, ok := tx.Order(id)
	if !ok {
		skip(tx, evt, "order", id)
		return nil
	}
	if o.Status == readmodel.OrderStatusConfirmed {
		return nil
	}
	o.Status = readmodel.OrderStatusConfirmed
	o.ConfirmedAt = eventTime(evt)
	tx.PutOrder(o)

	if o.Type != order.TypePurchase {
		return nil
	}

	dash := tx.Dashboard()
	dash.TotalRevenue += o.OrderTotal
	dash.TotalOrdersConfirmed++
	dash.ItemsSold += o.ItemCount()
	tx.SetDashboard(dash)

	if c, ok := tx.Client(o.ClientID); ok {
		c.TotalSpent += o.OrderTotal
		tx.PutClient(c)
	} else {
		skip(tx, evt, "client", o.ClientID)
	}

	for _, line := range o.Items {
		item, ok := tx.Inventory(line.ItemID)
		if !ok {
			skip(tx, evt, "inventory", line.ItemID)
			continue
		}
		item.Stock -= line.Quantity
		tx.PutInventory(item)
	}
	return nil
}
