package order

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

const (
	CommandTypeCreate   command.Type = "order.create"
	CommandTypeAddItem  command.Type = "order.add_item"
	CommandTypeCheckout command.Type = "order.checkout"
	EventTypeCreated    event.Type   = "order.created"
	EventTypeItemAdded  event.Type   = "order.item_added"
	EventTypeConfirmed  event.Type   = "order.confirmed"

	entityType = "order"

	RejectionCodeOrderAlreadyExists    = "ORDER_ALREADY_EXISTS"
	RejectionCodeOrderClientIDRequired = "ORDER_CLIENT_ID_REQUIRED"
	RejectionCodeOrderTypeInvalid      = "ORDER_TYPE_INVALID"
	RejectionCodeOrderIDMismatch       = "ORDER_ID_MISMATCH"
	RejectionCodeOrderNotCreated       = "ORDER_NOT_CREATED"
	RejectionCodeOrderAlreadyConfirmed = "ORDER_ALREADY_CONFIRMED"
	RejectionCodeOrderItemIDRequired   = "ORDER_ITEM_ID_REQUIRED"
	RejectionCodeOrderQuantityInvalid  = "ORDER_QUANTITY_INVALID"
	RejectionCodeOrderPriceInvalid     = "ORDER_PRICE_INVALID"
	RejectionCodeOrderEmpty            = "ORDER_EMPTY"

	// RejectionCodeCommandTypeUnsupported is returned for commands routed to the wrong decider.
	RejectionCodeCommandTypeUnsupported = "COMMAND_TYPE_UNSUPPORTED"
)

// Decide returns the decision for an order command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	switch cmd.Type {
	case CommandTypeCreate:
		return decideCreate(state, cmd, now)
	case CommandTypeAddItem:
		return decideAddItem(state, cmd, now)
	case CommandTypeCheckout:
		return decideCheckout(state, cmd, now)
	default:
		return command.Reject(command.Rejection{
			Code:    RejectionCodeCommandTypeUnsupported,
			Message: "command type is not supported by order decider",
		})
	}
}

func decideCreate(state State, cmd command.Command, now func() time.Time) command.Decision {
	if state.Status != StatusNew {
		return command.Reject(command.Rejection{
			Code:    RejectionCodeOrderAlreadyExists,
			Message: "order already exists",
		})
	}
	var payload CreatePayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	orderID, rejection, ok := resolveOrderID(payload.OrderID, cmd.EntityID)
	if !ok {
		return command.Reject(rejection)
	}
	clientID := strings.TrimSpace(payload.ClientID)
	if clientID == "" {
		return command.Reject(command.Rejection{
			Code:    RejectionCodeOrderClientIDRequired,
			Message: "client id is required",
		})
	}
	orderType, ok := normalizeOrderType(payload.OrderType)
	if !ok {
		return command.Reject(command.Rejection{
			Code:    RejectionCodeOrderTypeInvalid,
			Message: "order type must be purchase or quote",
		})
	}

	payloadJSON, _ := json.Marshal(CreatePayload{OrderID: orderID, ClientID: clientID, OrderType: orderType})
	return command.Accept(command.NewEvent(cmd, EventTypeCreated, entityType, orderID, payloadJSON, now().UTC()))
}

func decideAddItem(state State, cmd command.Command, now func() time.Time) command.Decision {
	if rejection, ok := requireOpen(state); !ok {
		return command.Reject(rejection)
	}
	var payload AddItemPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	orderID, rejection, ok := resolveOrderID(payload.OrderID, cmd.EntityID)
	if !ok {
		return command.Reject(rejection)
	}
	itemID := strings.TrimSpace(payload.ItemID)
	if itemID == "" {
		return command.Reject(command.Rejection{
			Code:    RejectionCodeOrderItemIDRequired,
			Message: "item id is required",
		})
	}
	if payload.Quantity <= 0 {
		return command.Reject(command.Rejection{
			Code:    RejectionCodeOrderQuantityInvalid,
			Message: "quantity must be positive",
		})
	}
	if payload.Price < 0 {
		return command.Reject(command.Rejection{
			Code:    RejectionCodeOrderPriceInvalid,
			Message: "price must not be negative",
		})
	}

	payloadJSON, _ := json.Marshal(AddItemPayload{
		OrderID:  orderID,
		ItemID:   itemID,
		Quantity: payload.Quantity,
		Price:    payload.Price,
	})
	return command.Accept(command.NewEvent(cmd, EventTypeItemAdded, entityType, orderID, payloadJSON, now().UTC()))
}

func decideCheckout(state State, cmd command.Command, now func() time.Time) command.Decision {
	if rejection, ok := requireOpen(state); !ok {
		return command.Reject(rejection)
	}
	var payload CheckoutPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	orderID, rejection, ok := resolveOrderID(payload.OrderID, cmd.EntityID)
	if !ok {
		return command.Reject(rejection)
	}
	if len(state.Items) == 0 {
		return command.Reject(command.Rejection{
			Code:    RejectionCodeOrderEmpty,
			Message: "order has no items",
		})
	}

	payloadJSON, _ := json.Marshal(ConfirmedPayload{
		OrderID:    orderID,
		ClientID:   state.ClientID,
		OrderType:  state.OrderType,
		OrderTotal: state.Total,
		ItemCount:  state.ItemCount(),
	})
	return command.Accept(command.NewEvent(cmd, EventTypeConfirmed, entityType, orderID, payloadJSON, now().UTC()))
}

func requireOpen(state State) (command.Rejection, bool) {
	switch state.Status {
	case StatusNew:
		return command.Rejection{Code: RejectionCodeOrderNotCreated, Message: "order not created"}, false
	case StatusConfirmed:
		return command.Rejection{Code: RejectionCodeOrderAlreadyConfirmed, Message: "order already confirmed"}, false
	}
	return command.Rejection{}, true
}

func resolveOrderID(payloadID, entityID string) (string, command.Rejection, bool) {
	orderID, ok := command.ResolveEntityID(payloadID, entityID)
	if !ok {
		return "", command.Rejection{
			Code:    RejectionCodeOrderIDMismatch,
			Message: "payload order id does not match stream",
		}, false
	}
	return orderID, command.Rejection{}, true
}

func normalizeOrderType(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", TypePurchase:
		return TypePurchase, true
	case TypeQuote:
		return TypeQuote, true
	}
	return "", false
}
