package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go
// and the rejection codes declared by the domain deciders.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeCommandInvalid             = "COMMAND_INVALID"
	CodeCommandRejected            = "COMMAND_REJECTED"
	CodeVersionConflict            = "STREAM_VERSION_CONFLICT"
	CodeNotFound                   = "NOT_FOUND"
	CodeFilterInvalid              = "FILTER_INVALID"
	CodePageTokenInvalid           = "PAGE_TOKEN_INVALID"
	CodeSnapshotWriteFailed        = "SNAPSHOT_WRITE_FAILED"
	CodeSnapshotReadFailed         = "SNAPSHOT_READ_FAILED"
	CodeSnapshotVersionUnsupported = "SNAPSHOT_VERSION_UNSUPPORTED"
	CodeProjectionFailed           = "PROJECTION_FAILED"

	CodeOrderAlreadyExists    = "ORDER_ALREADY_EXISTS"
	CodeOrderClientIDRequired = "ORDER_CLIENT_ID_REQUIRED"
	CodeOrderTypeInvalid      = "ORDER_TYPE_INVALID"
	CodeOrderIDMismatch       = "ORDER_ID_MISMATCH"
	CodeOrderNotCreated       = "ORDER_NOT_CREATED"
	CodeOrderAlreadyConfirmed = "ORDER_ALREADY_CONFIRMED"
	CodeOrderItemIDRequired   = "ORDER_ITEM_ID_REQUIRED"
	CodeOrderQuantityInvalid  = "ORDER_QUANTITY_INVALID"
	CodeOrderPriceInvalid     = "ORDER_PRICE_INVALID"
	CodeOrderEmpty            = "ORDER_EMPTY"

	CodeInventoryAlreadyExists   = "INVENTORY_ALREADY_EXISTS"
	CodeInventoryNotCreated      = "INVENTORY_NOT_CREATED"
	CodeInventoryIDMismatch      = "INVENTORY_ID_MISMATCH"
	CodeInventoryNameRequired    = "INVENTORY_NAME_REQUIRED"
	CodeInventoryCostInvalid     = "INVENTORY_COST_INVALID"
	CodeInventoryQuantityInvalid = "INVENTORY_QUANTITY_INVALID"

	CodeClientAlreadyRegistered = "CLIENT_ALREADY_REGISTERED"
	CodeClientNotRegistered     = "CLIENT_NOT_REGISTERED"
	CodeClientIDMismatch        = "CLIENT_ID_MISMATCH"
	CodeClientAgeInvalid        = "CLIENT_AGE_INVALID"
	CodeClientCityRequired      = "CLIENT_CITY_REQUIRED"
	CodeClientDeviceIDRequired  = "CLIENT_DEVICE_ID_REQUIRED"
	CodeClientNoteRequired      = "CLIENT_NOTE_REQUIRED"

	CodeDeviceAlreadyDetected = "DEVICE_ALREADY_DETECTED"
	CodeDeviceNotDetected     = "DEVICE_NOT_DETECTED"
	CodeDeviceIDMismatch      = "DEVICE_ID_MISMATCH"
	CodeDeviceViewportInvalid = "DEVICE_VIEWPORT_INVALID"

	CodeCommandTypeUnsupported = "COMMAND_TYPE_UNSUPPORTED"
)

var enUSCatalog = &Catalog{
	locale: BaseLocale,
	messages: map[Code]string{
		// Platform errors
		CodeCommandInvalid:             "The command is malformed",
		CodeCommandRejected:            "{{.command_type}} was rejected",
		CodeVersionConflict:            "The stream changed while the command was running; try again",
		CodeNotFound:                   "{{.kind}} {{.id}} was not found",
		CodeFilterInvalid:              "The filter expression is invalid",
		CodePageTokenInvalid:           "The page token is invalid",
		CodeSnapshotWriteFailed:        "The snapshot could not be written",
		CodeSnapshotReadFailed:         "The snapshot could not be read",
		CodeSnapshotVersionUnsupported: "Snapshot version {{.version}} is not supported",
		CodeProjectionFailed:           "The read model could not be updated",

		// Order rejections
		CodeOrderAlreadyExists:    "Order already exists",
		CodeOrderClientIDRequired: "An order needs a client",
		CodeOrderTypeInvalid:      "Order type must be purchase or quote",
		CodeOrderIDMismatch:       "Order id does not match the stream",
		CodeOrderNotCreated:       "Order has not been created",
		CodeOrderAlreadyConfirmed: "Order is already confirmed",
		CodeOrderItemIDRequired:   "Line items need an item id",
		CodeOrderQuantityInvalid:  "Quantity must be at least 1",
		CodeOrderPriceInvalid:     "Price cannot be negative",
		CodeOrderEmpty:            "Cannot check out an order with no items",

		// Inventory rejections
		CodeInventoryAlreadyExists:   "Inventory item already exists",
		CodeInventoryNotCreated:      "Inventory item has not been created",
		CodeInventoryIDMismatch:      "Item id does not match the stream",
		CodeInventoryNameRequired:    "Inventory items need a name",
		CodeInventoryCostInvalid:     "Cost cannot be negative",
		CodeInventoryQuantityInvalid: "Quantity must be at least 1",

		// Client rejections
		CodeClientAlreadyRegistered: "Client is already registered",
		CodeClientNotRegistered:     "Client is not registered",
		CodeClientIDMismatch:        "Client id does not match the stream",
		CodeClientAgeInvalid:        "Age cannot be negative",
		CodeClientCityRequired:      "City is required",
		CodeClientDeviceIDRequired:  "Device id is required",
		CodeClientNoteRequired:      "Note cannot be empty",

		// Device rejections
		CodeDeviceAlreadyDetected: "Device was already detected",
		CodeDeviceNotDetected:     "Device has not been detected",
		CodeDeviceIDMismatch:      "Device id does not match the stream",
		CodeDeviceViewportInvalid: "Viewport width is invalid",

		CodeCommandTypeUnsupported: "Command is not supported",
	},
}
