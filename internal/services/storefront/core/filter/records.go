package filter

import "github.com/louisbranch/storefront/internal/services/storefront/readmodel"

// ClientFields declares the filterable client attributes.
var ClientFields = Schema[readmodel.Client]{
	"id":            {Type: FieldString, Get: func(c readmodel.Client) any { return c.ID }},
	"city":          {Type: FieldString, Get: func(c readmodel.Client) any { return c.City }},
	"age":           {Type: FieldInt, Get: func(c readmodel.Client) any { return int64(c.Age) }},
	"is_registered": {Type: FieldBool, Get: func(c readmodel.Client) any { return c.IsRegistered }},
	"total_spent":   {Type: FieldInt, Get: func(c readmodel.Client) any { return c.TotalSpent }},
}

// OrderFields declares the filterable order attributes.
var OrderFields = Schema[readmodel.Order]{
	"id":          {Type: FieldString, Get: func(o readmodel.Order) any { return o.ID }},
	"client_id":   {Type: FieldString, Get: func(o readmodel.Order) any { return o.ClientID }},
	"status":      {Type: FieldString, Get: func(o readmodel.Order) any { return o.Status }},
	"type":        {Type: FieldString, Get: func(o readmodel.Order) any { return o.Type }},
	"order_total": {Type: FieldInt, Get: func(o readmodel.Order) any { return o.OrderTotal }},
	"item_count":  {Type: FieldInt, Get: func(o readmodel.Order) any { return o.ItemCount() }},
}

// InventoryFields declares the filterable inventory attributes.
var InventoryFields = Schema[readmodel.InventoryItem]{
	"id":    {Type: FieldString, Get: func(i readmodel.InventoryItem) any { return i.ID }},
	"sku":   {Type: FieldString, Get: func(i readmodel.InventoryItem) any { return i.SKU }},
	"name":  {Type: FieldString, Get: func(i readmodel.InventoryItem) any { return i.Name }},
	"cost":  {Type: FieldInt, Get: func(i readmodel.InventoryItem) any { return i.Cost }},
	"stock": {Type: FieldInt, Get: func(i readmodel.InventoryItem) any { return i.Stock }},
}

// DeviceFields declares the filterable device attributes.
var DeviceFields = Schema[readmodel.Device]{
	"id":             {Type: FieldString, Get: func(d readmodel.Device) any { return d.ID }},
	"browser":        {Type: FieldString, Get: func(d readmodel.Device) any { return d.Browser }},
	"device_name":    {Type: FieldString, Get: func(d readmodel.Device) any { return d.DeviceName }},
	"viewport_width": {Type: FieldInt, Get: func(d readmodel.Device) any { return int64(d.ViewportWidth) }},
}

// ClientPredicate compiles a client filter.
func ClientPredicate(filterStr string) (func(readmodel.Client) bool, error) {
	return Compile(filterStr, ClientFields)
}

// OrderPredicate compiles an order filter.
func OrderPredicate(filterStr string) (func(readmodel.Order) bool, error) {
	return Compile(filterStr, OrderFields)
}

// InventoryPredicate compiles an inventory filter.
func InventoryPredicate(filterStr string) (func(readmodel.InventoryItem) bool, error) {
	return Compile(filterStr, InventoryFields)
}

// DevicePredicate compiles a device filter.
func DevicePredicate(filterStr string) (func(readmodel.Device) bool, error) {
	return Compile(filterStr, DeviceFields)
}
