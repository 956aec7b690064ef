package httpapi

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/platform/pagination"
	"github.com/louisbranch/storefront/internal/services/storefront/core/filter"
)

var listPageSize = pagination.PageSizeConfig{Default: 100, Max: 500}

// writePage writes one page of items under key, with next_page_token set when
// more items remain. Items arrive sorted by id so offsets are stable.
func writePage[T any](w http.ResponseWriter, r *http.Request, key string, items []T) {
	query := r.URL.Query()
	offset, err := pagination.ParsePageToken(query.Get("page_token"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	size := pagination.ParsePageSize(query.Get("page_size"), listPageSize)
	page, next := pagination.Window(items, offset, size)
	body := map[string]any{key: page}
	if next != "" {
		body["next_page_token"] = next
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleListInventory(w http.ResponseWriter, r *http.Request) {
	pred, err := filter.InventoryPredicate(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	items := h.Store.ListInventory(pred)
	views := make([]inventoryView, 0, len(items))
	for _, item := range items {
		views = append(views, newInventoryView(item))
	}
	writePage(w, r, "inventory", views)
}

func (h *Handler) handleGetInventory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item, ok := h.Store.Inventory(id)
	if !ok {
		writeError(w, r, notFound("inventory", id))
		return
	}
	writeJSON(w, http.StatusOK, newInventoryView(item))
}

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	pred, err := filter.ClientPredicate(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, "clients", h.Store.ListClients(pred))
}

func (h *Handler) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, ok := h.Store.Client(id)
	if !ok {
		writeError(w, r, notFound("client", id))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleListDevices(w http.ResponseWriter, r *http.Request) {
	pred, err := filter.DevicePredicate(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, "devices", h.Store.ListDevices(pred))
}

func (h *Handler) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d, ok := h.Store.Device(id)
	if !ok {
		writeError(w, r, notFound("device", id))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	pred, err := filter.OrderPredicate(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, "orders", h.Store.ListOrders(pred))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	o, ok := h.Store.Order(id)
	if !ok {
		writeError(w, r, notFound("order", id))
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Dashboard())
}
