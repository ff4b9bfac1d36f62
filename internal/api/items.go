package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hkanaan/sijill/internal/model"
	"github.com/hkanaan/sijill/internal/query"
	"github.com/hkanaan/sijill/internal/store"
)

// ItemsHandler handles the item listing, scanning, editing and preview
// endpoints.
type ItemsHandler struct {
	Inventory *store.Inventory
}

type listResponse struct {
	Items       []model.Item `json:"items"`
	LastScanned string       `json:"lastScanned,omitempty"`
}

type scanRequest struct {
	Barcode string `json:"barcode"`
}

type scanResponse struct {
	Item     model.Item `json:"item"`
	Existing bool       `json:"existing"`
}

// criteriaFromQuery reads the filter criteria query parameters.
func criteriaFromQuery(r *http.Request) model.Criteria {
	q := r.URL.Query()
	return model.Criteria{
		Status:   q.Get("status"),
		Customer: q.Get("customer"),
		DateFrom: q.Get("from"),
		DateTo:   q.Get("to"),
	}
}

// sortFromQuery reads the sort key and direction. The default matches the
// table's initial state: received date, newest first.
func sortFromQuery(r *http.Request) (key string, desc bool) {
	q := r.URL.Query()
	key = q.Get("sort")
	if key == "" {
		return query.SortReceivedAt, true
	}
	return key, q.Get("dir") == "desc"
}

// List handles GET /api/items: the filtered, sorted view of the collection.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items := query.Apply(h.Inventory.Items(), criteriaFromQuery(r))
	key, desc := sortFromQuery(r)
	items = query.Sort(items, key, desc)

	jsonResponse(w, http.StatusOK, listResponse{
		Items:       items,
		LastScanned: h.Inventory.LastScanned(),
	})
}

// Scan handles POST /api/items/scan. A known barcode returns the existing
// item for editing; an unknown one returns a prefilled draft that is not
// stored until saved.
func (h *ItemsHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Barcode == "" {
		jsonError(w, http.StatusBadRequest, "barcode required")
		return
	}

	h.Inventory.MarkScanned(req.Barcode)

	if existing, ok := h.Inventory.FindByBarcode(req.Barcode); ok {
		jsonResponse(w, http.StatusOK, scanResponse{Item: existing, Existing: true})
		return
	}

	draft := model.Item{
		ID:         h.Inventory.NextID(),
		Barcode:    req.Barcode,
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
		Quantity:   1,
		Status:     model.StatusNew,
	}
	jsonResponse(w, http.StatusOK, scanResponse{Item: draft, Existing: false})
}

// Save handles PUT /api/items: the committed edit form. New items are
// prepended, existing ones replaced in place; the total price is
// recomputed server-side either way.
func (h *ItemsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var item model.Item
	if err := decodeJSON(r, &item); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if item.Barcode == "" {
		jsonError(w, http.StatusBadRequest, "barcode required")
		return
	}
	if item.Status == "" {
		item.Status = model.StatusNew
	}
	if !model.ValidStatus(item.Status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if item.Quantity < 0 || item.UnitPrice < 0 {
		jsonError(w, http.StatusBadRequest, "quantity and unit price must not be negative")
		return
	}
	if item.ID == 0 {
		item.ID = h.Inventory.NextID()
	}
	if item.ReceivedAt == "" {
		item.ReceivedAt = time.Now().UTC().Format(time.RFC3339)
	}

	saved, err := h.Inventory.Upsert(r.Context(), item)
	if errors.Is(err, store.ErrDuplicateBarcode) {
		jsonError(w, http.StatusConflict, "an item with this barcode already exists")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save item")
		return
	}

	jsonResponse(w, http.StatusOK, saved)
}

// Get handles GET /api/items/{id}: the read-only preview.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, ok := h.Inventory.FindByID(id)
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}. The action is irreversible and
// requires confirm=true; without it nothing changes.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if !confirmed(r) {
		jsonError(w, http.StatusBadRequest, "confirmation required")
		return
	}

	h.Inventory.Delete(r.Context(), id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Customers handles GET /api/customers: distinct customer names for the
// filter panel and edit form suggestions.
func (h *ItemsHandler) Customers(w http.ResponseWriter, r *http.Request) {
	names := h.Inventory.UniqueCustomers()
	if names == nil {
		names = []string{}
	}
	jsonResponse(w, http.StatusOK, names)
}

// Alerts handles GET /api/alerts: the items not yet delivered.
func (h *ItemsHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	items := h.Inventory.Undelivered()
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}
