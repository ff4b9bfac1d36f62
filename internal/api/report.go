package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hkanaan/sijill/internal/model"
	"github.com/hkanaan/sijill/internal/query"
	"github.com/hkanaan/sijill/internal/store"
)

// reportBaseTitle is the heading of the printed movement report.
const reportBaseTitle = "تقرير حركة الأصناف"

// receiptTitle is the heading of a single-item receipt.
const receiptTitle = "إيصال استلام"

// ReportHandler assembles the printable payloads: the filtered movement
// report and the per-item receipt.
type ReportHandler struct {
	Inventory *store.Inventory
	Settings  *store.Settings
}

type reportResponse struct {
	Title       string         `json:"title"`
	Branding    model.Branding `json:"branding"`
	PrintedAt   string         `json:"printedAt"`
	Filters     reportFilters  `json:"filters"`
	Items       []model.Item   `json:"items"`
	StatusLabel map[string]string `json:"statusLabels"`
}

type reportFilters struct {
	Status   string `json:"status,omitempty"`
	Customer string `json:"customer,omitempty"`
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
}

type receiptResponse struct {
	Title       string         `json:"title"`
	Branding    model.Branding `json:"branding"`
	PrintedAt   string         `json:"printedAt"`
	Item        model.Item     `json:"item"`
	StatusLabel string         `json:"statusLabel"`
}

// Report handles GET /api/report: everything the print view needs, with
// the same filter and sort parameters as the item listing. A status filter
// is reflected in the title.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	criteria := criteriaFromQuery(r)
	items := query.Apply(h.Inventory.Items(), criteria)
	key, desc := sortFromQuery(r)
	items = query.Sort(items, key, desc)

	title := reportBaseTitle
	if criteria.Status != "" && model.ValidStatus(criteria.Status) {
		title = reportBaseTitle + " - " + model.StatusLabel(criteria.Status)
	}

	jsonResponse(w, http.StatusOK, reportResponse{
		Title:     title,
		Branding:  h.Settings.Branding(),
		PrintedAt: time.Now().UTC().Format(time.RFC3339),
		Filters: reportFilters{
			Status:   criteria.Status,
			Customer: criteria.Customer,
			DateFrom: criteria.DateFrom,
			DateTo:   criteria.DateTo,
		},
		Items:       items,
		StatusLabel: model.StatusLabels,
	})
}

// Receipt handles GET /api/items/{id}/receipt: the printable receipt for
// one item.
func (h *ReportHandler) Receipt(w http.ResponseWriter, r *http.Request) {
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

	jsonResponse(w, http.StatusOK, receiptResponse{
		Title:       receiptTitle,
		Branding:    h.Settings.Branding(),
		PrintedAt:   time.Now().UTC().Format(time.RFC3339),
		Item:        item,
		StatusLabel: model.StatusLabel(item.Status),
	})
}
