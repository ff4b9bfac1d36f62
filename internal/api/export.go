package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/hkanaan/sijill/internal/export"
	"github.com/hkanaan/sijill/internal/query"
	"github.com/hkanaan/sijill/internal/store"
)

// maxImportSize caps uploaded import files at 10 MB.
const maxImportSize = 10 << 20

// ExportHandler handles bulk import and export.
type ExportHandler struct {
	Inventory *store.Inventory
}

type importResponse struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped,omitempty"`
	Mode     string `json:"mode"`
}

// ExportCSV handles GET /api/export/csv: the currently filtered list as a
// tabular report file.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	items := query.Apply(h.Inventory.Items(), criteriaFromQuery(r))
	key, desc := sortFromQuery(r)
	items = query.Sort(items, key, desc)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.csv"`)
	if err := export.WriteCSV(w, items); err != nil {
		slog.Error("csv export", "error", err)
	}
}

// ExportJSON handles GET /api/export/json: the entire unfiltered collection
// as a lossless backup file.
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="backup.json"`)
	if err := export.WriteJSON(w, h.Inventory.Items()); err != nil {
		slog.Error("json export", "error", err)
	}
}

// ImportCSV handles POST /api/import/csv. The mode parameter picks the
// merge policy: "replace" (default) discards the whole collection and
// requires confirm=true; "merge" overlays rows onto existing items by
// barcode and adds the rest. Bad rows are skipped, not fatal.
func (h *ExportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "replace"
	}
	if mode != "replace" && mode != "merge" {
		jsonError(w, http.StatusBadRequest, "mode must be replace or merge")
		return
	}
	if mode == "replace" && !confirmed(r) {
		jsonError(w, http.StatusBadRequest, "confirmation required to replace all data")
		return
	}

	file, err := importFile(w, r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	items, skipped, err := export.ReadCSV(file)
	if err != nil {
		slog.Warn("csv import failed", "error", err)
		jsonError(w, http.StatusBadRequest, "could not read the file")
		return
	}
	if len(items) == 0 {
		jsonError(w, http.StatusBadRequest, "no valid items found in the file")
		return
	}

	switch mode {
	case "replace":
		for i := range items {
			if items[i].ID == 0 {
				items[i].ID = h.Inventory.NextID()
			}
		}
		h.Inventory.ReplaceAll(r.Context(), items)
	case "merge":
		h.Inventory.Merge(r.Context(), items)
	}

	slog.Info("csv import", "mode", mode, "imported", len(items), "skipped", skipped)
	jsonResponse(w, http.StatusOK, importResponse{Imported: len(items), Skipped: skipped, Mode: mode})
}

// ImportJSON handles POST /api/import/json: wholesale replacement from a
// backup file. Requires confirm=true; a file whose top-level value is not
// an array aborts with no mutation.
func (h *ExportHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		jsonError(w, http.StatusBadRequest, "confirmation required to replace all data")
		return
	}

	file, err := importFile(w, r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	items, err := export.ReadJSON(file)
	if errors.Is(err, export.ErrNotArray) {
		jsonError(w, http.StatusBadRequest, "invalid backup file format")
		return
	}
	if err != nil {
		slog.Warn("json import failed", "error", err)
		jsonError(w, http.StatusBadRequest, "could not read the file")
		return
	}

	h.Inventory.ReplaceAll(r.Context(), items)

	slog.Info("json import", "imported", len(items))
	jsonResponse(w, http.StatusOK, importResponse{Imported: len(items), Mode: "replace"})
}

// importFile extracts the uploaded file from a multipart form.
func importFile(w http.ResponseWriter, r *http.Request) (multipart.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	return file, nil
}
