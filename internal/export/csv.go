// Package export maps the item collection to and from its two external
// file formats: the localized tabular (CSV) report, which is human-readable
// and lossy, and the JSON backup, which round-trips losslessly.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hkanaan/sijill/internal/model"
)

// CSVHeaders is the fixed 11-column header row of the tabular format.
var CSVHeaders = []string{
	"المعرف",
	"الباركود",
	"تاريخ الاستلام",
	"اسم العميل",
	"المواصفات",
	"الكمية",
	"سعر الوحدة",
	"السعر الإجمالي",
	"ملاحظات",
	"تاريخ التسليم",
	"الحالة",
}

// csvDateLayout is the localized day-precision date form used in the
// tabular format.
const csvDateLayout = "02/01/2006"

// WriteCSV writes the given items (normally the currently filtered list)
// as a tabular report: header row, then one row per item with localized
// dates and status labels.
func WriteCSV(w io.Writer, items []model.Item) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeaders); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, item := range items {
		delivery := ""
		if item.DeliveryDate != nil {
			delivery = formatCSVDate(*item.DeliveryDate)
		}

		row := []string{
			strconv.FormatInt(item.ID, 10),
			item.Barcode,
			formatCSVDate(item.ReceivedAt),
			item.CustomerName,
			item.Specs,
			formatNumber(item.Quantity),
			formatNumber(item.UnitPrice),
			formatNumber(item.TotalPrice),
			item.Notes,
			delivery,
			model.StatusLabel(item.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// ReadCSV parses a tabular file back into items. The header row is
// required and consumed. Rows with too few columns or a blank barcode are
// skipped and counted rather than failing the import; numeric fields
// coerce to 0 on parse failure; unrecognized status labels fall back to
// New; an unparseable received date falls back to now. An id of 0 means
// the row carried no usable id and the caller should assign a fresh one.
func ReadCSV(r io.Reader) (items []model.Item, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		return nil, 0, fmt.Errorf("reading header row: %w", err)
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading row: %w", err)
		}

		if len(record) < len(CSVHeaders) || record[1] == "" {
			skipped++
			continue
		}

		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil || id < 0 {
			id = 0
		}

		status := model.StatusNew
		if key, ok := model.StatusFromLabel(record[10]); ok {
			status = key
		}

		item := model.Item{
			ID:           id,
			Barcode:      record[1],
			ReceivedAt:   parseCSVDate(record[2]),
			CustomerName: record[3],
			Specs:        record[4],
			Quantity:     parseNumber(record[5]),
			UnitPrice:    parseNumber(record[6]),
			TotalPrice:   parseNumber(record[7]),
			Notes:        record[8],
			DeliveryDate: parseOptionalCSVDate(record[9]),
			Status:       status,
		}
		items = append(items, item)
	}

	return items, skipped, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// formatCSVDate renders a stored timestamp at day precision. Values that
// don't parse are passed through untouched.
func formatCSVDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format(csvDateLayout)
}

// parseCSVDate accepts the localized day form or a full timestamp, falling
// back to now when neither parses.
func parseCSVDate(s string) string {
	if t, err := time.Parse(csvDateLayout, s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// parseOptionalCSVDate returns nil for blank or unparseable delivery dates.
func parseOptionalCSVDate(s string) *string {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(csvDateLayout, s); err == nil {
		iso := t.UTC().Format(time.RFC3339)
		return &iso
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		iso := t.UTC().Format(time.RFC3339)
		return &iso
	}
	return nil
}
