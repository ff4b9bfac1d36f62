package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hkanaan/sijill/internal/model"
)

func strptr(s string) *string { return &s }

func sampleItems() []model.Item {
	return []model.Item{
		{
			ID:           5,
			Barcode:      "A1",
			ReceivedAt:   "2024-01-05T14:30:00Z",
			CustomerName: "Amal",
			Specs:        `شاشة 24" مكسورة`,
			Quantity:     2,
			UnitPrice:    5.5,
			TotalPrice:   11,
			Notes:        "عاجل",
			DeliveryDate: strptr("2024-02-01T00:00:00Z"),
			Status:       model.StatusInProgress,
		},
		{
			ID:         6,
			Barcode:    "B2",
			ReceivedAt: "2024-01-10T08:00:00Z",
			Quantity:   1,
			Status:     model.StatusNew,
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleItems()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	items, skipped, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected no skipped rows, got %d", skipped)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	got := items[0]
	if got.ID != 5 {
		t.Errorf("expected id 5 to round-trip, got %d", got.ID)
	}
	if got.Barcode != "A1" || got.CustomerName != "Amal" {
		t.Errorf("identity fields lost: %+v", got)
	}
	if got.Specs != `شاشة 24" مكسورة` {
		t.Errorf("quoted specs lost: %q", got.Specs)
	}
	if got.Quantity != 2 || got.UnitPrice != 5.5 || got.TotalPrice != 11 {
		t.Errorf("numeric fields lost: %+v", got)
	}
	if got.Status != model.StatusInProgress {
		t.Errorf("status label did not round-trip: %q", got.Status)
	}
	if got.DeliveryDate == nil || !strings.HasPrefix(*got.DeliveryDate, "2024-02-01") {
		t.Errorf("delivery date lost: %v", got.DeliveryDate)
	}
	// Day precision survives; time of day does not (the format is lossy).
	if !strings.HasPrefix(got.ReceivedAt, "2024-01-05") {
		t.Errorf("received day lost: %q", got.ReceivedAt)
	}

	if items[1].DeliveryDate != nil {
		t.Errorf("expected blank delivery to stay null")
	}
}

func TestReadCSVSkipsBadRows(t *testing.T) {
	input := strings.Join([]string{
		strings.Join(CSVHeaders, ","),
		"1,A1,05/01/2024,Amal,specs,1,2,2,notes,,جديد",
		"short,row",                            // too few columns
		"2,,05/01/2024,X,s,1,1,1,n,,جديد",      // blank barcode
		"3,C3,05/01/2024,Huda,s,1,1,1,n,,جديد", // fine
	}, "\n")

	items, skipped, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if skipped != 2 {
		t.Errorf("expected 2 skipped rows, got %d", skipped)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Barcode != "A1" || items[1].Barcode != "C3" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestReadCSVCoercesBadFields(t *testing.T) {
	input := strings.Join([]string{
		strings.Join(CSVHeaders, ","),
		"notanid,A1,garbage,Amal,s,abc,xyz,??,n,??,مجهول",
	}, "\n")

	items, _, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	got := items[0]
	if got.ID != 0 {
		t.Errorf("expected unusable id to report 0, got %d", got.ID)
	}
	if got.Quantity != 0 || got.UnitPrice != 0 || got.TotalPrice != 0 {
		t.Errorf("expected numeric coercion to 0: %+v", got)
	}
	if got.Status != model.StatusNew {
		t.Errorf("expected unknown label to fall back to new, got %q", got.Status)
	}
	if got.ReceivedAt == "" {
		t.Error("expected received date fallback to now")
	}
	if got.DeliveryDate != nil {
		t.Error("expected unparseable delivery date to stay null")
	}
}

func TestReadCSVRequiresHeader(t *testing.T) {
	if _, _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty file")
	}
}
