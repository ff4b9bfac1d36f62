package model

// Item represents one physical good received from a customer for processing.
// JSON tags are camelCase because the JSON backup format predates this
// implementation and existing backup files must keep round-tripping.
type Item struct {
	ID           int64   `json:"id"`
	Barcode      string  `json:"barcode"`
	ReceivedAt   string  `json:"receivedAt"`
	CustomerName string  `json:"customerName"`
	Specs        string  `json:"specs"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	Notes        string  `json:"notes"`
	DeliveryDate *string `json:"deliveryDate"`
	Status       string  `json:"status"`
}

// Item statuses (closed workflow).
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// StatusLabels maps status keys to the labels shown in reports and the
// tabular export format.
var StatusLabels = map[string]string{
	StatusNew:        "جديد",
	StatusInProgress: "قيد المعالجة",
	StatusDelivered:  "تم التسليم",
	StatusCancelled:  "ملغي",
}

// StatusLabel returns the display label for a status key, or the key itself
// if it is not a known status.
func StatusLabel(status string) string {
	if label, ok := StatusLabels[status]; ok {
		return label
	}
	return status
}

// StatusFromLabel reverse-maps a display label to its status key.
func StatusFromLabel(label string) (string, bool) {
	for status, l := range StatusLabels {
		if l == label {
			return status, true
		}
	}
	return "", false
}

// ValidStatus reports whether status is one of the known workflow states.
func ValidStatus(status string) bool {
	_, ok := StatusLabels[status]
	return ok
}

// Recalculate sets the derived total price. Total price is never edited
// independently; it always equals quantity times unit price.
func (i *Item) Recalculate() {
	i.TotalPrice = i.Quantity * i.UnitPrice
}
