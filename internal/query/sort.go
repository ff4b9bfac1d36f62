package query

import (
	"sort"
	"strings"

	"github.com/hkanaan/sijill/internal/model"
)

// Sort keys, named after the Item fields as they appear on the wire.
const (
	SortID           = "id"
	SortBarcode      = "barcode"
	SortReceivedAt   = "receivedAt"
	SortCustomerName = "customerName"
	SortSpecs        = "specs"
	SortQuantity     = "quantity"
	SortUnitPrice    = "unitPrice"
	SortTotalPrice   = "totalPrice"
	SortNotes        = "notes"
	SortDeliveryDate = "deliveryDate"
	SortStatus       = "status"
)

// Sort returns a new list ordered by the given key. Items whose value for
// the key is null always land at the end, in both directions. The sort is
// stable, so ties keep their incoming order. An unknown key returns the
// input order.
func Sort(items []model.Item, key string, desc bool) []model.Item {
	out := append([]model.Item(nil), items...)

	if !knownKey(key) {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, aNull := fieldValue(out[i], key)
		b, bNull := fieldValue(out[j], key)

		// Nulls last regardless of direction.
		if aNull {
			return false
		}
		if bNull {
			return true
		}

		c := a.compare(b)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func knownKey(key string) bool {
	switch key {
	case SortID, SortBarcode, SortReceivedAt, SortCustomerName, SortSpecs,
		SortQuantity, SortUnitPrice, SortTotalPrice, SortNotes,
		SortDeliveryDate, SortStatus:
		return true
	}
	return false
}

// sortValue is either a number or a string. ISO date strings compare
// correctly as strings.
type sortValue struct {
	num     float64
	str     string
	numeric bool
}

func (v sortValue) compare(o sortValue) int {
	if v.numeric {
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		}
		return 0
	}
	return strings.Compare(v.str, o.str)
}

// fieldValue extracts the sortable value for a key. The second result is
// true when the value is null for this item.
func fieldValue(item model.Item, key string) (sortValue, bool) {
	switch key {
	case SortID:
		return sortValue{num: float64(item.ID), numeric: true}, false
	case SortBarcode:
		return sortValue{str: item.Barcode}, false
	case SortReceivedAt:
		return sortValue{str: item.ReceivedAt}, false
	case SortCustomerName:
		return sortValue{str: item.CustomerName}, false
	case SortSpecs:
		return sortValue{str: item.Specs}, false
	case SortQuantity:
		return sortValue{num: item.Quantity, numeric: true}, false
	case SortUnitPrice:
		return sortValue{num: item.UnitPrice, numeric: true}, false
	case SortTotalPrice:
		return sortValue{num: item.TotalPrice, numeric: true}, false
	case SortNotes:
		return sortValue{str: item.Notes}, false
	case SortDeliveryDate:
		if item.DeliveryDate == nil {
			return sortValue{}, true
		}
		return sortValue{str: *item.DeliveryDate}, false
	case SortStatus:
		return sortValue{str: item.Status}, false
	}
	return sortValue{}, true
}
