package query

import (
	"testing"

	"github.com/hkanaan/sijill/internal/model"
)

func strptr(s string) *string { return &s }

func TestSortAscendingThenDescendingReverses(t *testing.T) {
	items := []model.Item{
		{ID: 1, TotalPrice: 30},
		{ID: 2, TotalPrice: 10},
		{ID: 3, TotalPrice: 20},
	}

	asc := Sort(items, SortTotalPrice, false)
	desc := Sort(items, SortTotalPrice, true)

	if got := ids(asc); got[0] != 2 || got[1] != 3 || got[2] != 1 {
		t.Errorf("unexpected ascending order: %v", got)
	}
	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("descending is not the reverse: %v vs %v", ids(asc), ids(desc))
		}
	}
}

func TestSortByReceivedAtChronological(t *testing.T) {
	items := []model.Item{
		{ID: 1, ReceivedAt: "2024-03-01T00:00:00Z"},
		{ID: 2, ReceivedAt: "2024-01-15T09:30:00Z"},
		{ID: 3, ReceivedAt: "2024-02-20T18:00:00Z"},
	}

	got := Sort(items, SortReceivedAt, false)
	if got[0].ID != 2 || got[1].ID != 3 || got[2].ID != 1 {
		t.Errorf("unexpected order: %v", ids(got))
	}
}

func TestSortNullsAlwaysLast(t *testing.T) {
	items := []model.Item{
		{ID: 1, DeliveryDate: nil},
		{ID: 2, DeliveryDate: strptr("2024-02-01T00:00:00Z")},
		{ID: 3, DeliveryDate: nil},
		{ID: 4, DeliveryDate: strptr("2024-01-01T00:00:00Z")},
	}

	asc := Sort(items, SortDeliveryDate, false)
	if asc[0].ID != 4 || asc[1].ID != 2 {
		t.Errorf("unexpected ascending non-null order: %v", ids(asc))
	}
	if asc[2].DeliveryDate != nil || asc[3].DeliveryDate != nil {
		t.Errorf("expected nulls at the end ascending: %v", ids(asc))
	}

	desc := Sort(items, SortDeliveryDate, true)
	if desc[0].ID != 2 || desc[1].ID != 4 {
		t.Errorf("unexpected descending non-null order: %v", ids(desc))
	}
	if desc[2].DeliveryDate != nil || desc[3].DeliveryDate != nil {
		t.Errorf("expected nulls at the end descending: %v", ids(desc))
	}
}

func TestSortIsStable(t *testing.T) {
	items := []model.Item{
		{ID: 1, Status: model.StatusNew},
		{ID: 2, Status: model.StatusNew},
		{ID: 3, Status: model.StatusNew},
	}

	got := Sort(items, SortStatus, false)
	if got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
		t.Errorf("expected ties to keep incoming order: %v", ids(got))
	}
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	items := []model.Item{{ID: 2}, {ID: 1}}
	got := Sort(items, "bogus", false)
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("expected input order for unknown key: %v", ids(got))
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := []model.Item{{ID: 2}, {ID: 1}}
	Sort(items, SortID, false)
	if items[0].ID != 2 {
		t.Error("expected input slice to be untouched")
	}
}
