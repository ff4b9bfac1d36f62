// Package query derives the presented item list: filtering by the active
// criteria and ordering by the chosen column. Both operations are pure and
// re-run in full on every call; the collection is operator-entered
// inventory, not a backend-scale dataset.
package query

import (
	"time"

	"github.com/hkanaan/sijill/internal/model"
)

// Apply returns the ordered subsequence of items satisfying every set
// criterion. Unset criteria impose no constraint. Status and customer match
// by exact equality; date bounds are inclusive and compared at day
// resolution on both ends.
func Apply(items []model.Item, c model.Criteria) []model.Item {
	if c.Empty() {
		return append([]model.Item(nil), items...)
	}

	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if matches(item, c) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item model.Item, c model.Criteria) bool {
	if c.Status != "" && item.Status != c.Status {
		return false
	}
	if c.Customer != "" && item.CustomerName != c.Customer {
		return false
	}

	if c.DateFrom != "" || c.DateTo != "" {
		received, ok := day(item.ReceivedAt)
		if !ok {
			return false
		}
		if c.DateFrom != "" {
			from, ok := day(c.DateFrom)
			if ok && received.Before(from) {
				return false
			}
		}
		if c.DateTo != "" {
			to, ok := day(c.DateTo)
			if ok && received.After(to) {
				return false
			}
		}
	}

	return true
}

// day parses a timestamp or plain date and truncates it to its calendar day.
func day(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse("2006-01-02", value)
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
