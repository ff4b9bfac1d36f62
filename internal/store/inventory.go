package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hkanaan/sijill/internal/kv"
	"github.com/hkanaan/sijill/internal/model"
)

// ErrDuplicateBarcode is returned when inserting a new item whose barcode
// is already present. The scan flow avoids this by opening the existing
// item for editing instead of creating a duplicate.
var ErrDuplicateBarcode = errors.New("barcode already exists")

// highlightTTL is how long a just-scanned barcode stays highlighted.
const highlightTTL = 2 * time.Second

// Inventory owns the item collection: an in-memory most-recent-first list,
// mirrored to the key/value store as a JSON array on every committed
// mutation. Persistence is best-effort; write failures are logged and do
// not fail the mutation.
type Inventory struct {
	mu          sync.Mutex
	db          *sql.DB
	items       []model.Item
	nextID      int64
	lastScanned string
	scanTimer   *time.Timer
}

// LoadInventory reads the stored item collection and seeds the id counter
// from the highest stored id. An absent or empty key yields an empty
// collection.
func LoadInventory(ctx context.Context, db *sql.DB) (*Inventory, error) {
	inv := &Inventory{db: db, nextID: 1}

	raw, ok, err := kv.Get(ctx, db, kv.KeyItems)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &inv.items); err != nil {
			return nil, fmt.Errorf("decoding stored inventory: %w", err)
		}
	}

	for _, item := range inv.items {
		if item.ID >= inv.nextID {
			inv.nextID = item.ID + 1
		}
	}
	return inv, nil
}

// Close stops the highlight timer. Safe to call more than once.
func (inv *Inventory) Close() {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if inv.scanTimer != nil {
		inv.scanTimer.Stop()
		inv.scanTimer = nil
	}
	inv.lastScanned = ""
}

// Items returns a snapshot of the collection in current order.
func (inv *Inventory) Items() []model.Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return append([]model.Item(nil), inv.items...)
}

// Len returns the number of items.
func (inv *Inventory) Len() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.items)
}

// NextID hands out the next id from the monotonic counter.
func (inv *Inventory) NextID() int64 {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	id := inv.nextID
	inv.nextID++
	return id
}

// Upsert replaces the item with a matching id in place (order preserved),
// or prepends the item as the most recent entry. The total price is
// recomputed either way. Inserting a new item with a barcode that already
// belongs to another item returns ErrDuplicateBarcode.
func (inv *Inventory) Upsert(ctx context.Context, item model.Item) (model.Item, error) {
	item.Recalculate()

	inv.mu.Lock()
	defer inv.mu.Unlock()

	for i := range inv.items {
		if inv.items[i].ID == item.ID {
			inv.items[i] = item
			inv.persist(ctx)
			return item, nil
		}
	}

	for i := range inv.items {
		if inv.items[i].Barcode == item.Barcode {
			return model.Item{}, ErrDuplicateBarcode
		}
	}

	inv.items = append([]model.Item{item}, inv.items...)
	if item.ID >= inv.nextID {
		inv.nextID = item.ID + 1
	}
	inv.persist(ctx)
	return item, nil
}

// Delete removes the item with the given id. No-op if absent. The caller
// is responsible for having confirmed the action; it cannot be undone.
func (inv *Inventory) Delete(ctx context.Context, id int64) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for i := range inv.items {
		if inv.items[i].ID == id {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			inv.persist(ctx)
			return
		}
	}
}

// FindByBarcode returns the first item (in current order) whose barcode
// matches exactly.
func (inv *Inventory) FindByBarcode(barcode string) (model.Item, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for _, item := range inv.items {
		if item.Barcode == barcode {
			return item, true
		}
	}
	return model.Item{}, false
}

// FindByID returns the item with the given id.
func (inv *Inventory) FindByID(id int64) (model.Item, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for _, item := range inv.items {
		if item.ID == id {
			return item, true
		}
	}
	return model.Item{}, false
}

// ReplaceAll discards the whole collection and adopts the given items.
// No validation beyond what the import path already performed.
func (inv *Inventory) ReplaceAll(ctx context.Context, items []model.Item) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.items = append([]model.Item(nil), items...)
	inv.nextID = 1
	for _, item := range inv.items {
		if item.ID >= inv.nextID {
			inv.nextID = item.ID + 1
		}
	}
	inv.persist(ctx)
}

// Merge overlays imported items onto the collection by barcode: a row whose
// barcode matches an existing item replaces that item's fields (keeping its
// id and position), anything else is prepended as new. Items without an id
// get a fresh one. Returns how many items were updated and added.
func (inv *Inventory) Merge(ctx context.Context, items []model.Item) (updated, added int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for _, incoming := range items {
		incoming.Recalculate()

		merged := false
		for i := range inv.items {
			if inv.items[i].Barcode == incoming.Barcode {
				incoming.ID = inv.items[i].ID
				inv.items[i] = incoming
				updated++
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		if incoming.ID == 0 {
			incoming.ID = inv.nextID
			inv.nextID++
		} else if incoming.ID >= inv.nextID {
			inv.nextID = incoming.ID + 1
		}
		inv.items = append([]model.Item{incoming}, inv.items...)
		added++
	}

	inv.persist(ctx)
	return updated, added
}

// UniqueCustomers returns the sorted distinct non-blank customer names,
// used to prefill the customer filter and the edit form suggestions.
func (inv *Inventory) UniqueCustomers() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	seen := make(map[string]bool)
	var names []string
	for _, item := range inv.items {
		name := strings.TrimSpace(item.CustomerName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Undelivered returns the items not yet delivered, for the alerts panel.
func (inv *Inventory) Undelivered() []model.Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	var out []model.Item
	for _, item := range inv.items {
		if item.Status != model.StatusDelivered {
			out = append(out, item)
		}
	}
	return out
}

// MarkScanned records a just-scanned barcode and schedules its clearing.
// Scanning again resets the timer.
func (inv *Inventory) MarkScanned(barcode string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.lastScanned = barcode
	if inv.scanTimer != nil {
		inv.scanTimer.Stop()
	}
	inv.scanTimer = time.AfterFunc(highlightTTL, func() {
		inv.mu.Lock()
		defer inv.mu.Unlock()
		if inv.lastScanned == barcode {
			inv.lastScanned = ""
		}
	})
}

// LastScanned returns the barcode currently highlighted, if any.
func (inv *Inventory) LastScanned() string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.lastScanned
}

// persist mirrors the collection to durable storage. Must be called with
// the lock held. Failures are logged, not surfaced.
func (inv *Inventory) persist(ctx context.Context) {
	data, err := json.Marshal(inv.items)
	if err != nil {
		slog.Error("failed to encode inventory", "error", err)
		return
	}
	if err := kv.Put(ctx, inv.db, kv.KeyItems, string(data)); err != nil {
		slog.Error("failed to persist inventory", "error", err)
	}
}
