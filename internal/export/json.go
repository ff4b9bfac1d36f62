package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hkanaan/sijill/internal/model"
)

// ErrNotArray is returned when an imported JSON file's top-level value is
// not an array. The import aborts with no mutation.
var ErrNotArray = errors.New("backup file must contain a JSON array")

// WriteJSON serializes the entire item collection verbatim, with machine-
// readable timestamps and status keys. This is the lossless backup format.
func WriteJSON(w io.Writer, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// ReadJSON parses a backup file. The top-level value must be an array;
// anything else returns ErrNotArray.
func ReadJSON(r io.Reader) ([]model.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var items []model.Item
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}
	return items, nil
}
