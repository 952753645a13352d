package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/charmbracelet/log"
)

// ErrMalformedSnapshot is returned by Import when the snapshot file exists but
// cannot be read as a list of expenses.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// snapshotRecord is the on-disk form of an expense.
type snapshotRecord struct {
	ID       *int64      `json:"id"`
	Date     string      `json:"date"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Amount   json.Number `json:"amount"`
}

// Export writes every record in s to path as a JSON array.
func Export(ctx context.Context, s Store, path string) error {
	es, err := s.List(ctx)
	if err != nil {
		return err
	}

	records := make([]snapshotRecord, len(es))
	for i, e := range es {
		id := e.ID
		records[i] = snapshotRecord{
			ID:       &id,
			Date:     e.DateString(),
			Name:     e.Name,
			Category: e.Category,
			Amount:   json.Number(e.Amount.String()),
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}

	log.Debug("snapshot exported", "path", path, "count", len(records))
	return nil
}

// Import inserts every record found in the snapshot at path and returns how
// many were inserted. Ids in the file are ignored; each record gets a fresh
// one. A missing file is not an error. A malformed file inserts nothing.
func Import(ctx context.Context, s Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no snapshot to import", "path", path)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	es, err := decodeSnapshot(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	var n int
	if importer, ok := s.(Importer); ok {
		n, err = importer.ImportExpenses(ctx, es)
	} else {
		n, err = createAll(ctx, s, es)
	}
	if err != nil {
		return n, err
	}

	log.Debug("snapshot imported", "path", path, "count", n)
	return n, nil
}

func decodeSnapshot(data []byte) ([]expense.Expense, error) {
	var records []snapshotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	es := make([]expense.Expense, 0, len(records))
	for i, r := range records {
		date, err := expense.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedSnapshot, i, err)
		}

		amount, err := expense.ParseAmount(r.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedSnapshot, i, err)
		}

		e, err := expense.New(date, r.Name, r.Category, amount)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedSnapshot, i, err)
		}
		es = append(es, e)
	}

	return es, nil
}

func createAll(ctx context.Context, s Store, es []expense.Expense) (int, error) {
	for i, e := range es {
		if _, err := s.Create(ctx, e); err != nil {
			return i, err
		}
	}
	return len(es), nil
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
