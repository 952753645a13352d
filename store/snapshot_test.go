package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/carlmjohnson/be"
)

// plainStore hides the Importer implementation of the wrapped store.
type plainStore struct {
	Store
}

func tuples(es []expense.Expense) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.DateString() + "|" + e.Name + "|" + e.Category + "|" + e.Amount.String()
	}
	slices.Sort(out)
	return out
}

func TestExportClearImportRoundTrip(t *testing.T) {
	for name, wrapStore := range map[string]func(Store) Store{
		"batch importer": func(s Store) Store { return s },
		"sequential":     func(s Store) Store { return plainStore{s} },
	} {
		t.Run(name, func(t *testing.T) {
			s := wrapStore(openSQLite(t))
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "expenses.json")

			for _, e := range []expense.Expense{
				newExpense(t, "2023-07-28", "Groceries", "Food", "50.0"),
				newExpense(t, "2023-08-01", "Rent", "Housing", "1200.0"),
				newExpense(t, "2023-08-01", "Rent", "Housing", "1200.0"),
				newExpense(t, "2023-08-03", "", "", "0"),
			} {
				_, err := s.Create(ctx, e)
				be.NilErr(t, err)
			}

			before, err := s.List(ctx)
			be.NilErr(t, err)

			be.NilErr(t, Export(ctx, s, path))
			be.NilErr(t, s.Clear(ctx))

			n, err := Import(ctx, s, path)
			be.NilErr(t, err)
			be.Equal(t, len(before), n)

			after, err := s.List(ctx)
			be.NilErr(t, err)
			be.AllEqual(t, tuples(before), tuples(after))

			// every import creates fresh ids
			be.True(t, after[0].ID > before[len(before)-1].ID)
		})
	}
}

func TestExportFormat(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "expenses.json")

	id, err := s.Create(ctx, newExpense(t, "2023-07-28", "Groceries", "Food", "12.5"))
	be.NilErr(t, err)

	be.NilErr(t, Export(ctx, s, path))

	data, err := os.ReadFile(path)
	be.NilErr(t, err)

	var raw []map[string]any
	be.NilErr(t, json.Unmarshal(data, &raw))
	be.Equal(t, 1, len(raw))
	be.Equal(t, float64(id), raw[0]["id"].(float64))
	be.Equal(t, "2023-07-28", raw[0]["date"].(string))
	be.Equal(t, "Groceries", raw[0]["name"].(string))
	be.Equal(t, "Food", raw[0]["category"].(string))
	be.Equal(t, 12.5, raw[0]["amount"].(float64))
}

func TestImportMissingFile(t *testing.T) {
	s := openSQLite(t)

	n, err := Import(context.Background(), s, filepath.Join(t.TempDir(), "nope.json"))
	be.NilErr(t, err)
	be.Equal(t, 0, n)
}

func TestImportAcceptsNullIDs(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "expenses.json")

	body := `[{"id": null, "date": "2023-07-28", "name": "Coffee", "category": "Food", "amount": 3.5},
	          {"id": 77, "date": "2023-07-29", "name": "Bus", "category": "Transport", "amount": 2}]`
	be.NilErr(t, os.WriteFile(path, []byte(body), 0o600))

	n, err := Import(ctx, s, path)
	be.NilErr(t, err)
	be.Equal(t, 2, n)

	got, err := s.Get(ctx, 77)
	be.NilErr(t, err)
	be.True(t, got == nil)
}

func TestImportMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{"oops`},
		{name: "not an array", body: `{"id": 1}`},
		{name: "bad date", body: `[{"date": "28/07/2023", "name": "a", "category": "b", "amount": 1}]`},
		{name: "negative amount", body: `[{"date": "2023-07-28", "name": "a", "category": "b", "amount": -1}]`},
		{name: "missing amount", body: `[{"date": "2023-07-28", "name": "a", "category": "b"}]`},
		{
			name: "good record before a bad one",
			body: `[{"date": "2023-07-28", "name": "a", "category": "b", "amount": 1},
			        {"date": "2023-13-01", "name": "a", "category": "b", "amount": 1}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openSQLite(t)
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "expenses.json")

			_, err := s.Create(ctx, newExpense(t, "2023-01-01", "Existing", "Food", "1"))
			be.NilErr(t, err)
			be.NilErr(t, os.WriteFile(path, []byte(tt.body), 0o600))

			_, err = Import(ctx, s, path)
			be.True(t, errors.Is(err, ErrMalformedSnapshot))

			all, err := s.List(ctx)
			be.NilErr(t, err)
			be.AllEqual(t, []string{"Existing"}, names(all))
		})
	}
}
