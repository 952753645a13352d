// Package store persists expense records and moves them in and out of JSON
// snapshot files.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/charmbracelet/log"
)

// Store is the durable home of expense records.
//
// Get returns nil when no record has the id. Update and Delete report whether
// a record was affected; a missing id is not an error.
type Store interface {
	Create(ctx context.Context, e expense.Expense) (int64, error)
	Get(ctx context.Context, id int64) (*expense.Expense, error)
	Update(ctx context.Context, e expense.Expense) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]expense.Expense, error)
	FilterByCategory(ctx context.Context, category string) ([]expense.Expense, error)
	FilterByMonth(ctx context.Context, year int, month time.Month) ([]expense.Expense, error)
	Categories(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
	Close() error
}

// Importer is implemented by stores that can insert a batch of records
// atomically.
type Importer interface {
	ImportExpenses(ctx context.Context, es []expense.Expense) (int, error)
}

// Error is returned when the storage backend fails.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrap turns a backend failure into an *Error. Validation errors pass through
// untouched so callers can tell them apart.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var verr *expense.ValidationError
	if errors.As(err, &verr) {
		return err
	}

	return &Error{Op: op, Err: err}
}

// Config selects and configures a backend.
type Config struct {
	// Path is the SQLite database file, or ":memory:".
	Path string
	// URL is a Postgres connection string. When set it takes precedence over Path.
	URL string
}

// Open opens the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if cfg.URL != "" {
		log.Debug("opening postgres store")
		return OpenPostgres(ctx, cfg.URL)
	}

	log.Debug("opening sqlite store", "path", cfg.Path)
	return OpenSQLite(cfg.Path)
}

// MonthRange returns the first and last calendar day of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// day 0 of the next month is the last day of this one
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last
}

func checkMonth(month time.Month) error {
	if month < time.January || month > time.December {
		return &expense.ValidationError{Field: "month", Err: fmt.Errorf("%d is not a month", month)}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanExpense reads id, date, name, category and amount, in that order.
// Both backends select date and amount as text.
func scanExpense(row rowScanner) (expense.Expense, error) {
	var (
		e      expense.Expense
		date   string
		amount string
	)

	if err := row.Scan(&e.ID, &date, &e.Name, &e.Category, &amount); err != nil {
		return expense.Expense{}, err
	}

	d, err := expense.ParseDate(date)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("expense %d has unreadable date %q", e.ID, date)
	}
	e.Date = d

	a, err := expense.ParseAmount(amount)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("expense %d has unreadable amount %q", e.ID, amount)
	}
	e.Amount = a

	return e, nil
}
