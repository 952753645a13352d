package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/charmbracelet/log"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a SQLite database that lives only as long as the store.
const MemoryPath = ":memory:"

const selectExpenses = `SELECT id, date, name, category, CAST(amount AS TEXT) FROM expenses`

const orderExpenses = ` ORDER BY date, id`

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

var (
	_ Store    = (*SQLite)(nil)
	_ Importer = (*SQLite)(nil)
)

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty database path")
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// a single writer owns the store; one connection also keeps an
	// in-memory database alive for the lifetime of the pool
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Create inserts e and returns its new id.
func (s *SQLite) Create(ctx context.Context, e expense.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (date, name, category, amount) VALUES (?, ?, ?, ?)`,
		e.DateString(), e.Name, e.Category, e.Amount.String(),
	)
	if err != nil {
		return 0, wrap("create", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrap("create", err)
	}

	log.Debug("expense created", "id", id, "name", e.Name)
	return id, nil
}

func (s *SQLite) Get(ctx context.Context, id int64) (*expense.Expense, error) {
	row := s.db.QueryRowContext(ctx, selectExpenses+` WHERE id = ?`, id)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get", err)
	}

	return &e, nil
}

// Update replaces every field of the record with e's id.
func (s *SQLite) Update(ctx context.Context, e expense.Expense) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET date = ?, name = ?, category = ?, amount = ? WHERE id = ?`,
		e.DateString(), e.Name, e.Category, e.Amount.String(), e.ID,
	)
	if err != nil {
		return false, wrap("update", err)
	}

	return affected("update", res)
}

func (s *SQLite) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return false, wrap("delete", err)
	}

	return affected("delete", res)
}

func (s *SQLite) List(ctx context.Context) ([]expense.Expense, error) {
	return s.query(ctx, "list", selectExpenses+orderExpenses)
}

func (s *SQLite) FilterByCategory(ctx context.Context, category string) ([]expense.Expense, error) {
	return s.query(ctx, "filter by category", selectExpenses+` WHERE category = ?`+orderExpenses, category)
}

// FilterByMonth returns the records dated within the month, both ends inclusive.
func (s *SQLite) FilterByMonth(ctx context.Context, year int, month time.Month) ([]expense.Expense, error) {
	if err := checkMonth(month); err != nil {
		return nil, err
	}

	first, last := MonthRange(year, month)
	return s.query(ctx, "filter by month",
		selectExpenses+` WHERE date BETWEEN ? AND ?`+orderExpenses,
		first.Format(expense.DateLayout), last.Format(expense.DateLayout),
	)
}

// Categories returns the distinct non-empty categories in use.
func (s *SQLite) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM expenses WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, wrap("categories", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, wrap("categories", err)
		}
		categories = append(categories, c)
	}

	return categories, wrap("categories", rows.Err())
}

// Clear deletes every record. The id sequence is kept so ids are never reused.
func (s *SQLite) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM expenses`)
	return wrap("clear", err)
}

// ImportExpenses inserts es in a single transaction.
func (s *SQLite) ImportExpenses(ctx context.Context, es []expense.Expense) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrap("import", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (date, name, category, amount) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, wrap("import", err)
	}
	defer stmt.Close()

	for _, e := range es {
		if err := e.Validate(); err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, e.DateString(), e.Name, e.Category, e.Amount.String()); err != nil {
			return 0, wrap("import", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, wrap("import", err)
	}

	return len(es), nil
}

func (s *SQLite) query(ctx context.Context, op, query string, args ...any) ([]expense.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var es []expense.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		es = append(es, e)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}

	return es, nil
}

func affected(op string, res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrap(op, err)
	}
	return n > 0, nil
}
