// Package expense defines the expense record and its validation rules.
package expense

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout used to store and display expense dates.
const DateLayout = "2006-01-02"

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidDate    = errors.New("date must be in YYYY-MM-DD format")
	ErrIncomplete     = errors.New("name and category are required")
)

// ValidationError reports a field that failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Expense is a single expense record. An ID of zero marks a draft that has
// not been persisted yet.
type Expense struct {
	ID       int64
	Date     time.Time
	Name     string
	Category string
	Amount   decimal.Decimal
}

// New builds a draft expense, rejecting negative amounts.
// Empty names and categories are allowed here; see Complete.
func New(date time.Time, name, category string, amount decimal.Decimal) (Expense, error) {
	e := Expense{
		Date:     civil(date),
		Name:     name,
		Category: category,
		Amount:   amount,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// Validate checks the invariants every stored expense must hold.
func (e Expense) Validate() error {
	if e.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Err: ErrNegativeAmount}
	}
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Err: ErrInvalidDate}
	}
	return nil
}

// Complete reports whether all text fields are filled in.
func (e Expense) Complete() bool {
	return strings.TrimSpace(e.Name) != "" && strings.TrimSpace(e.Category) != ""
}

// IsDraft reports whether the expense has not been assigned an ID yet.
func (e Expense) IsDraft() bool {
	return e.ID == 0
}

// DateString returns the date formatted as YYYY-MM-DD.
func (e Expense) DateString() string {
	return e.Date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Err: ErrInvalidDate}
	}
	return t, nil
}

// ParseAmount parses a decimal amount and rejects negative values.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Err: fmt.Errorf("%q is not a number", s)}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: "amount", Err: ErrNegativeAmount}
	}
	return d, nil
}

// civil drops the clock and location, keeping only the calendar date.
func civil(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
