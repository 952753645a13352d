// Package compose holds the field-by-field editor used to build an expense
// before it is committed to the store.
package compose

import (
	"time"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/shopspring/decimal"
)

// Field is one of the editable fields of a draft.
type Field int

const (
	Date Field = iota
	Name
	Category
	Amount
)

var fields = []Field{Date, Name, Category, Amount}

func (f Field) String() string {
	switch f {
	case Date:
		return "date"
	case Name:
		return "name"
	case Category:
		return "category"
	case Amount:
		return "amount"
	}

	return "unknown"
}

// Next returns the field after f, wrapping from Amount back to Date.
func (f Field) Next() Field {
	return fields[(int(f)+1)%len(fields)]
}

// Prev returns the field before f, wrapping from Date back to Amount.
func (f Field) Prev() Field {
	return fields[(int(f)+len(fields)-1)%len(fields)]
}

// Mode is the top-level state of the machine.
type Mode int

const (
	Browsing Mode = iota
	Composing
)

func (m Mode) String() string {
	if m == Composing {
		return "composing"
	}
	return "browsing"
}

// Draft is the textual staging area for an expense being composed.
// AmountText is what the user typed; Amount is the last value that parsed.
type Draft struct {
	ID         int64
	Date       string
	Name       string
	Category   string
	AmountText string
	Amount     decimal.Decimal
}

// Machine tracks whether the user is browsing or composing, which field has
// focus, and the draft being edited. The zero value is Browsing.
type Machine struct {
	mode  Mode
	focus Field
	draft Draft
}

func (m Machine) Mode() Mode { return m.mode }

func (m Machine) Composing() bool { return m.mode == Composing }

func (m Machine) Focus() Field { return m.focus }

func (m Machine) Draft() Draft { return m.draft }

// Editing reports whether the draft came from a persisted record.
func (m Machine) Editing() bool {
	return m.mode == Composing && m.draft.ID != 0
}

// StartAdd begins composing a new expense dated today.
func (m *Machine) StartAdd(today time.Time) {
	m.mode = Composing
	m.focus = Date
	m.draft = Draft{
		Date:   today.Format(expense.DateLayout),
		Amount: decimal.Zero,
	}
}

// StartEdit begins composing a change to a persisted expense.
func (m *Machine) StartEdit(e expense.Expense) {
	m.mode = Composing
	m.focus = Date
	m.draft = Draft{
		ID:         e.ID,
		Date:       e.DateString(),
		Name:       e.Name,
		Category:   e.Category,
		AmountText: e.Amount.String(),
		Amount:     e.Amount,
	}
}

// Tab moves focus to the next field.
func (m *Machine) Tab() {
	if m.mode == Composing {
		m.focus = m.focus.Next()
	}
}

// ShiftTab moves focus to the previous field.
func (m *Machine) ShiftTab() {
	if m.mode == Composing {
		m.focus = m.focus.Prev()
	}
}

// Input feeds one typed character to the focused field and reports whether it
// was accepted.
func (m *Machine) Input(r rune) bool {
	if m.mode != Composing {
		return false
	}

	switch m.focus {
	case Date:
		m.draft.Date += string(r)
	case Name:
		m.draft.Name += string(r)
	case Category:
		m.draft.Category += string(r)
	case Amount:
		var ok bool
		m.draft.Amount, m.draft.AmountText, ok = AmountInput(m.draft.Amount, m.draft.AmountText, r)
		return ok
	}

	return true
}

// Backspace removes the last character of the focused field.
func (m *Machine) Backspace() {
	if m.mode != Composing {
		return
	}

	switch m.focus {
	case Date:
		m.draft.Date = dropLast(m.draft.Date)
	case Name:
		m.draft.Name = dropLast(m.draft.Name)
	case Category:
		m.draft.Category = dropLast(m.draft.Category)
	case Amount:
		m.draft.Amount, m.draft.AmountText = AmountBackspace(m.draft.AmountText)
	}
}

// Cancel discards the draft and returns to Browsing.
func (m *Machine) Cancel() {
	*m = Machine{}
}

// Done returns to Browsing after the draft has been committed.
func (m *Machine) Done() {
	m.Cancel()
}

// Build validates the draft into an expense. The returned error is an
// *expense.ValidationError.
func (m Machine) Build() (expense.Expense, error) {
	date, err := expense.ParseDate(m.draft.Date)
	if err != nil {
		return expense.Expense{}, err
	}

	e, err := expense.New(date, m.draft.Name, m.draft.Category, m.draft.Amount)
	if err != nil {
		return expense.Expense{}, err
	}
	e.ID = m.draft.ID

	return e, nil
}

func dropLast(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
