package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/carlmjohnson/be"
	"github.com/shopspring/decimal"
)

func newExpense(t *testing.T, date, name, category, amount string) expense.Expense {
	t.Helper()

	d, err := expense.ParseDate(date)
	be.NilErr(t, err)

	a, err := decimal.NewFromString(amount)
	be.NilErr(t, err)

	e, err := expense.New(d, name, category, a)
	be.NilErr(t, err)

	return e
}

func names(es []expense.Expense) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

func sameFields(t *testing.T, want, got expense.Expense) {
	t.Helper()
	be.Equal(t, want.DateString(), got.DateString())
	be.Equal(t, want.Name, got.Name)
	be.Equal(t, want.Category, got.Category)
	be.True(t, want.Amount.Equal(got.Amount))
}

// testStore runs the behavior every Store backend must share.
func testStore(t *testing.T, open func(t *testing.T) Store) {
	t.Run("create then get", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		for _, amount := range []string{
			"50.0",
			"19.99",
			"0.1",
			"12345678901234567.89",
			"1234567.891234567",
			"0.123456789012345678",
		} {
			want := newExpense(t, "2023-07-28", "Test Expense", "Food", amount)
			id, err := s.Create(ctx, want)
			be.NilErr(t, err)
			be.Nonzero(t, id)

			got, err := s.Get(ctx, id)
			be.NilErr(t, err)
			be.True(t, got != nil)
			be.Equal(t, id, got.ID)
			sameFields(t, want, *got)
		}
	})

	t.Run("import keeps exact amounts", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		imp, ok := s.(Importer)
		if !ok {
			t.Skip("store does not import in bulk")
		}

		want := newExpense(t, "2023-07-28", "Precise", "Food", "98765432109876.54321")
		n, err := imp.ImportExpenses(ctx, []expense.Expense{want})
		be.NilErr(t, err)
		be.Equal(t, 1, n)

		got, err := s.List(ctx)
		be.NilErr(t, err)
		be.Equal(t, 1, len(got))
		sameFields(t, want, got[0])
	})

	t.Run("get missing id", func(t *testing.T) {
		s := open(t)

		got, err := s.Get(context.Background(), 4242)
		be.NilErr(t, err)
		be.True(t, got == nil)
	})

	t.Run("create rejects negative amount", func(t *testing.T) {
		s := open(t)

		e := newExpense(t, "2023-07-28", "Refund", "Food", "1")
		e.Amount = decimal.NewFromInt(-1)

		_, err := s.Create(context.Background(), e)
		be.True(t, errors.Is(err, expense.ErrNegativeAmount))
	})

	t.Run("update replaces every field", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		id, err := s.Create(ctx, newExpense(t, "2023-07-28", "Initial Expense", "Food", "50"))
		be.NilErr(t, err)

		changed := newExpense(t, "2023-08-02", "Updated Expense", "Transport", "75.25")
		changed.ID = id

		ok, err := s.Update(ctx, changed)
		be.NilErr(t, err)
		be.True(t, ok)

		got, err := s.Get(ctx, id)
		be.NilErr(t, err)
		sameFields(t, changed, *got)
	})

	t.Run("update missing id is a no-op", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		e := newExpense(t, "2023-07-28", "Ghost", "Food", "1")
		e.ID = 999

		ok, err := s.Update(ctx, e)
		be.NilErr(t, err)
		be.False(t, ok)

		all, err := s.List(ctx)
		be.NilErr(t, err)
		be.Equal(t, 0, len(all))
	})

	t.Run("delete removes exactly one record", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		id, err := s.Create(ctx, newExpense(t, "2023-07-28", "To Be Deleted", "Food", "50"))
		be.NilErr(t, err)
		_, err = s.Create(ctx, newExpense(t, "2023-07-29", "Keeper", "Food", "5"))
		be.NilErr(t, err)

		before, err := s.List(ctx)
		be.NilErr(t, err)

		ok, err := s.Delete(ctx, id)
		be.NilErr(t, err)
		be.True(t, ok)

		got, err := s.Get(ctx, id)
		be.NilErr(t, err)
		be.True(t, got == nil)

		after, err := s.List(ctx)
		be.NilErr(t, err)
		be.Equal(t, len(before)-1, len(after))

		ok, err = s.Delete(ctx, id)
		be.NilErr(t, err)
		be.False(t, ok)
	})

	t.Run("ids are never reused", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		first, err := s.Create(ctx, newExpense(t, "2023-07-28", "One", "Food", "1"))
		be.NilErr(t, err)
		_, err = s.Delete(ctx, first)
		be.NilErr(t, err)
		be.NilErr(t, s.Clear(ctx))

		second, err := s.Create(ctx, newExpense(t, "2023-07-28", "Two", "Food", "1"))
		be.NilErr(t, err)
		be.True(t, second > first)
	})

	t.Run("list", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		_, err := s.Create(ctx, newExpense(t, "2023-07-29", "Expense 2", "Transport", "30"))
		be.NilErr(t, err)
		_, err = s.Create(ctx, newExpense(t, "2023-07-28", "Expense 1", "Food", "50"))
		be.NilErr(t, err)

		all, err := s.List(ctx)
		be.NilErr(t, err)
		be.AllEqual(t, []string{"Expense 1", "Expense 2"}, names(all))
	})

	t.Run("filters", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		_, err := s.Create(ctx, newExpense(t, "2023-07-28", "Groceries", "Food", "50.0"))
		be.NilErr(t, err)
		_, err = s.Create(ctx, newExpense(t, "2023-08-01", "Rent", "Housing", "1200.0"))
		be.NilErr(t, err)

		food, err := s.FilterByCategory(ctx, "Food")
		be.NilErr(t, err)
		be.AllEqual(t, []string{"Groceries"}, names(food))

		none, err := s.FilterByCategory(ctx, "food")
		be.NilErr(t, err)
		be.Equal(t, 0, len(none))

		july, err := s.FilterByMonth(ctx, 2023, time.July)
		be.NilErr(t, err)
		be.AllEqual(t, []string{"Groceries"}, names(july))

		august, err := s.FilterByMonth(ctx, 2023, time.August)
		be.NilErr(t, err)
		be.AllEqual(t, []string{"Rent"}, names(august))

		_, err = s.FilterByMonth(ctx, 2023, 13)
		var verr *expense.ValidationError
		be.True(t, errors.As(err, &verr))

		categories, err := s.Categories(ctx)
		be.NilErr(t, err)
		be.AllEqual(t, []string{"Food", "Housing"}, categories)
	})

	t.Run("month boundaries", func(t *testing.T) {
		tests := []struct {
			name      string
			year      int
			month     time.Month
			lastDay   string
			nextFirst string
		}{
			{name: "28 days", year: 2023, month: time.February, lastDay: "2023-02-28", nextFirst: "2023-03-01"},
			{name: "29 days", year: 2024, month: time.February, lastDay: "2024-02-29", nextFirst: "2024-03-01"},
			{name: "30 days", year: 2023, month: time.April, lastDay: "2023-04-30", nextFirst: "2023-05-01"},
			{name: "31 days", year: 2023, month: time.December, lastDay: "2023-12-31", nextFirst: "2024-01-01"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := open(t)
				ctx := context.Background()

				_, err := s.Create(ctx, newExpense(t, tt.lastDay, "last", "x", "1"))
				be.NilErr(t, err)
				_, err = s.Create(ctx, newExpense(t, tt.nextFirst, "next", "x", "1"))
				be.NilErr(t, err)

				got, err := s.FilterByMonth(ctx, tt.year, tt.month)
				be.NilErr(t, err)
				be.AllEqual(t, []string{"last"}, names(got))
			})
		}
	})
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		last  int
	}{
		{2023, time.January, 31},
		{2023, time.February, 28},
		{2024, time.February, 29},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2023, time.June, 30},
		{2023, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			first, last := MonthRange(tt.year, tt.month)
			be.Equal(t, 1, first.Day())
			be.Equal(t, tt.month, first.Month())
			be.Equal(t, tt.last, last.Day())
			be.Equal(t, tt.month, last.Month())
			be.Equal(t, tt.year, last.Year())
		})
	}
}

func TestWrap(t *testing.T) {
	be.NilErr(t, wrap("op", nil))

	verr := &expense.ValidationError{Field: "amount", Err: expense.ErrNegativeAmount}
	be.Equal(t, error(verr), wrap("create", verr))

	cause := errors.New("disk full")
	err := wrap("create", cause)

	var serr *Error
	be.True(t, errors.As(err, &serr))
	be.Equal(t, "create", serr.Op)
	be.True(t, errors.Is(err, cause))
}
