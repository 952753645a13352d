package main

import (
	"fmt"
	"time"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/Rshep3087/spendtui/store"
)

// monthLayout is the layout of a month filter, e.g. 2023-07.
const monthLayout = "2006-01"

// Period is the calendar month covered by a month filter.
type Period struct {
	start time.Time
	end   time.Time
}

// String renders the period as its first and last day.
func (p *Period) String() string {
	return fmt.Sprintf("%s - %s", p.startDate(), p.endDate())
}

func (p *Period) startDate() string {
	return p.start.Format(expense.DateLayout)
}

func (p *Period) endDate() string {
	return p.end.Format(expense.DateLayout)
}

func (p *Period) year() int {
	return p.start.Year()
}

func (p *Period) month() time.Month {
	return p.start.Month()
}

// setPeriod sets the period to the month containing current.
func (p *Period) setPeriod(current time.Time) {
	p.start, p.end = store.MonthRange(current.Year(), current.Month())
}

// firstOfMonth returns midnight UTC on the first day of t's month.
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// parseMonth parses a YYYY-MM month.
func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, &expense.ValidationError{Field: "month", Err: fmt.Errorf("%q is not in YYYY-MM format", s)}
	}
	return t, nil
}
