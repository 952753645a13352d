package main

import (
	"errors"
	"testing"
	"time"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/carlmjohnson/be"
)

func TestPeriodString(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected string
	}{
		{
			name:     "basic period",
			start:    time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			expected: "2023-12-01 - 2023-12-31",
		},
		{
			name:     "february",
			start:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			expected: "2024-02-01 - 2024-02-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Period{
				start: tt.start,
				end:   tt.end,
			}
			result := p.String()
			be.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterString(t *testing.T) {
	month := filter{kind: monthFilter}
	month.period.setPeriod(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		f    filter
		want string
	}{
		{name: "all", f: filter{kind: allFilter}, want: ""},
		{name: "category", f: filter{kind: categoryFilter, category: "Food"}, want: `category "Food"`},
		{name: "month", f: month, want: "month 2024-02-01 - 2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.want, tt.f.String())
		})
	}
}

func TestSetPeriod(t *testing.T) {
	tests := []struct {
		name          string
		current       time.Time
		expectedStart string
		expectedEnd   string
	}{
		{
			name:          "mid month",
			current:       time.Date(2023, 7, 15, 10, 30, 0, 0, time.UTC),
			expectedStart: "2023-07-01",
			expectedEnd:   "2023-07-31",
		},
		{
			name:          "leap february",
			current:       time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			expectedStart: "2024-02-01",
			expectedEnd:   "2024-02-29",
		},
		{
			name:          "december",
			current:       time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
			expectedStart: "2023-12-01",
			expectedEnd:   "2023-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Period
			p.setPeriod(tt.current)
			be.Equal(t, tt.expectedStart, p.startDate())
			be.Equal(t, tt.expectedEnd, p.endDate())
			be.Equal(t, tt.current.Year(), p.year())
			be.Equal(t, tt.current.Month(), p.month())
		})
	}
}

func TestFirstOfMonth(t *testing.T) {
	got := firstOfMonth(time.Date(2024, 1, 31, 18, 0, 0, 0, time.Local))
	be.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)

	// stepping from the first never skips a month
	be.Equal(t, time.February, got.AddDate(0, 1, 0).Month())
}

func TestParseMonth(t *testing.T) {
	got, err := parseMonth("2023-07")
	be.NilErr(t, err)
	be.Equal(t, 2023, got.Year())
	be.Equal(t, time.July, got.Month())

	_, err = parseMonth("07/2023")
	var verr *expense.ValidationError
	be.True(t, errors.As(err, &verr))
	be.Equal(t, "month", verr.Field)
}
