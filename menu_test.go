package main

import (
	"context"
	"strings"
	"testing"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/Rshep3087/spendtui/store"
	"github.com/carlmjohnson/be"
)

func TestRunMenu(t *testing.T) {
	tests := []struct {
		name            string
		requireComplete bool
		seed            []expense.Expense
		input           []string
		want            []string
		wantOut         []string
		notInOut        []string
	}{
		{
			name:    "create and list",
			input:   []string{"1", "2024-03-01", "Coffee", "Food", "3.50", "2", "5"},
			want:    []string{"Coffee"},
			wantOut: []string{"added expense #1", "1\t2024-03-01\tCoffee\tFood\t3.50"},
		},
		{
			name:    "blank answers keep the defaults",
			input:   []string{"1", "2024-03-01", "", "", "", "5"},
			want:    []string{""},
			wantOut: []string{"added expense #1"},
		},
		{
			name:     "negative amount is rejected",
			input:    []string{"1", "2024-03-01", "Coffee", "Food", "-3", "5"},
			want:     []string{},
			wantOut:  []string{"error:", "amount must not be negative"},
			notInOut: []string{"added expense"},
		},
		{
			name:    "bad date is rejected",
			input:   []string{"1", "03/01/2024", "5"},
			want:    []string{},
			wantOut: []string{"error:", "YYYY-MM-DD"},
		},
		{
			name:    "update keeps blank fields",
			input:   []string{"1", "2024-03-01", "Coffee", "Food", "3", "3", "1", "", "Tea", "", "", "5"},
			want:    []string{"Tea"},
			wantOut: []string{"updated expense #1"},
		},
		{
			name:            "require complete rejects a blank name and category",
			requireComplete: true,
			input:           []string{"1", "2023-07-28", "", "", "5", "5"},
			want:            []string{},
			wantOut:         []string{"error:", "name and category are required"},
			notInOut:        []string{"added expense"},
		},
		{
			name:            "require complete accepts a full record",
			requireComplete: true,
			input:           []string{"1", "2023-07-28", "Lunch", "Food", "5", "5"},
			want:            []string{"Lunch"},
			wantOut:         []string{"added expense #1"},
		},
		{
			name:            "require complete rejects an update leaving the record incomplete",
			requireComplete: true,
			seed:            []expense.Expense{newExpense(t, "2023-07-28", "", "", "5")},
			input:           []string{"3", "1", "", "Lunch", "", "", "5"},
			want:            []string{""},
			wantOut:         []string{"error:", "name and category are required"},
			notInOut:        []string{"updated expense"},
		},
		{
			name:            "require complete accepts an update that completes the record",
			requireComplete: true,
			seed:            []expense.Expense{newExpense(t, "2023-07-28", "", "", "5")},
			input:           []string{"3", "1", "", "Lunch", "Food", "", "5"},
			want:            []string{"Lunch"},
			wantOut:         []string{"updated expense #1"},
		},
		{
			name:    "update missing id",
			input:   []string{"3", "42", "5"},
			want:    []string{},
			wantOut: []string{"expense #42 not found"},
		},
		{
			name:    "delete",
			input:   []string{"1", "2024-03-01", "Coffee", "Food", "3", "4", "1", "2", "5"},
			want:    []string{},
			wantOut: []string{"deleted expense #1", "no expenses"},
		},
		{
			name:    "delete missing id",
			input:   []string{"4", "7", "5"},
			want:    []string{},
			wantOut: []string{"expense #7 not found"},
		},
		{
			name:    "invalid id",
			input:   []string{"4", "abc", "5"},
			want:    []string{},
			wantOut: []string{"invalid expense ID: abc"},
		},
		{
			name:    "unknown choice",
			input:   []string{"9", "5"},
			want:    []string{},
			wantOut: []string{`unknown choice "9"`},
		},
		{
			name:    "end of input stops the menu",
			input:   []string{"1", "2024-03-01", "Coffee"},
			want:    []string{},
			wantOut: []string{"Name [", "Category ["},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			s, err := store.OpenSQLite(store.MemoryPath)
			be.NilErr(t, err)
			defer s.Close()

			for _, e := range tt.seed {
				_, err := s.Create(ctx, e)
				be.NilErr(t, err)
			}

			var out strings.Builder
			in := strings.NewReader(strings.Join(tt.input, "\n") + "\n")
			be.NilErr(t, runMenu(ctx, s, tt.requireComplete, in, &out))

			es, err := s.List(ctx)
			be.NilErr(t, err)
			be.AllEqual(t, tt.want, expenseNames(es))

			for _, w := range tt.wantOut {
				be.True(t, strings.Contains(out.String(), w))
			}
			for _, w := range tt.notInOut {
				be.False(t, strings.Contains(out.String(), w))
			}
		})
	}
}
