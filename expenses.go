package main

import (
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/Rshep3087/spendtui/expense"
	"github.com/charmbracelet/bubbles/table"
	"github.com/shopspring/decimal"
)

const defaultCurrency = money.USD

func newExpenseTable(st styles) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Date", Width: 10},
			{Title: "Name", Width: 28},
			{Title: "Category", Width: 18},
			{Title: "Amount", Width: 14},
		}),
		table.WithHeight(10),
	)
	t.SetStyles(st.tableNoSelection)
	return t
}

// setExpenses replaces the snapshot and keeps the cursor inside it.
func (m *model) setExpenses(es []expense.Expense) {
	m.expenses = es

	rows := make([]table.Row, len(es))
	for i, e := range es {
		rows[i] = expenseRow(e, m.cfg.Currency)
	}
	m.table.SetRows(rows)

	m.cursor.Clamp(len(es))
	m.syncTable()
}

// syncTable mirrors the selection cursor onto the table. The table never
// moves the cursor itself.
func (m *model) syncTable() {
	i, ok := m.cursor.Index()
	if !ok {
		m.table.SetStyles(m.styles.tableNoSelection)
		m.table.SetCursor(0)
		return
	}

	m.table.SetStyles(m.styles.table)
	m.table.SetCursor(i)
}

// selected returns the expense under the cursor.
func (m model) selected() (expense.Expense, bool) {
	i, ok := m.cursor.Index()
	if !ok || i >= len(m.expenses) {
		return expense.Expense{}, false
	}
	return m.expenses[i], true
}

func expenseRow(e expense.Expense, currency string) table.Row {
	return table.Row{
		strconv.FormatInt(e.ID, 10),
		e.DateString(),
		e.Name,
		e.Category,
		formatAmount(e.Amount, currency),
	}
}

// formatAmount renders amount in currency, e.g. $1,200.50. Unknown currency
// codes fall back to USD.
func formatAmount(amount decimal.Decimal, currency string) string {
	c := money.GetCurrency(strings.ToUpper(currency))
	if c == nil {
		c = money.GetCurrency(defaultCurrency)
	}

	minor := amount.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, c.Code).Display()
}

func expensesView(m model) string {
	if len(m.expenses) == 0 {
		hint := "No expenses yet. Press a to add one."
		if m.filter.kind != allFilter {
			hint = "No expenses match " + m.filter.String() + ". Press c to clear the filter."
		}
		return m.styles.emptyStyle.Render(hint)
	}

	return m.table.View()
}
