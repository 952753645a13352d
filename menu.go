package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/Rshep3087/spendtui/store"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const menuText = `
1) Create expense
2) List expenses
3) Update expense
4) Delete expense
5) Quit
> `

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Manage expenses through a numbered menu",
	Long:  `Manage expenses through a numbered, line-based menu read from stdin.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd, func(ctx context.Context, s store.Store) error {
			return runMenu(ctx, s, cfg.RequireComplete, os.Stdin, os.Stdout)
		})
	},
}

// menu drives a store from line-based prompts.
type menu struct {
	store           store.Store
	requireComplete bool
	in              *bufio.Scanner
	out             io.Writer
	now             func() time.Time
}

// runMenu reads menu choices from in until 5 or end of input. Validation and
// storage errors are printed and the menu continues. With requireComplete,
// records without a name or category are not saved.
func runMenu(ctx context.Context, s store.Store, requireComplete bool, in io.Reader, out io.Writer) error {
	m := &menu{store: s, requireComplete: requireComplete, in: bufio.NewScanner(in), out: out, now: time.Now}
	return m.run(ctx)
}

func (m *menu) run(ctx context.Context) error {
	for {
		choice, ok := m.prompt(menuText)
		if !ok {
			return m.in.Err()
		}

		var err error
		switch choice {
		case "1":
			err = m.create(ctx)
		case "2":
			err = m.list(ctx)
		case "3":
			err = m.update(ctx)
		case "4":
			err = m.delete(ctx)
		case "5", "q":
			return nil
		default:
			fmt.Fprintf(m.out, "unknown choice %q\n", choice)
			continue
		}

		if errors.Is(err, io.EOF) {
			return m.in.Err()
		}
		if err != nil {
			log.Debug("menu action failed", "choice", choice, "error", err)
			fmt.Fprintln(m.out, "error:", err)
		}
	}
}

// prompt prints label and reads one trimmed line. ok is false at end of input.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// field prompts for one value; an empty answer keeps current.
func (m *menu) field(label, current string) (string, error) {
	s, ok := m.prompt(fmt.Sprintf("%s [%s]: ", label, current))
	if !ok {
		return "", io.EOF
	}
	if s == "" {
		return current, nil
	}
	return s, nil
}

// fill prompts for every field of e, keeping the values left blank.
// The result is checked the same way a commit from the form is.
func (m *menu) fill(e expense.Expense) (expense.Expense, error) {
	date, err := m.field("Date (YYYY-MM-DD)", e.DateString())
	if err != nil {
		return expense.Expense{}, err
	}
	if e.Date, err = expense.ParseDate(date); err != nil {
		return expense.Expense{}, err
	}

	if e.Name, err = m.field("Name", e.Name); err != nil {
		return expense.Expense{}, err
	}

	if e.Category, err = m.field("Category", e.Category); err != nil {
		return expense.Expense{}, err
	}

	amount, err := m.field("Amount", e.Amount.String())
	if err != nil {
		return expense.Expense{}, err
	}
	if e.Amount, err = expense.ParseAmount(amount); err != nil {
		return expense.Expense{}, err
	}

	if err := e.Validate(); err != nil {
		return expense.Expense{}, err
	}

	if m.requireComplete && !e.Complete() {
		return expense.Expense{}, &expense.ValidationError{Field: "name", Err: expense.ErrIncomplete}
	}

	return e, nil
}

func (m *menu) create(ctx context.Context) error {
	draft, err := expense.New(m.now(), "", "", decimal.Zero)
	if err != nil {
		return err
	}

	e, err := m.fill(draft)
	if err != nil {
		return err
	}

	id, err := m.store.Create(ctx, e)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "added expense #%d\n", id)
	return nil
}

func (m *menu) list(ctx context.Context) error {
	es, err := m.store.List(ctx)
	if err != nil {
		return err
	}

	if len(es) == 0 {
		fmt.Fprintln(m.out, "no expenses")
		return nil
	}

	for _, e := range es {
		fmt.Fprintf(m.out, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.DateString(), e.Name, e.Category, e.Amount.StringFixed(2))
	}
	return nil
}

// readID prompts for an expense id.
func (m *menu) readID() (int64, error) {
	s, ok := m.prompt("ID: ")
	if !ok {
		return 0, io.EOF
	}
	return parseID(s)
}

func (m *menu) update(ctx context.Context) error {
	id, err := m.readID()
	if err != nil {
		return err
	}

	current, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		fmt.Fprintf(m.out, "expense #%d not found\n", id)
		return nil
	}

	e, err := m.fill(*current)
	if err != nil {
		return err
	}

	ok, err := m.store.Update(ctx, e)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(m.out, "expense #%d not found\n", id)
		return nil
	}

	fmt.Fprintf(m.out, "updated expense #%d\n", id)
	return nil
}

func (m *menu) delete(ctx context.Context) error {
	id, err := m.readID()
	if err != nil {
		return err
	}

	ok, err := m.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(m.out, "expense #%d not found\n", id)
		return nil
	}

	fmt.Fprintf(m.out, "deleted expense #%d\n", id)
	return nil
}
