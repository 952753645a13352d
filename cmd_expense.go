package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/Rshep3087/spendtui/store"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// expenseOutput is the JSON shape of an expense on the command line. It
// matches a snapshot record, with the amount as a JSON number.
type expenseOutput struct {
	ID       int64       `json:"id"`
	Date     string      `json:"date"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Amount   json.Number `json:"amount"`
}

func toExpenseOutput(e expense.Expense) expenseOutput {
	return expenseOutput{
		ID:       e.ID,
		Date:     e.DateString(),
		Name:     e.Name,
		Category: e.Category,
		Amount:   json.Number(e.Amount.String()),
	}
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense",
	Long:  `Add an expense. The date defaults to today and the amount to zero.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := expenseFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		if cfg.RequireComplete && !e.Complete() {
			return &expense.ValidationError{Field: "name", Err: expense.ErrIncomplete}
		}

		return withStore(cmd, func(ctx context.Context, s store.Store) error {
			id, err := s.Create(ctx, e)
			if err != nil {
				return fmt.Errorf("failed to add expense: %w", err)
			}

			log.Infof("Expense added with ID: %d", id)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	Long:  `List expenses, optionally only one category or one month (YYYY-MM).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		outputFormat, err := validateOutputFormat(cmd)
		if err != nil {
			return err
		}

		f, err := filterFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		return withStore(cmd, func(ctx context.Context, s store.Store) error {
			es, err := f.apply(ctx, s)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}
			return outputExpenses(outputFormat, es)
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, err := validateOutputFormat(cmd)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		return withStore(cmd, func(ctx context.Context, s store.Store) error {
			e, err := s.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get expense: %w", err)
			}
			if e == nil {
				return fmt.Errorf("expense %d not found", id)
			}
			return outputExpenses(outputFormat, []expense.Expense{*e})
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change fields of an expense",
	Long:  `Change fields of an expense. Only the flags given are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		return withStore(cmd, func(ctx context.Context, s store.Store) error {
			current, err := s.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get expense: %w", err)
			}
			if current == nil {
				return fmt.Errorf("expense %d not found", id)
			}

			e, err := applyFlags(*current, cmd.Flags())
			if err != nil {
				return err
			}

			if cfg.RequireComplete && !e.Complete() {
				return &expense.ValidationError{Field: "name", Err: expense.ErrIncomplete}
			}

			ok, err := s.Update(ctx, e)
			if err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}
			if !ok {
				return fmt.Errorf("expense %d not found", id)
			}

			log.Infof("Expense %d updated", id)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		return withStore(cmd, func(ctx context.Context, s store.Store) error {
			ok, err := s.Delete(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}
			if !ok {
				log.Warn("no expense deleted", "id", id)
				return nil
			}

			log.Infof("Expense %d deleted", id)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [PATH]",
	Short: "Write all expenses to a JSON snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := snapshotPath(args)

		return withStore(cmd, func(ctx context.Context, s store.Store) error {
			if err := store.Export(ctx, s, path); err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			log.Info("snapshot exported", "path", path)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import [PATH]",
	Short: "Add the expenses of a JSON snapshot",
	Long: `Add every record of a JSON snapshot. Records get new IDs. A missing
file imports nothing; a malformed file imports nothing and fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := snapshotPath(args)

		return withStore(cmd, func(ctx context.Context, s store.Store) error {
			n, err := store.Import(ctx, s, path)
			if err != nil {
				return fmt.Errorf("failed to import: %w", err)
			}

			log.Info("snapshot imported", "path", path, "count", n)
			return nil
		})
	},
}

func init() {
	addCmd.Flags().String("date", "", "expense date (YYYY-MM-DD, defaults to today)")
	addCmd.Flags().String("name", "", "what the money was spent on")
	addCmd.Flags().String("category", "", "expense category")
	addCmd.Flags().String("amount", "", "amount spent, not negative (defaults to 0)")

	listCmd.Flags().String("category", "", "only show this category")
	listCmd.Flags().String("month", "", "only show this month (YYYY-MM)")
	listCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	listCmd.MarkFlagsMutuallyExclusive("category", "month")

	getCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	updateCmd.Flags().String("date", "", "new date (YYYY-MM-DD)")
	updateCmd.Flags().String("name", "", "new name")
	updateCmd.Flags().String("category", "", "new category")
	updateCmd.Flags().String("amount", "", "new amount")
}

func validateOutputFormat(cmd *cobra.Command) (string, error) {
	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat != jsonOutputFormat && outputFormat != tableOutputFormat {
		return "", fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
	}
	return outputFormat, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid expense ID: %s", s)
	}
	return id, nil
}

func snapshotPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return cfg.SnapshotPath
}

// expenseFromFlags builds a new expense from the add flags.
func expenseFromFlags(flags *pflag.FlagSet) (expense.Expense, error) {
	e, err := applyFlags(expense.Expense{Date: time.Now()}, flags)
	if err != nil {
		return expense.Expense{}, err
	}
	return expense.New(e.Date, e.Name, e.Category, e.Amount)
}

// applyFlags overwrites the fields of e whose flags were set.
func applyFlags(e expense.Expense, flags *pflag.FlagSet) (expense.Expense, error) {
	if flags.Changed("date") {
		s, _ := flags.GetString("date")
		d, err := expense.ParseDate(s)
		if err != nil {
			return expense.Expense{}, err
		}
		e.Date = d
	}

	if flags.Changed("name") {
		e.Name, _ = flags.GetString("name")
	}

	if flags.Changed("category") {
		e.Category, _ = flags.GetString("category")
	}

	if flags.Changed("amount") {
		s, _ := flags.GetString("amount")
		a, err := expense.ParseAmount(s)
		if err != nil {
			return expense.Expense{}, err
		}
		e.Amount = a
	}

	return e, e.Validate()
}

// filterFromFlags reads the list filter flags.
func filterFromFlags(flags *pflag.FlagSet) (filter, error) {
	if flags.Changed("category") {
		c, _ := flags.GetString("category")
		return filter{kind: categoryFilter, category: c}, nil
	}

	if flags.Changed("month") {
		s, _ := flags.GetString("month")
		month, err := parseMonth(s)
		if err != nil {
			return filter{}, err
		}
		f := filter{kind: monthFilter}
		f.period.setPeriod(month)
		return f, nil
	}

	return filter{kind: allFilter}, nil
}

func outputExpenses(outputFormat string, es []expense.Expense) error {
	switch outputFormat {
	case jsonOutputFormat:
		out := make([]expenseOutput, len(es))
		for i, e := range es {
			out[i] = toExpenseOutput(e)
		}
		return outputJSON(out)
	case tableOutputFormat:
		return outputExpensesTable(es)
	default:
		return errors.New("unsupported output format")
	}
}

func outputExpensesTable(es []expense.Expense) error {
	t := createStyledTable("ID", "DATE", "NAME", "CATEGORY", "AMOUNT")

	total := decimal.Zero
	for _, e := range es {
		t.Row(expenseRow(e, cfg.Currency)...)
		total = total.Add(e.Amount)
	}

	fmt.Println(t)
	fmt.Printf("%d expenses, total %s\n", len(es), formatAmount(total, cfg.Currency))

	return nil
}
