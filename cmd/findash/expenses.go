package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/findash/findash/internal/cli"
	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/report"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expenses",
		Long:  `List, add, edit, and delete expenses, or slice them by category and date range.`,
	}

	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(editExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())
	cmd.AddCommand(expensesByCategoryCmd())
	cmd.AddCommand(expensesByRangeCmd())

	return cmd
}

func listExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			if err := stores.Expenses.Load(cmd.Context()); err != nil {
				return userErr(err)
			}
			if err := stores.Expenses.LoadCategories(cmd.Context()); err != nil {
				return userErr(err)
			}

			expenses := stores.Expenses.Expenses()
			if len(expenses) == 0 {
				fmt.Println(cli.FormatInfo("No expenses recorded yet. Use 'findash expenses add' to create one."))
				return nil
			}

			printExpenses(expenses, stores.Expenses.CategoryName)
			return nil
		},
	}
}

func addExpenseCmd() *cobra.Command {
	var (
		amount      string
		description string
		categoryID  int64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			exp, err := stores.Expenses.Add(cmd.Context(), amount, description, categoryID)
			if err != nil {
				return userErr(err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s expense (id %d)",
				report.FormatUSD(exp.Amount), exp.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount, e.g. 12.50 (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the money went to")
	cmd.Flags().Int64VarP(&categoryID, "category", "c", 0, "category id (required)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func editExpenseCmd() *cobra.Command {
	var (
		amount      string
		description string
		categoryID  int64
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expense id %q", args[0])
			}

			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			// Start from the current values so unset flags keep them.
			if err := stores.Expenses.Load(cmd.Context()); err != nil {
				return userErr(err)
			}
			current, ok := findExpense(stores.Expenses.Expenses(), id)
			if !ok {
				return fmt.Errorf("expense %d not found", id)
			}
			if !cmd.Flags().Changed("amount") {
				amount = current.Amount.String()
			}
			if !cmd.Flags().Changed("description") {
				description = current.Description
			}
			if !cmd.Flags().Changed("category") {
				categoryID = current.CategoryID
			}

			exp, err := stores.Expenses.Edit(cmd.Context(), id, amount, description, categoryID)
			if err != nil {
				return userErr(err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated expense %d (%s)",
				exp.ID, report.FormatUSD(exp.Amount))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().Int64VarP(&categoryID, "category", "c", 0, "new category id")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expense id %q", args[0])
			}

			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			if err := stores.Expenses.Remove(cmd.Context(), id); err != nil {
				return userErr(err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted expense %d", id)))
			return nil
		},
	}
}

func expensesByCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-category <id>",
		Short: "List expenses in one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			if err := stores.Expenses.LoadCategories(cmd.Context()); err != nil {
				return userErr(err)
			}

			expenses, err := stores.Expenses.ByCategory(cmd.Context(), id)
			if err != nil {
				return userErr(err)
			}
			if len(expenses) == 0 {
				fmt.Println(cli.FormatInfo("No expenses in this category."))
				return nil
			}

			printExpenses(expenses, stores.Expenses.CategoryName)
			return nil
		},
	}
}

func expensesByRangeCmd() *cobra.Command {
	var (
		startStr string
		endStr   string
	)

	cmd := &cobra.Command{
		Use:   "by-range",
		Short: "List expenses in a date range",
		Long:  `List expenses between two dates, inclusive. Dates accept YYYY-MM-DD or YYYY-MM-DDTHH:MM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := report.ParseInputDate(startStr)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			end, err := report.ParseInputDate(endStr)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}
			if end.Before(start) {
				return fmt.Errorf("end date is before start date")
			}

			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			if err := stores.Expenses.LoadCategories(cmd.Context()); err != nil {
				return userErr(err)
			}

			expenses, err := stores.Expenses.ByDateRange(cmd.Context(), start, end)
			if err != nil {
				return userErr(err)
			}
			if len(expenses) == 0 {
				fmt.Println(cli.FormatInfo("No expenses in this range."))
				return nil
			}

			printExpenses(expenses, stores.Expenses.CategoryName)
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "range start (required)")
	cmd.Flags().StringVar(&endStr, "end", "", "range end (required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func printExpenses(expenses []model.Expense, categoryName func(int64) string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("Date"),
		cli.TableHeaderStyle.Render("Description"),
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Amount"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 4),
		strings.Repeat("-", 19),
		strings.Repeat("-", 28),
		strings.Repeat("-", 18),
		strings.Repeat("-", 12))

	total := decimal.Zero
	for _, e := range expenses {
		description := e.Description
		if description == "" {
			description = report.NoDescription
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.ID,
			report.FormatDateUS(e.Date),
			description,
			categoryName(e.CategoryID),
			report.FormatUSD(e.Amount))
		total = total.Add(e.Amount)
	}

	fmt.Fprintf(w, "\t\t\t%s\t%s\n", "Total", report.FormatUSD(total))
}

func findExpense(expenses []model.Expense, id int64) (model.Expense, bool) {
	for _, e := range expenses {
		if e.ID == id {
			return e, true
		}
	}
	return model.Expense{}, false
}
