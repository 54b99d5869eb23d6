package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/findash/findash/internal/cli"
	"github.com/findash/findash/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Chart your spending",
		Long:  `Aggregate views over your expenses: totals per category, or the individual expenses inside one category over a date range.`,
	}

	cmd.AddCommand(reportCategoriesCmd())
	cmd.AddCommand(reportExpensesCmd())

	return cmd
}

func reportCategoriesCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Chart spending by category",
		Long:  `Render a bar chart of total spending per category, the same view the dashboard's Chart tab shows.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			if err := stores.Categories.Load(cmd.Context()); err != nil {
				return userErr(err)
			}
			if err := stores.Expenses.Load(cmd.Context()); err != nil {
				return userErr(err)
			}

			breakdown := report.CategoryBreakdown(
				stores.Expenses.Expenses(),
				stores.Categories.Categories(),
			)

			fmt.Println(cli.FormatTitle("Spending by Category"))
			fmt.Println(report.RenderBars(breakdown, width))
			fmt.Println()
			fmt.Println(cli.FormatInfo("Total: " + report.FormatUSD(breakdown.Total)))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 40, "bar width in characters")
	return cmd
}

func reportExpensesCmd() *cobra.Command {
	var (
		startStr string
		endStr   string
	)

	cmd := &cobra.Command{
		Use:   "expenses <category-id>",
		Short: "List one category's expenses over a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categoryID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			var start, end *time.Time
			if startStr != "" {
				t, err := report.ParseInputDate(startStr)
				if err != nil {
					return fmt.Errorf("invalid start date: %w", err)
				}
				start = &t
			}
			if endStr != "" {
				t, err := report.ParseInputDate(endStr)
				if err != nil {
					return fmt.Errorf("invalid end date: %w", err)
				}
				end = &t
			}

			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			if err := stores.Expenses.LoadCategories(cmd.Context()); err != nil {
				return userErr(err)
			}

			expenses, err := stores.Expenses.ByCategory(cmd.Context(), categoryID)
			if err != nil {
				return userErr(err)
			}

			slices := report.ExpenseSlices(expenses, categoryID, start, end)
			if len(slices) == 0 {
				fmt.Println(cli.FormatInfo("No expenses match."))
				return nil
			}

			fmt.Println(cli.FormatTitle(stores.Expenses.CategoryName(categoryID)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, s := range slices {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					report.FormatDateShortUS(s.Date),
					s.Label,
					report.FormatUSD(s.Amount))
			}
			fmt.Fprintf(w, "\t%s\t%s\n", "Total", report.FormatUSD(report.SliceTotal(slices)))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "range start, inclusive")
	cmd.Flags().StringVar(&endStr, "end", "", "range end, inclusive")
	return cmd
}
