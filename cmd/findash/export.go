package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/findash/findash/internal/cli"
	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/report"
	"github.com/findash/findash/internal/sheets"
)

func exportCmd() *cobra.Command {
	var (
		title    string
		startStr string
		endStr   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses to Google Sheets",
		Long: `Write all expenses and the per-category summary to a Google
spreadsheet. Configure credentials under the "sheets" section of the
config file; the first run walks you through OAuth2 in the browser.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := sheetsConfig()
			if err != nil {
				return err
			}

			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			bar := progressbar.NewOptions(4,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Exporting to Google Sheets...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)

			if err := stores.Categories.Load(ctx); err != nil {
				return userErr(err)
			}
			_ = bar.Add(1)

			if err := stores.Expenses.Load(ctx); err != nil {
				return userErr(err)
			}
			_ = bar.Add(1)

			expenses := stores.Expenses.Expenses()
			if startStr != "" || endStr != "" {
				expenses, err = filterByRange(expenses, startStr, endStr)
				if err != nil {
					return err
				}
			}

			rep := sheets.BuildReport(title, expenses, stores.Categories.Categories())
			_ = bar.Add(1)

			exporter, err := sheets.NewExporter(ctx, cfg, slog.Default().With("component", "sheets"))
			if err != nil {
				return err
			}
			if err := exporter.Export(ctx, rep); err != nil {
				return err
			}
			_ = bar.Add(1)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d expenses", len(rep.Rows))))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "Expense Report", "report title written to the summary tab")
	cmd.Flags().StringVar(&startStr, "start", "", "only export expenses on or after this date")
	cmd.Flags().StringVar(&endStr, "end", "", "only export expenses on or before this date")
	return cmd
}

// filterByRange narrows expenses to an inclusive date range. Empty bounds
// are open on that side.
func filterByRange(expenses []model.Expense, startStr, endStr string) ([]model.Expense, error) {
	var start, end *time.Time
	if startStr != "" {
		t, err := report.ParseInputDate(startStr)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", err)
		}
		start = &t
	}
	if endStr != "" {
		t, err := report.ParseInputDate(endStr)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
		end = &t
	}

	var out []model.Expense
	for _, e := range expenses {
		if start != nil && e.Date.Before(*start) {
			continue
		}
		if end != nil && e.Date.After(*end) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
