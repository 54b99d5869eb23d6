package main

import (
	"github.com/spf13/cobra"

	"github.com/findash/findash/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Launch the full-screen dashboard: browse and edit expenses and
categories, and chart spending, all without leaving the terminal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			return tui.Run(cmd.Context(), tui.Config{
				Categories: stores.Categories,
				Expenses:   stores.Expenses,
				Session:    stores.Session,
			})
		},
	}
}
