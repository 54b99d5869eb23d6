package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/findash/findash/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List, add, rename, and delete the categories your expenses are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(renameCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			if err := stores.Categories.Load(cmd.Context()); err != nil {
				return userErr(err)
			}

			categories := stores.Categories.Categories()
			if len(categories) == 0 {
				fmt.Println(cli.FormatInfo("No categories found. Use 'findash categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"))
			fmt.Fprintf(w, "%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 24))

			for _, cat := range categories {
				fmt.Fprintf(w, "%d\t%s\n", cat.ID, cat.Name)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := initStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			cat, err := stores.Categories.Add(cmd.Context(), args[0])
			if err != nil {
				return userErr(err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added category %q (id %d)", cat.Name, cat.ID)))
			return nil
		},
	}
}

func renameCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new-name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
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

			cat, err := stores.Categories.Rename(cmd.Context(), id, args[1])
			if err != nil {
				return userErr(err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Renamed category %d to %q", id, cat.Name)))
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category. Expenses filed under it are kept; they show up
as "Unknown category" until they are re-filed.`,
		Args: cobra.ExactArgs(1),
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

			if err := stores.Categories.Remove(cmd.Context(), id); err != nil {
				return userErr(err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %d", id)))
			return nil
		},
	}
}
