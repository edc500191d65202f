package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/mathnote/internal/cli"
	"github.com/Veraticus/mathnote/internal/config"
	"github.com/Veraticus/mathnote/internal/storage"
	"github.com/spf13/cobra"
)

func salesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "List and manage recorded sales",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List sales, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ledgerFilter(cmd)
			if err != nil {
				return err
			}
			return withStorage(cmd, func(ctx context.Context, _ *config.Settings, store *storage.SQLiteStorage) error {
				sales, err := store.ListSales(ctx, filter)
				if err != nil {
					return fmt.Errorf("failed to list sales: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSales(sales))
				return nil
			})
		},
	}
	addFilterFlags(list)

	cmd.AddCommand(list, deleteCmd("sale", func(ctx context.Context, store *storage.SQLiteStorage, id string) error {
		return store.DeleteSale(ctx, id)
	}))
	return cmd
}

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List and manage recorded expenses",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ledgerFilter(cmd)
			if err != nil {
				return err
			}
			return withStorage(cmd, func(ctx context.Context, _ *config.Settings, store *storage.SQLiteStorage) error {
				expenses, err := store.ListExpenses(ctx, filter)
				if err != nil {
					return fmt.Errorf("failed to list expenses: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderExpenses(expenses))
				return nil
			})
		},
	}
	addFilterFlags(list)

	cmd.AddCommand(list, deleteCmd("expense", func(ctx context.Context, store *storage.SQLiteStorage, id string) error {
		return store.DeleteExpense(ctx, id)
	}))
	return cmd
}

func creditsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credits",
		Short: "List, settle and manage credits",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List credits, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ledgerFilter(cmd)
			if err != nil {
				return err
			}
			filter.OnlyOpen, _ = cmd.Flags().GetBool("open")
			return withStorage(cmd, func(ctx context.Context, _ *config.Settings, store *storage.SQLiteStorage) error {
				credits, err := store.ListCredits(ctx, filter)
				if err != nil {
					return fmt.Errorf("failed to list credits: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCredits(credits))
				return nil
			})
		},
	}
	addFilterFlags(list)
	list.Flags().Bool("open", false, "only credits that are not settled")

	settle := &cobra.Command{
		Use:   "settle <id>",
		Short: "Mark a credit as repaid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := dateFlagOr(cmd, "date", today())
			if err != nil {
				return err
			}
			return withStorage(cmd, func(ctx context.Context, _ *config.Settings, store *storage.SQLiteStorage) error {
				if err := store.SettleCredit(ctx, args[0], at); err != nil {
					return fmt.Errorf("failed to settle credit %s: %w", args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Settled credit "+args[0]+" on "+cli.FormatDate(at)))
				return nil
			})
		},
	}
	settle.Flags().String("date", "", "settlement date (format: 2006-01-02, default: today)")

	cmd.AddCommand(list, settle, deleteCmd("credit", func(ctx context.Context, store *storage.SQLiteStorage, id string) error {
		return store.DeleteCredit(ctx, id)
	}))
	return cmd
}

func deleteCmd(kind string, del func(ctx context.Context, store *storage.SQLiteStorage, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd, func(ctx context.Context, _ *config.Settings, store *storage.SQLiteStorage) error {
				if err := del(ctx, store, args[0]); err != nil {
					return fmt.Errorf("failed to delete %s %s: %w", kind, args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted "+kind+" "+args[0]))
				return nil
			})
		},
	}
}
