package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inkwell-commerce/declare/internal/engine"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile [order-reference...]",
		Short: "Reconcile declarations against order items",
		Long: `Reconcile classifies each order item, pairs declaration lines with items,
and merges the results back into the stored declaration. With no arguments
every stored order is processed.

Examples:
  declare reconcile                # Reconcile every stored order
  declare reconcile ORD-1042       # Reconcile one order
  declare reconcile --dry-run      # Preview without saving changes`,
		RunE: runReconcile,
	}

	cmd.Flags().Bool("dry-run", false, "Preview without saving changes")
	cmd.Flags().Bool("no-directory", false, "Skip product-directory SKU resolution")
	cmd.Flags().Bool("no-synth", false, "Skip synthesizing codes for unresolved items")

	_ = viper.BindPFlag("reconcile.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("reconcile.no_directory", cmd.Flags().Lookup("no-directory"))
	_ = viper.BindPFlag("reconcile.no_synth", cmd.Flags().Lookup("no-synth"))

	return cmd
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	tables, err := loadTables()
	if err != nil {
		return err
	}

	cfg := engine.DefaultConfig()
	cfg.DryRun = viper.GetBool("reconcile.dry_run")
	cfg.FillMissingSKUs = !viper.GetBool("reconcile.no_directory")
	cfg.SynthesizeSKUs = !viper.GetBool("reconcile.no_synth")

	eng, err := buildEngine(db, tables, cfg)
	if err != nil {
		return err
	}

	refs := args
	if len(refs) == 0 {
		refs, err = db.ListOrderReferences(ctx)
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
	}
	if len(refs) == 0 {
		cmd.Println("No orders to reconcile.")
		return nil
	}

	bar := progressbar.Default(int64(len(refs)), "reconciling")

	totalChanges := 0
	totalUnmatched := 0
	for _, ref := range refs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := eng.ReconcileOrder(ctx, ref)
		if err != nil {
			return err
		}
		totalChanges += len(result.Diff)
		totalUnmatched += len(result.Pairing.UnmatchedDeclarations)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	cmd.Printf("\nReconciled %d orders: %d changes, %d declaration lines left unmatched.\n",
		len(refs), totalChanges, totalUnmatched)
	if cfg.DryRun {
		cmd.Println("Dry run: nothing was saved.")
	}
	return nil
}
