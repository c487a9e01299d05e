package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/inkwell-commerce/declare/internal/export"
	"github.com/inkwell-commerce/declare/internal/model"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [order-reference...]",
		Short: "Export declarations to an XLSX report",
		Long: `Export writes one row per declaration line to a spreadsheet. With no
arguments every stored order is included.

Examples:
  declare export --out declarations.xlsx
  declare export ORD-1042 ORD-1043 --out subset.xlsx`,
		RunE: runExport,
	}

	cmd.Flags().String("out", "declarations.xlsx", "Output file path")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
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

	refs := args
	if len(refs) == 0 {
		refs, err = db.ListOrderReferences(ctx)
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
	}

	orders := make([]*model.Order, 0, len(refs))
	for _, ref := range refs {
		order, err := db.GetOrder(ctx, ref)
		if err != nil {
			return err
		}
		orders = append(orders, order)
	}

	out, _ := cmd.Flags().GetString("out")
	if err := export.WriteDeclarationReport(out, orders); err != nil {
		return err
	}

	cmd.Printf("Wrote %d orders to %s.\n", len(orders), out)
	return nil
}
