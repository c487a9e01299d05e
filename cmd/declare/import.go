package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/inkwell-commerce/declare/internal/csvio"
	"github.com/inkwell-commerce/declare/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import orders, declarations, or products from CSV",
	}
	cmd.AddCommand(importOrdersCmd())
	cmd.AddCommand(importProductsCmd())
	return cmd
}

func importOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders <items.csv>",
		Short: "Import order items, optionally with declaration lines",
		Long: `Import orders reads an order-items CSV and stores one order per distinct
reference. A declarations CSV may be supplied alongside; its lines are
attached to matching orders by reference.

Examples:
  declare import orders items.csv
  declare import orders items.csv --declarations lines.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runImportOrders,
	}

	cmd.Flags().String("declarations", "", "Declaration-lines CSV to attach")

	return cmd
}

func runImportOrders(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	itemsFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open items file: %w", err)
	}
	defer func() { _ = itemsFile.Close() }()

	orders, err := csvio.ReadOrders(itemsFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var lines map[string][]model.DeclarationLine
	if path, _ := cmd.Flags().GetString("declarations"); path != "" {
		declFile, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open declarations file: %w", err)
		}
		defer func() { _ = declFile.Close() }()

		lines, err = csvio.ReadDeclarations(declFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	db, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	bar := progressbar.Default(int64(len(orders)), "importing")
	for i := range orders {
		if lines != nil {
			orders[i].DeclarationLines = lines[orders[i].Reference]
		}
		if err := db.SaveOrder(ctx, &orders[i]); err != nil {
			return fmt.Errorf("saving order %q: %w", orders[i].Reference, err)
		}
		// Observed SKUs count as used for future synthesis.
		for _, item := range orders[i].Items {
			if item.SKU != "" {
				if err := db.AddUsedCode(ctx, item.SKU); err != nil {
					return err
				}
			}
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	cmd.Printf("\nImported %d orders.\n", len(orders))
	return nil
}

func importProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products <products.csv>",
		Short: "Import the product catalog used for SKU resolution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open products file: %w", err)
			}
			defer func() { _ = f.Close() }()

			products, err := csvio.ReadProducts(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			db, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := db.Close(); closeErr != nil {
					slog.Error("Failed to close database", "error", closeErr)
				}
			}()

			if err := db.SaveProducts(cmd.Context(), products); err != nil {
				return err
			}
			for _, p := range products {
				if p.SKU != "" {
					if err := db.AddUsedCode(cmd.Context(), p.SKU); err != nil {
						return err
					}
				}
			}

			cmd.Printf("Imported %d products.\n", len(products))
			return nil
		},
	}
}
