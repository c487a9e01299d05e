package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/inkwell-commerce/declare/internal/sku"
)

func codesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Manage synthesized product codes",
	}
	cmd.AddCommand(codesSynthCmd())
	cmd.AddCommand(codesListCmd())
	return cmd
}

func codesSynthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth <name>",
		Short: "Synthesize a product code from a free-text name",
		Long: `Synth derives a compact, unique product code from item text using the
facet dictionaries, registering it in the used-code registry.

Examples:
  declare codes synth "A5 Dotted Notebook - Forest Green"
  declare codes synth "Washi tape set of 3" --imperfect`,
		Args: cobra.ExactArgs(1),
		RunE: runCodesSynth,
	}

	cmd.Flags().Bool("imperfect", false, "Flag the item as imperfect stock")
	cmd.Flags().Bool("dry-run", false, "Print the code without registering it")

	return cmd
}

func runCodesSynth(cmd *cobra.Command, args []string) error {
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

	codes, err := db.ListUsedCodes(ctx)
	if err != nil {
		return err
	}
	used := sku.NewUsedSet(codes...)

	imperfect, _ := cmd.Flags().GetBool("imperfect")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	generator := sku.NewGenerator(tables.SKU)
	code := generator.Synthesize(sku.Attributes{Name: args[0], Imperfect: imperfect}, used.Contains)

	if !dryRun {
		if err := db.AddUsedCode(ctx, code); err != nil {
			return err
		}
	}

	cmd.Println(code)
	return nil
}

func codesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered product code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := db.Close(); closeErr != nil {
					slog.Error("Failed to close database", "error", closeErr)
				}
			}()

			codes, err := db.ListUsedCodes(cmd.Context())
			if err != nil {
				return err
			}
			for _, code := range codes {
				cmd.Println(code)
			}
			return nil
		},
	}
}
