package main

import (
	"github.com/spf13/cobra"

	"github.com/inkwell-commerce/declare/internal/classify"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <title>",
		Short: "Classify a single item title",
		Long: `Classify resolves one free-text title against the rule cascade and prints
the canonical code, description, and origin country.

Examples:
  declare classify "2026 Daily Planner - Hardcover"
  declare classify "Mystery item" --code 4820.10.2030
  declare classify "Boxed set" --category notebooks`,
		Args: cobra.ExactArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().String("category", "", "Sales-channel category hint")
	cmd.Flags().String("code", "", "Existing trade-classification code, if any")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	classifier, err := classify.NewClassifier(tables.Classification)
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	code, _ := cmd.Flags().GetString("code")

	result := classifier.Classify(args[0], category, code)
	if result.Unknown() {
		cmd.Println("UNCLASSIFIED: no rule or code matched; route to manual review")
		return nil
	}

	cmd.Printf("Code:        %s\n", result.Code)
	cmd.Printf("Description: %s\n", result.Description)
	cmd.Printf("Origin:      %s\n", result.OriginCountry)
	cmd.Printf("Status:      %s\n", result.Status)
	return nil
}
