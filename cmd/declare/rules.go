package main

import (
	"sort"

	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the active rule tables",
	}
	cmd.AddCommand(rulesShowCmd())
	return cmd
}

func rulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the classification cascade in evaluation order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := loadTables()
			if err != nil {
				return err
			}

			list := tables.Classification.Rules
			sort.Slice(list, func(i, j int) bool {
				return list[i].Precedence > list[j].Precedence
			})

			for _, r := range list {
				cmd.Printf("%4d  %-28s  %s  %s\n", r.Precedence, r.Name, r.Code, r.Description)
			}
			cmd.Printf("\n%d rules, %d full codes, %d prefixes\n",
				len(list),
				len(tables.Classification.CodeTable),
				len(tables.Classification.PrefixTable))
			return nil
		},
	}
}
