// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ideation-engine/internal/finance"
)

var incomeStatementCmd = &cobra.Command{
	Use:   "income-statement",
	Short: "Project a multi-year income statement",
	Long: `Project revenue, cost of goods sold, gross profit, expenses and net income
from an initial revenue growing at a fixed yearly rate. No model is called.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		cogs, _ := f.GetFloat64("cogs")
		expenses, _ := f.GetFloat64("expenses")
		asYAML, _ := f.GetBool("yaml")

		a := finance.DefaultAssumptions(cogs, expenses)
		a.InitialRevenue, _ = f.GetFloat64("initial-revenue")
		a.GrowthRate, _ = f.GetFloat64("growth")
		a.Years, _ = f.GetInt("years")

		s, err := finance.Project(a)
		if err != nil {
			return err
		}
		if asYAML {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(s)
		}
		fmt.Fprint(cmd.OutOrStdout(), s.Markdown())
		return nil
	},
}

func init() {
	f := incomeStatementCmd.Flags()
	f.Float64("cogs", 20, "cost of goods sold, percent of revenue")
	f.Float64("expenses", 15, "operating expenses, percent of revenue")
	f.Float64("initial-revenue", finance.DefaultInitialRevenue, "revenue before year 1")
	f.Float64("growth", finance.DefaultGrowthRate, "yearly growth rate (0.25 = 25%)")
	f.Int("years", finance.DefaultYears, "number of projected years")
	f.Bool("yaml", false, "emit the statement as YAML")
	rootCmd.AddCommand(incomeStatementCmd)
}
