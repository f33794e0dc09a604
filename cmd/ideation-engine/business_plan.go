// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ideation-engine/internal/agent"
	"github.com/pdiddy/ideation-engine/internal/businessplan"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var businessPlanCmd = &cobra.Command{
	Use:   "business-plan",
	Short: "Run the market, technology, financial and synthesis agents",
	Long: `Run the four-role business plan pipeline. The market, technology and
financial analysts each gather their own web evidence; the synthesis role
combines their outputs into the final plan, which is written to stdout.

--pipeline replaces the built-in definition with a YAML file. --report
writes the full run record (tasks, states, sources, outputs) as YAML.
--concurrency above 1 runs independent analysts side by side.`,
	RunE: runBusinessPlan,
}

func init() {
	f := businessPlanCmd.Flags()
	f.String("company", "", "company name")
	f.String("customer", "", "target customers (required)")
	f.String("industry", "", "industry (required)")
	f.String("description", "", "product or service description (required)")
	f.Int("year", time.Now().Year(), "year appended to search queries")
	f.String("region", "World", "search region name or code")
	f.Float64("cogs", 20, "cost of goods sold, percent of revenue")
	f.Float64("expenses", 15, "operating expenses, percent of revenue")
	f.String("pipeline", "", "YAML pipeline definition overriding the built-in one")
	f.String("report", "", "write the run report as YAML to this path")
	f.Int("concurrency", 1, "tasks run at once (overrides pipeline.concurrency)")

	for _, name := range []string{"customer", "industry", "description"} {
		businessPlanCmd.MarkFlagRequired(name)
	}
	bindFlag("pipeline.concurrency", f.Lookup("concurrency"))
	rootCmd.AddCommand(businessPlanCmd)
}

func runBusinessPlan(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	company, _ := f.GetString("company")
	customer, _ := f.GetString("customer")
	industry, _ := f.GetString("industry")
	description, _ := f.GetString("description")
	year, _ := f.GetInt("year")
	regionFlag, _ := f.GetString("region")
	cogs, _ := f.GetFloat64("cogs")
	expenses, _ := f.GetFloat64("expenses")
	pipelinePath, _ := f.GetString("pipeline")
	reportPath, _ := f.GetString("report")

	region, err := types.ParseRegion(regionFlag)
	if err != nil {
		return err
	}
	in := businessplan.Input{
		Company:            company,
		Customer:           customer,
		Industry:           industry,
		Description:        description,
		Year:               year,
		Region:             region,
		COGSPercentage:     cogs,
		ExpensesPercentage: expenses,
	}
	params, err := in.Params()
	if err != nil {
		return err
	}

	def := businessplan.Definition()
	if pipelinePath != "" {
		def, err = agent.LoadDefinition(pipelinePath)
		if err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	runner := newAgentRunner(cfg, backend, newEvidence(cfg, backend))

	run, runErr := runner.Run(cmd.Context(), def, params)
	if run != nil {
		agent.Summary(os.Stderr, run)
		if reportPath != "" {
			if err := agent.SaveReport(reportPath, run); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Report written to %s\n", reportPath)
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintln(cmd.OutOrStdout(), run.Final())
	return nil
}
