// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ideation-engine/internal/ideation"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List current problems of a customer segment",
	Long: `Search the web for current problems of a customer segment in an industry,
keep the most relevant sources and ask the model for a markdown table of
problems citing them.`,
	RunE: runProblems,
}

func init() {
	problemsCmd.Flags().String("industry", "", "industry (required)")
	problemsCmd.Flags().String("customer", "", "customer segment (required)")
	problemsCmd.Flags().Int("count", 3, "number of problems, 1 to 20")
	addWhereFlags(problemsCmd)
	problemsCmd.MarkFlagRequired("industry")
	problemsCmd.MarkFlagRequired("customer")
	rootCmd.AddCommand(problemsCmd)
}

// addWhereFlags registers the --year and --region flags shared by the
// evidence-backed commands.
func addWhereFlags(cmd *cobra.Command) {
	cmd.Flags().Int("year", time.Now().Year(), "year appended to search queries")
	cmd.Flags().String("region", "World", "search region name or code")
}

// whereParams reads --year and --region into params, normalizing the region
// to its display name.
func whereParams(cmd *cobra.Command, params types.BusinessParams) (types.BusinessParams, error) {
	year, _ := cmd.Flags().GetInt("year")
	regionFlag, _ := cmd.Flags().GetString("region")
	region, err := types.ParseRegion(regionFlag)
	if err != nil {
		return nil, err
	}
	return params.With(types.ParamYear, strconv.Itoa(year)).With(types.ParamRegion, region.Name()), nil
}

func runProblems(cmd *cobra.Command, args []string) error {
	industry, _ := cmd.Flags().GetString("industry")
	customer, _ := cmd.Flags().GetString("customer")
	n, _ := cmd.Flags().GetInt("count")

	params, err := whereParams(cmd, types.BusinessParams{
		types.ParamIndustry: industry,
		types.ParamCustomer: customer,
		types.ParamCount:    strconv.Itoa(n),
	})
	if err != nil {
		return err
	}

	a, err := newAssistant()
	if err != nil {
		return err
	}
	out, err := a.Problems(cmd.Context(), params)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ideation.FormatMarkdownTable(out))
	return nil
}
