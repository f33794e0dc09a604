// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ideation-engine/internal/ideation"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var leanCanvasCmd = &cobra.Command{
	Use:   "lean-canvas",
	Short: "Build a lean canvas for a problem and solution",
	RunE: func(cmd *cobra.Command, args []string) error {
		industry, _ := cmd.Flags().GetString("industry")
		problem, _ := cmd.Flags().GetString("problem")
		solution, _ := cmd.Flags().GetString("solution")

		a, err := newAssistant()
		if err != nil {
			return err
		}
		out, err := a.LeanCanvas(cmd.Context(), types.BusinessParams{
			types.ParamIndustry: industry,
			types.ParamProblem:  problem,
			types.ParamSolution: solution,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ideation.FormatMarkdownTable(out))
		return nil
	},
}

var businessCanvasCmd = &cobra.Command{
	Use:   "business-canvas",
	Short: "Build a value proposition canvas and the business model canvas that follows from it",
	RunE: func(cmd *cobra.Command, args []string) error {
		industry, _ := cmd.Flags().GetString("industry")
		customer, _ := cmd.Flags().GetString("customer")
		description, _ := cmd.Flags().GetString("description")

		a, err := newAssistant()
		if err != nil {
			return err
		}
		vp, bm, err := a.BusinessCanvas(cmd.Context(), types.BusinessParams{
			types.ParamIndustry:    industry,
			types.ParamCustomer:    customer,
			types.ParamDescription: description,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "## Value Proposition Canvas\n\n%s\n\n## Business Model Canvas\n\n%s\n", vp, bm)
		return nil
	},
}

func init() {
	leanCanvasCmd.Flags().String("industry", "", "industry (required)")
	leanCanvasCmd.Flags().String("problem", "", "problem (required)")
	leanCanvasCmd.Flags().String("solution", "", "solution (required)")
	for _, f := range []string{"industry", "problem", "solution"} {
		leanCanvasCmd.MarkFlagRequired(f)
	}

	businessCanvasCmd.Flags().String("industry", "", "industry (required)")
	businessCanvasCmd.Flags().String("customer", "", "target customers (required)")
	businessCanvasCmd.Flags().String("description", "", "job to be done (required)")
	for _, f := range []string{"industry", "customer", "description"} {
		businessCanvasCmd.MarkFlagRequired(f)
	}

	rootCmd.AddCommand(leanCanvasCmd)
	rootCmd.AddCommand(businessCanvasCmd)
}
