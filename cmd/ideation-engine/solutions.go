// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ideation-engine/internal/ideation"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var solutionsCmd = &cobra.Command{
	Use:   "solutions",
	Short: "Find existing solutions and propose creative ones",
	Long: `Search the web for existing solutions to a problem, then generate creative
solutions with one ideation method (Five Whys, SCAMPER or TRIZ).

Use --existing-only or --creative-only to run one half.`,
	RunE: runSolutions,
}

func init() {
	solutionsCmd.Flags().String("industry", "", "industry (required)")
	solutionsCmd.Flags().String("problem", "", "problem to solve (required)")
	solutionsCmd.Flags().Int("count", 3, "number of solutions, 1 to 20")
	solutionsCmd.Flags().String("method", string(ideation.MethodFiveWhys),
		"creative method: "+strings.Join(methodNames(), ", "))
	solutionsCmd.Flags().Bool("existing-only", false, "only list existing solutions")
	solutionsCmd.Flags().Bool("creative-only", false, "only generate creative solutions")
	addWhereFlags(solutionsCmd)
	solutionsCmd.MarkFlagRequired("industry")
	solutionsCmd.MarkFlagRequired("problem")
	solutionsCmd.MarkFlagsMutuallyExclusive("existing-only", "creative-only")
	rootCmd.AddCommand(solutionsCmd)
}

func methodNames() []string {
	names := make([]string, len(ideation.Methods))
	for i, m := range ideation.Methods {
		names[i] = string(m)
	}
	return names
}

func runSolutions(cmd *cobra.Command, args []string) error {
	industry, _ := cmd.Flags().GetString("industry")
	problem, _ := cmd.Flags().GetString("problem")
	n, _ := cmd.Flags().GetInt("count")
	methodFlag, _ := cmd.Flags().GetString("method")
	existingOnly, _ := cmd.Flags().GetBool("existing-only")
	creativeOnly, _ := cmd.Flags().GetBool("creative-only")

	method, err := ideation.ParseMethod(methodFlag)
	if err != nil {
		return err
	}
	params, err := whereParams(cmd, types.BusinessParams{
		types.ParamIndustry: industry,
		types.ParamProblem:  problem,
		types.ParamCount:    strconv.Itoa(n),
	})
	if err != nil {
		return err
	}

	a, err := newAssistant()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	ctx := cmd.Context()

	switch {
	case existingOnly:
		out, err := a.ExistingSolutions(ctx, params)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, ideation.FormatMarkdownTable(out))
	case creativeOnly:
		out, err := a.CreativeSolutions(ctx, params, method)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, ideation.FormatMarkdownTable(out))
	default:
		existing, creative, err := a.Solutions(ctx, params, method)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "## Existing solutions\n\n%s\n\n## %s\n\n%s\n",
			ideation.FormatMarkdownTable(existing), method, ideation.FormatMarkdownTable(creative))
	}
	return nil
}
