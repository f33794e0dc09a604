// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ideation-engine/internal/evidence"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var evidenceCmd = &cobra.Command{
	Use:   "evidence [topic]",
	Short: "Run one search, select, fetch and summarize pass for a topic",
	Long: `Run the evidence sub-pipeline that grounds every analyst and print what
each stage produced: the search results, the selected URLs, which pages could
be fetched, and the summary of each available source.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEvidence,
}

func init() {
	evidenceCmd.Flags().Int("top-k", 0, "URLs to keep (overrides evidence.top_k)")
	evidenceCmd.Flags().Bool("yaml", false, "emit the full stage record as YAML")
	addWhereFlags(evidenceCmd)
	bindFlag("evidence.top_k", evidenceCmd.Flags().Lookup("top-k"))
	rootCmd.AddCommand(evidenceCmd)
}

func runEvidence(cmd *cobra.Command, args []string) error {
	year, _ := cmd.Flags().GetInt("year")
	regionFlag, _ := cmd.Flags().GetString("region")
	asYAML, _ := cmd.Flags().GetBool("yaml")

	region, err := types.ParseRegion(regionFlag)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	q := types.SearchQuery{Topic: strings.Join(args, " "), Year: year, Region: region}
	res, err := newEvidence(cfg, backend).Run(cmd.Context(), q, cfg.Language)
	if err != nil {
		return fmt.Errorf("evidence: %w", err)
	}

	if asYAML {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(res)
	}
	evidence.Print(cmd.OutOrStdout(), res)
	return nil
}
