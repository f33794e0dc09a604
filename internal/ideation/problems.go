// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideation

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/ideation-engine/internal/prompt"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

const problemsTemplate = `You are an expert consultant in innovation specialized in applying the Lean Canvas. You have extensive experience in identifying critical problems within contemporary industries and markets. Your task is to identify {{.Params.count}} current problems specifically faced by {{.Params.customer}} clients in the {{.Params.industry}} industry in region {{.Params.region}}. You must conduct your research using the following sources:
{{.Sources}}
Please respond only in the {{.Language}} language. Please present the results in a markdown table with four columns: 'Problème', 'Description', 'Impact', and 'Source'. Include the source URLs in the 'Source' column.
`

// ProblemsQuery is the search topic used to ground problem discovery.
func ProblemsQuery(params types.BusinessParams) string {
	return fmt.Sprintf("current problems in the %s industry for %s clients in %s",
		strings.TrimSpace(params[types.ParamIndustry]), strings.TrimSpace(params[types.ParamCustomer]), strings.TrimSpace(params[types.ParamRegion]))
}

// Problems lists current problems of a customer segment as a markdown table
// citing the selected sources. Requires industry, customer and count.
func (a *Assistant) Problems(ctx context.Context, params types.BusinessParams) (string, error) {
	if err := params.Require(types.ParamIndustry, types.ParamCustomer, types.ParamCount); err != nil {
		return "", err
	}
	if strings.TrimSpace(params[types.ParamRegion]) == "" {
		params = params.With(types.ParamRegion, types.RegionWorld.Name())
	}
	n, err := count(params)
	if err != nil {
		return "", err
	}
	if _, err := prompt.Build(prompt.Input{Role: "problems", Template: problemsTemplate, Params: params}); err != nil {
		return "", err
	}

	sources, err := a.rankedSources(ctx, ProblemsQuery(params), params, n)
	if err != nil {
		return "", fmt.Errorf("problems: %w", err)
	}
	return a.generate(ctx, "problems", problemsTemplate, params, sources)
}
