// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideation

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/ideation-engine/internal/prompt"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Method is a creative problem-solving technique.
type Method string

const (
	MethodFiveWhys Method = "Five Whys"
	MethodSCAMPER  Method = "SCAMPER"
	MethodTRIZ     Method = "TRIZ"
)

// Methods lists the supported creative methods.
var Methods = []Method{MethodFiveWhys, MethodSCAMPER, MethodTRIZ}

// ParseMethod accepts a method name in any case; "5whys" and "five-whys"
// are accepted for Five Whys.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)) {
	case "fivewhys", "5whys":
		return MethodFiveWhys, nil
	case "scamper":
		return MethodSCAMPER, nil
	case "triz":
		return MethodTRIZ, nil
	}
	return "", fmt.Errorf("%w: unknown creative method %q (use Five Whys, SCAMPER or TRIZ)", types.ErrConfiguration, s)
}

const existingSolutionsTemplate = `You are an expert consultant in innovation specializing in applying the Lean Canvas. Your task is to identify {{.Params.count}} existing solutions to solve the following problem in the {{.Params.industry}} industry: {{.Params.problem}}. Please conduct your research using the following sources:
{{.Sources}}
Please respond only in the {{.Language}} language. Please present the results in a markdown table with three columns: 'Solution', 'Description', and 'Source'. Include the source URLs in the 'Source' column.
`

const creativeTableInstruction = `Please respond only in the {{.Language}} language. Present the results in a markdown table with four columns: 'Solution', 'Description', 'Unique Value Proposition', and 'Customer Segment'.
`

var creativeTemplates = map[Method]string{
	MethodFiveWhys: `Step into the role of an expert consultant in innovation. Pinpoint the initial problem within the {{.Params.problem}} in the {{.Params.industry}} industry, and continuously question 'why?' the problem exists, getting five layers deep to expose the fundamental reason. Document your findings and propose {{.Params.count}} actionable solutions. ` + creativeTableInstruction,
	MethodSCAMPER: `Using the SCAMPER framework, generate {{.Params.count}} innovative ideas to improve the {{.Params.problem}} in the {{.Params.industry}} industry. Consider each SCAMPER element: Substitute, Combine, Adapt, Modify, Put to another use, Eliminate, and Reverse. Document your findings and proposed solutions. ` + creativeTableInstruction,
	MethodTRIZ: `Embrace the mindset of an expert consultant in innovation. Apply the TRIZ framework to creatively address {{.Params.problem}} in the {{.Params.industry}} industry. Seek out and reconcile paradoxes, leveraging TRIZ's standards to formulate {{.Params.count}} breakthrough solutions. Detail your process and the application of TRIZ concepts in your strategy. ` + creativeTableInstruction,
}

// SolutionsQuery is the search topic used to ground existing solutions.
func SolutionsQuery(params types.BusinessParams) string {
	return fmt.Sprintf("current solutions for the %s in the %s industry",
		strings.TrimSpace(params[types.ParamProblem]), strings.TrimSpace(params[types.ParamIndustry]))
}

// ExistingSolutions lists known solutions to a problem with their sources.
func (a *Assistant) ExistingSolutions(ctx context.Context, params types.BusinessParams) (string, error) {
	if err := params.Require(types.ParamIndustry, types.ParamProblem, types.ParamCount); err != nil {
		return "", err
	}
	n, err := count(params)
	if err != nil {
		return "", err
	}
	if _, err := prompt.Build(prompt.Input{Role: "existing-solutions", Template: existingSolutionsTemplate, Params: params}); err != nil {
		return "", err
	}

	sources, err := a.rankedSources(ctx, SolutionsQuery(params), params, n)
	if err != nil {
		return "", fmt.Errorf("existing solutions: %w", err)
	}
	return a.generate(ctx, "existing-solutions", existingSolutionsTemplate, params, sources)
}

// CreativeSolutions proposes new solutions with method. It uses no web
// evidence.
func (a *Assistant) CreativeSolutions(ctx context.Context, params types.BusinessParams, method Method) (string, error) {
	tmpl, ok := creativeTemplates[method]
	if !ok {
		return "", fmt.Errorf("%w: unknown creative method %q", types.ErrConfiguration, method)
	}
	if err := params.Require(types.ParamIndustry, types.ParamProblem, types.ParamCount); err != nil {
		return "", err
	}
	if _, err := count(params); err != nil {
		return "", err
	}
	return a.generate(ctx, "creative-solutions", tmpl, params, nil)
}

// Solutions returns the existing solutions followed by the creative ones.
func (a *Assistant) Solutions(ctx context.Context, params types.BusinessParams, method Method) (existing, creative string, err error) {
	if _, ok := creativeTemplates[method]; !ok {
		return "", "", fmt.Errorf("%w: unknown creative method %q", types.ErrConfiguration, method)
	}
	existing, err = a.ExistingSolutions(ctx, params)
	if err != nil {
		return "", "", err
	}
	creative, err = a.CreativeSolutions(ctx, params, method)
	if err != nil {
		return "", "", err
	}
	return existing, creative, nil
}
