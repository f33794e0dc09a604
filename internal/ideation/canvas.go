// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideation

import (
	"context"

	"github.com/pdiddy/ideation-engine/internal/agent"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

const leanCanvasTemplate = `You are an expert consultant in innovation specializing in applying the Lean Canvas. Your task is to create a detailed Lean Canvas for the following problem and solution in the {{.Params.industry}} industry: Problem: {{.Params.problem}}. Solution: {{.Params.solution}}. Please respond only in the {{.Language}} language. Present the Lean Canvas in a markdown table with the following sections: 'Customer Segments', 'Value Propositions', 'Channels', 'Revenue Streams', 'Cost Structure', 'Key Metrics', and 'Competitive Advantages'.
`

// LeanCanvas builds a lean canvas table for a problem and its solution.
func (a *Assistant) LeanCanvas(ctx context.Context, params types.BusinessParams) (string, error) {
	if err := params.Require(types.ParamIndustry, types.ParamProblem, types.ParamSolution); err != nil {
		return "", err
	}
	return a.generate(ctx, "lean-canvas", leanCanvasTemplate, params, nil)
}

// Business canvas roles.
const (
	RoleValueProposition = "ValueProposition"
	RoleBusinessModel    = "BusinessModel"
)

const valuePropositionTemplate = `Imagine you are the founder of a new startup in the {{.Params.industry}} industry. Your target customers are {{.Params.customer}} who are looking for a solution to the following problem: {{.Params.description}}.
Your goal is to create a value proposition that clearly communicates the unique benefits and value your product or service provides to your target customers. Please respond only in the {{.Language}} language. Present the value proposition canvas in a markdown table with the following sections: 'Customer Jobs', 'Pains', 'Gains', 'Products & Services', 'Pain Relievers', and 'Gain Creators'.
`

const businessModelTemplate = `Act as a business consultant from a top management company.
I want you to generate a Business Model Canvas for a company in the {{.Params.industry}} industry that delivers the value proposition: {{range .ContextList}}{{.OutputText}}{{end}} to {{.Params.customer}}. You should complete the business canvas with the following components: 'Key Activities', 'Key Resources', 'Key Partners', 'Customer Relationships', 'Channels', 'Customer Segments', 'Cost Structure', and 'Revenue Streams'. Please respond only in the {{.Language}} language. Present the business canvas in a markdown table.
`

// BusinessCanvasDefinition chains the value proposition canvas into the
// business model canvas.
func BusinessCanvasDefinition() agent.Definition {
	return agent.Definition{
		Name:    "business-canvas",
		Final:   RoleBusinessModel,
		Require: []string{types.ParamIndustry, types.ParamCustomer, types.ParamDescription},
		Tasks: []types.AgentTask{
			{Role: RoleValueProposition, Template: valuePropositionTemplate},
			{Role: RoleBusinessModel, Template: businessModelTemplate, ContextFrom: []string{RoleValueProposition}},
		},
	}
}

// BusinessCanvas returns the value proposition canvas and the business model
// canvas built from it, both formatted for table rendering. description is
// the job to be done.
func (a *Assistant) BusinessCanvas(ctx context.Context, params types.BusinessParams) (valueProposition, businessModel string, err error) {
	run, err := a.runPipeline(ctx, BusinessCanvasDefinition(), params)
	if err != nil {
		return "", "", err
	}
	vp, _ := run.Result(RoleValueProposition)
	return FormatMarkdownTable(vp.OutputText), FormatMarkdownTable(run.Final()), nil
}
