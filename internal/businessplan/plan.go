// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package businessplan defines the four-role business plan pipeline: market,
// technology and financial analyses, each grounded in its own web evidence,
// followed by a synthesis that consumes all three.
package businessplan

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/ideation-engine/internal/agent"
	"github.com/pdiddy/ideation-engine/internal/finance"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Roles of the business plan pipeline.
const (
	RoleMarket     = "Market"
	RoleTechnology = "Technology"
	RoleFinancial  = "Financial"
	RoleSynthesis  = "Synthesis"
)

// ParamIncomeStatement carries the rendered income statement into the
// financial role's prompt.
const ParamIncomeStatement = "income_statement"

const marketTemplate = `You are a Market Research Analyst.
Goal: Conduct a detailed market analysis for the {{.Params.industry}} industry and targeting {{.Params.customer}} to ensure the business {{.Params.description}} is backed by solid research and data.
Background: You are an expert in understanding market demand, demand estimation, target audience, and competition in the {{.Params.industry}} industry. You are skilled at doing market research for a given {{.Params.description}}. You have worked with numerous startups and established companies, helping them identify market trends and develop successful business strategies. Your primary mission is to help the company {{.Params.company}}.

Task: Conduct a detailed market analysis for the {{.Params.industry}} industry, targeting {{.Params.customer}} for {{.Params.description}}.
Current year is {{.Params.year}} and the target customer is in {{.Params.region}}. Write a report on the ideal customer profile, demand estimation in Canadian dollars and marketing strategies to reach the widest possible audience. Include at least 10 bullet points addressing key marketing areas.
Expected output: Market analysis including demand size in Canadian dollars, demand trends, ideal customer profile and segments.

You must include references to the external data below for the market analysis.
Sources:
{{.Sources}}

Please respond only in {{.Language}}.
`

const technologyTemplate = `You are a Technology Expert.
Goal: Assess the technological feasibility and necessary technologies for the {{.Params.industry}} industry.
Background: You are a visionary in technology with a deep understanding of technological trends especially in products like {{.Params.description}}. Your expertise is crucial for aligning technology with business strategies.

Task: Assess the technological feasibility and necessary technologies for the {{.Params.industry}} industry for {{.Params.description}}.
Write a report detailing necessary technologies and manufacturing approaches. Include at least 10 bullet points on key technological areas.
Expected output: Technological assessment including required technologies and their implementation.

Sources:
{{.Sources}}

Please respond only in {{.Language}}.
`

const financialTemplate = `You are a Profitability Analyst.
Goal: Establish the cashflow prediction for the company.
Background: You are an expert in financial analysis. Your mission is to build financial projections for {{.Params.company}}, indicating robust growth over the next three years.

Task: Establish financial projections and build an income statement.
Write a report detailing necessary financial and profitability of the {{.Params.company}} if it launches the {{.Params.description}}.
Include at least 10 bullet points on key financial and profitability issues to consider by the {{.Params.company}}.
Expected output: Detailed financial projections including revenue, COGS, gross profit, expenses, net income, and detailed issues and recommendations to consider.

Income statement:
{{.Params.income_statement}}
Sources:
{{.Sources}}

Please respond only in {{.Language}}.
`

const synthesisTemplate = `You are a Business Development Consultant.
Goal: Evaluate the business model for {{.Params.description}}, focusing on scalability and revenue streams.
Background: Expert in shaping business strategies for products like {{.Params.description}} in {{.Params.industry}} industry. Understands scalability and potential revenue streams to ensure long-term sustainability.

Task: Analyze and summarize marketing, technological, and financial reports and write a detailed business plan describing how to make {{.Params.description}} sustainable and profitable.
The business plan has to be concise with at least ten bullet points and five goals and must contain a schedule for which goals should be achieved and when, starting no earlier than next {{.Params.year}}.
Expected output: A detailed business plan that integrates the marketing, technological, and financial reports, outlining a sustainable and profitable business model for the product.

Reports:
{{.Context}}

Sources:
{{.Sources}}

Please respond only in {{.Language}}.
`

// Definition returns the business plan pipeline.
func Definition() agent.Definition {
	return agent.Definition{
		Name:  "business-plan",
		Final: RoleSynthesis,
		Require: []string{
			types.ParamCompany, types.ParamCustomer, types.ParamIndustry,
			types.ParamDescription, types.ParamYear, ParamIncomeStatement,
		},
		Tasks: []types.AgentTask{
			{Role: RoleMarket, Template: marketTemplate, Evidence: "{{.Params.industry}} market {{.Params.customer}} {{.Params.region}}"},
			{Role: RoleTechnology, Template: technologyTemplate, Evidence: "{{.Params.industry}} technology trends {{.Params.description}}"},
			{Role: RoleFinancial, Template: financialTemplate, Evidence: "{{.Params.industry}} industry profitability"},
			{Role: RoleSynthesis, Template: synthesisTemplate, Evidence: "{{.Params.description}} business model {{.Params.industry}}", ContextFrom: []string{RoleMarket, RoleTechnology, RoleFinancial}},
		},
	}
}

// Input holds the business plan form values.
type Input struct {
	Company            string
	Customer           string
	Industry           string
	Description        string
	Year               int
	Region             types.Region
	COGSPercentage     float64
	ExpensesPercentage float64
}

// Params validates in and renders it, with its income statement, as
// pipeline parameters.
func (in Input) Params() (types.BusinessParams, error) {
	statement, err := finance.Project(finance.DefaultAssumptions(in.COGSPercentage, in.ExpensesPercentage))
	if err != nil {
		return nil, err
	}
	region := in.Region
	if region == "" {
		region = types.RegionWorld
	}

	params := types.BusinessParams{
		types.ParamCompany:     strings.TrimSpace(in.Company),
		types.ParamCustomer:    strings.TrimSpace(in.Customer),
		types.ParamIndustry:    strings.TrimSpace(in.Industry),
		types.ParamDescription: strings.TrimSpace(in.Description),
		types.ParamRegion:      region.Name(),
		types.ParamCOGS:        strconv.FormatFloat(in.COGSPercentage, 'f', -1, 64),
		types.ParamExpenses:    strconv.FormatFloat(in.ExpensesPercentage, 'f', -1, 64),
		ParamIncomeStatement:   statement.Markdown(),
	}
	if in.Year != 0 {
		params[types.ParamYear] = strconv.Itoa(in.Year)
	}
	if err := params.Require(Definition().Require...); err != nil {
		return nil, err
	}
	return params, nil
}

// Planner runs the business plan pipeline.
type Planner struct {
	Runner *agent.Runner
}

// Plan runs the pipeline and returns the run report. The synthesis text is
// run.Final().
func (p *Planner) Plan(ctx context.Context, in Input) (*types.PipelineRun, error) {
	params, err := in.Params()
	if err != nil {
		return nil, fmt.Errorf("business plan: %w", err)
	}
	return p.Runner.Run(ctx, Definition(), params)
}
