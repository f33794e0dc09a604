// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ideation holds the single-shot assistants: problem discovery,
// existing and creative solutions, the lean canvas and the business canvas.
package ideation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/ideation-engine/internal/agent"
	"github.com/pdiddy/ideation-engine/internal/evidence"
	"github.com/pdiddy/ideation-engine/internal/llm"
	"github.com/pdiddy/ideation-engine/internal/prompt"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Ranker searches and selects the most relevant URLs for a query.
// evidence.Runner implements it.
type Ranker interface {
	Rank(ctx context.Context, q types.SearchQuery, k int) (*evidence.Result, error)
}

// Assistant generates ideation artifacts with one model.
type Assistant struct {
	LLM         llm.Backend
	Ranker      Ranker
	Temperature float64
	Language    types.Language
	Log         zerolog.Logger
}

func (a *Assistant) lang() types.Language {
	if a.Language == "" {
		return types.LanguageFrench
	}
	return a.Language
}

// generate renders tmpl against params and sources and calls the model.
func (a *Assistant) generate(ctx context.Context, name, tmpl string, params types.BusinessParams, sources []types.SourceSummary) (string, error) {
	text, err := prompt.Build(prompt.Input{
		Role:     name,
		Template: tmpl,
		Params:   params,
		Sources:  sources,
		Language: a.lang(),
	})
	if err != nil {
		return "", err
	}
	out, err := a.LLM.Generate(ctx, text, a.Temperature)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

// rankedSources runs search and selection for topic and returns the kept
// URLs as a reference list. No ranker or no results yields no sources.
func (a *Assistant) rankedSources(ctx context.Context, topic string, params types.BusinessParams, k int) ([]types.SourceSummary, error) {
	if a.Ranker == nil {
		return nil, nil
	}
	year, err := params.Year()
	if err != nil {
		return nil, err
	}
	region, err := types.ParseRegion(params[types.ParamRegion])
	if err != nil {
		return nil, err
	}

	res, err := a.Ranker.Rank(ctx, types.SearchQuery{Topic: topic, Year: year, Region: region}, k)
	if err != nil {
		return nil, err
	}
	a.Log.Debug().Str("topic", topic).Int("selected", len(res.Selected)).Msg("ranked sources")
	return prompt.URLSources(res.Selected), nil
}

// count parses the count parameter as a positive integer.
func count(params types.BusinessParams) (int, error) {
	raw := strings.TrimSpace(params[types.ParamCount])
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 20 {
		return 0, fmt.Errorf("%w: count %q must be between 1 and 20", types.ErrConfiguration, raw)
	}
	return n, nil
}

// FormatMarkdownTable breaks bulleted cell contents onto separate lines so
// they render inside a markdown table cell.
func FormatMarkdownTable(content string) string {
	return strings.ReplaceAll(content, "* ", "<br>* ")
}

// runPipeline executes a small fixed definition with this assistant's model.
func (a *Assistant) runPipeline(ctx context.Context, def agent.Definition, params types.BusinessParams) (*types.PipelineRun, error) {
	r := &agent.Runner{LLM: a.LLM, Temperature: a.Temperature, Language: a.lang(), Concurrency: 1, Log: a.Log}
	return r.Run(ctx, def, params)
}
