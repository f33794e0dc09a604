// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selector asks the model to rank search results and keeps only the
// URLs that actually came from those results.
package selector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/pdiddy/ideation-engine/internal/llm"
	"github.com/pdiddy/ideation-engine/internal/search"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var rankPromptTmpl = template.Must(template.New("rank").Parse(`You are the best researcher of all time. You are extremely good at finding the relevant articles to the query.
{{.Results}}
Above is the list of search results of articles for the query: {{.Query}}.
Please rank the best {{.K}} articles from the list, return ONLY an array of the urls, do not include any information.
Return ONLY an array of the urls, do not include anything else.
`))

type rankPromptData struct {
	Results string
	Query   string
	K       int
}

// rankedResult is the serialized form of one search result inside the prompt.
type rankedResult struct {
	Title   string `json:"title"`
	URL     string `json:"href"`
	Snippet string `json:"body"`
}

// Selector ranks search results with the model.
type Selector struct {
	LLM         llm.Backend
	Temperature float64
	Log         zerolog.Logger
}

// Select returns at most k URLs, best first, each present in results.
// No results, or a model answer with no usable URL, yields an empty set.
// A reply that is not a JSON array of strings is ErrMalformedModelOutput.
func (s *Selector) Select(ctx context.Context, results []types.SearchResult, query string, k int) (types.RankedURLSet, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: selection count must be positive, got %d", types.ErrConfiguration, k)
	}
	if len(results) == 0 {
		return types.RankedURLSet{}, nil
	}

	prompt, err := renderPrompt(results, query, k)
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	reply, err := s.LLM.Generate(ctx, prompt, s.Temperature)
	if err != nil {
		return nil, fmt.Errorf("ranking results: %w", err)
	}

	urls, err := ParseURLArray(reply)
	if err != nil {
		return nil, err
	}

	ranked, dropped := Filter(urls, results, k)
	if dropped > 0 {
		s.Log.Debug().Int("dropped", dropped).Int("kept", len(ranked)).Str("query", query).
			Msg("discarded model-selected urls outside the result set")
	}
	return ranked, nil
}

func renderPrompt(results []types.SearchResult, query string, k int) (string, error) {
	serial := make([]rankedResult, len(results))
	for i, r := range results {
		serial[i] = rankedResult{Title: r.Title, URL: r.URL, Snippet: r.Snippet}
	}
	data, err := json.Marshal(serial)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := rankPromptTmpl.Execute(&buf, rankPromptData{Results: string(data), Query: query, K: k}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ParseURLArray extracts a JSON array of strings from the model's reply.
// Surrounding prose and Markdown code fences are tolerated.
func ParseURLArray(reply string) ([]string, error) {
	text := strings.TrimSpace(reply)
	start := strings.Index(text, "[")
	if start < 0 {
		return nil, fmt.Errorf("%w: no array in reply %q", types.ErrMalformedModelOutput, abbreviate(text))
	}

	// Decode stops after the first complete value, so trailing prose is ignored.
	var raw []any
	if err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedModelOutput, err)
	}

	urls := make([]string, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T, not a string", types.ErrMalformedModelOutput, i, v)
		}
		urls = append(urls, s)
	}
	return urls, nil
}

// Filter keeps the well-formed URLs that appear in results, in the model's
// order, without duplicates, truncated to k. It returns the kept set and how
// many candidates were discarded.
func Filter(candidates []string, results []types.SearchResult, k int) (types.RankedURLSet, int) {
	known := make(map[string]bool, len(results))
	for _, r := range results {
		known[r.URL] = true
	}

	out := make(types.RankedURLSet, 0, k)
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		u := strings.TrimSpace(c)
		if !search.IsWebURL(u) || !known[u] || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
		if len(out) == k {
			break
		}
	}
	return out, len(candidates) - len(out)
}

func abbreviate(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
