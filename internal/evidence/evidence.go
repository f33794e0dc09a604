// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evidence runs the search, select, retrieve and summarize stages in
// order for one topic. Each stage fully consumes the previous stage's output.
// Finding no evidence is a valid outcome, not an error.
package evidence

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/pdiddy/ideation-engine/internal/retrieve"
	"github.com/pdiddy/ideation-engine/internal/search"
	"github.com/pdiddy/ideation-engine/internal/selector"
	"github.com/pdiddy/ideation-engine/internal/summarize"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Runner wires the four evidence stages.
type Runner struct {
	Gatherer   *search.Gatherer
	Selector   *selector.Selector
	Retriever  *retrieve.Retriever
	Summarizer *summarize.Summarizer

	// TopK is how many URLs the selector keeps.
	TopK int

	Log zerolog.Logger
}

// Result records what each stage produced for one topic.
type Result struct {
	Query     types.SearchQuery         `json:"query" yaml:"query"`
	Results   []types.SearchResult      `json:"results" yaml:"results"`
	Selected  types.RankedURLSet        `json:"selected" yaml:"selected"`
	Documents []types.RetrievedDocument `json:"documents,omitempty" yaml:"documents,omitempty"`
	Summaries []types.SourceSummary     `json:"summaries" yaml:"summaries"`
}

// Run executes the full sub-pipeline. A failed search aborts it; failed
// fetches and summaries are absorbed by their stages.
func (r *Runner) Run(ctx context.Context, q types.SearchQuery, lang types.Language) (*Result, error) {
	res, err := r.Rank(ctx, q, r.TopK)
	if err != nil {
		return nil, err
	}
	if len(res.Selected) == 0 {
		res.Summaries = []types.SourceSummary{}
		r.Log.Info().Str("topic", q.Topic).Msg("no evidence found")
		return res, nil
	}

	res.Documents, err = r.Retriever.Retrieve(ctx, res.Selected, q.Topic)
	if err != nil {
		return nil, fmt.Errorf("retrieving sources: %w", err)
	}

	res.Summaries, err = r.Summarizer.SummarizeAll(ctx, res.Documents, q.Topic, lang)
	if err != nil {
		return nil, fmt.Errorf("summarizing sources: %w", err)
	}

	r.Log.Info().
		Str("topic", q.Topic).
		Int("results", len(res.Results)).
		Int("selected", len(res.Selected)).
		Int("retrieved", len(retrieve.Available(res.Documents))).
		Int("summaries", len(res.Summaries)).
		Msg("evidence gathered")
	return res, nil
}

// Rank runs only the search and selection stages, keeping k URLs.
func (r *Runner) Rank(ctx context.Context, q types.SearchQuery, k int) (*Result, error) {
	results, err := r.Gatherer.Gather(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", q.Topic, err)
	}
	res := &Result{Query: q, Results: results, Selected: types.RankedURLSet{}}
	if len(results) == 0 {
		return res, nil
	}

	res.Selected, err = r.Selector.Select(ctx, results, q.Text(), k)
	if err != nil {
		return nil, fmt.Errorf("selecting sources: %w", err)
	}
	return res, nil
}

// Summaries runs the sub-pipeline and returns only the source summaries.
func (r *Runner) Summaries(ctx context.Context, q types.SearchQuery, lang types.Language) ([]types.SourceSummary, error) {
	res, err := r.Run(ctx, q, lang)
	if err != nil {
		return nil, err
	}
	return res.Summaries, nil
}

// Print writes a human-readable account of res to w.
func Print(w io.Writer, res *Result) {
	fmt.Fprintf(w, "Query: %s\n", res.Query.Text())
	fmt.Fprintf(w, "Search results: %d, selected: %d\n", len(res.Results), len(res.Selected))
	for _, d := range res.Documents {
		if d.Available() {
			fmt.Fprintf(w, "  ok      %s (%d chars)\n", d.URL, len(d.Text))
		} else {
			fmt.Fprintf(w, "  failed  %s: %s\n", d.URL, d.Failure)
		}
	}
	if len(res.Summaries) == 0 {
		fmt.Fprintln(w, "No sources summarized.")
		return
	}
	for i, s := range res.Summaries {
		fmt.Fprintf(w, "\n[%d] %s\n%s\n", i+1, s.URL, s.Narrative)
	}
}
