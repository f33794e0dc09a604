// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ideation-engine/internal/retrieve"
	"github.com/pdiddy/ideation-engine/internal/search"
	"github.com/pdiddy/ideation-engine/internal/selector"
	"github.com/pdiddy/ideation-engine/internal/summarize"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// --- mocks ---

type stubSearch struct {
	results []types.SearchResult
	err     error
}

func (s *stubSearch) Name() string { return "stub" }

func (s *stubSearch) Search(context.Context, types.SearchQuery, types.SearchConfig) ([]types.SearchResult, error) {
	return s.results, s.err
}

// stubLLM answers ranking prompts with rank and every other prompt with a
// summary naming the link it was given.
type stubLLM struct {
	mu      sync.Mutex
	rank    []string
	prompts []string
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ float64) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if strings.HasPrefix(prompt, "You are the best researcher") {
		data, _ := json.Marshal(s.rank)
		return string(data), nil
	}
	i := strings.LastIndex(prompt, "https://")
	return "summary of " + strings.Fields(prompt[i:])[0], nil
}

type stubFetcher struct {
	fail map[string]bool
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	if f.fail[url] {
		return "", types.ErrNetwork
	}
	return "text of " + url, nil
}

func newRunner(results []types.SearchResult, llm *stubLLM, fetch *stubFetcher) *Runner {
	log := zerolog.Nop()
	return &Runner{
		Gatherer:   &search.Gatherer{Backend: &stubSearch{results: results}, Config: types.SearchConfig{MaxResults: 20}, Log: log},
		Selector:   &selector.Selector{LLM: llm, Log: log},
		Retriever:  &retrieve.Retriever{Fetcher: fetch, Concurrency: 2, Log: log},
		Summarizer: &summarize.Summarizer{LLM: llm, Log: log},
		TopK:       3,
		Log:        log,
	}
}

func results(urls ...string) []types.SearchResult {
	out := make([]types.SearchResult, len(urls))
	for i, u := range urls {
		out[i] = types.SearchResult{Title: "t" + u, URL: u}
	}
	return out
}

func TestRun_NoSearchResults(t *testing.T) {
	llm := &stubLLM{}
	r := newRunner(nil, llm, &stubFetcher{})

	res, err := r.Run(context.Background(), types.SearchQuery{Topic: "obscure niche", Year: 2024}, types.LanguageFrench)
	require.NoError(t, err)
	assert.NotNil(t, res.Summaries)
	assert.Empty(t, res.Summaries)
	assert.Empty(t, llm.prompts, "no model call without evidence")
}

func TestRun_OneFetchFailure(t *testing.T) {
	llm := &stubLLM{rank: []string{"https://a.example", "https://b.example", "https://c.example"}}
	fetch := &stubFetcher{fail: map[string]bool{"https://b.example": true}}
	r := newRunner(results("https://a.example", "https://b.example", "https://c.example", "https://d.example"), llm, fetch)

	res, err := r.Run(context.Background(), types.SearchQuery{Topic: "plastics", Year: 2024}, types.LanguageEnglish)
	require.NoError(t, err)
	require.Len(t, res.Documents, 3)
	require.Len(t, res.Summaries, 2)
	assert.Equal(t, "https://a.example", res.Summaries[0].URL)
	assert.Equal(t, "summary of https://a.example", res.Summaries[0].Narrative)
	assert.Equal(t, "https://c.example", res.Summaries[1].URL)
}

func TestRun_FabricatedSelectionsNeverFetched(t *testing.T) {
	llm := &stubLLM{rank: []string{"https://invented.example"}}
	r := newRunner(results("https://a.example"), llm, &stubFetcher{})

	res, err := r.Run(context.Background(), types.SearchQuery{Topic: "plastics"}, types.LanguageFrench)
	require.NoError(t, err)
	assert.Empty(t, res.Selected)
	assert.Empty(t, res.Documents)
	assert.Empty(t, res.Summaries)
}

func TestRun_SearchFailureAborts(t *testing.T) {
	r := newRunner(nil, &stubLLM{}, &stubFetcher{})
	r.Gatherer.Backend = &stubSearch{err: errors.New("dns failure")}

	_, err := r.Run(context.Background(), types.SearchQuery{Topic: "plastics"}, types.LanguageFrench)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNetwork)
	assert.Contains(t, err.Error(), `searching "plastics"`)
}

func TestRank_UsesQueryWithYear(t *testing.T) {
	llm := &stubLLM{rank: []string{"https://a.example"}}
	r := newRunner(results("https://a.example", "https://b.example"), llm, &stubFetcher{})

	res, err := r.Rank(context.Background(), types.SearchQuery{Topic: "plastics", Year: 2024}, 1)
	require.NoError(t, err)
	assert.Equal(t, types.RankedURLSet{"https://a.example"}, res.Selected)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "for the query: plastics 2024.")
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, &Result{
		Query:     types.SearchQuery{Topic: "plastics", Year: 2024},
		Results:   results("https://a.example", "https://b.example"),
		Selected:  types.RankedURLSet{"https://a.example", "https://b.example"},
		Documents: []types.RetrievedDocument{{URL: "https://a.example", Text: "abc"}, {URL: "https://b.example", Failure: "HTTP 403"}},
		Summaries: []types.SourceSummary{{URL: "https://a.example", Narrative: "n"}},
	})
	out := buf.String()
	assert.Contains(t, out, "Query: plastics 2024")
	assert.Contains(t, out, "failed  https://b.example: HTTP 403")
	assert.Contains(t, out, "[1] https://a.example\nn")
}
