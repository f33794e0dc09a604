// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selector

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

type mockLLM struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ float64) (string, error) {
	m.calls++
	m.prompt = prompt
	return m.reply, m.err
}

func fiveResults() []types.SearchResult {
	out := make([]types.SearchResult, 5)
	for i := range out {
		out[i] = types.SearchResult{
			Title:   fmt.Sprintf("Article %d", i+1),
			URL:     fmt.Sprintf("https://news.example/%d", i+1),
			Snippet: fmt.Sprintf("snippet %d", i+1),
		}
	}
	return out
}

func TestSelect_DiscardsFabricatedURLs(t *testing.T) {
	m := &mockLLM{reply: `["https://news.example/4", "https://invented.example/x", "https://news.example/2"]`}
	s := &Selector{LLM: m, Log: zerolog.Nop()}

	got, err := s.Select(context.Background(), fiveResults(), "plastics", 3)
	require.NoError(t, err)
	assert.Equal(t, types.RankedURLSet{"https://news.example/4", "https://news.example/2"}, got)
}

func TestSelect_PromptCarriesResultsQueryAndCount(t *testing.T) {
	m := &mockLLM{reply: `[]`}
	s := &Selector{LLM: m, Log: zerolog.Nop()}

	got, err := s.Select(context.Background(), fiveResults(), "mould makers", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, m.prompt, "https://news.example/5")
	assert.Contains(t, m.prompt, "for the query: mould makers.")
	assert.Contains(t, m.prompt, "rank the best 3 articles")
}

func TestSelect_NoResultsSkipsModel(t *testing.T) {
	m := &mockLLM{}
	s := &Selector{LLM: m, Log: zerolog.Nop()}

	got, err := s.Select(context.Background(), nil, "plastics", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, m.calls)
}

func TestSelect_Errors(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		llmErr  error
		k       int
		wantErr error
	}{
		{"non-positive count", "", nil, 0, types.ErrConfiguration},
		{"model failure", "", types.ErrService, 3, types.ErrService},
		{"prose reply", "I could not find anything useful.", nil, 3, types.ErrMalformedModelOutput},
		{"object reply", `{"urls": "https://news.example/1"}`, nil, 3, types.ErrMalformedModelOutput},
		{"array of numbers", `[1, 2, 3]`, nil, 3, types.ErrMalformedModelOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Selector{LLM: &mockLLM{reply: tt.reply, err: tt.llmErr}, Log: zerolog.Nop()}
			_, err := s.Select(context.Background(), fiveResults(), "plastics", tt.k)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseURLArray(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"bare array", `["https://a.example", "https://b.example"]`, []string{"https://a.example", "https://b.example"}},
		{"code fence", "```json\n[\"https://a.example\"]\n```", []string{"https://a.example"}},
		{"leading prose", "Here are the urls:\n[\"https://a.example\"]", []string{"https://a.example"}},
		{"empty array", "[]", []string{}},
		{"trailing prose with brackets", `["https://a.example/x"] (ranked by relevance [best first])`, []string{"https://a.example/x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseURLArray(tt.reply)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter(t *testing.T) {
	results := fiveResults()

	t.Run("subset and bound hold for any candidate list", func(t *testing.T) {
		candidates := []string{
			"https://news.example/1", "not a url", "https://news.example/1",
			" https://news.example/3 ", "https://elsewhere.example", "https://news.example/5",
			"https://news.example/2",
		}
		known := map[string]bool{}
		for _, r := range results {
			known[r.URL] = true
		}
		for k := 1; k <= 6; k++ {
			got, dropped := Filter(candidates, results, k)
			assert.LessOrEqual(t, len(got), k)
			assert.Equal(t, len(candidates)-len(got), dropped)
			for _, u := range got {
				assert.True(t, known[u], u)
			}
		}
	})

	t.Run("keeps model order and truncates", func(t *testing.T) {
		got, _ := Filter([]string{"https://news.example/3", "https://news.example/1", "https://news.example/2"}, results, 2)
		assert.Equal(t, types.RankedURLSet{"https://news.example/3", "https://news.example/1"}, got)
	})
}
