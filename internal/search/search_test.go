// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	results []types.SearchResult
	err     error
	got     types.SearchQuery
	calls   int
}

func (m *mockBackend) Name() string { return "mock" }

func (m *mockBackend) Search(_ context.Context, q types.SearchQuery, _ types.SearchConfig) ([]types.SearchResult, error) {
	m.calls++
	m.got = q
	return m.results, m.err
}

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"},
		MaxResults: 20,
		SafeSearch: types.SafeSearchModerate,
	}
}

func newGatherer(b Backend) *Gatherer {
	return &Gatherer{Backend: b, Config: testCfg(), Log: zerolog.Nop()}
}

func TestGather_EmptyTopicIsConfigurationError(t *testing.T) {
	b := &mockBackend{}
	_, err := newGatherer(b).Gather(context.Background(), types.SearchQuery{Topic: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConfiguration)
	assert.Equal(t, 0, b.calls, "backend must not be called")
}

func TestGather_ZeroResultsIsNotAnError(t *testing.T) {
	b := &mockBackend{}
	results, err := newGatherer(b).Gather(context.Background(), types.SearchQuery{Topic: "plastics"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGather_TransportFailureIsNetworkError(t *testing.T) {
	b := &mockBackend{err: errors.New("dial tcp: connection refused")}
	_, err := newGatherer(b).Gather(context.Background(), types.SearchQuery{Topic: "plastics"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNetwork)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGather_ContextErrorPassesThrough(t *testing.T) {
	b := &mockBackend{err: context.Canceled}
	_, err := newGatherer(b).Gather(context.Background(), types.SearchQuery{Topic: "plastics"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, types.ErrNetwork)
}

func TestGather_DefaultsRegionAndSafeSearch(t *testing.T) {
	b := &mockBackend{}
	_, err := newGatherer(b).Gather(context.Background(), types.SearchQuery{Topic: "plastics", Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, types.RegionWorld, b.got.Region)
	assert.Equal(t, types.SafeSearchModerate, b.got.SafeSearch)
	assert.Equal(t, "plastics 2024", b.got.Text())
}

func TestGather_DropsIncompleteRecordsAndPreservesOrder(t *testing.T) {
	b := &mockBackend{results: []types.SearchResult{
		{Title: "A", URL: "https://a.example/1", Snippet: "first"},
		{Title: "", URL: "https://b.example/missing-title"},
		{Title: "C", URL: ""},
		{Title: "D", URL: "not a url"},
		{Title: "E", URL: "https://e.example/5", Snippet: " fifth "},
		{Title: "A again", URL: "https://a.example/1"},
		{Title: "F", URL: "ftp://f.example/file"},
	}}
	results, err := newGatherer(b).Gather(context.Background(), types.SearchQuery{Topic: "plastics"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://a.example/1", results[0].URL)
	assert.Equal(t, "https://e.example/5", results[1].URL)
	assert.Equal(t, "fifth", results[1].Snippet)
}

func TestNormalize_TruncatesToMax(t *testing.T) {
	raw := []types.SearchResult{
		{Title: "1", URL: "https://x.example/1"},
		{Title: "2", URL: "https://x.example/2"},
		{Title: "3", URL: "https://x.example/3"},
	}
	got, dropped := normalize(raw, 2)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, dropped)

	got, dropped = normalize(raw, 0)
	assert.Len(t, got, 3)
	assert.Equal(t, 0, dropped)
}

func TestIsWebURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/page", true},
		{"http://example.com", true},
		{"example.com", false},
		{"/relative/path", false},
		{"mailto:someone@example.com", false},
		{"https://", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWebURL(tt.in))
		})
	}
}
