// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search performs the web search that starts every evidence
// sub-pipeline and returns engine-ranked result records.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Backend searches a single web search engine. Each engine implements this
// interface per the Strategy pattern so tests can supply a mock.
type Backend interface {
	Name() string
	Search(ctx context.Context, query types.SearchQuery, cfg types.SearchConfig) ([]types.SearchResult, error)
}

// Gatherer runs searches against one backend and normalizes the records.
type Gatherer struct {
	Backend Backend
	Config  types.SearchConfig
	Log     zerolog.Logger
}

// Gather searches for query and returns results in engine-ranking order.
//
// An empty topic is a configuration error. Zero results is not an error:
// the caller receives an empty slice and must treat "no evidence" as a
// valid outcome. Transport failures are wrapped with types.ErrNetwork and
// are not retried beyond the backend's own throttling handling.
func (g *Gatherer) Gather(ctx context.Context, query types.SearchQuery) ([]types.SearchResult, error) {
	if strings.TrimSpace(query.Topic) == "" {
		return nil, fmt.Errorf("%w: search topic is empty", types.ErrConfiguration)
	}
	if g.Backend == nil {
		return nil, fmt.Errorf("%w: no search backend configured", types.ErrConfiguration)
	}
	if query.Region == "" {
		query.Region = types.RegionWorld
	}
	if query.SafeSearch == "" {
		query.SafeSearch = g.Config.SafeSearch
	}

	raw, err := g.Backend.Search(ctx, query, g.Config)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if errors.Is(err, types.ErrNetwork) {
			return nil, fmt.Errorf("searching %s for %q: %w", g.Backend.Name(), query.Text(), err)
		}
		return nil, fmt.Errorf("searching %s for %q: %w: %v", g.Backend.Name(), query.Text(), types.ErrNetwork, err)
	}

	results, dropped := normalize(raw, g.Config.MaxResults)
	g.Log.Debug().
		Str("backend", g.Backend.Name()).
		Str("query", query.Text()).
		Int("results", len(results)).
		Int("dropped", dropped).
		Msg("search complete")
	return results, nil
}

// normalize drops records missing a title or a usable URL, removes repeated
// URLs, and truncates to max (0 means no limit). Order is preserved.
func normalize(raw []types.SearchResult, max int) ([]types.SearchResult, int) {
	results := make([]types.SearchResult, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		r.Title = strings.TrimSpace(r.Title)
		r.URL = strings.TrimSpace(r.URL)
		r.Snippet = strings.TrimSpace(r.Snippet)
		if r.Title == "" || !IsWebURL(r.URL) || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		results = append(results, r)
		if max > 0 && len(results) == max {
			break
		}
	}
	return results, len(raw) - len(results)
}

// IsWebURL reports whether s is an absolute http or https URL with a host.
func IsWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
