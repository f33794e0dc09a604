// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ideation-engine:
// search and evidence records, agent tasks and pipeline runs, business
// parameters, stage configuration and the error taxonomy.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Region is a search-engine region code such as "wt-wt" or "fr-fr".
type Region string

// RegionWorld is the default, unrestricted region.
const RegionWorld Region = "wt-wt"

// regionNames maps the display names offered to users onto region codes.
var regionNames = map[string]Region{
	"World":          RegionWorld,
	"Canada":         "ca-en",
	"United States":  "us-en",
	"United Kingdom": "uk-en",
	"France":         "fr-fr",
	"Germany":        "de-de",
	"Spain":          "es-es",
	"Italy":          "it-it",
	"Japan":          "jp-ja",
	"Korea":          "kr-ko",
	"China":          "zh-cn",
}

// ParseRegion accepts either a display name ("France") or a code ("fr-fr").
// The empty string resolves to RegionWorld.
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RegionWorld, nil
	}
	for name, code := range regionNames {
		if strings.EqualFold(name, s) || strings.EqualFold(string(code), s) {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: unknown region %q (known: %s)", ErrConfiguration, s, strings.Join(RegionNames(), ", "))
}

// Name returns the display name of r, or the code itself if unknown.
func (r Region) Name() string {
	for name, code := range regionNames {
		if code == r {
			return name
		}
	}
	return string(r)
}

// RegionNames returns the sorted display names of all known regions.
func RegionNames() []string {
	names := make([]string, 0, len(regionNames))
	for name := range regionNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SafeSearch is the engine's adult-content filtering level.
type SafeSearch string

const (
	SafeSearchStrict   SafeSearch = "strict"
	SafeSearchModerate SafeSearch = "moderate"
	SafeSearchOff      SafeSearch = "off"
)

// ParseSafeSearch validates a safesearch level; empty means moderate.
func ParseSafeSearch(s string) (SafeSearch, error) {
	switch SafeSearch(strings.ToLower(strings.TrimSpace(s))) {
	case "", SafeSearchModerate:
		return SafeSearchModerate, nil
	case SafeSearchStrict:
		return SafeSearchStrict, nil
	case SafeSearchOff:
		return SafeSearchOff, nil
	default:
		return "", fmt.Errorf("%w: unknown safesearch level %q", ErrConfiguration, s)
	}
}

// SearchQuery describes one evidence search. It is built per request and
// never modified afterwards.
type SearchQuery struct {
	// Topic is the free-text subject of the search. Must be non-empty.
	Topic string `json:"topic" yaml:"topic"`

	// Year is appended to the topic so results favour current material.
	Year int `json:"year" yaml:"year"`

	// Region restricts results to a market, e.g. "ca-en".
	Region Region `json:"region" yaml:"region"`

	// SafeSearch is the content filtering level.
	SafeSearch SafeSearch `json:"safesearch" yaml:"safesearch"`
}

// Text returns the query string sent to the search engine: the topic
// followed by the year when one is set.
func (q SearchQuery) Text() string {
	topic := strings.TrimSpace(q.Topic)
	if q.Year > 0 {
		return fmt.Sprintf("%s %d", topic, q.Year)
	}
	return topic
}

// SearchResult is one web search hit in engine-ranking order.
type SearchResult struct {
	// Title is the page title as shown by the engine.
	Title string `json:"title" yaml:"title"`

	// URL is the absolute address of the result page.
	URL string `json:"url" yaml:"url"`

	// Snippet is the engine's short excerpt of the page.
	Snippet string `json:"snippet" yaml:"snippet"`
}
