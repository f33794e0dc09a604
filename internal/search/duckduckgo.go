// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/ideation-engine/internal/httputil"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// ddgHTMLEndpoint is the DuckDuckGo HTML search endpoint. Declared as a var
// so tests can substitute an httptest server.
var ddgHTMLEndpoint = "https://html.duckduckgo.com/html/"

// safeSearchParam maps safesearch levels to DuckDuckGo's kp parameter.
var safeSearchParam = map[types.SafeSearch]string{
	types.SafeSearchStrict:   "1",
	types.SafeSearchModerate: "-1",
	types.SafeSearchOff:      "-2",
}

// DuckDuckGoBackend scrapes DuckDuckGo's HTML results page.
type DuckDuckGoBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *DuckDuckGoBackend) Name() string { return "duckduckgo" }

// Search posts the query to DuckDuckGo with region (kl) and safesearch (kp)
// parameters and parses the result list.
func (b *DuckDuckGoBackend) Search(ctx context.Context, query types.SearchQuery, cfg types.SearchConfig) ([]types.SearchResult, error) {
	form := url.Values{}
	form.Set("q", query.Text())
	form.Set("kl", string(query.Region))
	if kp, ok := safeSearchParam[query.SafeSearch]; ok {
		form.Set("kp", kp)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ddgHTMLEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := b.Client
	if client == nil {
		client = httputil.NewClient(cfg.HTTPConfig)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: duckduckgo request: %v", types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: duckduckgo returned HTTP %d", types.ErrNetwork, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing duckduckgo results: %v", types.ErrNetwork, err)
	}
	return parseResults(doc), nil
}

// parseResults extracts organic results from a DuckDuckGo HTML page,
// skipping sponsored entries.
func parseResults(doc *goquery.Document) []types.SearchResult {
	var results []types.SearchResult
	doc.Find("div.result").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("result--ad") {
			return
		}
		link := s.Find("a.result__a").First()
		href, _ := link.Attr("href")
		results = append(results, types.SearchResult{
			Title:   collapseSpace(link.Text()),
			URL:     resolveRedirect(href),
			Snippet: collapseSpace(s.Find(".result__snippet").First().Text()),
		})
	})
	return results
}

// resolveRedirect unwraps DuckDuckGo's "/l/?uddg=<target>" redirect links.
func resolveRedirect(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasSuffix(u.Host, "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
