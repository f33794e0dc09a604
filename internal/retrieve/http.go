// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/ideation-engine/internal/httputil"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// HTTPFetcher downloads pages with a browser User-Agent and extracts their
// visible text.
type HTTPFetcher struct {
	Client *http.Client
	Config types.FetchConfig
}

// NewHTTPFetcher returns a fetcher using cfg's timeout and User-Agent.
func NewHTTPFetcher(cfg types.FetchConfig) *HTTPFetcher {
	return &HTTPFetcher{Client: httputil.NewClient(cfg.HTTPConfig), Config: cfg}
}

// Fetch issues a GET for url. Non-2xx responses and transport failures are
// ErrNetwork. At most Config.MaxBytes of the body are read.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: building request for %s: %v", types.ErrNetwork, url, err)
	}
	ua := f.Config.UserAgent
	if ua == "" {
		ua = types.DefaultBrowserUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,text/plain;q=0.8,*/*;q=0.5")

	client := f.Client
	if client == nil {
		client = httputil.NewClient(f.Config.HTTPConfig)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: fetching %s: %v", types.ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned HTTP %d", types.ErrNetwork, url, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.Config.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.Config.MaxBytes)
	}

	if isPlainText(resp.Header.Get("Content-Type")) {
		data, err := io.ReadAll(body)
		if err != nil {
			return "", fmt.Errorf("%w: reading %s: %v", types.ErrNetwork, url, err)
		}
		return normalizeText(string(data)), nil
	}

	text, err := ExtractText(body)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", types.ErrNetwork, url, err)
	}
	return text, nil
}

func isPlainText(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "text/plain"
}

// blockElements end a paragraph in the extracted text.
const blockElements = "p, div, section, article, header, footer, aside, main, nav, " +
	"h1, h2, h3, h4, h5, h6, li, dt, dd, tr, blockquote, pre, table, ul, ol, form"

// ExtractText parses HTML and returns its visible text. Scripts, styles and
// other non-rendered elements are dropped; block elements become paragraph
// breaks and runs of whitespace within a line collapse to one space.
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, template, iframe, svg, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockElements).AppendHtml("\n\n")

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return normalizeText(root.Text()), nil
}

// normalizeText collapses spaces within lines, drops blank lines inside
// paragraphs and separates paragraphs with exactly one blank line.
func normalizeText(s string) string {
	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return strings.Join(paragraphs, "\n\n")
}
