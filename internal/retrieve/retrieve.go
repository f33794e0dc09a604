// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieve fetches selected URLs and extracts their visible text.
// One unreachable source never fails the others: each URL yields a
// RetrievedDocument that either carries text or records why it has none.
package retrieve

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Fetcher abstracts page retrieval so tests can supply a mock.
// Fetch returns the visible text of the page at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Retriever fetches a ranked URL set with bounded concurrency.
type Retriever struct {
	Fetcher Fetcher

	// Concurrency caps in-flight fetches. Values below 1 mean 1.
	Concurrency int

	Log zerolog.Logger
}

// Retrieve returns one document per URL, in input order. Fetch failures are
// recorded on the document and logged; only cancellation of ctx is returned
// as an error.
func (r *Retriever) Retrieve(ctx context.Context, urls types.RankedURLSet, sourceQuery string) ([]types.RetrievedDocument, error) {
	docs := make([]types.RetrievedDocument, len(urls))

	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for i, u := range urls {
		g.Go(func() error {
			docs[i] = r.one(ctx, u, sourceQuery)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *Retriever) one(ctx context.Context, url, sourceQuery string) types.RetrievedDocument {
	doc := types.RetrievedDocument{URL: url, SourceQuery: sourceQuery}
	if ctx.Err() != nil {
		doc.Failure = ctx.Err().Error()
		return doc
	}

	text, err := r.Fetcher.Fetch(ctx, url)
	switch {
	case err != nil:
		doc.Failure = err.Error()
	case text == "":
		doc.Failure = errNoText.Error()
	default:
		doc.Text = text
		r.Log.Debug().Str("url", url).Int("chars", len(text)).Msg("retrieved document")
		return doc
	}

	r.Log.Warn().Str("url", url).Str("reason", doc.Failure).Msg("source unavailable")
	return doc
}

var errNoText = errors.New("page has no visible text")

// Available returns the documents that carry text, preserving order.
func Available(docs []types.RetrievedDocument) []types.RetrievedDocument {
	out := make([]types.RetrievedDocument, 0, len(docs))
	for _, d := range docs {
		if d.Available() {
			out = append(out, d)
		}
	}
	return out
}
