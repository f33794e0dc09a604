// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RetrievedDocument is the outcome of fetching one selected URL. It lives for
// one request and is discarded once summarized.
//
// Exactly one of these holds: Text is non-empty, or the document is
// unavailable and Failure says why. Retrievers never return a document with
// empty Text and empty Failure.
type RetrievedDocument struct {
	// URL is the address that was fetched.
	URL string `json:"url" yaml:"url"`

	// Text is the visible text extracted from the page, or "" when the
	// fetch or extraction failed.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// SourceQuery is the search topic that led to this document.
	SourceQuery string `json:"source_query" yaml:"source_query"`

	// Failure describes why the document is unavailable.
	Failure string `json:"failure,omitempty" yaml:"failure,omitempty"`
}

// Available reports whether the document carries usable text.
func (d RetrievedDocument) Available() bool {
	return d.Text != ""
}

// SourceSummary is a grounded narrative written from one retrieved document.
// Failed retrievals produce no summary at all.
type SourceSummary struct {
	// URL is the cited source.
	URL string `json:"url" yaml:"url"`

	// Narrative is the model's summary of the source, citing URL.
	Narrative string `json:"narrative" yaml:"narrative"`
}

// RankedURLSet is the ordered, best-first list of URLs chosen for retrieval.
// Every element is a well-formed web URL taken from the originating search
// results; its length never exceeds the requested count.
type RankedURLSet []string
