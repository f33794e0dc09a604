// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize turns a retrieved document into one grounded narrative
// that cites its source URL.
//
// All chunks of a document go into a single model call. This keeps the call
// count at one per document, but a very long page can exceed the model's
// input window; fetch.max_bytes bounds how much text a page contributes.
package summarize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/pdiddy/ideation-engine/internal/llm"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// ErrUnavailable is returned when asked to summarize a document without text.
var ErrUnavailable = errors.New("document has no text")

var templates = map[types.Language]*template.Template{
	types.LanguageFrench: template.Must(template.New("fr").Parse(`Écrire un post détaillé sur le sujet "{{.Topic}}" en incluant le lien trouvé comme référence dans l'article.
{{.Texts}}
LIEN:
{{.URL}}
POST DÉTAILLÉ :
`)),
	types.LanguageEnglish: template.Must(template.New("en").Parse(`Write a detailed post on the topic "{{.Topic}}" including the link found as a reference within the article.
{{.Texts}}
LINK:
{{.URL}}
DETAILED POST:
`)),
}

type promptData struct {
	Topic string
	Texts string
	URL   string
}

// Summarizer writes a grounded narrative for each available document.
type Summarizer struct {
	LLM         llm.Backend
	Temperature float64
	Splitter    Splitter
	Log         zerolog.Logger
}

// Summarize returns the narrative for doc. Unavailable documents return
// ErrUnavailable without calling the model.
func (s *Summarizer) Summarize(ctx context.Context, doc types.RetrievedDocument, topic string, lang types.Language) (types.SourceSummary, error) {
	if !doc.Available() {
		return types.SourceSummary{}, fmt.Errorf("%s: %w", doc.URL, ErrUnavailable)
	}

	prompt, err := s.renderPrompt(doc, topic, lang)
	if err != nil {
		return types.SourceSummary{}, err
	}

	narrative, err := s.LLM.Generate(ctx, prompt, s.Temperature)
	if err != nil {
		return types.SourceSummary{}, fmt.Errorf("summarizing %s: %w", doc.URL, err)
	}
	return types.SourceSummary{URL: doc.URL, Narrative: strings.TrimSpace(narrative)}, nil
}

// SummarizeAll summarizes the available documents in order. A failed
// summary is logged and skipped; only cancellation of ctx aborts the batch.
func (s *Summarizer) SummarizeAll(ctx context.Context, docs []types.RetrievedDocument, topic string, lang types.Language) ([]types.SourceSummary, error) {
	summaries := make([]types.SourceSummary, 0, len(docs))
	for _, doc := range docs {
		if !doc.Available() {
			continue
		}
		sum, err := s.Summarize(ctx, doc, topic, lang)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.Log.Warn().Err(err).Str("url", doc.URL).Msg("skipping source summary")
			continue
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

func (s *Summarizer) renderPrompt(doc types.RetrievedDocument, topic string, lang types.Language) (string, error) {
	tmpl, ok := templates[lang]
	if !ok {
		tmpl = templates[types.LanguageFrench]
	}

	splitter := s.Splitter
	if splitter.ChunkSize == 0 {
		splitter = DefaultSplitter()
	}
	chunks := splitter.Split(doc.Text)
	s.Log.Debug().Str("url", doc.URL).Int("chunks", len(chunks)).Msg("summarizing document")

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, promptData{
		Topic: topic,
		Texts: strings.Join(chunks, "\n\n"),
		URL:   doc.URL,
	})
	if err != nil {
		return "", fmt.Errorf("rendering summary prompt: %w", err)
	}
	return buf.String(), nil
}
