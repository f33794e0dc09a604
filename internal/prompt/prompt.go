// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt composes role prompts from a template, business parameters,
// source summaries and the outputs of earlier pipeline tasks. Build is pure:
// identical inputs always produce the identical prompt.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// noSources is the placeholder rendered when a role has no evidence.
var noSources = map[types.Language]string{
	types.LanguageFrench:  "Aucune source externe trouvée.",
	types.LanguageEnglish: "No external sources found.",
}

// Input is everything a role prompt is built from.
type Input struct {
	Role     string
	Template string
	Params   types.BusinessParams
	Sources  []types.SourceSummary
	Context  []types.AgentResult
	Language types.Language
}

// Data is the value templates execute against. Params is addressed by key
// ({{.Params.industry}}); a key absent from Params is a ConfigurationError.
type Data struct {
	Role     string
	Params   types.BusinessParams
	Sources  string
	Context  string
	Language types.Language

	SourceList  []types.SourceSummary
	ContextList []types.AgentResult
}

// Build renders in.Template. Parse errors and references to missing
// parameters fail with ErrConfiguration.
func Build(in Input) (string, error) {
	if strings.TrimSpace(in.Template) == "" {
		return "", fmt.Errorf("%w: role %q has no prompt template", types.ErrConfiguration, in.Role)
	}
	lang := in.Language
	if lang == "" {
		lang = types.LanguageFrench
	}

	tmpl, err := template.New(in.Role).Option("missingkey=error").Parse(in.Template)
	if err != nil {
		return "", fmt.Errorf("%w: parsing template for role %q: %v", types.ErrConfiguration, in.Role, err)
	}

	params := in.Params
	if params == nil {
		params = types.BusinessParams{}
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, Data{
		Role:        in.Role,
		Params:      params,
		Sources:     RenderSources(in.Sources, lang),
		Context:     RenderContext(in.Context),
		Language:    lang,
		SourceList:  in.Sources,
		ContextList: in.Context,
	})
	if err != nil {
		return "", fmt.Errorf("%w: rendering prompt for role %q: %v", types.ErrConfiguration, in.Role, err)
	}
	return buf.String(), nil
}

// RenderSources lists each source as a numbered URL followed by its
// narrative, or the localized placeholder when there are none.
func RenderSources(sources []types.SourceSummary, lang types.Language) string {
	if len(sources) == 0 {
		if p, ok := noSources[lang]; ok {
			return p
		}
		return noSources[types.LanguageFrench]
	}

	var b strings.Builder
	for i, s := range sources {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] %s", i+1, s.URL)
		if n := strings.TrimSpace(s.Narrative); n != "" {
			b.WriteString("\n")
			b.WriteString(n)
		}
	}
	return b.String()
}

// RenderContext presents earlier task outputs under their role names, in
// the given order.
func RenderContext(results []types.AgentResult) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "## %s\n%s", r.Role, strings.TrimSpace(r.OutputText))
	}
	return b.String()
}

// URLSources wraps bare URLs as narrative-less summaries so they render as a
// plain reference list.
func URLSources(urls []string) []types.SourceSummary {
	out := make([]types.SourceSummary, len(urls))
	for i, u := range urls {
		out[i] = types.SourceSummary{URL: u}
	}
	return out
}
