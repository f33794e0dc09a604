// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideation

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ideation-engine/internal/evidence"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

type mockLLM struct {
	prompts []string
	replies []string
	err     error
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ float64) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if i := len(m.prompts) - 1; i < len(m.replies) {
		return m.replies[i], nil
	}
	return "| table |", nil
}

type stubRanker struct {
	selected types.RankedURLSet
	query    types.SearchQuery
	k        int
	calls    int
}

func (s *stubRanker) Rank(_ context.Context, q types.SearchQuery, k int) (*evidence.Result, error) {
	s.calls++
	s.query, s.k = q, k
	return &evidence.Result{Query: q, Selected: s.selected}, nil
}

func newAssistant(m *mockLLM, r Ranker) *Assistant {
	return &Assistant{LLM: m, Ranker: r, Language: types.LanguageEnglish, Log: zerolog.Nop()}
}

func problemParams() types.BusinessParams {
	return types.BusinessParams{
		types.ParamIndustry: "plastics",
		types.ParamCustomer: "B2B",
		types.ParamRegion:   "Canada",
		types.ParamYear:     "2024",
		types.ParamCount:    "3",
	}
}

func TestProblems(t *testing.T) {
	m := &mockLLM{}
	r := &stubRanker{selected: types.RankedURLSet{"https://a.example", "https://b.example"}}

	out, err := newAssistant(m, r).Problems(context.Background(), problemParams())
	require.NoError(t, err)
	assert.Equal(t, "| table |", out)

	assert.Equal(t, "current problems in the plastics industry for B2B clients in Canada", r.query.Topic)
	assert.Equal(t, 2024, r.query.Year)
	assert.Equal(t, types.Region("ca-en"), r.query.Region)
	assert.Equal(t, 3, r.k)

	require.Len(t, m.prompts, 1)
	assert.Contains(t, m.prompts[0], "identify 3 current problems specifically faced by B2B clients")
	assert.Contains(t, m.prompts[0], "[1] https://a.example\n\n[2] https://b.example")
	assert.Contains(t, m.prompts[0], "respond only in the English language")
}

func TestProblems_NoEvidenceStillCallsModel(t *testing.T) {
	m := &mockLLM{}
	_, err := newAssistant(m, &stubRanker{}).Problems(context.Background(), problemParams())
	require.NoError(t, err)
	require.Len(t, m.prompts, 1)
	assert.Contains(t, m.prompts[0], "No external sources found.")
}

func TestProblems_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		params types.BusinessParams
	}{
		{"missing industry", problemParams().With(types.ParamIndustry, "")},
		{"bad count", problemParams().With(types.ParamCount, "zero")},
		{"bad region", problemParams().With(types.ParamRegion, "Mars")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockLLM{}
			_, err := newAssistant(m, &stubRanker{}).Problems(context.Background(), tt.params)
			assert.ErrorIs(t, err, types.ErrConfiguration)
			assert.Empty(t, m.prompts)
		})
	}
}

func TestSolutions(t *testing.T) {
	params := types.BusinessParams{
		types.ParamIndustry: "plastics",
		types.ParamProblem:  "labour shortage",
		types.ParamCount:    "4",
	}
	m := &mockLLM{replies: []string{"existing table", "creative table"}}
	r := &stubRanker{selected: types.RankedURLSet{"https://a.example"}}

	existing, creative, err := newAssistant(m, r).Solutions(context.Background(), params, MethodSCAMPER)
	require.NoError(t, err)
	assert.Equal(t, "existing table", existing)
	assert.Equal(t, "creative table", creative)
	assert.Equal(t, "current solutions for the labour shortage in the plastics industry", r.query.Topic)

	require.Len(t, m.prompts, 2)
	assert.Contains(t, m.prompts[0], "identify 4 existing solutions")
	assert.Contains(t, m.prompts[1], "Using the SCAMPER framework, generate 4 innovative ideas")
	assert.Contains(t, m.prompts[1], "'Unique Value Proposition'")
	assert.Equal(t, 1, r.calls, "creative solutions use no evidence")
}

func TestCreativeSolutions_Methods(t *testing.T) {
	params := types.BusinessParams{types.ParamIndustry: "plastics", types.ParamProblem: "scrap", types.ParamCount: "2"}
	want := map[Method]string{
		MethodFiveWhys: "getting five layers deep",
		MethodSCAMPER:  "Substitute, Combine, Adapt",
		MethodTRIZ:     "Apply the TRIZ framework",
	}
	for _, method := range Methods {
		m := &mockLLM{}
		_, err := newAssistant(m, nil).CreativeSolutions(context.Background(), params, method)
		require.NoError(t, err)
		assert.Contains(t, m.prompts[0], want[method])
	}

	_, err := newAssistant(&mockLLM{}, nil).CreativeSolutions(context.Background(), params, "Brainstorm")
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestParseMethod(t *testing.T) {
	tests := map[string]Method{
		"Five Whys": MethodFiveWhys,
		"five-whys": MethodFiveWhys,
		"5whys":     MethodFiveWhys,
		"Scamper":   MethodSCAMPER,
		"triz":      MethodTRIZ,
	}
	for in, want := range tests {
		got, err := ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseMethod("six hats")
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestLeanCanvas(t *testing.T) {
	m := &mockLLM{}
	params := types.BusinessParams{types.ParamIndustry: "plastics", types.ParamProblem: "scrap", types.ParamSolution: "recycling"}

	_, err := newAssistant(m, nil).LeanCanvas(context.Background(), params)
	require.NoError(t, err)
	assert.Contains(t, m.prompts[0], "Problem: scrap. Solution: recycling.")
	assert.Contains(t, m.prompts[0], "'Competitive Advantages'")

	_, err = newAssistant(m, nil).LeanCanvas(context.Background(), types.BusinessParams{types.ParamIndustry: "plastics"})
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestBusinessCanvas(t *testing.T) {
	m := &mockLLM{replies: []string{"| Pains | * slow * costly |", "| Key Activities | * moulding |"}}
	params := types.BusinessParams{
		types.ParamIndustry:    "plastics",
		types.ParamCustomer:    "mould makers",
		types.ParamDescription: "faster prototyping",
	}

	vp, bm, err := newAssistant(m, nil).BusinessCanvas(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "| Pains | <br>* slow <br>* costly |", vp)
	assert.Equal(t, "| Key Activities | <br>* moulding |", bm)

	require.Len(t, m.prompts, 2)
	assert.Contains(t, m.prompts[0], "looking for a solution to the following problem: faster prototyping.")
	assert.Contains(t, m.prompts[1], "delivers the value proposition: | Pains | * slow * costly | to mould makers")
}

func TestBusinessCanvas_FailureReportsRole(t *testing.T) {
	m := &mockLLM{err: types.ErrService}
	params := types.BusinessParams{types.ParamIndustry: "x", types.ParamCustomer: "y", types.ParamDescription: "z"}

	_, _, err := newAssistant(m, nil).BusinessCanvas(context.Background(), params)
	require.Error(t, err)
	assert.Equal(t, RoleValueProposition, types.FailedRole(err))
}

func TestFormatMarkdownTable(t *testing.T) {
	assert.Equal(t, "a <br>* b <br>* c", FormatMarkdownTable("a * b * c"))
	assert.Equal(t, "no bullets", FormatMarkdownTable("no bullets"))
}
