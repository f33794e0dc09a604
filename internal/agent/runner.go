// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent executes role-specialized task pipelines. Each task's prompt
// is grounded in its own evidence sub-run and in the outputs of the tasks it
// names in ContextFrom. A task starts only after all of those completed.
//
// With Concurrency 1 tasks run strictly one after another. Larger values run
// tasks whose dependencies are complete side by side, bounded by the limit.
// Either way the first failure stops the run and no partial result is
// reported as final.
package agent

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/ideation-engine/internal/llm"
	"github.com/pdiddy/ideation-engine/internal/prompt"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Grounder supplies source summaries for a search query. The evidence
// sub-pipeline implements it.
type Grounder interface {
	Summaries(ctx context.Context, q types.SearchQuery, lang types.Language) ([]types.SourceSummary, error)
}

// Runner executes pipeline definitions.
type Runner struct {
	LLM         llm.Backend
	Evidence    Grounder
	Temperature float64
	Language    types.Language

	// Concurrency bounds how many ready tasks run at once. Values below 1
	// mean 1.
	Concurrency int

	Log zerolog.Logger

	// Out receives one progress line per task transition. Nil discards.
	Out io.Writer
}

// execution is the mutable state of one run.
type execution struct {
	mu      sync.Mutex
	run     *types.PipelineRun
	records map[string]*types.TaskRecord
	done    map[string]types.AgentResult
	total   int
}

// Run executes def with params. It always returns the run report; on
// failure the error is a *types.TaskError naming the failed role and
// run.Failed is set.
func (r *Runner) Run(ctx context.Context, def Definition, params types.BusinessParams) (*types.PipelineRun, error) {
	run := &types.PipelineRun{ID: uuid.NewString(), Started: time.Now()}
	defer func() { run.Finished = time.Now() }()

	levels, err := def.Levels()
	if err != nil {
		return run, err
	}
	run.FinalRole = def.FinalRole()

	ex := &execution{run: run, records: make(map[string]*types.TaskRecord), done: make(map[string]types.AgentResult)}
	for _, wave := range levels {
		for _, t := range wave {
			run.Tasks = append(run.Tasks, types.TaskRecord{Role: t.Role, State: types.TaskPending})
		}
	}
	for i := range run.Tasks {
		ex.records[run.Tasks[i].Role] = &run.Tasks[i]
	}
	ex.total = len(run.Tasks)

	log := r.Log.With().Str("run_id", run.ID).Str("pipeline", def.Name).Logger()

	q, err := r.preflight(def, params)
	if err != nil {
		return r.fail(run, err)
	}

	log.Info().Int("tasks", ex.total).Int("concurrency", r.limit()).Msg("pipeline started")

	for _, wave := range levels {
		if err := r.runWave(ctx, ex, wave, params, q, log); err != nil {
			return r.fail(run, err)
		}
	}

	sortResults(run)
	log.Info().Str("final", run.FinalRole).Msg("pipeline completed")
	return run, nil
}

func (r *Runner) limit() int {
	if r.Concurrency < 1 {
		return 1
	}
	return r.Concurrency
}

func (r *Runner) lang() types.Language {
	if r.Language == "" {
		return types.LanguageFrench
	}
	return r.Language
}

// preflight validates parameters and renders every template against
// placeholder context so configuration errors surface before any network
// call. It returns the base search query for evidence runs.
func (r *Runner) preflight(def Definition, params types.BusinessParams) (types.SearchQuery, error) {
	if err := params.Require(def.Require...); err != nil {
		return types.SearchQuery{}, err
	}
	year, err := params.Year()
	if err != nil {
		return types.SearchQuery{}, err
	}
	region, err := types.ParseRegion(params[types.ParamRegion])
	if err != nil {
		return types.SearchQuery{}, err
	}

	for _, t := range def.Tasks {
		placeholders := make([]types.AgentResult, len(t.ContextFrom))
		for i, dep := range t.ContextFrom {
			placeholders[i] = types.AgentResult{Role: dep}
		}
		in := prompt.Input{Role: t.Role, Template: t.Template, Params: params, Context: placeholders, Language: r.lang()}
		if _, err := prompt.Build(in); err != nil {
			return types.SearchQuery{}, &types.TaskError{Role: t.Role, Err: err}
		}
		if t.Evidence != "" {
			if _, err := prompt.Build(prompt.Input{Role: t.Role, Template: t.Evidence, Params: params, Language: r.lang()}); err != nil {
				return types.SearchQuery{}, &types.TaskError{Role: t.Role, Err: err}
			}
		}
	}
	return types.SearchQuery{Year: year, Region: region}, nil
}

func (r *Runner) runWave(ctx context.Context, ex *execution, wave []types.AgentTask, params types.BusinessParams, q types.SearchQuery, log zerolog.Logger) error {
	if r.limit() == 1 || len(wave) == 1 {
		for _, t := range wave {
			if err := r.runTask(ctx, ex, t, params, q, log); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())
	for _, t := range wave {
		g.Go(func() error {
			return r.runTask(gctx, ex, t, params, q, log)
		})
	}
	return g.Wait()
}

// runTask moves one task through Running to Completed or Failed.
func (r *Runner) runTask(ctx context.Context, ex *execution, t types.AgentTask, params types.BusinessParams, q types.SearchQuery, log zerolog.Logger) error {
	if err := ctx.Err(); err != nil {
		return &types.TaskError{Role: t.Role, Err: err}
	}

	contextResults := ex.start(t)
	r.progress(ex, t.Role, "running")
	tlog := log.With().Str("role", t.Role).Logger()
	tlog.Debug().Strs("context_from", t.ContextFrom).Msg("task started")

	result, err := r.execute(ctx, t, params, q, contextResults, tlog)
	if err != nil {
		ex.finish(t.Role, types.TaskFailed, 0, err)
		r.progress(ex, t.Role, "failed")
		tlog.Error().Err(err).Msg("task failed")
		return &types.TaskError{Role: t.Role, Err: err}
	}

	ex.complete(result)
	r.progress(ex, t.Role, "completed")
	tlog.Info().Int("sources", len(result.Sources)).Int("chars", len(result.OutputText)).Msg("task completed")
	return nil
}

func (r *Runner) execute(ctx context.Context, t types.AgentTask, params types.BusinessParams, q types.SearchQuery, contextResults []types.AgentResult, log zerolog.Logger) (types.AgentResult, error) {
	var sources []types.SourceSummary
	if t.Evidence != "" && r.Evidence != nil {
		topic, err := prompt.Build(prompt.Input{Role: t.Role, Template: t.Evidence, Params: params, Language: r.lang()})
		if err != nil {
			return types.AgentResult{}, err
		}
		q.Topic = strings.TrimSpace(topic)
		log.Debug().Str("topic", q.Topic).Msg("gathering evidence")
		sources, err = r.Evidence.Summaries(ctx, q, r.lang())
		if err != nil {
			return types.AgentResult{}, fmt.Errorf("gathering evidence: %w", err)
		}
	}

	text, err := prompt.Build(prompt.Input{
		Role:     t.Role,
		Template: t.Template,
		Params:   params,
		Sources:  sources,
		Context:  contextResults,
		Language: r.lang(),
	})
	if err != nil {
		return types.AgentResult{}, err
	}

	out, err := r.LLM.Generate(ctx, text, r.Temperature)
	if err != nil {
		return types.AgentResult{}, err
	}
	return types.AgentResult{Role: t.Role, OutputText: strings.TrimSpace(out), Sources: sources}, nil
}

func (r *Runner) fail(run *types.PipelineRun, err error) (*types.PipelineRun, error) {
	run.Failed = types.FailedRole(err)
	sortResults(run)
	return run, err
}

// sortResults puts completed results in execution order so reports do not
// depend on which concurrent task finished first.
func sortResults(run *types.PipelineRun) {
	pos := make(map[string]int, len(run.Tasks))
	for i, t := range run.Tasks {
		pos[t.Role] = i
	}
	sort.SliceStable(run.Results, func(i, j int) bool {
		return pos[run.Results[i].Role] < pos[run.Results[j].Role]
	})
}

func (r *Runner) progress(ex *execution, role, state string) {
	if r.Out == nil {
		return
	}
	ex.mu.Lock()
	finished := 0
	for _, rec := range ex.records {
		if rec.State == types.TaskCompleted {
			finished++
		}
	}
	ex.mu.Unlock()
	fmt.Fprintf(r.Out, "[%d/%d] %s: %s\n", finished, ex.total, role, state)
}

// start marks t running and returns an immutable snapshot of its context,
// in ContextFrom order.
func (ex *execution) start(t types.AgentTask) []types.AgentResult {
	ex.mu.Lock()
	defer ex.mu.Unlock()

	rec := ex.records[t.Role]
	rec.State = types.TaskRunning
	rec.Started = time.Now()

	snapshot := make([]types.AgentResult, 0, len(t.ContextFrom))
	for _, dep := range t.ContextFrom {
		res := ex.done[dep]
		res.Sources = append([]types.SourceSummary(nil), res.Sources...)
		snapshot = append(snapshot, res)
	}
	return snapshot
}

func (ex *execution) complete(res types.AgentResult) {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	ex.done[res.Role] = res
	ex.run.Results = append(ex.run.Results, res)
	ex.finishLocked(res.Role, types.TaskCompleted, len(res.Sources), nil)
}

func (ex *execution) finish(role string, state types.TaskState, sources int, err error) {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	ex.finishLocked(role, state, sources, err)
}

func (ex *execution) finishLocked(role string, state types.TaskState, sources int, err error) {
	rec := ex.records[role]
	rec.State = state
	rec.Duration = time.Since(rec.Started)
	rec.Sources = sources
	if err != nil {
		rec.Error = err.Error()
	}
}
