// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// TaskState is the lifecycle state of one AgentTask within a run.
type TaskState string

const (
	TaskPending   TaskState = "pending"
	TaskRunning   TaskState = "running"
	TaskCompleted TaskState = "completed"
	TaskFailed    TaskState = "failed"
)

// AgentTask is one role-specialized step of a pipeline definition. Tasks are
// static records; the runner owns all execution state.
type AgentTask struct {
	// Role names the task and is the key other tasks use in ContextFrom.
	Role string `json:"role" yaml:"role"`

	// Template is the prompt template for this role (text/template syntax).
	Template string `json:"template" yaml:"template"`

	// ContextFrom lists roles whose output this task consumes, in the order
	// their outputs are presented to the model.
	ContextFrom []string `json:"context_from,omitempty" yaml:"context_from,omitempty"`

	// Evidence, when set, is the search topic template for this role's
	// evidence sub-pipeline. Empty means the role is not grounded.
	Evidence string `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// AgentResult is the immutable output of one completed AgentTask.
type AgentResult struct {
	Role       string          `json:"role" yaml:"role"`
	OutputText string          `json:"output" yaml:"output"`
	Sources    []SourceSummary `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// TaskRecord tracks the execution of one task inside a PipelineRun.
type TaskRecord struct {
	Role     string        `json:"role" yaml:"role"`
	State    TaskState     `json:"state" yaml:"state"`
	Started  time.Time     `json:"started,omitempty" yaml:"started,omitempty"`
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
	Sources  int           `json:"sources" yaml:"sources"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// PipelineRun is the report of one pipeline execution. Results holds the
// completed AgentResults in task order.
type PipelineRun struct {
	ID        string        `json:"id" yaml:"id"`
	Started   time.Time     `json:"started" yaml:"started"`
	Finished  time.Time     `json:"finished" yaml:"finished"`
	Tasks     []TaskRecord  `json:"tasks" yaml:"tasks"`
	Results   []AgentResult `json:"results" yaml:"results"`
	FinalRole string        `json:"final_role" yaml:"final_role"`
	Failed    string        `json:"failed_role,omitempty" yaml:"failed_role,omitempty"`
}

// Final returns the output text of the run's final task, or "" when the
// run did not complete.
func (r *PipelineRun) Final() string {
	if r == nil || r.Failed != "" {
		return ""
	}
	for _, res := range r.Results {
		if res.Role == r.FinalRole {
			return res.OutputText
		}
	}
	return ""
}

// Result returns the AgentResult for role, if it completed.
func (r *PipelineRun) Result(role string) (AgentResult, bool) {
	if r == nil {
		return AgentResult{}, false
	}
	for _, res := range r.Results {
		if res.Role == role {
			return res, true
		}
	}
	return AgentResult{}, false
}
