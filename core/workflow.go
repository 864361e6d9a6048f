package core

import "time"

// WorkflowType selects the execution strategy applied to a workflow
// definition.
type WorkflowType string

const (
	// WorkflowSequential executes tasks in array order, feeding each task
	// the accumulated results of its predecessors.
	WorkflowSequential WorkflowType = "sequential"
	// WorkflowParallel executes all tasks concurrently and always collects
	// every result.
	WorkflowParallel WorkflowType = "parallel"
	// WorkflowConditional executes branches whose predicate matches the
	// results accumulated so far.
	WorkflowConditional WorkflowType = "conditional"
)

// Condition is the predicate vocabulary evaluated by the conditional
// strategy over the running list of previously collected results. Any string
// outside this vocabulary evaluates to true (permissive fallback, kept for
// compatibility with existing workflow definitions; the coordinator logs a
// warning when it happens).
type Condition string

const (
	// ConditionAlways is true unconditionally.
	ConditionAlways Condition = "always"
	// ConditionIfPreviousSuccess is true iff at least one result has been
	// collected and every collected result succeeded.
	ConditionIfPreviousSuccess Condition = "if_previous_success"
	// ConditionIfPreviousFailed is true iff at least one collected result
	// failed.
	ConditionIfPreviousFailed Condition = "if_previous_failed"
	// ConditionIfNoPrevious is true iff no result has been collected yet.
	ConditionIfNoPrevious Condition = "if_no_previous"
)

// TaskRef names one unit of work inside a workflow definition: which agent
// to run, with which task type and input.
type TaskRef struct {
	Agent     string         `json:"agent"`
	TaskType  string         `json:"task_type"`
	InputData map[string]any `json:"input_data"`
}

// Task converts the reference into the Task handed to the agent.
func (t TaskRef) Task() Task {
	return Task{TaskType: t.TaskType, InputData: t.InputData}
}

// ConditionalBranch pairs a predicate with the tasks to run when it matches.
type ConditionalBranch struct {
	Condition  Condition `json:"condition"`
	AgentTasks []TaskRef `json:"agent_tasks"`
}

// WorkflowDefinition is the declarative description of a workflow submitted
// to the coordinator. Sequential and parallel workflows use AgentTasks (and,
// for sequential, ContinueOnError); conditional workflows use Branches.
type WorkflowDefinition struct {
	Type            WorkflowType        `json:"workflow_type"`
	AgentTasks      []TaskRef           `json:"agent_tasks,omitempty"`
	ContinueOnError bool                `json:"continue_on_error,omitempty"`
	Branches        []ConditionalBranch `json:"conditions,omitempty"`
}

// WorkflowStatus is the lifecycle state of a registered workflow.
type WorkflowStatus string

const (
	// WorkflowRunning marks a workflow whose Execute call has not returned.
	WorkflowRunning WorkflowStatus = "running"
	// WorkflowCompleted marks a workflow whose Execute call returned
	// normally.
	WorkflowCompleted WorkflowStatus = "completed"
	// WorkflowFailed marks a workflow aborted by a panic escaping the
	// coordinator's bookkeeping (task-level failures are data, not
	// lifecycle failures).
	WorkflowFailed WorkflowStatus = "failed"
)

// Terminal reports whether the status is eligible for age-based cleanup.
func (s WorkflowStatus) Terminal() bool {
	return s == WorkflowCompleted || s == WorkflowFailed
}

// WorkflowState is a registry entry tracking one workflow execution:
// topology, task list, the envelopes collected so far, lifecycle status and
// start time. The coordinator mutates it in place while the workflow runs;
// lookups return snapshot copies.
type WorkflowState struct {
	WorkflowID string         `json:"workflow_id"`
	StartTime  time.Time      `json:"start_time"`
	Type       WorkflowType   `json:"workflow_type"`
	Tasks      []TaskRef      `json:"tasks"`
	Results    []Result       `json:"results"`
	Status     WorkflowStatus `json:"status"`
}

// Clone returns a deep-enough copy for safe external inspection: the task
// and result slices are copied, their elements shared (Results are value
// objects).
func (w *WorkflowState) Clone() WorkflowState {
	out := *w
	out.Tasks = make([]TaskRef, len(w.Tasks))
	copy(out.Tasks, w.Tasks)
	out.Results = make([]Result, len(w.Results))
	copy(out.Results, w.Results)
	return out
}
