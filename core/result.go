package core

import "time"

// Error codes attached to Result.ErrorCode. The workflow-level codes are
// produced by the coordinator; the agent-level codes are produced by concrete
// agents and are opaque to the coordinator.
const (
	// CodeAgentNotFound indicates a workflow referenced an unregistered
	// agent name. Fatal for sequential/parallel workflows; conditional
	// workflows skip the task instead.
	CodeAgentNotFound = "AGENT_NOT_FOUND"

	// CodeWorkflowAgentFailed indicates a sequential task failed while
	// ContinueOnError was false.
	CodeWorkflowAgentFailed = "WORKFLOW_AGENT_FAILED"

	// CodeAgentException indicates a parallel task panicked instead of
	// returning a failed envelope; the panic is recovered and converted,
	// never propagated to the caller.
	CodeAgentException = "AGENT_EXCEPTION"

	// CodeWorkflowError indicates an unknown workflow type or a failure in
	// the coordinator's own bookkeeping.
	CodeWorkflowError = "WORKFLOW_ERROR"

	// CodeInvalidTask indicates a task failed agent-side validation.
	CodeInvalidTask = "INVALID_TASK"

	// CodeTaskFailed is the generic code for a task-local execution failure
	// without a more specific classification.
	CodeTaskFailed = "TASK_FAILED"

	// CodeLLMError indicates a reasoning service call failed.
	CodeLLMError = "LLM_ERROR"

	// CodeUnparsableOutput indicates the reasoning service returned text
	// that could not be parsed as structured output.
	CodeUnparsableOutput = "UNPARSABLE_OUTPUT"
)

// Result is the uniform success/error envelope returned by every unit of
// work: Agent.Execute and Coordinator.Execute both return it, regardless of
// nesting depth. Exactly one of Data/Error is populated depending on
// Success. Results are value objects with no ownership semantics and may be
// freely copied and shared.
type Result struct {
	Success   bool           `json:"success"`
	Agent     string         `json:"agent"`
	AgentID   string         `json:"agent_id"`
	Timestamp time.Time      `json:"timestamp"`
	Data      any            `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorCode string         `json:"error_code,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewSuccessResult constructs a successful envelope carrying data.
func NewSuccessResult(agentName, agentID string, data any) Result {
	return Result{
		Success:   true,
		Agent:     agentName,
		AgentID:   agentID,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// NewErrorResult constructs a failed envelope carrying an error message and
// a machine-readable error code.
func NewErrorResult(agentName, agentID, errMsg, errCode string) Result {
	return Result{
		Success:   false,
		Agent:     agentName,
		AgentID:   agentID,
		Timestamp: time.Now().UTC(),
		Error:     errMsg,
		ErrorCode: errCode,
	}
}

// WithMetadata returns a copy of the result with the given metadata map
// attached. The map is stored as-is; callers should not mutate it afterwards.
func (r Result) WithMetadata(md map[string]any) Result {
	r.Metadata = md
	return r
}
