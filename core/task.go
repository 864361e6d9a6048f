package core

// Task is the unit of work handed to an agent. TaskType selects the agent
// behavior; InputData carries agent-specific parameters. Both fields are
// required — agents reject tasks missing either via Validate, never by
// panicking.
type Task struct {
	TaskType  string         `json:"task_type"`
	InputData map[string]any `json:"input_data"`
}

// PreviousResultsKey is the Context key under which the sequential strategy
// exposes the envelopes of already-completed tasks to subsequent tasks.
const PreviousResultsKey = "previous_results"

// Context is the mutable map shared by reference across one workflow
// execution. The coordinator owns it for the duration of a single Execute
// call. It is NOT safe for concurrent mutation: under the parallel strategy
// tasks must treat it as read-mostly and must not assume exclusive write
// access. This is a documented agent-author responsibility, not enforced by
// locking.
type Context map[string]any

// Clone returns a shallow copy of the context. Values are shared.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// PreviousResults returns the envelopes injected by the sequential strategy,
// or nil when no prior task has completed.
func (c Context) PreviousResults() []Result {
	if c == nil {
		return nil
	}
	rs, _ := c[PreviousResultsKey].([]Result)
	return rs
}

// SetPreviousResults stores the accumulated envelopes for downstream tasks.
func (c Context) SetPreviousResults(rs []Result) {
	c[PreviousResultsKey] = rs
}
