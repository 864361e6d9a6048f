package core

import (
	"context"
	"time"
)

// Capability is an opaque string tag declaring one kind of work an agent can
// perform (e.g. "domain_analysis"). An agent declares a fixed set at
// construction; the set is immutable for its lifetime.
type Capability string

// Agent is the contract every registered unit of work must implement.
//
// Execute is the only side-effecting operation. Task-local failures (bad
// input, downstream service errors) must be converted into a failed Result
// rather than propagated; only programming invariant violations may panic.
// Implementations surround every Execute with metrics hooks (busy flag,
// execution count, timing) that run regardless of success — agent.BaseAgent
// provides this via Track.
type Agent interface {
	// Name returns the registration name of the agent.
	Name() string

	// ID returns the stable unique identifier of this agent instance.
	ID() string

	// Capabilities returns the fixed capability set declared at construction.
	Capabilities() []Capability

	// CanHandle reports whether taskType is a member of the capability set.
	CanHandle(taskType string) bool

	// Validate checks that the task carries the required fields before
	// execution. Implementations may extend the base checks with their own
	// required input keys.
	Validate(task Task) error

	// Execute runs the task against the shared workflow context and returns
	// a Result envelope. ctx is advisory: the coordinator never cancels an
	// in-flight execution, but agents should pass it to downstream calls.
	Execute(ctx context.Context, task Task, shared Context) Result

	// Status returns a snapshot of identity and running metrics.
	Status() AgentStatus
}

// AgentStatus is a point-in-time snapshot of an agent's identity and
// execution metrics. Metrics accumulate per registered agent and are never
// reset automatically.
type AgentStatus struct {
	AgentID              string        `json:"agent_id"`
	Name                 string        `json:"name"`
	Capabilities         []Capability  `json:"capabilities"`
	IsBusy               bool          `json:"is_busy"`
	ExecutionCount       int           `json:"execution_count"`
	TotalExecutionTime   time.Duration `json:"total_execution_time"`
	AverageExecutionTime time.Duration `json:"average_execution_time"`
}
