package agent

import (
	"fmt"
	"sync"
	"time"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
)

// BaseAgent bundles identity, the capability set and execution metrics
// shared by all agent implementations. Embed it in a concrete agent and
// supply an Execute method to satisfy the core.Agent interface. All exported
// methods are goroutine-safe.
//
// Metrics semantics: Track runs the pre-hook (busy flag set, execution count
// incremented) before the wrapped work and the post-hook (elapsed time
// accumulated, average recomputed, busy flag cleared) after it — on success
// and failure alike. Metrics accumulate for the lifetime of the agent and
// are never reset.
type BaseAgent struct {
	name         string
	id           string
	capabilities []core.Capability

	mu        sync.Mutex
	isBusy    bool
	execCount int
	totalTime time.Duration
}

// NewBaseAgent constructs a BaseAgent with a generated ID and a fixed
// capability set. The set is immutable for the agent's lifetime.
func NewBaseAgent(name string, capabilities ...core.Capability) BaseAgent {
	return BaseAgent{
		name:         name,
		id:           core.NewID(),
		capabilities: capabilities,
	}
}

// Name returns the registration name of this agent.
func (b *BaseAgent) Name() string { return b.name }

// ID returns the stable unique identifier of this agent instance.
func (b *BaseAgent) ID() string { return b.id }

// Capabilities returns a copy of the declared capability set.
func (b *BaseAgent) Capabilities() []core.Capability {
	out := make([]core.Capability, len(b.capabilities))
	copy(out, b.capabilities)
	return out
}

// CanHandle reports whether taskType is a member of the capability set.
func (b *BaseAgent) CanHandle(taskType string) bool {
	for _, c := range b.capabilities {
		if string(c) == taskType {
			return true
		}
	}
	return false
}

// Validate checks the base task requirements: a non-empty task type and a
// non-nil input map. Concrete agents may extend this with their own required
// input keys.
func (b *BaseAgent) Validate(task core.Task) error {
	if task.TaskType == "" {
		return fmt.Errorf("task is missing task_type")
	}
	if task.InputData == nil {
		return fmt.Errorf("task is missing input_data")
	}
	return nil
}

// Track wraps one unit of work with the execution hooks. The post-hook runs
// via defer, so it fires even when fn panics; the panic itself still
// propagates to the caller (the coordinator's parallel strategy converts it
// into an AGENT_EXCEPTION envelope).
func (b *BaseAgent) Track(fn func() core.Result) core.Result {
	start := time.Now()

	b.mu.Lock()
	b.isBusy = true
	b.execCount++
	b.mu.Unlock()

	defer func() {
		elapsed := time.Since(start)
		b.mu.Lock()
		b.totalTime += elapsed
		b.isBusy = false
		b.mu.Unlock()
	}()

	return fn()
}

// Status returns a point-in-time snapshot of identity and metrics.
func (b *BaseAgent) Status() core.AgentStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	var avg time.Duration
	if b.execCount > 0 {
		avg = b.totalTime / time.Duration(b.execCount)
	}

	return core.AgentStatus{
		AgentID:              b.id,
		Name:                 b.name,
		Capabilities:         b.Capabilities(),
		IsBusy:               b.isBusy,
		ExecutionCount:       b.execCount,
		TotalExecutionTime:   b.totalTime,
		AverageExecutionTime: avg,
	}
}

// Succeed builds a successful envelope attributed to this agent.
func (b *BaseAgent) Succeed(data any) core.Result {
	return core.NewSuccessResult(b.name, b.id, data)
}

// Fail builds a failed envelope attributed to this agent.
func (b *BaseAgent) Fail(errMsg, errCode string) core.Result {
	return core.NewErrorResult(b.name, b.id, errMsg, errCode)
}
