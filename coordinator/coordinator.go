package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
	"github.com/sharma-manish-94/schemasculpt-agentcore/logging"
)

// coordinatorName is the author recorded on workflow-level envelopes.
const coordinatorName = "coordinator"

// Options holds dependency overrides passed to New().
type Options struct {
	// Logger receives workflow lifecycle diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Coordinator registers agents by name and executes workflow definitions
// against them. It exclusively owns both the agent registry and the workflow
// registry; both are guarded for concurrent use. Coordinators are plain
// values passed by reference — never process-wide globals.
type Coordinator struct {
	id     string
	logger logging.Logger

	mu     sync.RWMutex
	agents map[string]core.Agent

	registry *workflowRegistry
}

// Status is the observability snapshot returned by Coordinator.Status.
type Status struct {
	RegisteredAgents []core.AgentStatus `json:"registered_agents"`
	ActiveWorkflows  int                `json:"active_workflows"`
}

// New constructs a Coordinator with optional overrides.
func New(optFns ...func(o *Options)) *Coordinator {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Coordinator{
		id:       core.NewID(),
		logger:   opts.Logger,
		agents:   make(map[string]core.Agent),
		registry: newWorkflowRegistry(),
	}
}

// WithLogger overrides the coordinator's logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// Register adds an agent under its name. A later registration for the same
// name replaces the earlier one; there is no versioning.
func (c *Coordinator) Register(a core.Agent) {
	c.mu.Lock()
	if _, exists := c.agents[a.Name()]; exists {
		c.logger.Info("replacing registered agent", "agent", a.Name())
	}
	c.agents[a.Name()] = a
	c.mu.Unlock()

	c.logger.Debug("agent registered", "agent", a.Name(), "agent_id", a.ID())
}

// Agent looks up a registered agent by name.
func (c *Coordinator) Agent(name string) (core.Agent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.agents[name]
	return a, ok
}

// Execute runs a workflow definition against the registered agents and
// always returns a well-formed envelope — callers never need to handle a
// coordinator-specific error type. The shared context may be nil; the
// coordinator owns it for the duration of the call.
//
// Cancellation caveat: ctx is forwarded to agents but the coordinator never
// interrupts an in-flight Execute. Aborting a sequential workflow means no
// further tasks are started.
func (c *Coordinator) Execute(ctx context.Context, def core.WorkflowDefinition, shared core.Context) (result core.Result) {
	if shared == nil {
		shared = core.Context{}
	}

	tasks := def.AgentTasks
	if def.Type == core.WorkflowConditional {
		tasks = conditionalTasks(def)
	}
	wfID := c.registry.create(def.Type, tasks)
	start := time.Now()

	c.logger.Info("workflow started",
		"workflow_id", wfID, "workflow_type", string(def.Type), "tasks", len(tasks))

	// Any panic escaping the strategy bookkeeping becomes a WORKFLOW_ERROR
	// envelope and a failed registry entry; task-level failures never reach
	// this path.
	defer func() {
		if r := recover(); r != nil {
			c.registry.setStatus(wfID, core.WorkflowFailed)
			result = c.fail(fmt.Sprintf("workflow execution panicked: %v", r), core.CodeWorkflowError, map[string]any{
				"workflow_id":   wfID,
				"workflow_type": string(def.Type),
			})
			c.logger.Error("workflow panicked", "workflow_id", wfID, "recover", fmt.Sprintf("%v", r))
			return
		}

		c.registry.setStatus(wfID, core.WorkflowCompleted)
		c.logger.Info("workflow finished",
			"workflow_id", wfID,
			"workflow_type", string(def.Type),
			"success", result.Success,
			"duration_ms", time.Since(start).Milliseconds())
	}()

	switch def.Type {
	case core.WorkflowSequential:
		return c.runSequential(ctx, wfID, def, shared)
	case core.WorkflowParallel:
		return c.runParallel(ctx, wfID, def, shared)
	case core.WorkflowConditional:
		return c.runConditional(ctx, wfID, def, shared)
	default:
		return c.fail(fmt.Sprintf("unknown workflow type %q", def.Type), core.CodeWorkflowError, map[string]any{
			"workflow_id":   wfID,
			"workflow_type": string(def.Type),
		})
	}
}

// Status reports the registered agents' statuses and the number of workflows
// still running.
func (c *Coordinator) Status() Status {
	c.mu.RLock()
	agents := make([]core.AgentStatus, 0, len(c.agents))
	for _, a := range c.agents {
		agents = append(agents, a.Status())
	}
	c.mu.RUnlock()

	return Status{
		RegisteredAgents: agents,
		ActiveWorkflows:  c.registry.activeCount(),
	}
}

// GetWorkflowStatus returns a snapshot of one workflow's registry entry.
func (c *Coordinator) GetWorkflowStatus(workflowID string) (core.WorkflowState, bool) {
	return c.registry.get(workflowID)
}

// WorkflowStatuses returns snapshots of every tracked workflow.
func (c *Coordinator) WorkflowStatuses() []core.WorkflowState {
	return c.registry.all()
}

// CleanupCompletedWorkflows removes terminal (completed or failed) workflows
// older than maxAge and returns the count removed. Running workflows survive
// regardless of age.
func (c *Coordinator) CleanupCompletedWorkflows(maxAge time.Duration) int {
	removed := c.registry.cleanup(maxAge)
	if removed > 0 {
		c.logger.Debug("cleaned up workflows", "removed", removed)
	}
	return removed
}

// succeed builds a successful workflow-level envelope.
func (c *Coordinator) succeed(data any, md map[string]any) core.Result {
	return core.NewSuccessResult(coordinatorName, c.id, data).WithMetadata(md)
}

// fail builds a failed workflow-level envelope.
func (c *Coordinator) fail(errMsg, errCode string, md map[string]any) core.Result {
	return core.NewErrorResult(coordinatorName, c.id, errMsg, errCode).WithMetadata(md)
}

// conditionalTasks flattens a conditional definition's branches for registry
// bookkeeping.
func conditionalTasks(def core.WorkflowDefinition) []core.TaskRef {
	var tasks []core.TaskRef
	for _, branch := range def.Branches {
		tasks = append(tasks, branch.AgentTasks...)
	}
	return tasks
}
