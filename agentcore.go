// Package agentcore provides a high-level façade over the coordinator and
// its supporting packages (agents, reasoning services, logging), enabling
// rapid construction of agent/workflow orchestration pipelines. Most
// applications interact with this package by:
//  1. Creating an AgentCore via New() (optionally overriding the logger)
//  2. Registering one or more agents (function-backed, reasoning-backed,
//     custom)
//  3. Executing declarative workflow definitions (sequential, parallel,
//     conditional) and inspecting the returned result envelopes
//
// The façade delegates orchestration to coordinator.Coordinator while
// keeping setup ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply a
// structured logger.
package agentcore

import (
	"context"
	"time"

	"github.com/sharma-manish-94/schemasculpt-agentcore/coordinator"
	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
	"github.com/sharma-manish-94/schemasculpt-agentcore/logging"
)

// Options configures the AgentCore instance.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentCore is the high-level façade aggregating the coordinator.
type AgentCore struct {
	opts  Options
	coord *coordinator.Coordinator
}

// New creates a new AgentCore instance with optional overrides.
func New(optFns ...func(o *Options)) *AgentCore {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	coord := coordinator.New(coordinator.WithLogger(opts.Logger))

	return &AgentCore{opts: opts, coord: coord}
}

// RegisterAgent adds an agent to the underlying coordinator.
func (a *AgentCore) RegisterAgent(ag core.Agent) { a.coord.Register(ag) }

// Execute runs an arbitrary workflow definition.
func (a *AgentCore) Execute(ctx context.Context, def core.WorkflowDefinition, shared core.Context) core.Result {
	return a.coord.Execute(ctx, def, shared)
}

// ExecuteSequential runs tasks in order, stopping at the first failure
// unless continueOnError is set.
func (a *AgentCore) ExecuteSequential(ctx context.Context, tasks []core.TaskRef, continueOnError bool, shared core.Context) core.Result {
	return a.coord.Execute(ctx, core.WorkflowDefinition{
		Type:            core.WorkflowSequential,
		AgentTasks:      tasks,
		ContinueOnError: continueOnError,
	}, shared)
}

// ExecuteParallel runs all tasks concurrently and collects every result.
func (a *AgentCore) ExecuteParallel(ctx context.Context, tasks []core.TaskRef, shared core.Context) core.Result {
	return a.coord.Execute(ctx, core.WorkflowDefinition{
		Type:       core.WorkflowParallel,
		AgentTasks: tasks,
	}, shared)
}

// ExecuteConditional runs branches whose predicates match the results
// accumulated so far.
func (a *AgentCore) ExecuteConditional(ctx context.Context, branches []core.ConditionalBranch, shared core.Context) core.Result {
	return a.coord.Execute(ctx, core.WorkflowDefinition{
		Type:     core.WorkflowConditional,
		Branches: branches,
	}, shared)
}

// Status reports registered agents and the number of running workflows.
func (a *AgentCore) Status() coordinator.Status { return a.coord.Status() }

// WorkflowStatus returns the registry snapshot for one workflow.
func (a *AgentCore) WorkflowStatus(workflowID string) (core.WorkflowState, bool) {
	return a.coord.GetWorkflowStatus(workflowID)
}

// WorkflowStatuses returns registry snapshots for every tracked workflow.
func (a *AgentCore) WorkflowStatuses() []core.WorkflowState {
	return a.coord.WorkflowStatuses()
}

// CleanupCompletedWorkflows removes terminal workflows older than maxAge and
// returns the count removed.
func (a *AgentCore) CleanupCompletedWorkflows(maxAge time.Duration) int {
	return a.coord.CleanupCompletedWorkflows(maxAge)
}
