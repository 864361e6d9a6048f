package coordinator

import (
	"context"
	"fmt"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
)

// runSequential executes tasks in array order. Each task after the first
// sees the accumulated envelopes under the context's previous_results key.
// An unregistered agent aborts the whole workflow immediately; a failed task
// aborts it unless ContinueOnError is set.
func (c *Coordinator) runSequential(ctx context.Context, wfID string, def core.WorkflowDefinition, shared core.Context) core.Result {
	results := make([]core.Result, 0, len(def.AgentTasks))
	executed := make([]string, 0, len(def.AgentTasks))

	for _, ref := range def.AgentTasks {
		ag, ok := c.Agent(ref.Agent)
		if !ok {
			c.logger.Error("sequential workflow references unknown agent",
				"workflow_id", wfID, "agent", ref.Agent)
			return c.fail(fmt.Sprintf("agent %q is not registered", ref.Agent), core.CodeAgentNotFound, map[string]any{
				"workflow_id":     wfID,
				"workflow_type":   string(core.WorkflowSequential),
				"missing_agent":   ref.Agent,
				"results":         results,
				"agents_executed": executed,
			})
		}

		// Later tasks read earlier outputs; copy so agents cannot mutate the
		// accumulated list out from under the engine.
		if len(results) > 0 {
			shared.SetPreviousResults(append([]core.Result(nil), results...))
		}

		res := ag.Execute(ctx, ref.Task(), shared)
		results = append(results, res)
		executed = append(executed, ref.Agent)
		c.registry.appendResult(wfID, res)

		if !res.Success && !def.ContinueOnError {
			c.logger.Warn("sequential workflow stopped by failed task",
				"workflow_id", wfID, "agent", ref.Agent, "error", res.Error)
			return c.fail(fmt.Sprintf("agent %q failed: %s", ref.Agent, res.Error), core.CodeWorkflowAgentFailed, map[string]any{
				"workflow_id":     wfID,
				"workflow_type":   string(core.WorkflowSequential),
				"failed_agent":    ref.Agent,
				"agent_error":     res.Error,
				"results":         results,
				"agents_executed": executed,
			})
		}
	}

	return c.succeed(results, map[string]any{
		"workflow_id":     wfID,
		"workflow_type":   string(core.WorkflowSequential),
		"agents_executed": executed,
	})
}
