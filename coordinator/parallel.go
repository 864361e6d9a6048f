package coordinator

import (
	"context"
	"fmt"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
	"golang.org/x/sync/errgroup"
)

// runParallel fans all tasks out concurrently against the same shared
// context. Agent resolution happens before anything is launched, so an
// unknown agent name is a static validation error rather than a runtime one.
// Once launched, the strategy never hard-fails: a panicking task is
// recovered into an AGENT_EXCEPTION envelope and the siblings' results are
// still collected. The result slice preserves the input task order no matter
// when each task completes.
func (c *Coordinator) runParallel(ctx context.Context, wfID string, def core.WorkflowDefinition, shared core.Context) core.Result {
	agents := make([]core.Agent, len(def.AgentTasks))
	for i, ref := range def.AgentTasks {
		ag, ok := c.Agent(ref.Agent)
		if !ok {
			c.logger.Error("parallel workflow references unknown agent",
				"workflow_id", wfID, "agent", ref.Agent)
			return c.fail(fmt.Sprintf("agent %q is not registered", ref.Agent), core.CodeAgentNotFound, map[string]any{
				"workflow_id":   wfID,
				"workflow_type": string(core.WorkflowParallel),
				"missing_agent": ref.Agent,
			})
		}
		agents[i] = ag
	}

	results := make([]core.Result, len(def.AgentTasks))

	// The group exists for fan-out/join only; tasks always return nil so one
	// failure can never cancel or mask the others.
	g := new(errgroup.Group)
	for i, ref := range def.AgentTasks {
		i, ref := i, ref
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("parallel task panicked",
						"workflow_id", wfID, "agent", ref.Agent, "recover", fmt.Sprintf("%v", r))
					results[i] = core.NewErrorResult(ref.Agent, agents[i].ID(),
						fmt.Sprintf("agent panicked: %v", r), core.CodeAgentException)
				}
			}()
			results[i] = agents[i].Execute(ctx, ref.Task(), shared)
			return nil
		})
	}
	_ = g.Wait()

	successful := 0
	for _, res := range results {
		c.registry.appendResult(wfID, res)
		if res.Success {
			successful++
		}
	}

	return c.succeed(results, map[string]any{
		"workflow_id":       wfID,
		"workflow_type":     string(core.WorkflowParallel),
		"successful_agents": successful,
	})
}
