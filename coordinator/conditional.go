package coordinator

import (
	"context"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
)

// runConditional evaluates each branch's predicate in order against the
// envelopes collected so far and runs matching branches sequentially.
// Conditional workflows are best-effort: tasks naming unregistered agents
// are skipped silently, task failures are recorded and execution continues,
// and the top-level envelope always succeeds.
func (c *Coordinator) runConditional(ctx context.Context, wfID string, def core.WorkflowDefinition, shared core.Context) core.Result {
	var results []core.Result
	var executed []string
	evaluated := 0

	for _, branch := range def.Branches {
		evaluated++
		if !c.evalCondition(wfID, branch.Condition, results) {
			continue
		}

		for _, ref := range branch.AgentTasks {
			ag, ok := c.Agent(ref.Agent)
			if !ok {
				// Sparse workflows are expected here, unlike the hard failure
				// in the sequential/parallel strategies.
				c.logger.Debug("skipping unregistered agent in conditional workflow",
					"workflow_id", wfID, "agent", ref.Agent)
				continue
			}

			if len(results) > 0 {
				shared.SetPreviousResults(append([]core.Result(nil), results...))
			}

			res := ag.Execute(ctx, ref.Task(), shared)
			results = append(results, res)
			executed = append(executed, ref.Agent)
			c.registry.appendResult(wfID, res)
		}
	}

	if results == nil {
		results = []core.Result{}
	}
	return c.succeed(results, map[string]any{
		"workflow_id":          wfID,
		"workflow_type":        string(core.WorkflowConditional),
		"conditions_evaluated": evaluated,
		"agents_executed":      executed,
	})
}

// evalCondition applies the fixed predicate vocabulary to the envelopes
// collected so far. Unrecognized predicates default to true for
// compatibility with existing workflow definitions; the fallback is logged
// because it can mask a typo in the definition.
func (c *Coordinator) evalCondition(wfID string, cond core.Condition, previous []core.Result) bool {
	switch cond {
	case core.ConditionAlways:
		return true
	case core.ConditionIfPreviousSuccess:
		if len(previous) == 0 {
			return false
		}
		for _, res := range previous {
			if !res.Success {
				return false
			}
		}
		return true
	case core.ConditionIfPreviousFailed:
		for _, res := range previous {
			if !res.Success {
				return true
			}
		}
		return false
	case core.ConditionIfNoPrevious:
		return len(previous) == 0
	default:
		c.logger.Warn("unrecognized condition, defaulting to true",
			"workflow_id", wfID, "condition", string(cond))
		return true
	}
}
