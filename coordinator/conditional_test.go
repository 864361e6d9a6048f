package coordinator

import (
	"context"
	"testing"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
	"github.com/sharma-manish-94/schemasculpt-agentcore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func branch(cond core.Condition, agents ...string) core.ConditionalBranch {
	b := core.ConditionalBranch{Condition: cond}
	for _, name := range agents {
		b.AgentTasks = append(b.AgentTasks, core.TaskRef{
			Agent:     name,
			TaskType:  name,
			InputData: map[string]any{},
		})
	}
	return b
}

func condDef(branches ...core.ConditionalBranch) core.WorkflowDefinition {
	return core.WorkflowDefinition{Type: core.WorkflowConditional, Branches: branches}
}

func TestConditional_AlwaysRuns(t *testing.T) {
	c := New()
	c.Register(testutil.SucceedingAgent("a", nil))

	res := c.Execute(context.Background(), condDef(branch(core.ConditionAlways, "a")), nil)

	require.True(t, res.Success)
	results := res.Data.([]core.Result)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, res.Metadata["conditions_evaluated"])
	assert.Equal(t, []string{"a"}, res.Metadata["agents_executed"])
}

func TestConditional_IfNoPreviousMatchesOnlyBeforeAnyResult(t *testing.T) {
	c := New()
	first := testutil.NewRecordingAgent("first")
	second := testutil.NewRecordingAgent("second")
	c.Register(first)
	c.Register(second)

	res := c.Execute(context.Background(), condDef(
		branch(core.ConditionIfNoPrevious, "first"),
		branch(core.ConditionIfNoPrevious, "second"),
	), nil)

	require.True(t, res.Success)
	assert.Len(t, first.Tasks, 1)
	// The first branch produced a result, so "if_no_previous" no longer holds.
	assert.Empty(t, second.Tasks)
}

func TestConditional_IfPreviousSuccess(t *testing.T) {
	c := New()
	c.Register(testutil.SucceedingAgent("seed", nil))
	follow := testutil.NewRecordingAgent("follow")
	c.Register(follow)

	res := c.Execute(context.Background(), condDef(
		branch(core.ConditionAlways, "seed"),
		branch(core.ConditionIfPreviousSuccess, "follow"),
	), nil)

	require.True(t, res.Success)
	assert.Len(t, follow.Tasks, 1)
}

func TestConditional_IfPreviousSuccessFalseWithEmptyResults(t *testing.T) {
	c := New()
	follow := testutil.NewRecordingAgent("follow")
	c.Register(follow)

	res := c.Execute(context.Background(), condDef(
		branch(core.ConditionIfPreviousSuccess, "follow"),
	), nil)

	require.True(t, res.Success)
	assert.Empty(t, follow.Tasks)
}

func TestConditional_IfPreviousSuccessFalseAfterOneFailure(t *testing.T) {
	c := New()
	c.Register(testutil.SucceedingAgent("ok", nil))
	c.Register(testutil.FailingAgent("bad", "broke"))
	follow := testutil.NewRecordingAgent("follow")
	c.Register(follow)

	res := c.Execute(context.Background(), condDef(
		branch(core.ConditionAlways, "ok", "bad"),
		branch(core.ConditionIfPreviousSuccess, "follow"),
	), nil)

	require.True(t, res.Success)
	assert.Empty(t, follow.Tasks)
}

func TestConditional_IfPreviousFailed(t *testing.T) {
	c := New()
	c.Register(testutil.FailingAgent("bad", "broke"))
	recovery := testutil.NewRecordingAgent("recovery")
	c.Register(recovery)

	res := c.Execute(context.Background(), condDef(
		branch(core.ConditionAlways, "bad"),
		branch(core.ConditionIfPreviousFailed, "recovery"),
	), nil)

	require.True(t, res.Success)
	assert.Len(t, recovery.Tasks, 1)
}

func TestConditional_UnknownPredicateDefaultsToTrue(t *testing.T) {
	c := New()
	a := testutil.NewRecordingAgent("a")
	c.Register(a)

	res := c.Execute(context.Background(), condDef(
		branch(core.Condition("if_previosu_success"), "a"), // typo on purpose
	), nil)

	require.True(t, res.Success)
	assert.Len(t, a.Tasks, 1)
}

func TestConditional_UnregisteredAgentSkippedSilently(t *testing.T) {
	c := New()
	c.Register(testutil.SucceedingAgent("a", nil))
	// "ghost" is never registered.

	res := c.Execute(context.Background(), condDef(
		branch(core.ConditionAlways, "ghost", "a"),
	), nil)

	// Conditional workflows are best-effort: no error for the missing agent.
	require.True(t, res.Success)
	results := res.Data.([]core.Result)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Agent)
	assert.Equal(t, []string{"a"}, res.Metadata["agents_executed"])
}

func TestConditional_TaskFailureDoesNotStopWorkflow(t *testing.T) {
	c := New()
	c.Register(testutil.FailingAgent("bad", "broke"))
	after := testutil.NewRecordingAgent("after")
	c.Register(after)

	res := c.Execute(context.Background(), condDef(
		branch(core.ConditionAlways, "bad", "after"),
	), nil)

	require.True(t, res.Success)
	assert.Len(t, after.Tasks, 1)
	results := res.Data.([]core.Result)
	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.True(t, results[1].Success)
}

func TestConditional_NoMatchingBranchesYieldsEmptyResults(t *testing.T) {
	c := New()

	res := c.Execute(context.Background(), condDef(
		branch(core.ConditionIfPreviousFailed, "anything"),
	), nil)

	require.True(t, res.Success)
	results := res.Data.([]core.Result)
	assert.Empty(t, results)
	assert.Equal(t, 1, res.Metadata["conditions_evaluated"])
}
