package coordinator

import (
	"context"
	"testing"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
	"github.com/sharma-manish-94/schemasculpt-agentcore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parDef(agents ...string) core.WorkflowDefinition {
	def := core.WorkflowDefinition{Type: core.WorkflowParallel}
	for _, name := range agents {
		def.AgentTasks = append(def.AgentTasks, core.TaskRef{
			Agent:     name,
			TaskType:  name,
			InputData: map[string]any{},
		})
	}
	return def
}

func TestParallel_AllSucceed(t *testing.T) {
	c := New()
	c.Register(testutil.SucceedingAgent("a", "out-a"))
	c.Register(testutil.SucceedingAgent("b", "out-b"))
	c.Register(testutil.SucceedingAgent("c", "out-c"))

	res := c.Execute(context.Background(), parDef("a", "b", "c"), nil)

	require.True(t, res.Success)
	results := res.Data.([]core.Result)
	require.Len(t, results, 3)

	// Output order matches input order regardless of completion order.
	assert.Equal(t, "a", results[0].Agent)
	assert.Equal(t, "b", results[1].Agent)
	assert.Equal(t, "c", results[2].Agent)
	assert.Equal(t, 3, res.Metadata["successful_agents"])
}

func TestParallel_PanicsConvertedNeverPropagated(t *testing.T) {
	c := New()
	c.Register(testutil.SucceedingAgent("a", nil))
	c.Register(testutil.NewRawPanickingAgent("b"))
	c.Register(testutil.SucceedingAgent("c", nil))

	var res core.Result
	assert.NotPanics(t, func() {
		res = c.Execute(context.Background(), parDef("a", "b", "c"), nil)
	})

	// The strategy never hard-fails once all tasks were attempted.
	require.True(t, res.Success)
	results := res.Data.([]core.Result)
	require.Len(t, results, 3)

	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, core.CodeAgentException, results[1].ErrorCode)
	assert.Contains(t, results[1].Error, "panic")
	assert.True(t, results[2].Success)

	assert.Equal(t, 2, res.Metadata["successful_agents"])
}

func TestParallel_TaskFailuresCollected(t *testing.T) {
	c := New()
	c.Register(testutil.FailingAgent("a", "a broke"))
	c.Register(testutil.FailingAgent("b", "b broke"))
	c.Register(testutil.SucceedingAgent("c", nil))

	res := c.Execute(context.Background(), parDef("a", "b", "c"), nil)

	require.True(t, res.Success)
	results := res.Data.([]core.Result)
	require.Len(t, results, 3)
	assert.Equal(t, 1, res.Metadata["successful_agents"])
}

func TestParallel_UnknownAgentIsStaticValidation(t *testing.T) {
	c := New()
	rec := testutil.NewRecordingAgent("a")
	c.Register(rec)
	// "ghost" is never registered.

	res := c.Execute(context.Background(), parDef("a", "ghost"), nil)

	require.False(t, res.Success)
	assert.Equal(t, core.CodeAgentNotFound, res.ErrorCode)
	assert.Equal(t, "ghost", res.Metadata["missing_agent"])

	// Nothing was launched: resolution failed before fan-out.
	assert.Empty(t, rec.Tasks)
}

func TestParallel_ManyConcurrentTasks(t *testing.T) {
	c := New()
	names := make([]string, 0, 16)
	for _, name := range []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7"} {
		c.Register(testutil.SucceedingAgent(name, name))
		names = append(names, name)
	}

	res := c.Execute(context.Background(), parDef(names...), nil)

	require.True(t, res.Success)
	results := res.Data.([]core.Result)
	require.Len(t, results, len(names))
	for i, name := range names {
		assert.Equal(t, name, results[i].Agent)
		assert.Equal(t, name, results[i].Data)
	}
}
