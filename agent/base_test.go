package agent

import (
	"testing"
	"time"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseAgent(t *testing.T) {
	b := NewBaseAgent("analyzer", "domain_analysis", "schema_review")

	assert.Equal(t, "analyzer", b.Name())
	assert.NotEmpty(t, b.ID())
	assert.Equal(t, []core.Capability{"domain_analysis", "schema_review"}, b.Capabilities())
}

func TestBaseAgent_CanHandle(t *testing.T) {
	b := NewBaseAgent("analyzer", "domain_analysis")

	assert.True(t, b.CanHandle("domain_analysis"))
	assert.False(t, b.CanHandle("unknown"))
}

func TestBaseAgent_Validate(t *testing.T) {
	b := NewBaseAgent("analyzer")

	assert.NoError(t, b.Validate(core.Task{TaskType: "t", InputData: map[string]any{}}))

	err := b.Validate(core.Task{InputData: map[string]any{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task_type")

	err = b.Validate(core.Task{TaskType: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input_data")
}

func TestBaseAgent_TrackMetrics(t *testing.T) {
	b := NewBaseAgent("analyzer")

	b.Track(func() core.Result {
		st := b.Status()
		assert.True(t, st.IsBusy)
		assert.Equal(t, 1, st.ExecutionCount)
		time.Sleep(time.Millisecond)
		return b.Succeed(nil)
	})

	// Hooks run on failure too.
	b.Track(func() core.Result {
		return b.Fail("boom", core.CodeTaskFailed)
	})

	st := b.Status()
	assert.False(t, st.IsBusy)
	assert.Equal(t, 2, st.ExecutionCount)
	assert.Greater(t, st.TotalExecutionTime, time.Duration(0))
	assert.Equal(t, st.TotalExecutionTime/2, st.AverageExecutionTime)
}

func TestBaseAgent_TrackHooksRunOnPanic(t *testing.T) {
	b := NewBaseAgent("analyzer")

	assert.Panics(t, func() {
		b.Track(func() core.Result { panic("invariant violated") })
	})

	st := b.Status()
	assert.False(t, st.IsBusy)
	assert.Equal(t, 1, st.ExecutionCount)
}

func TestBaseAgent_StatusZeroExecutions(t *testing.T) {
	b := NewBaseAgent("analyzer")
	st := b.Status()

	assert.Zero(t, st.ExecutionCount)
	assert.Zero(t, st.AverageExecutionTime)
}

func TestBaseAgent_CapabilitiesCopy(t *testing.T) {
	b := NewBaseAgent("analyzer", "a")
	caps := b.Capabilities()
	caps[0] = "mutated"

	assert.Equal(t, []core.Capability{"a"}, b.Capabilities())
}
