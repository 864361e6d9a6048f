package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/sharma-manish-94/schemasculpt-agentcore/agent"
	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
)

// SucceedingAgent returns an agent that always succeeds, echoing the given
// data.
func SucceedingAgent(name string, data any) core.Agent {
	return agent.NewFunctionAgent(name, func(_ context.Context, _ core.Task, _ core.Context) (any, error) {
		return data, nil
	}, []core.Capability{core.Capability(name)})
}

// FailingAgent returns an agent that always fails with the given message.
func FailingAgent(name, errMsg string) core.Agent {
	return agent.NewFunctionAgent(name, func(_ context.Context, _ core.Task, _ core.Context) (any, error) {
		return nil, errors.New(errMsg)
	}, []core.Capability{core.Capability(name)})
}

// PanickingAgent returns an agent whose wrapped function panics. Note that
// agent.FunctionAgent recovers such panics itself; to exercise the
// coordinator's own recovery use RawPanickingAgent.
func PanickingAgent(name string) core.Agent {
	return agent.NewFunctionAgent(name, func(_ context.Context, _ core.Task, _ core.Context) (any, error) {
		panic(name + " exploded")
	}, []core.Capability{core.Capability(name)})
}

// RawPanickingAgent implements core.Agent directly and panics inside
// Execute, bypassing FunctionAgent's recovery. It exercises the parallel
// strategy's per-task panic conversion.
type RawPanickingAgent struct {
	agent.BaseAgent
}

// NewRawPanickingAgent constructs a RawPanickingAgent.
func NewRawPanickingAgent(name string) *RawPanickingAgent {
	return &RawPanickingAgent{BaseAgent: agent.NewBaseAgent(name)}
}

// Execute implements core.Agent by panicking.
func (a *RawPanickingAgent) Execute(context.Context, core.Task, core.Context) core.Result {
	panic("unrecovered agent panic")
}

// RecordingAgent succeeds while recording every task and a snapshot of the
// previous_results it observed, for asserting ordering and context
// propagation.
type RecordingAgent struct {
	agent.BaseAgent

	mu              sync.Mutex
	Tasks           []core.Task
	ObservedPrevLen []int
}

// NewRecordingAgent constructs a RecordingAgent.
func NewRecordingAgent(name string) *RecordingAgent {
	return &RecordingAgent{BaseAgent: agent.NewBaseAgent(name, core.Capability(name))}
}

// Execute implements core.Agent.
func (a *RecordingAgent) Execute(_ context.Context, task core.Task, shared core.Context) core.Result {
	return a.Track(func() core.Result {
		a.mu.Lock()
		a.Tasks = append(a.Tasks, task)
		a.ObservedPrevLen = append(a.ObservedPrevLen, len(shared.PreviousResults()))
		a.mu.Unlock()
		return a.Succeed(task.TaskType)
	})
}
