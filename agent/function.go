package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
)

// TaskFunc is the signature of the work wrapped by a FunctionAgent. It
// receives the task and the shared workflow context and returns the data for
// a successful envelope or an error for a failed one.
type TaskFunc func(ctx context.Context, task core.Task, shared core.Context) (any, error)

// FunctionAgent adapts a plain Go function into a core.Agent. It is the
// simplest way to wire existing code into a workflow and the main vehicle
// for tests and examples.
//
// Panics raised by the wrapped function are recovered into failed envelopes
// so one misbehaving task cannot take down a whole workflow.
type FunctionAgent struct {
	BaseAgent
	fn           TaskFunc
	requiredKeys []string
}

// FunctionAgentOptions configures a FunctionAgent.
type FunctionAgentOptions struct {
	// RequiredInputKeys lists input_data keys that must be present for the
	// task to pass validation, in addition to the base checks.
	RequiredInputKeys []string
}

// NewFunctionAgent wraps fn as an agent with the given name and capability
// set.
func NewFunctionAgent(name string, fn TaskFunc, capabilities []core.Capability, optFns ...func(o *FunctionAgentOptions)) *FunctionAgent {
	var opts FunctionAgentOptions
	for _, optFn := range optFns {
		optFn(&opts)
	}

	return &FunctionAgent{
		BaseAgent:    NewBaseAgent(name, capabilities...),
		fn:           fn,
		requiredKeys: opts.RequiredInputKeys,
	}
}

// Validate extends the base checks with the configured required input keys.
func (a *FunctionAgent) Validate(task core.Task) error {
	if err := a.BaseAgent.Validate(task); err != nil {
		return err
	}
	for _, key := range a.requiredKeys {
		if _, ok := task.InputData[key]; !ok {
			return fmt.Errorf("task input_data is missing required key %q", key)
		}
	}
	return nil
}

// Execute implements core.Agent. Validation failures and errors returned by
// the wrapped function become failed envelopes; panics inside the function
// are recovered into failed envelopes as well.
func (a *FunctionAgent) Execute(ctx context.Context, task core.Task, shared core.Context) core.Result {
	return a.Track(func() (result core.Result) {
		if err := a.Validate(task); err != nil {
			return a.Fail(err.Error(), core.CodeInvalidTask)
		}

		defer func() {
			if r := recover(); r != nil {
				result = a.Fail(fmt.Sprintf("task panicked: %v", r), core.CodeAgentException)
			}
		}()

		data, err := a.fn(ctx, task, shared)
		if err != nil {
			return a.Fail(err.Error(), errorCode(err))
		}
		return a.Succeed(data)
	})
}

// errorCode picks the envelope code for an execution error. Functions may
// return a *CodedError to choose the code themselves; parse failures from
// ParseStructuredOutput map to UNPARSABLE_OUTPUT; anything else maps to the
// generic TASK_FAILED.
func errorCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	var parseErr *UnparsableOutputError
	if errors.As(err, &parseErr) {
		return core.CodeUnparsableOutput
	}
	return core.CodeTaskFailed
}

// CodedError carries an explicit envelope error code alongside the cause.
type CodedError struct {
	Code string
	Err  error
}

// Error implements the error interface.
func (e *CodedError) Error() string { return e.Err.Error() }

// Unwrap exposes the underlying cause.
func (e *CodedError) Unwrap() error { return e.Err }

// NewCodedError pairs err with an envelope error code.
func NewCodedError(code string, err error) *CodedError {
	return &CodedError{Code: code, Err: err}
}
