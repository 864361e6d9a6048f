package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
	"github.com/sharma-manish-94/schemasculpt-agentcore/reasoning"
	"github.com/sharma-manish-94/schemasculpt-agentcore/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockServiceImpl for asserting on the exact transcript sent to the backend.
type mockServiceImpl struct{ mock.Mock }

func (m *mockServiceImpl) Chat(ctx context.Context, messages []reasoning.Message, optFns ...func(o *reasoning.Options)) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func newTestReasoningAgent(svc reasoning.Service, maxAttempts int) *ReasoningAgent {
	return NewReasoningAgent("reasoner", svc, []core.Capability{"analysis"}, func(o *ReasoningAgentOptions) {
		o.RetryPolicy = retry.Policy{MaxAttempts: maxAttempts, Backoff: retry.NoBackoff}
	})
}

func TestParseStructuredOutput_PlainJSON(t *testing.T) {
	a := newTestReasoningAgent(reasoning.NewMockService(), 1)

	out, err := a.ParseStructuredOutput(`{"chains": [1, 2]}`)

	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, out["chains"])
}

func TestParseStructuredOutput_CodeFenced(t *testing.T) {
	a := newTestReasoningAgent(reasoning.NewMockService(), 1)

	raw := "```json\n{\"ok\": true}\n```"
	out, err := a.ParseStructuredOutput(raw)

	require.NoError(t, err)
	assert.Equal(t, true, out["ok"])
}

func TestParseStructuredOutput_ConversationalWrapping(t *testing.T) {
	a := newTestReasoningAgent(reasoning.NewMockService(), 1)

	raw := `Sure! Here is the result you asked for: {"count": 3} Hope that helps.`
	out, err := a.ParseStructuredOutput(raw)

	require.NoError(t, err)
	assert.Equal(t, float64(3), out["count"])
}

func TestParseStructuredOutput_Unparsable(t *testing.T) {
	a := newTestReasoningAgent(reasoning.NewMockService(), 1)

	_, err := a.ParseStructuredOutput("I could not produce JSON, sorry.")

	var parseErr *UnparsableOutputError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Preview, "I could not produce JSON")
}

func TestCallReasoningService_WrapsTransportError(t *testing.T) {
	svc := reasoning.NewMockService()
	svc.ScriptError(errors.New("502 bad gateway"))
	a := newTestReasoningAgent(svc, 1)

	_, err := a.CallReasoningService(context.Background(), []reasoning.Message{reasoning.UserMessage("hi")})

	var svcErr *reasoning.ServiceError
	require.ErrorAs(t, err, &svcErr)
}

func TestExtractStructured_SucceedsOnThirdAttempt(t *testing.T) {
	svc := reasoning.NewMockService()
	svc.Script("not json at all")
	svc.Script("still { broken")
	svc.Script(`{"attack_chains": ["a", "b"]}`)
	a := newTestReasoningAgent(svc, 3)

	out, attempts := a.ExtractStructured(context.Background(), func() []reasoning.Message {
		return []reasoning.Message{reasoning.UserMessage("find chains")}
	})

	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, svc.Calls())
	assert.Equal(t, []any{"a", "b"}, out["attack_chains"])
}

func TestExtractStructured_DegradesAfterBudget(t *testing.T) {
	svc := reasoning.NewMockService()
	svc.Script("not json at all")
	svc.Script("still { broken")
	svc.Script(`{"attack_chains": ["a"]}`) // never reached
	a := newTestReasoningAgent(svc, 2)

	out, attempts := a.ExtractStructured(context.Background(), func() []reasoning.Message {
		return []reasoning.Message{reasoning.UserMessage("find chains")}
	})

	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, svc.Calls())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestExtractStructured_DegenerateResponsesSkipParsing(t *testing.T) {
	svc := reasoning.NewMockService()
	svc.Script("  ")
	svc.Script(`{"ok": true}`)
	a := newTestReasoningAgent(svc, 3)

	out, attempts := a.ExtractStructured(context.Background(), func() []reasoning.Message {
		return []reasoning.Message{reasoning.UserMessage("go")}
	})

	assert.Equal(t, 2, attempts)
	assert.Equal(t, true, out["ok"])
}

func TestExtractStructured_RetriesTransportErrors(t *testing.T) {
	svc := reasoning.NewMockService()
	svc.ScriptError(errors.New("timeout"))
	svc.Script(`{"ok": true}`)
	a := newTestReasoningAgent(svc, 3)

	out, attempts := a.ExtractStructured(context.Background(), func() []reasoning.Message {
		return []reasoning.Message{reasoning.UserMessage("go")}
	})

	assert.Equal(t, 2, attempts)
	assert.Equal(t, true, out["ok"])
}

func TestReasoningAgent_ExecutePlainText(t *testing.T) {
	svc := reasoning.NewMockService()
	svc.AddResponse("summarize", "a short summary")
	a := newTestReasoningAgent(svc, 1)

	res := a.Execute(context.Background(), core.Task{
		TaskType:  "analysis",
		InputData: map[string]any{"prompt": "summarize"},
	}, core.Context{})

	require.True(t, res.Success)
	assert.Equal(t, "a short summary", res.Data)
}

func TestReasoningAgent_ExecuteThreadsSystemPrompt(t *testing.T) {
	svc := new(mockServiceImpl)
	svc.On("Chat", mock.Anything, []reasoning.Message{
		reasoning.SystemMessage("be terse"),
		reasoning.UserMessage("summarize"),
	}).Return("ok", nil)
	a := newTestReasoningAgent(svc, 1)

	res := a.Execute(context.Background(), core.Task{
		TaskType: "analysis",
		InputData: map[string]any{
			"system_prompt": "be terse",
			"prompt":        "summarize",
		},
	}, core.Context{})

	require.True(t, res.Success)
	svc.AssertExpectations(t)
}

func TestReasoningAgent_ExecuteTransportFailure(t *testing.T) {
	svc := reasoning.NewMockService()
	svc.ScriptError(errors.New("connection reset"))
	a := newTestReasoningAgent(svc, 1)

	res := a.Execute(context.Background(), core.Task{
		TaskType:  "analysis",
		InputData: map[string]any{"prompt": "summarize"},
	}, core.Context{})

	assert.False(t, res.Success)
	assert.Equal(t, core.CodeLLMError, res.ErrorCode)
}

func TestReasoningAgent_ExecuteStructuredDegrades(t *testing.T) {
	svc := reasoning.NewMockService()
	svc.Script("garbage")
	svc.Script("more garbage")
	a := newTestReasoningAgent(svc, 2)

	res := a.Execute(context.Background(), core.Task{
		TaskType:  "analysis",
		InputData: map[string]any{"prompt": "extract", "structured": true},
	}, core.Context{})

	// Degrade-gracefully: still a successful envelope with an empty object.
	require.True(t, res.Success)
	assert.Equal(t, map[string]any{}, res.Data)
	assert.Equal(t, 2, res.Metadata["attempts"])
}

func TestReasoningAgent_ExecuteMissingPrompt(t *testing.T) {
	a := newTestReasoningAgent(reasoning.NewMockService(), 1)

	res := a.Execute(context.Background(), core.Task{
		TaskType:  "analysis",
		InputData: map[string]any{},
	}, core.Context{})

	assert.False(t, res.Success)
	assert.Equal(t, core.CodeInvalidTask, res.ErrorCode)
}

func TestDefaultDegenerate(t *testing.T) {
	assert.True(t, DefaultDegenerate(""))
	assert.True(t, DefaultDegenerate("  \n "))
	assert.True(t, DefaultDegenerate("x"))
	assert.False(t, DefaultDegenerate("{}"))
}
