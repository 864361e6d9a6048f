package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
	"github.com/sharma-manish-94/schemasculpt-agentcore/logging"
	"github.com/sharma-manish-94/schemasculpt-agentcore/reasoning"
	"github.com/sharma-manish-94/schemasculpt-agentcore/retry"
)

// previewLen bounds how much raw model output an UnparsableOutputError
// carries for diagnostics.
const previewLen = 200

// UnparsableOutputError reports that the reasoning service returned text
// that could not be decoded as structured output. Preview holds a bounded
// prefix of the raw text for diagnostics.
type UnparsableOutputError struct {
	Preview string
	Err     error
}

// Error implements the error interface.
func (e *UnparsableOutputError) Error() string {
	return fmt.Sprintf("unparsable reasoning output (preview: %q): %v", e.Preview, e.Err)
}

// Unwrap exposes the underlying decode error.
func (e *UnparsableOutputError) Unwrap() error { return e.Err }

// DegenerateFunc classifies a raw response as not worth parsing (empty,
// suspiciously short, a refusal). Degenerate responses are retried without a
// parse attempt.
type DegenerateFunc func(raw string) bool

// DefaultDegenerate flags empty or near-empty responses.
func DefaultDegenerate(raw string) bool {
	return len(strings.TrimSpace(raw)) < 2
}

// ReasoningAgentOptions configures a ReasoningAgent.
type ReasoningAgentOptions struct {
	// Logger receives retry/parse diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// RetryPolicy bounds ExtractStructured attempts. Defaults to 3 attempts
	// with no backoff.
	RetryPolicy retry.Policy
	// Degenerate classifies raw responses that should be retried without a
	// parse attempt. Defaults to DefaultDegenerate.
	Degenerate DegenerateFunc
}

// ReasoningAgent extends BaseAgent with access to an external reasoning
// service and helpers for recovering structured data from its free-form
// output. It is a complete core.Agent with a prompt-driven Execute; agents
// with richer behavior embed it and override Execute, composing the same
// helpers.
//
// Two failure channels are kept distinct on purpose. CallReasoningService
// propagates transport trouble as *reasoning.ServiceError for the embedding
// agent to convert into a failed envelope. ExtractStructured, by contrast,
// degrades: after its retry budget is spent it returns an empty result so
// the surrounding pipeline can continue with reduced data.
type ReasoningAgent struct {
	BaseAgent
	service    reasoning.Service
	logger     logging.Logger
	policy     retry.Policy
	degenerate DegenerateFunc
}

// NewReasoningAgent constructs a ReasoningAgent delegating to service.
func NewReasoningAgent(name string, service reasoning.Service, capabilities []core.Capability, optFns ...func(o *ReasoningAgentOptions)) *ReasoningAgent {
	opts := ReasoningAgentOptions{
		Logger:      logging.NoOpLogger{},
		RetryPolicy: retry.Policy{MaxAttempts: 3, Backoff: retry.NoBackoff},
		Degenerate:  DefaultDegenerate,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &ReasoningAgent{
		BaseAgent:  NewBaseAgent(name, capabilities...),
		service:    service,
		logger:     opts.Logger,
		policy:     opts.RetryPolicy,
		degenerate: opts.Degenerate,
	}
}

// Service returns the underlying reasoning service.
func (a *ReasoningAgent) Service() reasoning.Service { return a.service }

// CallReasoningService sends a transcript to the backend and returns the raw
// completion text. Transport/HTTP failures surface as *reasoning.ServiceError;
// the embedding agent's Execute is responsible for converting that into a
// failed envelope (LLM_ERROR).
func (a *ReasoningAgent) CallReasoningService(ctx context.Context, messages []reasoning.Message, optFns ...func(o *reasoning.Options)) (string, error) {
	out, err := a.service.Chat(ctx, messages, optFns...)
	if err != nil {
		var svcErr *reasoning.ServiceError
		if errors.As(err, &svcErr) {
			return "", err
		}
		return "", reasoning.NewServiceError("unknown", err)
	}
	return out, nil
}

// ParseStructuredOutput strips conversational wrapping (code fences, leading
// prose around the outermost JSON object) and decodes the remainder as a
// JSON object. Parse failure returns *UnparsableOutputError with a bounded
// preview of the raw text.
func (a *ReasoningAgent) ParseStructuredOutput(raw string) (map[string]any, error) {
	cleaned := stripWrapping(raw)

	var out map[string]any
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, &UnparsableOutputError{Preview: preview(raw), Err: err}
	}
	return out, nil
}

// ExtractStructured is the bounded retry pattern for obtaining structured
// data from a non-deterministic backend. Each attempt calls the service with
// the messages produced by buildMessages; degenerate responses and parse
// failures are retried; transport errors are retried too, since flakiness is
// part of the backend's non-determinism. On the first successful parse the
// result is returned immediately together with the number of calls made.
//
// When the budget is exhausted ExtractStructured does not fail: it returns
// an empty map so the caller can continue the larger pipeline with reduced
// data.
func (a *ReasoningAgent) ExtractStructured(ctx context.Context, buildMessages func() []reasoning.Message, optFns ...func(o *reasoning.Options)) (map[string]any, int) {
	parsed, attempts, err := retry.Do(ctx, a.policy, func(ctx context.Context, attempt int) (map[string]any, error) {
		raw, err := a.service.Chat(ctx, buildMessages(), optFns...)
		if err != nil {
			a.logger.Warn("reasoning call failed", "agent", a.Name(), "attempt", attempt, "error", err.Error())
			return nil, err
		}
		if a.degenerate(raw) {
			a.logger.Warn("degenerate reasoning response", "agent", a.Name(), "attempt", attempt, "length", len(raw))
			return nil, fmt.Errorf("degenerate response (%d bytes)", len(raw))
		}
		out, err := a.ParseStructuredOutput(raw)
		if err != nil {
			a.logger.Warn("unparsable reasoning response", "agent", a.Name(), "attempt", attempt, "error", err.Error())
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		a.logger.Warn("structured extraction degraded to empty result",
			"agent", a.Name(), "attempts", attempts, "error", err.Error())
		return map[string]any{}, attempts
	}
	return parsed, attempts
}

// Validate extends the base checks: reasoning tasks must carry a prompt.
func (a *ReasoningAgent) Validate(task core.Task) error {
	if err := a.BaseAgent.Validate(task); err != nil {
		return err
	}
	if _, ok := task.InputData["prompt"].(string); !ok {
		return fmt.Errorf("task input_data is missing required key %q", "prompt")
	}
	return nil
}

// Execute implements core.Agent. The task's input_data drives the call:
//
//	prompt        (string, required) user prompt
//	system_prompt (string, optional) system instruction
//	structured    (bool, optional)   when true, apply the retry pattern and
//	                                 return parsed JSON; degraded extraction
//	                                 still succeeds with an empty object and
//	                                 the attempt count in metadata
//
// Transport failures on the plain-text path become LLM_ERROR envelopes.
func (a *ReasoningAgent) Execute(ctx context.Context, task core.Task, _ core.Context) core.Result {
	return a.Track(func() core.Result {
		if err := a.Validate(task); err != nil {
			return a.Fail(err.Error(), core.CodeInvalidTask)
		}

		buildMessages := func() []reasoning.Message {
			var msgs []reasoning.Message
			if sys, ok := task.InputData["system_prompt"].(string); ok && sys != "" {
				msgs = append(msgs, reasoning.SystemMessage(sys))
			}
			prompt, _ := task.InputData["prompt"].(string)
			return append(msgs, reasoning.UserMessage(prompt))
		}

		if structured, _ := task.InputData["structured"].(bool); structured {
			parsed, attempts := a.ExtractStructured(ctx, buildMessages)
			return a.Succeed(parsed).WithMetadata(map[string]any{"attempts": attempts})
		}

		raw, err := a.CallReasoningService(ctx, buildMessages())
		if err != nil {
			return a.Fail(err.Error(), core.CodeLLMError)
		}
		return a.Succeed(raw)
	})
}

// stripWrapping removes markdown code fences and any prose surrounding the
// outermost JSON object.
func stripWrapping(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Models often wrap the object in a sentence. Cut to the outermost braces.
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}

func preview(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) > previewLen {
		return s[:previewLen]
	}
	return s
}
