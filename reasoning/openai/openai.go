// Package openai implements reasoning.Service over the OpenAI Chat
// Completions API. It adapts the engine's role/content messages into the
// SDK's message format and returns the completion text of the first choice.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/sharma-manish-94/schemasculpt-agentcore/reasoning"
)

// Options configure the OpenAI service adapter. Fields mirror a minimal
// subset of Chat Completion parameters; extend via functional options
// without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Service wraps the OpenAI Chat Completions API behind reasoning.Service.
type Service struct {
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI service using the official client, which reads
// OPENAI_API_KEY from the environment.
func New(optFns ...func(o *Options)) *Service {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI service from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Service {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Service{client: client, opts: opts}
}

// Chat implements reasoning.Service. Transport and API failures are wrapped
// as *reasoning.ServiceError.
func (s *Service) Chat(ctx context.Context, messages []reasoning.Message, optFns ...func(o *reasoning.Options)) (string, error) {
	call := reasoning.Options{
		Model:       s.opts.Model,
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxCompletionTokens,
	}
	for _, fn := range optFns {
		fn(&call)
	}

	params := openai.ChatCompletionNewParams{
		Model:               call.Model,
		Messages:            buildMessages(messages),
		Temperature:         openai.Float(call.Temperature),
		MaxCompletionTokens: openai.Int(call.MaxTokens),
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", reasoning.NewServiceError("openai", err)
	}
	if len(resp.Choices) == 0 {
		return "", reasoning.NewServiceError("openai", fmt.Errorf("no choices returned"))
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages converts role/content messages into SDK message params.
// Unknown roles are treated as user input.
func buildMessages(messages []reasoning.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(text))
		case "assistant":
			out = append(out, openai.AssistantMessage(text))
		default:
			out = append(out, openai.UserMessage(text))
		}
	}
	return out
}
