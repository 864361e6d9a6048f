// Package anthropic implements reasoning.Service over the Anthropic
// Messages API.
package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sharma-manish-94/schemasculpt-agentcore/reasoning"
)

// Options configure the Anthropic service adapter (model id, temperature,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Service wraps the Anthropic Messages API behind reasoning.Service.
type Service struct {
	client *anthropic.Client
	opts   Options
}

// New creates a new Anthropic service using the official client.
func New(optFns ...func(o *Options)) *Service {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Service{client: &client, opts: opts}
}

// NewFromClient creates a new Anthropic service from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Service {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Service{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}

// Chat implements reasoning.Service. Transport and API failures are wrapped
// as *reasoning.ServiceError.
func (s *Service) Chat(ctx context.Context, messages []reasoning.Message, optFns ...func(o *reasoning.Options)) (string, error) {
	call := reasoning.Options{
		Model:       string(s.opts.Model),
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxTokens,
	}
	for _, fn := range optFns {
		fn(&call)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(call.Model),
		Messages:    buildMessages(messages),
		MaxTokens:   call.MaxTokens,
		Temperature: anthropic.Float(call.Temperature),
	}
	if system := extractSystem(messages); len(system) > 0 {
		params.System = system
	}

	resp, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return "", reasoning.NewServiceError("anthropic", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.AsText().Text
		}
	}
	return text, nil
}

// buildMessages converts role/content messages to Anthropic message params.
// System messages are handled separately; unknown roles are treated as user.
func buildMessages(messages []reasoning.Message) []anthropic.MessageParam {
	var out []anthropic.MessageParam
	for _, m := range messages {
		if m.Content == "" || m.Role == "system" {
			continue
		}
		switch m.Role {
		case "assistant":
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return out
}

// extractSystem collects system-role messages as system text blocks.
func extractSystem(messages []reasoning.Message) []anthropic.TextBlockParam {
	var blocks []anthropic.TextBlockParam
	for _, m := range messages {
		if m.Role == "system" && m.Content != "" {
			blocks = append(blocks, anthropic.TextBlockParam{Text: m.Content})
		}
	}
	return blocks
}
