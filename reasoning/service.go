package reasoning

import (
	"context"
	"fmt"
	"sync"
)

// Message is one entry of a chat transcript sent to the backend.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message { return Message{Role: "system", Content: content} }

// UserMessage builds a user-role message.
func UserMessage(content string) Message { return Message{Role: "user", Content: content} }

// AssistantMessage builds an assistant-role message.
func AssistantMessage(content string) Message { return Message{Role: "assistant", Content: content} }

// Options carries per-call generation parameters. Zero values mean "use the
// backend default".
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int64
}

// WithModel overrides the model identifier for a single call.
func WithModel(model string) func(o *Options) {
	return func(o *Options) { o.Model = model }
}

// WithTemperature overrides the sampling temperature for a single call.
func WithTemperature(t float64) func(o *Options) {
	return func(o *Options) { o.Temperature = t }
}

// WithMaxTokens overrides the completion token budget for a single call.
func WithMaxTokens(n int64) func(o *Options) {
	return func(o *Options) { o.MaxTokens = n }
}

// Service is the call contract for the external reasoning backend. Chat
// sends a transcript and returns the raw completion text. Implementations
// must wrap transport and non-2xx failures in *ServiceError.
type Service interface {
	Chat(ctx context.Context, messages []Message, optFns ...func(o *Options)) (string, error)
}

// ServiceError wraps a transport or HTTP failure from a reasoning backend so
// callers can tell backend trouble apart from parse failures on otherwise
// successful responses.
type ServiceError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("reasoning service %s: %v", e.Provider, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *ServiceError) Unwrap() error { return e.Err }

// NewServiceError wraps err as a ServiceError for the named provider.
func NewServiceError(provider string, err error) *ServiceError {
	return &ServiceError{Provider: provider, Err: err}
}

// MockService is a lightweight in-memory Service useful for tests and
// examples. Responses can be keyed on the last user message or scripted as
// an ordered sequence consumed one call at a time. Safe for concurrent use.
type MockService struct {
	mu        sync.Mutex
	responses map[string]string
	script    []scriptEntry
	cursor    int
	calls     int
}

type scriptEntry struct {
	text string
	err  error
}

// NewMockService constructs an empty MockService.
func NewMockService() *MockService {
	return &MockService{responses: make(map[string]string)}
}

// AddResponse registers a canned completion for a last-user-message prompt.
func (m *MockService) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// Script appends a response to the ordered per-call sequence. Scripted
// responses take precedence over keyed ones.
func (m *MockService) Script(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scriptEntry{text: response})
}

// ScriptError appends a failing call to the ordered sequence.
func (m *MockService) ScriptError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scriptEntry{err: err})
}

// Calls returns how many times Chat has been invoked.
func (m *MockService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Chat implements Service.
func (m *MockService) Chat(_ context.Context, messages []Message, _ ...func(o *Options)) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.cursor < len(m.script) {
		entry := m.script[m.cursor]
		m.cursor++
		if entry.err != nil {
			return "", NewServiceError("mock", entry.err)
		}
		return entry.text, nil
	}

	var lastUser string
	for _, msg := range messages {
		if msg.Role == "user" {
			lastUser = msg.Content
		}
	}
	if resp, ok := m.responses[lastUser]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", lastUser), nil
}
