// Package reasoning defines the contract between agents and the external,
// non-deterministic text-generation backend they delegate to. The Service
// interface exposes a single Chat operation over role/content messages;
// transport and HTTP failures surface as *ServiceError so callers can
// distinguish backend trouble from degenerate-but-successful output.
//
// Concrete backends live in the reasoning/openai and reasoning/anthropic
// subpackages; MockService provides scripted responses for tests.
package reasoning
