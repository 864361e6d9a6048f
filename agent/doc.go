// Package agent contains first-class agent implementations and supporting
// utilities for building units of work executed by the coordinator. The
// package focuses on three concerns:
//
//  1. Base identity, validation and metrics plumbing (BaseAgent)
//  2. A function-backed agent for wiring plain Go code into workflows
//     (FunctionAgent)
//  3. A reasoning-backed agent that delegates to an external reasoning
//     service and recovers structured data from its free-form output
//     (ReasoningAgent)
//
// Design principles:
//   - No hidden global state; agents are explicit values registered on a
//     coordinator
//   - Every execution goes through BaseAgent.Track so metrics (busy flag,
//     execution count, timing) stay correct on success and failure alike
//   - Task-local failures become failed core.Result envelopes, never panics
//
// Concrete agents embed BaseAgent and implement Execute; everything else is
// inherited.
package agent
