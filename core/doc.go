// Package core defines the shared value types of the orchestration engine:
// the Result envelope returned by every unit of work, the Task and Context
// passed into agents, the Agent contract itself, and the declarative
// workflow definition and lifecycle state consumed by the coordinator.
//
// Everything in this package is either an interface or a value object;
// behavior lives in the agent and coordinator packages.
package core
