// Package coordinator implements the workflow engine: it registers agents by
// name and executes declarative workflow definitions against them using one
// of three strategies (sequential, parallel, conditional), tracking every
// execution in an in-memory workflow registry for later inspection and
// age-based cleanup.
//
// Failure model: callers always receive a well-formed core.Result envelope.
// Task-level failures are data (failed envelopes inside the result list);
// only workflow-structural problems (unknown agent for sequential/parallel,
// unknown topology) fail the top-level envelope. A panic escaping the
// engine's own bookkeeping is recovered into a WORKFLOW_ERROR envelope and
// the workflow's registry entry is marked failed.
//
// Concurrency: the agent registry and the workflow registry are guarded by
// mutexes and safe for concurrent use. The shared workflow Context is not:
// under the parallel strategy agents must treat it as read-mostly.
package coordinator
