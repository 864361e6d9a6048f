package coordinator

import (
	"sync"
	"time"

	"github.com/sharma-manish-94/schemasculpt-agentcore/core"
)

// workflowRegistry is the in-memory map of workflow id to workflow state.
// Only the coordinator mutates entries; lookups hand out snapshot clones so
// callers can never reach into live state (same clone-on-read discipline as
// an in-memory session store).
type workflowRegistry struct {
	mu        sync.RWMutex
	workflows map[string]*core.WorkflowState
}

func newWorkflowRegistry() *workflowRegistry {
	return &workflowRegistry{workflows: make(map[string]*core.WorkflowState)}
}

// create registers a new running workflow and returns its id.
func (r *workflowRegistry) create(wfType core.WorkflowType, tasks []core.TaskRef) string {
	id := core.NewID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.workflows[id] = &core.WorkflowState{
		WorkflowID: id,
		StartTime:  time.Now().UTC(),
		Type:       wfType,
		Tasks:      append([]core.TaskRef(nil), tasks...),
		Status:     core.WorkflowRunning,
	}
	return id
}

// appendResult records a completed task envelope on a running workflow.
func (r *workflowRegistry) appendResult(id string, res core.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.workflows[id]; ok {
		st.Results = append(st.Results, res)
	}
}

// setStatus transitions a workflow's lifecycle state.
func (r *workflowRegistry) setStatus(id string, status core.WorkflowStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.workflows[id]; ok {
		st.Status = status
	}
}

// get returns a snapshot of one workflow's state.
func (r *workflowRegistry) get(id string) (core.WorkflowState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.workflows[id]
	if !ok {
		return core.WorkflowState{}, false
	}
	return st.Clone(), true
}

// all returns snapshots of every tracked workflow.
func (r *workflowRegistry) all() []core.WorkflowState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.WorkflowState, 0, len(r.workflows))
	for _, st := range r.workflows {
		out = append(out, st.Clone())
	}
	return out
}

// activeCount returns how many workflows are still running.
func (r *workflowRegistry) activeCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, st := range r.workflows {
		if st.Status == core.WorkflowRunning {
			n++
		}
	}
	return n
}

// cleanup removes terminal workflows whose start time is older than
// now-maxAge and returns the count removed. Running workflows are never
// removed regardless of age.
func (r *workflowRegistry) cleanup(maxAge time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxAge)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, st := range r.workflows {
		if st.Status.Terminal() && st.StartTime.Before(cutoff) {
			delete(r.workflows, id)
			removed++
		}
	}
	return removed
}
