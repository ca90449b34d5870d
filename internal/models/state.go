// ABOUTME: Per-invocation workflow state and lifecycle phases
// ABOUTME: Holds message history, chosen route, and the final answer
package models

import "slices"

// Phase is a workflow lifecycle state
type Phase string

const (
	PhaseStart      Phase = "start"
	PhaseRouting    Phase = "routing"
	PhaseDispatched Phase = "dispatched"
	PhaseDone       Phase = "done"
)

// WorkflowState is owned by a single workflow invocation
type WorkflowState struct {
	RunID    string   `json:"run_id" yaml:"run_id"`
	Messages []string `json:"messages" yaml:"messages"`
	Answer   string   `json:"answer" yaml:"answer"`
	Route    Route    `json:"route" yaml:"route"`
	Phase    Phase    `json:"phase" yaml:"phase"`
	// Decision is set once routing completes
	Decision *RoutingDecision `json:"decision,omitempty" yaml:"decision,omitempty"`
}

// NewWorkflowState starts a state from a single query
func NewWorkflowState(runID, query string) *WorkflowState {
	return &WorkflowState{
		RunID:    runID,
		Messages: []string{query},
		Phase:    PhaseStart,
	}
}

// Query returns the first message, used for routing
func (s *WorkflowState) Query() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[0]
}

// Last returns the most recent message, used as responder input
func (s *WorkflowState) Last() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1]
}

// Clone returns a copy that shares no slices with s
func (s *WorkflowState) Clone() *WorkflowState {
	c := *s
	c.Messages = slices.Clone(s.Messages)
	if s.Decision != nil {
		d := *s.Decision
		c.Decision = &d
	}
	return &c
}
