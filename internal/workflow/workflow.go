// Package workflow turns a goal request into a generated plan and a one
// sentence goal summary.
package workflow

import (
	"errors"
	"fmt"
)

// Pipeline stages, also used as metric and error labels.
const (
	StageSummary  = "summary"
	StageWorkflow = "workflow"
)

// System instructions sent ahead of each prompt.
const (
	SummarySystemPrompt  = "You are a helpful assistant."
	WorkflowSystemPrompt = "You are an expert project planner."
)

// ErrEmptyGoal is returned when a request carries no goal text.
var ErrEmptyGoal = errors.New("goal must not be empty")

// GoalRequest is one user submission.
type GoalRequest struct {
	Goal   string `json:"goal" validate:"required,notblank"`
	Role   string `json:"role,omitempty"`
	Region string `json:"region,omitempty"`
}

// Result is the output of one pipeline run.
type Result struct {
	WorkflowText string `json:"workflow"`
	GoalSummary  string `json:"goal_summary"`
}

// CompletionError reports a failed or empty completion call. Callers may
// retry with backoff; the pipeline never does.
type CompletionError struct {
	Stage string
	Err   error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s completion: %v", e.Stage, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }
