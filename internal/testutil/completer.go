// Package testutil provides a scripted llm.Completer for tests.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/joestump/workflows/internal/llm"
)

// Call records one Complete invocation.
type Call struct {
	Model    string
	Messages []llm.Message
}

// System returns the system message content of the call, if any.
func (c Call) System() string {
	for _, m := range c.Messages {
		if m.Role == llm.RoleSystem {
			return m.Content
		}
	}
	return ""
}

// User returns the user message content of the call, if any.
func (c Call) User() string {
	for _, m := range c.Messages {
		if m.Role == llm.RoleUser {
			return m.Content
		}
	}
	return ""
}

// FakeCompleter answers by matching the user prompt. It is safe for
// concurrent use, since the pipeline issues its calls in parallel.
//
//	fake := &testutil.FakeCompleter{
//	    Summary:  "Open an online handmade goods shop.",
//	    Workflow: "1. **Action**: Register a shop",
//	}
type FakeCompleter struct {
	// Summary answers prompts that start with the summarization instruction.
	Summary string
	// Workflow answers every other prompt.
	Workflow string

	// SummaryErr and WorkflowErr, when set, are returned instead of text.
	SummaryErr  error
	WorkflowErr error

	// Block makes Complete wait for ctx to be done before returning ctx.Err().
	Block bool

	mu    sync.Mutex
	calls []Call
}

// Complete implements llm.Completer.
func (f *FakeCompleter) Complete(ctx context.Context, model string, messages []llm.Message) (string, error) {
	call := Call{Model: model, Messages: append([]llm.Message(nil), messages...)}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}

	if strings.HasPrefix(call.User(), "Summarize this goal") {
		if f.SummaryErr != nil {
			return "", f.SummaryErr
		}
		return f.Summary, nil
	}
	if f.WorkflowErr != nil {
		return "", f.WorkflowErr
	}
	return f.Workflow, nil
}

// Calls returns a copy of the recorded calls.
func (f *FakeCompleter) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns the number of Complete invocations.
func (f *FakeCompleter) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// CallFor returns the first recorded call whose system prompt equals system.
func (f *FakeCompleter) CallFor(system string) (Call, bool) {
	for _, c := range f.Calls() {
		if c.System() == system {
			return c, true
		}
	}
	return Call{}, false
}
