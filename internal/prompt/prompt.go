// Package prompt builds the two user prompts sent for every goal: a one
// sentence summary request and the structured workflow request.
package prompt

import (
	_ "embed"
	"strings"
	"text/template"
)

// SummaryPrefix precedes the goal in the summary prompt.
const SummaryPrefix = "Summarize this goal in one concise sentence: "

//go:embed workflow.tmpl
var workflowTemplateSrc string

var workflowTemplate = template.Must(template.New("workflow").Parse(workflowTemplateSrc))

// WorkflowData holds the variables available in the workflow template.
type WorkflowData struct {
	Persona string
	Goal    string
	Region  string
}

// BuildSummaryPrompt wraps goal in the fixed summarization instruction.
func BuildSummaryPrompt(goal string) string {
	return SummaryPrefix + goal
}

// BuildWorkflowPrompt renders the workflow request. The persona line is
// omitted when persona is empty and the location sentence is omitted when
// region is blank.
func BuildWorkflowPrompt(persona, goal, region string) string {
	data := WorkflowData{
		Persona: strings.TrimSpace(persona),
		Goal:    goal,
		Region:  strings.TrimSpace(region),
	}

	var sb strings.Builder
	// Every field is a plain string, so Execute cannot fail on this template.
	if err := workflowTemplate.Execute(&sb, data); err != nil {
		panic("prompt: execute workflow template: " + err.Error())
	}
	return sb.String()
}
